package main

import (
	"context"

	"bistro-backend/config"
	httpapi "bistro-backend/internal/api/http"
	"bistro-backend/internal/service"
	"bistro-backend/internal/storage"

	"log"
)

func main() {
	cfg := config.Load()

	db := config.MustInitPostgres()
	defer db.Close()

	if err := storage.EnsureSchema(db); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	rdb := config.MustInitRedis()
	cache := storage.NewRedisCache(rdb, cfg.MenuCacheTTL)
	repo := storage.NewPostgresRepository(db)

	writer := config.NewKafkaWriter(cfg.KafkaTopic)
	defer writer.Close()
	publisher := storage.NewKafkaPublisher(writer)

	couponSvc := service.NewCouponService(repo)
	catalogSvc := service.NewCatalogService(repo, cache, cfg.DefaultLanguage)
	qr := service.NewSurveyQRGenerator(cfg.PublicBaseURL)
	orderSvc := service.NewOrderService(repo, couponSvc, publisher, qr)
	surveySvc := service.NewSurveyService(repo, publisher)
	dashboardSvc := service.NewDashboardService(repo, repo, repo, cache)
	authSvc := service.NewAuthService(repo, cfg.AuthSecret, cfg.AuthTTL)

	reader := config.NewKafkaReader(cfg.KafkaTopic, "dashboard-aggregator")
	defer reader.Close()
	aggregator := service.NewAggregator(reader, cache)
	go aggregator.Start(context.Background())

	handler := httpapi.NewHandler(catalogSvc, couponSvc, orderSvc, surveySvc, dashboardSvc, authSvc)
	httpapi.StartServer(cfg.ListenAddr, httpapi.NewRouter(handler))
}
