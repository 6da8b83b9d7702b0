package service

import (
	"context"
	"log"
	"strconv"
	"time"

	"bistro-backend/internal/domain"
)

// Pure aggregation helpers for dashboard views. They operate on records that
// have already been fetched and never touch a collaborator.

func Filter[T any](items []T, keep func(T) bool) []T {
	out := []T{}
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

func CountWhere[T any](items []T, keep func(T) bool) int {
	count := 0
	for _, item := range items {
		if keep(item) {
			count++
		}
	}
	return count
}

func Sum[T any](items []T, value func(T) float64) float64 {
	var total float64
	for _, item := range items {
		total += value(item)
	}
	return total
}

// Average returns 0 for an empty collection instead of dividing by zero.
func Average[T any](items []T, value func(T) float64) float64 {
	if len(items) == 0 {
		return 0
	}
	return Sum(items, value) / float64(len(items))
}

type DashboardStats struct {
	Date            string  `json:"date"`
	OrdersToday     int     `json:"orders_today"`
	RevenueToday    float64 `json:"revenue_today"`
	PendingOrders   int     `json:"pending_orders"`
	PaidOrders      int     `json:"paid_orders"`
	FailedOrders    int     `json:"failed_orders"`
	RefundedOrders  int     `json:"refunded_orders"`
	SurveyCount     int     `json:"survey_count"`
	AvgFood         float64 `json:"avg_food"`
	AvgService      float64 `json:"avg_service"`
	AvgAtmosphere   float64 `json:"avg_atmosphere"`
	AvgValue        float64 `json:"avg_value"`
	AvgRecommend    float64 `json:"avg_recommend"`
	MarketingOptIns int     `json:"marketing_opt_ins"`
}

type DashboardService struct {
	orders   OrderRepository
	surveys  SurveyRepository
	stats    StatsRepository
	counters CounterCache
}

func NewDashboardService(orders OrderRepository, surveys SurveyRepository, stats StatsRepository, counters CounterCache) *DashboardService {
	return &DashboardService{orders: orders, surveys: surveys, stats: stats, counters: counters}
}

// Stats assembles the employee dashboard: the day's counters come from Redis
// (maintained by the event aggregator) with a database fallback, everything
// else is pure aggregation over fetched records.
func (s *DashboardService) Stats(ctx context.Context, date time.Time) (*DashboardStats, error) {
	day := date.Format("2006-01-02")
	stats := &DashboardStats{Date: day}

	orderCount, revenue, ok := s.countersFor(ctx, day)
	if !ok {
		var err error
		orderCount, revenue, err = s.stats.DailyOrderStats(day)
		if err != nil {
			return nil, err
		}
	}
	stats.OrdersToday = orderCount
	stats.RevenueToday = revenue

	orders, err := s.orders.ListOrders("")
	if err != nil {
		return nil, err
	}
	stats.PendingOrders = CountWhere(orders, byStatus(domain.PaymentPending))
	stats.PaidOrders = CountWhere(orders, byStatus(domain.PaymentPaid))
	stats.FailedOrders = CountWhere(orders, byStatus(domain.PaymentFailed))
	stats.RefundedOrders = CountWhere(orders, byStatus(domain.PaymentRefunded))

	surveys, err := s.surveys.ListSurveys()
	if err != nil {
		return nil, err
	}
	stats.SurveyCount = len(surveys)
	stats.AvgFood = Average(surveys, func(s domain.Survey) float64 { return float64(s.FoodRating) })
	stats.AvgService = Average(surveys, func(s domain.Survey) float64 { return float64(s.ServiceRating) })
	stats.AvgAtmosphere = Average(surveys, func(s domain.Survey) float64 { return float64(s.AtmosphereRating) })
	stats.AvgValue = Average(surveys, func(s domain.Survey) float64 { return float64(s.ValueRating) })
	stats.AvgRecommend = Average(surveys, func(s domain.Survey) float64 { return float64(s.RecommendScore) })
	stats.MarketingOptIns = CountWhere(surveys, func(s domain.Survey) bool { return s.MarketingOptIn })

	return stats, nil
}

func byStatus(status string) func(domain.Order) bool {
	return func(o domain.Order) bool { return o.PaymentStatus == status }
}

func (s *DashboardService) countersFor(ctx context.Context, day string) (int, float64, bool) {
	if s.counters == nil {
		return 0, 0, false
	}
	counters, err := s.counters.DailyOrderCounters(ctx, day)
	if err != nil || len(counters) == 0 {
		if err != nil {
			log.Printf("dashboard counters unavailable, falling back to database: %v", err)
		}
		return 0, 0, false
	}
	orders, _ := strconv.Atoi(counters["orders"])
	revenue, _ := strconv.ParseFloat(counters["revenue"], 64)
	return orders, revenue, true
}

var _ DashboardServiceInterface = (*DashboardService)(nil)
