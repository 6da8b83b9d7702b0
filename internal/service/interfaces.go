package service

import (
	"context"
	"time"

	"bistro-backend/internal/domain"
)

type CatalogRepository interface {
	CreateCategory(cat *domain.MenuCategory) error
	ListCategories(activeOnly bool) ([]domain.MenuCategory, error)
	GetCategory(id int) (*domain.MenuCategory, error)
	UpdateCategory(cat *domain.MenuCategory) error
	SetCategoryActive(id int, active bool) (int64, error)
	CreateItem(item *domain.MenuItem) error
	ListItems(categoryID int, availableOnly bool) ([]domain.MenuItem, error)
	GetItem(id int) (*domain.MenuItem, error)
	UpdateItem(item *domain.MenuItem) error
	SetItemAvailable(id int, available bool) (int64, error)
	UpdateItemImage(id int, imageURL string) error
}

type CouponRepository interface {
	CreateCoupon(coupon *domain.Coupon) error
	GetActiveCouponByCode(code string) (*domain.Coupon, error)
	ListCoupons() ([]domain.Coupon, error)
	UpdateCoupon(coupon *domain.Coupon) error
	SetCouponActive(id int, active bool) (int64, error)
}

type OrderRepository interface {
	UpsertCustomerByPhone(c *domain.Customer) error
	CreateOrder(order *domain.Order) error
	GetOrderByNumber(orderNumber string) (*domain.Order, error)
	ListOrders(status string) ([]domain.Order, error)
	UpdatePaymentStatus(orderNumber, from, to, reference string) (int64, error)
	SaveOrderQRCode(orderNumber string, qr []byte) error
	GetOrderQRCode(orderNumber string) ([]byte, error)
}

type SurveyRepository interface {
	InsertSurvey(survey *domain.Survey) error
	ListSurveys() ([]domain.Survey, error)
}

type EmployeeRepository interface {
	CreateEmployee(emp *domain.Employee) error
	GetEmployeeByEmail(email string) (*domain.Employee, error)
	SetEmployeeActive(id int, active bool) (int64, error)
}

type StatsRepository interface {
	DailyOrderStats(date string) (int, float64, error)
}

type MenuCache interface {
	GetMenu(ctx context.Context, lang string) ([]byte, error)
	SetMenu(ctx context.Context, lang string, payload []byte) error
	InvalidateMenu(ctx context.Context) error
}

type CounterCache interface {
	IncrOrderCounters(ctx context.Context, date string, total float64) error
	DecrRevenue(ctx context.Context, date string, total float64) error
	DailyOrderCounters(ctx context.Context, date string) (map[string]string, error)
}

type EventPublisher interface {
	PublishEvent(ctx context.Context, event domain.Event) error
}

type QRGenerator interface {
	Generate(orderNumber string) ([]byte, error)
}

type CouponValidator interface {
	Validate(code string, orderAmount float64) (*domain.CouponResult, error)
}

type CatalogServiceInterface interface {
	Menu(ctx context.Context, lang string) ([]domain.MenuCategoryView, error)
	CreateCategory(ctx context.Context, cat *domain.MenuCategory) error
	ListCategories() ([]domain.MenuCategory, error)
	UpdateCategory(ctx context.Context, cat *domain.MenuCategory) error
	SetCategoryActive(ctx context.Context, id int, active bool) (int64, error)
	CreateItem(ctx context.Context, item *domain.MenuItem) error
	ListItems(categoryID int) ([]domain.MenuItem, error)
	UpdateItem(ctx context.Context, item *domain.MenuItem) error
	SetItemAvailable(ctx context.Context, id int, available bool) (int64, error)
	UpdateItemImage(ctx context.Context, id int, imageURL string) error
}

type CouponServiceInterface interface {
	Validate(code string, orderAmount float64) (*domain.CouponResult, error)
	Create(coupon *domain.Coupon) error
	List() ([]domain.Coupon, error)
	Update(coupon *domain.Coupon) error
	SetActive(id int, active bool) (int64, error)
}

type OrderServiceInterface interface {
	Create(ctx context.Context, req *CreateOrderRequest) (*domain.Order, *PaymentInfo, error)
	Get(orderNumber string) (*domain.Order, error)
	List(status string) ([]domain.Order, error)
	UpdatePayment(ctx context.Context, orderNumber, status, reference string) error
	Refund(ctx context.Context, orderNumber string) error
	QRCode(orderNumber string) ([]byte, error)
}

type SurveyServiceInterface interface {
	Submit(ctx context.Context, survey *domain.Survey) error
	List() ([]domain.Survey, error)
}

type DashboardServiceInterface interface {
	Stats(ctx context.Context, date time.Time) (*DashboardStats, error)
}

type AuthServiceInterface interface {
	Register(email, password, name, role string) (*domain.Employee, error)
	Login(email, password string) (string, *domain.Employee, error)
	Verify(token string) (*Claims, error)
	Deactivate(id int) (int64, error)
}
