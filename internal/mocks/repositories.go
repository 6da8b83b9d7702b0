package mocks

import (
	"bistro-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type CouponRepository struct {
	mock.Mock
}

func NewCouponRepository(t testingT) *CouponRepository {
	m := &CouponRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *CouponRepository) CreateCoupon(coupon *domain.Coupon) error {
	return m.Called(coupon).Error(0)
}

func (m *CouponRepository) GetActiveCouponByCode(code string) (*domain.Coupon, error) {
	args := m.Called(code)
	var coupon *domain.Coupon
	if args.Get(0) != nil {
		coupon = args.Get(0).(*domain.Coupon)
	}
	return coupon, args.Error(1)
}

func (m *CouponRepository) ListCoupons() ([]domain.Coupon, error) {
	args := m.Called()
	var coupons []domain.Coupon
	if args.Get(0) != nil {
		coupons = args.Get(0).([]domain.Coupon)
	}
	return coupons, args.Error(1)
}

func (m *CouponRepository) UpdateCoupon(coupon *domain.Coupon) error {
	return m.Called(coupon).Error(0)
}

func (m *CouponRepository) SetCouponActive(id int, active bool) (int64, error) {
	args := m.Called(id, active)
	return args.Get(0).(int64), args.Error(1)
}

type OrderRepository struct {
	mock.Mock
}

func NewOrderRepository(t testingT) *OrderRepository {
	m := &OrderRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *OrderRepository) UpsertCustomerByPhone(c *domain.Customer) error {
	return m.Called(c).Error(0)
}

func (m *OrderRepository) CreateOrder(order *domain.Order) error {
	return m.Called(order).Error(0)
}

func (m *OrderRepository) GetOrderByNumber(orderNumber string) (*domain.Order, error) {
	args := m.Called(orderNumber)
	var order *domain.Order
	if args.Get(0) != nil {
		order = args.Get(0).(*domain.Order)
	}
	return order, args.Error(1)
}

func (m *OrderRepository) ListOrders(status string) ([]domain.Order, error) {
	args := m.Called(status)
	var orders []domain.Order
	if args.Get(0) != nil {
		orders = args.Get(0).([]domain.Order)
	}
	return orders, args.Error(1)
}

func (m *OrderRepository) UpdatePaymentStatus(orderNumber, from, to, reference string) (int64, error) {
	args := m.Called(orderNumber, from, to, reference)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepository) SaveOrderQRCode(orderNumber string, qr []byte) error {
	return m.Called(orderNumber, qr).Error(0)
}

func (m *OrderRepository) GetOrderQRCode(orderNumber string) ([]byte, error) {
	args := m.Called(orderNumber)
	var qr []byte
	if args.Get(0) != nil {
		qr = args.Get(0).([]byte)
	}
	return qr, args.Error(1)
}

type SurveyRepository struct {
	mock.Mock
}

func NewSurveyRepository(t testingT) *SurveyRepository {
	m := &SurveyRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *SurveyRepository) InsertSurvey(survey *domain.Survey) error {
	return m.Called(survey).Error(0)
}

func (m *SurveyRepository) ListSurveys() ([]domain.Survey, error) {
	args := m.Called()
	var surveys []domain.Survey
	if args.Get(0) != nil {
		surveys = args.Get(0).([]domain.Survey)
	}
	return surveys, args.Error(1)
}

type EmployeeRepository struct {
	mock.Mock
}

func NewEmployeeRepository(t testingT) *EmployeeRepository {
	m := &EmployeeRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *EmployeeRepository) CreateEmployee(emp *domain.Employee) error {
	return m.Called(emp).Error(0)
}

func (m *EmployeeRepository) GetEmployeeByEmail(email string) (*domain.Employee, error) {
	args := m.Called(email)
	var emp *domain.Employee
	if args.Get(0) != nil {
		emp = args.Get(0).(*domain.Employee)
	}
	return emp, args.Error(1)
}

func (m *EmployeeRepository) SetEmployeeActive(id int, active bool) (int64, error) {
	args := m.Called(id, active)
	return args.Get(0).(int64), args.Error(1)
}

type StatsRepository struct {
	mock.Mock
}

func NewStatsRepository(t testingT) *StatsRepository {
	m := &StatsRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *StatsRepository) DailyOrderStats(date string) (int, float64, error) {
	args := m.Called(date)
	return args.Int(0), args.Get(1).(float64), args.Error(2)
}

type CatalogRepository struct {
	mock.Mock
}

func NewCatalogRepository(t testingT) *CatalogRepository {
	m := &CatalogRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *CatalogRepository) CreateCategory(cat *domain.MenuCategory) error {
	return m.Called(cat).Error(0)
}

func (m *CatalogRepository) ListCategories(activeOnly bool) ([]domain.MenuCategory, error) {
	args := m.Called(activeOnly)
	var cats []domain.MenuCategory
	if args.Get(0) != nil {
		cats = args.Get(0).([]domain.MenuCategory)
	}
	return cats, args.Error(1)
}

func (m *CatalogRepository) GetCategory(id int) (*domain.MenuCategory, error) {
	args := m.Called(id)
	var cat *domain.MenuCategory
	if args.Get(0) != nil {
		cat = args.Get(0).(*domain.MenuCategory)
	}
	return cat, args.Error(1)
}

func (m *CatalogRepository) UpdateCategory(cat *domain.MenuCategory) error {
	return m.Called(cat).Error(0)
}

func (m *CatalogRepository) SetCategoryActive(id int, active bool) (int64, error) {
	args := m.Called(id, active)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CatalogRepository) CreateItem(item *domain.MenuItem) error {
	return m.Called(item).Error(0)
}

func (m *CatalogRepository) ListItems(categoryID int, availableOnly bool) ([]domain.MenuItem, error) {
	args := m.Called(categoryID, availableOnly)
	var items []domain.MenuItem
	if args.Get(0) != nil {
		items = args.Get(0).([]domain.MenuItem)
	}
	return items, args.Error(1)
}

func (m *CatalogRepository) GetItem(id int) (*domain.MenuItem, error) {
	args := m.Called(id)
	var item *domain.MenuItem
	if args.Get(0) != nil {
		item = args.Get(0).(*domain.MenuItem)
	}
	return item, args.Error(1)
}

func (m *CatalogRepository) UpdateItem(item *domain.MenuItem) error {
	return m.Called(item).Error(0)
}

func (m *CatalogRepository) SetItemAvailable(id int, available bool) (int64, error) {
	args := m.Called(id, available)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CatalogRepository) UpdateItemImage(id int, imageURL string) error {
	return m.Called(id, imageURL).Error(0)
}
