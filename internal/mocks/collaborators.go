package mocks

import (
	"context"

	"bistro-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MenuCache struct {
	mock.Mock
}

func NewMenuCache(t testingT) *MenuCache {
	m := &MenuCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MenuCache) GetMenu(ctx context.Context, lang string) ([]byte, error) {
	args := m.Called(ctx, lang)
	var payload []byte
	if args.Get(0) != nil {
		payload = args.Get(0).([]byte)
	}
	return payload, args.Error(1)
}

func (m *MenuCache) SetMenu(ctx context.Context, lang string, payload []byte) error {
	return m.Called(ctx, lang, payload).Error(0)
}

func (m *MenuCache) InvalidateMenu(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type CounterCache struct {
	mock.Mock
}

func NewCounterCache(t testingT) *CounterCache {
	m := &CounterCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *CounterCache) IncrOrderCounters(ctx context.Context, date string, total float64) error {
	return m.Called(ctx, date, total).Error(0)
}

func (m *CounterCache) DecrRevenue(ctx context.Context, date string, total float64) error {
	return m.Called(ctx, date, total).Error(0)
}

func (m *CounterCache) DailyOrderCounters(ctx context.Context, date string) (map[string]string, error) {
	args := m.Called(ctx, date)
	var counters map[string]string
	if args.Get(0) != nil {
		counters = args.Get(0).(map[string]string)
	}
	return counters, args.Error(1)
}

type EventPublisher struct {
	mock.Mock
}

func NewEventPublisher(t testingT) *EventPublisher {
	m := &EventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *EventPublisher) PublishEvent(ctx context.Context, event domain.Event) error {
	return m.Called(ctx, event).Error(0)
}

type QRGenerator struct {
	mock.Mock
}

func NewQRGenerator(t testingT) *QRGenerator {
	m := &QRGenerator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *QRGenerator) Generate(orderNumber string) ([]byte, error) {
	args := m.Called(orderNumber)
	var qr []byte
	if args.Get(0) != nil {
		qr = args.Get(0).([]byte)
	}
	return qr, args.Error(1)
}

type CouponValidator struct {
	mock.Mock
}

func NewCouponValidator(t testingT) *CouponValidator {
	m := &CouponValidator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *CouponValidator) Validate(code string, orderAmount float64) (*domain.CouponResult, error) {
	args := m.Called(code, orderAmount)
	var result *domain.CouponResult
	if args.Get(0) != nil {
		result = args.Get(0).(*domain.CouponResult)
	}
	return result, args.Error(1)
}
