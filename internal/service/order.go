package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"time"

	"bistro-backend/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrMissingCustomer    = errors.New("customer name, phone and address are required")
	ErrEmptyOrder         = errors.New("an order needs at least one item")
	ErrInvalidItem        = errors.New("order items need a name, a non-negative price and a positive quantity")
	ErrInvalidTransition  = errors.New("payment status change not allowed")
	ErrUnknownPaymentInfo = errors.New("payment status must be paid or failed")
)

const orderNumberAttempts = 5

type CreateOrderRequest struct {
	CustomerName    string             `json:"customer_name"`
	CustomerPhone   string             `json:"customer_phone"`
	CustomerAddress string             `json:"customer_address"`
	CustomerEmail   string             `json:"customer_email"`
	Notes           string             `json:"notes"`
	Items           []domain.OrderItem `json:"items"`
	DiscountCode    string             `json:"discount_code"`
}

type PaymentInfo struct {
	Reference   string `json:"reference"`
	RedirectURL string `json:"redirect_url"`
}

type OrderService struct {
	repo      OrderRepository
	coupons   CouponValidator
	publisher EventPublisher
	qr        QRGenerator
}

func NewOrderService(repo OrderRepository, coupons CouponValidator, publisher EventPublisher, qr QRGenerator) *OrderService {
	return &OrderService{repo: repo, coupons: coupons, publisher: publisher, qr: qr}
}

// Create validates the checkout payload, recomputes all money server-side,
// upserts the customer by phone and persists the order in one transaction.
// Coupon usage is consumed inside that transaction; if the coupon ran out
// between validation and checkout the order is rejected.
func (s *OrderService) Create(ctx context.Context, req *CreateOrderRequest) (*domain.Order, *PaymentInfo, error) {
	if req.CustomerName == "" || req.CustomerPhone == "" || req.CustomerAddress == "" {
		return nil, nil, ErrMissingCustomer
	}
	if len(req.Items) == 0 {
		return nil, nil, ErrEmptyOrder
	}

	var subtotal float64
	for _, item := range req.Items {
		if item.Name == "" || item.Price < 0 || item.Quantity < 1 {
			return nil, nil, ErrInvalidItem
		}
		subtotal += item.Price * float64(item.Quantity)
	}

	var discount float64
	var discountCode string
	if req.DiscountCode != "" {
		result, err := s.coupons.Validate(req.DiscountCode, subtotal)
		if err != nil {
			return nil, nil, err
		}
		discount = result.DiscountAmount
		discountCode = result.Code
	}

	customer := &domain.Customer{
		Name:    req.CustomerName,
		Phone:   req.CustomerPhone,
		Address: req.CustomerAddress,
		Email:   req.CustomerEmail,
	}
	if err := s.repo.UpsertCustomerByPhone(customer); err != nil {
		return nil, nil, fmt.Errorf("upsert customer: %w", err)
	}

	order := &domain.Order{
		CustomerName:     req.CustomerName,
		CustomerPhone:    req.CustomerPhone,
		CustomerAddress:  req.CustomerAddress,
		CustomerEmail:    req.CustomerEmail,
		Items:            req.Items,
		Subtotal:         subtotal,
		DiscountAmount:   discount,
		DiscountCode:     discountCode,
		Total:            subtotal - discount,
		PaymentStatus:    domain.PaymentPending,
		PaymentReference: uuid.NewString(),
		Notes:            req.Notes,
	}

	// The order number is unique by constraint; on a collision a fresh
	// number is generated and the insert retried.
	var err error
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		order.OrderNumber = GenerateOrderNumber()
		err = s.repo.CreateOrder(order)
		if !errors.Is(err, domain.ErrOrderNumberTaken) {
			break
		}
	}
	if err != nil {
		return nil, nil, err
	}

	if s.qr != nil {
		if qr, qrErr := s.qr.Generate(order.OrderNumber); qrErr == nil {
			if saveErr := s.repo.SaveOrderQRCode(order.OrderNumber, qr); saveErr != nil {
				log.Printf("failed to store QR code for order %s: %v", order.OrderNumber, saveErr)
			}
		}
	}

	s.publish(ctx, domain.Event{
		Type:        domain.EventOrderCreated,
		OrderNumber: order.OrderNumber,
		Total:       order.Total,
		Status:      order.PaymentStatus,
		Timestamp:   time.Now(),
	})

	return order, &PaymentInfo{
		Reference:   order.PaymentReference,
		RedirectURL: "/payment/" + order.PaymentReference,
	}, nil
}

// GenerateOrderNumber builds ORD-<6 timestamp digits>-<6 random base36>.
func GenerateOrderNumber() string {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		// Fall back to the clock; the unique constraint still guards us.
		for i := range buf {
			buf[i] = byte(time.Now().UnixNano() >> (i * 8))
		}
	}
	suffix := make([]byte, 6)
	for i, b := range buf {
		suffix[i] = alphabet[int(b)%len(alphabet)]
	}
	return fmt.Sprintf("ORD-%06d-%s", time.Now().Unix()%1000000, suffix)
}

func (s *OrderService) Get(orderNumber string) (*domain.Order, error) {
	return s.repo.GetOrderByNumber(orderNumber)
}

func (s *OrderService) List(status string) ([]domain.Order, error) {
	return s.repo.ListOrders(status)
}

// UpdatePayment applies an asynchronous gateway callback: pending -> paid or
// pending -> failed, keyed by order number.
func (s *OrderService) UpdatePayment(ctx context.Context, orderNumber, status, reference string) error {
	if status != domain.PaymentPaid && status != domain.PaymentFailed {
		return ErrUnknownPaymentInfo
	}
	return s.transition(ctx, orderNumber, domain.PaymentPending, status, reference)
}

// Refund is the administrative paid -> refunded transition.
func (s *OrderService) Refund(ctx context.Context, orderNumber string) error {
	return s.transition(ctx, orderNumber, domain.PaymentPaid, domain.PaymentRefunded, "")
}

func (s *OrderService) transition(ctx context.Context, orderNumber, from, to, reference string) error {
	order, err := s.repo.GetOrderByNumber(orderNumber)
	if err != nil {
		return err
	}
	if order.PaymentStatus != from || !domain.CanTransition(from, to) {
		return ErrInvalidTransition
	}
	rows, err := s.repo.UpdatePaymentStatus(orderNumber, from, to, reference)
	if err != nil {
		return err
	}
	if rows == 0 {
		// Lost a race with another status change.
		return ErrInvalidTransition
	}

	s.publish(ctx, domain.Event{
		Type:        domain.EventPaymentUpdated,
		OrderNumber: orderNumber,
		Total:       order.Total,
		Status:      to,
		Timestamp:   time.Now(),
	})
	return nil
}

func (s *OrderService) QRCode(orderNumber string) ([]byte, error) {
	qr, err := s.repo.GetOrderQRCode(orderNumber)
	if err != nil {
		return nil, err
	}
	if len(qr) == 0 && s.qr != nil {
		regenerated, err := s.qr.Generate(orderNumber)
		if err != nil {
			return nil, err
		}
		if err := s.repo.SaveOrderQRCode(orderNumber, regenerated); err != nil {
			log.Printf("failed to cache regenerated QR code: %v", err)
		}
		return regenerated, nil
	}
	return qr, nil
}

func (s *OrderService) publish(ctx context.Context, event domain.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishEvent(ctx, event); err != nil {
		log.Printf("failed to publish %s event for %s: %v", event.Type, event.OrderNumber, err)
	}
}

var _ OrderServiceInterface = (*OrderService)(nil)
