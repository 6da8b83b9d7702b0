package service

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"bistro-backend/internal/domain"
)

var (
	ErrInvalidOrderAmount = errors.New("order amount must be greater than zero")
	ErrCouponInvalid      = errors.New("invalid or expired coupon code")
	ErrCouponExpired      = errors.New("coupon code has expired")
	ErrCouponMinOrder     = errors.New("order amount below coupon minimum")
	ErrCouponFields       = errors.New("coupon requires a code, a known discount type and a positive value")
)

type CouponService struct {
	repo CouponRepository

	// Now is the evaluation clock for expiry checks; overridable in tests.
	Now func() time.Time
}

func NewCouponService(repo CouponRepository) *CouponService {
	return &CouponService{repo: repo, Now: time.Now}
}

// Validate checks a coupon code against an order amount and computes the
// discount. It is read-only: used_count is consumed later, inside the
// order-creation transaction, so abandoned validations never burn a use.
func (s *CouponService) Validate(code string, orderAmount float64) (*domain.CouponResult, error) {
	if orderAmount <= 0 {
		return nil, ErrInvalidOrderAmount
	}

	code = strings.ToUpper(strings.TrimSpace(code))
	coupon, err := s.repo.GetActiveCouponByCode(code)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCouponInvalid
		}
		return nil, err
	}

	now := s.Now()
	if coupon.ValidFrom != nil && coupon.ValidFrom.After(now) {
		return nil, ErrCouponInvalid
	}
	if coupon.ValidUntil != nil && coupon.ValidUntil.Before(now) {
		return nil, ErrCouponExpired
	}
	if coupon.UsageLimit != nil && coupon.UsedCount >= *coupon.UsageLimit {
		return nil, domain.ErrCouponExhausted
	}
	if orderAmount < coupon.MinOrderAmount {
		return nil, fmt.Errorf("%w: minimum order amount is %.2f", ErrCouponMinOrder, coupon.MinOrderAmount)
	}

	discount := ComputeDiscount(coupon, orderAmount)
	return &domain.CouponResult{
		Code:           coupon.Code,
		DiscountType:   coupon.DiscountType,
		DiscountValue:  coupon.DiscountValue,
		DiscountAmount: discount,
		NewTotal:       orderAmount - discount,
	}, nil
}

// ComputeDiscount applies the coupon's type to the order amount: percentage
// with an optional cap, or a fixed amount. The result is clamped to the
// order amount so a total can never go negative.
func ComputeDiscount(coupon *domain.Coupon, orderAmount float64) float64 {
	var discount float64
	switch coupon.DiscountType {
	case domain.DiscountPercentage:
		discount = orderAmount * coupon.DiscountValue / 100
		if coupon.MaxDiscountAmount != nil && discount > *coupon.MaxDiscountAmount {
			discount = *coupon.MaxDiscountAmount
		}
	case domain.DiscountFixed:
		discount = coupon.DiscountValue
	}
	if discount > orderAmount {
		discount = orderAmount
	}
	if discount < 0 {
		discount = 0
	}
	return discount
}

func (s *CouponService) Create(coupon *domain.Coupon) error {
	coupon.Code = strings.ToUpper(strings.TrimSpace(coupon.Code))
	if err := validateCoupon(coupon); err != nil {
		return err
	}
	return s.repo.CreateCoupon(coupon)
}

func (s *CouponService) List() ([]domain.Coupon, error) {
	return s.repo.ListCoupons()
}

func (s *CouponService) Update(coupon *domain.Coupon) error {
	if coupon.DiscountType != domain.DiscountPercentage && coupon.DiscountType != domain.DiscountFixed {
		return ErrCouponFields
	}
	if coupon.DiscountValue <= 0 {
		return ErrCouponFields
	}
	return s.repo.UpdateCoupon(coupon)
}

func (s *CouponService) SetActive(id int, active bool) (int64, error) {
	return s.repo.SetCouponActive(id, active)
}

func validateCoupon(coupon *domain.Coupon) error {
	if coupon.Code == "" {
		return ErrCouponFields
	}
	if coupon.DiscountType != domain.DiscountPercentage && coupon.DiscountType != domain.DiscountFixed {
		return ErrCouponFields
	}
	if coupon.DiscountValue <= 0 {
		return ErrCouponFields
	}
	return nil
}

var _ CouponServiceInterface = (*CouponService)(nil)
var _ CouponValidator = (*CouponService)(nil)
