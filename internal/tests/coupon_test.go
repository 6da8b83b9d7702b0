package tests

import (
	"database/sql"
	"testing"
	"time"

	"bistro-backend/internal/domain"
	"bistro-backend/internal/mocks"
	"bistro-backend/internal/service"

	"github.com/stretchr/testify/assert"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func ptrFloat(v float64) *float64 { return &v }
func ptrInt(v int) *int           { return &v }
func ptrTime(v time.Time) *time.Time {
	return &v
}

func TestCouponService_Validate(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	tests := []struct {
		name         string
		code         string
		orderAmount  float64
		coupon       *domain.Coupon
		lookupErr    error
		expectedErr  error
		wantDiscount float64
		wantTotal    float64
	}{
		{
			name:        "percentage capped by max discount",
			code:        "SAVE20",
			orderAmount: 1000,
			coupon: &domain.Coupon{
				Code: "SAVE20", DiscountType: domain.DiscountPercentage, DiscountValue: 20,
				MaxDiscountAmount: ptrFloat(50), MinOrderAmount: 100, IsActive: true,
			},
			wantDiscount: 50,
			wantTotal:    950,
		},
		{
			name:        "fixed clamped to order amount",
			code:        "FLAT30",
			orderAmount: 20,
			coupon: &domain.Coupon{
				Code: "FLAT30", DiscountType: domain.DiscountFixed, DiscountValue: 30, IsActive: true,
			},
			wantDiscount: 20,
			wantTotal:    0,
		},
		{
			name:        "percentage without cap",
			code:        "TEN",
			orderAmount: 200,
			coupon: &domain.Coupon{
				Code: "TEN", DiscountType: domain.DiscountPercentage, DiscountValue: 10, IsActive: true,
			},
			wantDiscount: 20,
			wantTotal:    180,
		},
		{
			name:        "expired regardless of amount",
			code:        "EXPIRED1",
			orderAmount: 5000,
			coupon: &domain.Coupon{
				Code: "EXPIRED1", DiscountType: domain.DiscountFixed, DiscountValue: 10,
				IsActive: true, ValidUntil: ptrTime(yesterday),
			},
			expectedErr: service.ErrCouponExpired,
		},
		{
			name:        "not yet valid",
			code:        "SOON",
			orderAmount: 100,
			coupon: &domain.Coupon{
				Code: "SOON", DiscountType: domain.DiscountFixed, DiscountValue: 10,
				IsActive: true, ValidFrom: ptrTime(tomorrow),
			},
			expectedErr: service.ErrCouponInvalid,
		},
		{
			name:        "usage limit exhausted",
			code:        "USEDUP",
			orderAmount: 100,
			coupon: &domain.Coupon{
				Code: "USEDUP", DiscountType: domain.DiscountFixed, DiscountValue: 10,
				IsActive: true, UsageLimit: ptrInt(5), UsedCount: 5,
			},
			expectedErr: domain.ErrCouponExhausted,
		},
		{
			name:        "below minimum order amount",
			code:        "BIGONLY",
			orderAmount: 50,
			coupon: &domain.Coupon{
				Code: "BIGONLY", DiscountType: domain.DiscountPercentage, DiscountValue: 10,
				MinOrderAmount: 100, IsActive: true,
			},
			expectedErr: service.ErrCouponMinOrder,
		},
		{
			name:        "unknown code",
			code:        "NOPE",
			orderAmount: 100,
			lookupErr:   sql.ErrNoRows,
			expectedErr: service.ErrCouponInvalid,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo := mocks.NewCouponRepository(t)
			if testCase.coupon != nil {
				repo.On("GetActiveCouponByCode", testCase.code).Return(testCase.coupon, nil).Once()
			} else {
				repo.On("GetActiveCouponByCode", testCase.code).Return(nil, testCase.lookupErr).Once()
			}

			svc := service.NewCouponService(repo)
			svc.Now = fixedClock(now)

			result, err := svc.Validate(testCase.code, testCase.orderAmount)

			if testCase.expectedErr != nil {
				assert.ErrorIs(t, err, testCase.expectedErr)
				assert.Nil(t, result)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, testCase.wantDiscount, result.DiscountAmount)
			assert.Equal(t, testCase.wantTotal, result.NewTotal)
			assert.Equal(t, testCase.code, result.Code)
		})
	}
}

func TestCouponService_Validate_NormalizesCode(t *testing.T) {
	repo := mocks.NewCouponRepository(t)
	repo.On("GetActiveCouponByCode", "SAVE20").Return(&domain.Coupon{
		Code: "SAVE20", DiscountType: domain.DiscountFixed, DiscountValue: 5, IsActive: true,
	}, nil).Once()

	svc := service.NewCouponService(repo)

	result, err := svc.Validate("  save20 ", 100)
	assert.NoError(t, err)
	assert.Equal(t, "SAVE20", result.Code)
}

func TestCouponService_Validate_RejectsNonPositiveAmount(t *testing.T) {
	svc := service.NewCouponService(mocks.NewCouponRepository(t))

	_, err := svc.Validate("SAVE20", 0)
	assert.ErrorIs(t, err, service.ErrInvalidOrderAmount)

	_, err = svc.Validate("SAVE20", -10)
	assert.ErrorIs(t, err, service.ErrInvalidOrderAmount)
}

func TestCouponService_Create(t *testing.T) {
	tests := []struct {
		name      string
		coupon    *domain.Coupon
		wantErr   error
		wantsRepo bool
		wantCode  string
	}{
		{
			name: "uppercases code",
			coupon: &domain.Coupon{
				Code: "summer10", DiscountType: domain.DiscountPercentage, DiscountValue: 10, IsActive: true,
			},
			wantsRepo: true,
			wantCode:  "SUMMER10",
		},
		{
			name:    "missing code",
			coupon:  &domain.Coupon{DiscountType: domain.DiscountFixed, DiscountValue: 5},
			wantErr: service.ErrCouponFields,
		},
		{
			name:    "unknown type",
			coupon:  &domain.Coupon{Code: "X", DiscountType: "bogus", DiscountValue: 5},
			wantErr: service.ErrCouponFields,
		},
		{
			name:    "non-positive value",
			coupon:  &domain.Coupon{Code: "X", DiscountType: domain.DiscountFixed, DiscountValue: 0},
			wantErr: service.ErrCouponFields,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo := mocks.NewCouponRepository(t)
			if testCase.wantsRepo {
				repo.On("CreateCoupon", testCase.coupon).Return(nil).Once()
			}

			svc := service.NewCouponService(repo)
			err := svc.Create(testCase.coupon)

			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, testCase.wantCode, testCase.coupon.Code)
		})
	}
}

func TestComputeDiscount_NeverNegativeTotal(t *testing.T) {
	coupon := &domain.Coupon{DiscountType: domain.DiscountFixed, DiscountValue: 500}
	assert.Equal(t, 42.0, service.ComputeDiscount(coupon, 42))

	pct := &domain.Coupon{DiscountType: domain.DiscountPercentage, DiscountValue: 150}
	assert.Equal(t, 100.0, service.ComputeDiscount(pct, 100))
}
