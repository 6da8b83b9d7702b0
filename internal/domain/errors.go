package domain

import "errors"

// Shared sentinel errors crossing the storage/service boundary.
var (
	// ErrCouponExhausted is returned when a conditional used_count increment
	// finds the coupon inactive, expired, or out of remaining uses.
	ErrCouponExhausted = errors.New("coupon usage limit exceeded")

	// ErrOrderNumberTaken is returned when an order insert hits the unique
	// constraint on order_number; the caller regenerates and retries.
	ErrOrderNumberTaken = errors.New("order number already exists")

	// ErrEmailTaken is returned when an employee registration hits the
	// unique constraint on email.
	ErrEmailTaken = errors.New("email already registered")
)
