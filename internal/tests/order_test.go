package tests

import (
	"context"
	"regexp"
	"testing"

	"bistro-backend/internal/domain"
	"bistro-backend/internal/mocks"
	"bistro-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func checkoutRequest() *service.CreateOrderRequest {
	return &service.CreateOrderRequest{
		CustomerName:    "Alice",
		CustomerPhone:   "+15550001",
		CustomerAddress: "1 Main St",
		Items: []domain.OrderItem{
			{ItemID: 1, Name: "Margherita", Price: 12.99, Quantity: 2, Size: "large"},
			{ItemID: 4, Name: "Lemonade", Price: 3.50, Quantity: 1},
		},
	}
}

func TestOrderService_Create_ComputesMoneyServerSide(t *testing.T) {
	repo := mocks.NewOrderRepository(t)
	repo.On("UpsertCustomerByPhone", mock.AnythingOfType("*domain.Customer")).Return(nil).Once()
	repo.On("CreateOrder", mock.AnythingOfType("*domain.Order")).Return(nil).Once()

	svc := service.NewOrderService(repo, nil, nil, nil)

	order, payment, err := svc.Create(context.Background(), checkoutRequest())
	assert.NoError(t, err)
	assert.InDelta(t, 29.48, order.Subtotal, 0.001)
	assert.InDelta(t, 29.48, order.Total, 0.001)
	assert.Zero(t, order.DiscountAmount)
	assert.Equal(t, domain.PaymentPending, order.PaymentStatus)
	assert.NotEmpty(t, payment.Reference)
	assert.Equal(t, "/payment/"+payment.Reference, payment.RedirectURL)
	assert.Regexp(t, `^ORD-\d{6}-[0-9a-z]{6}$`, order.OrderNumber)
}

func TestOrderService_Create_AppliesCoupon(t *testing.T) {
	repo := mocks.NewOrderRepository(t)
	repo.On("UpsertCustomerByPhone", mock.AnythingOfType("*domain.Customer")).Return(nil).Once()
	repo.On("CreateOrder", mock.AnythingOfType("*domain.Order")).Return(nil).Once()

	validator := mocks.NewCouponValidator(t)
	validator.On("Validate", "SAVE20", mock.AnythingOfType("float64")).Return(&domain.CouponResult{
		Code:           "SAVE20",
		DiscountAmount: 5,
		NewTotal:       24.48,
	}, nil).Once()

	svc := service.NewOrderService(repo, validator, nil, nil)

	req := checkoutRequest()
	req.DiscountCode = "SAVE20"

	order, _, err := svc.Create(context.Background(), req)
	assert.NoError(t, err)
	assert.Equal(t, "SAVE20", order.DiscountCode)
	assert.InDelta(t, 5.0, order.DiscountAmount, 0.001)
	assert.InDelta(t, 24.48, order.Total, 0.001)
}

func TestOrderService_Create_RejectsBadPayloads(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(req *service.CreateOrderRequest)
		expectedErr error
	}{
		{
			name:        "missing phone",
			mutate:      func(req *service.CreateOrderRequest) { req.CustomerPhone = "" },
			expectedErr: service.ErrMissingCustomer,
		},
		{
			name:        "no items",
			mutate:      func(req *service.CreateOrderRequest) { req.Items = nil },
			expectedErr: service.ErrEmptyOrder,
		},
		{
			name:        "zero quantity",
			mutate:      func(req *service.CreateOrderRequest) { req.Items[0].Quantity = 0 },
			expectedErr: service.ErrInvalidItem,
		},
		{
			name:        "negative price",
			mutate:      func(req *service.CreateOrderRequest) { req.Items[0].Price = -1 },
			expectedErr: service.ErrInvalidItem,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			svc := service.NewOrderService(mocks.NewOrderRepository(t), nil, nil, nil)

			req := checkoutRequest()
			testCase.mutate(req)

			_, _, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, testCase.expectedErr)
		})
	}
}

func TestOrderService_Create_SurfacesCouponExhaustion(t *testing.T) {
	repo := mocks.NewOrderRepository(t)
	repo.On("UpsertCustomerByPhone", mock.AnythingOfType("*domain.Customer")).Return(nil).Once()
	repo.On("CreateOrder", mock.AnythingOfType("*domain.Order")).Return(domain.ErrCouponExhausted).Once()

	validator := mocks.NewCouponValidator(t)
	validator.On("Validate", "LAST1", mock.AnythingOfType("float64")).Return(&domain.CouponResult{
		Code: "LAST1", DiscountAmount: 3,
	}, nil).Once()

	svc := service.NewOrderService(repo, validator, nil, nil)

	req := checkoutRequest()
	req.DiscountCode = "LAST1"

	_, _, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrCouponExhausted)
}

func TestOrderService_Create_RetriesOnOrderNumberCollision(t *testing.T) {
	repo := mocks.NewOrderRepository(t)
	repo.On("UpsertCustomerByPhone", mock.AnythingOfType("*domain.Customer")).Return(nil).Once()
	repo.On("CreateOrder", mock.AnythingOfType("*domain.Order")).Return(domain.ErrOrderNumberTaken).Once()
	repo.On("CreateOrder", mock.AnythingOfType("*domain.Order")).Return(nil).Once()

	svc := service.NewOrderService(repo, nil, nil, nil)

	order, _, err := svc.Create(context.Background(), checkoutRequest())
	assert.NoError(t, err)
	assert.NotEmpty(t, order.OrderNumber)
	repo.AssertNumberOfCalls(t, "CreateOrder", 2)
}

func TestOrderService_Create_StoresQRAndPublishesEvent(t *testing.T) {
	repo := mocks.NewOrderRepository(t)
	repo.On("UpsertCustomerByPhone", mock.AnythingOfType("*domain.Customer")).Return(nil).Once()
	repo.On("CreateOrder", mock.AnythingOfType("*domain.Order")).Return(nil).Once()
	repo.On("SaveOrderQRCode", mock.AnythingOfType("string"), []byte("png-bytes")).Return(nil).Once()

	qr := mocks.NewQRGenerator(t)
	qr.On("Generate", mock.AnythingOfType("string")).Return([]byte("png-bytes"), nil).Once()

	publisher := mocks.NewEventPublisher(t)
	publisher.On("PublishEvent", mock.Anything, mock.MatchedBy(func(event domain.Event) bool {
		return event.Type == domain.EventOrderCreated && event.Status == domain.PaymentPending
	})).Return(nil).Once()

	svc := service.NewOrderService(repo, nil, publisher, qr)

	_, _, err := svc.Create(context.Background(), checkoutRequest())
	assert.NoError(t, err)
}

func TestOrderService_PaymentTransitions(t *testing.T) {
	tests := []struct {
		name        string
		current     string
		target      string
		rowsUpdated int64
		expectedErr error
	}{
		{name: "pending to paid", current: domain.PaymentPending, target: domain.PaymentPaid, rowsUpdated: 1},
		{name: "pending to failed", current: domain.PaymentPending, target: domain.PaymentFailed, rowsUpdated: 1},
		{name: "paid again", current: domain.PaymentPaid, target: domain.PaymentPaid, expectedErr: service.ErrInvalidTransition},
		{name: "failed back to paid", current: domain.PaymentFailed, target: domain.PaymentPaid, expectedErr: service.ErrInvalidTransition},
		{name: "lost the race", current: domain.PaymentPending, target: domain.PaymentPaid, rowsUpdated: 0, expectedErr: service.ErrInvalidTransition},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo := mocks.NewOrderRepository(t)
			repo.On("GetOrderByNumber", "ORD-000001-abc123").Return(&domain.Order{
				OrderNumber:   "ORD-000001-abc123",
				PaymentStatus: testCase.current,
				Total:         50,
			}, nil).Once()
			if testCase.current == domain.PaymentPending {
				repo.On("UpdatePaymentStatus", "ORD-000001-abc123", domain.PaymentPending, testCase.target, "ref-1").
					Return(testCase.rowsUpdated, nil).Once()
			}

			svc := service.NewOrderService(repo, nil, nil, nil)

			err := svc.UpdatePayment(context.Background(), "ORD-000001-abc123", testCase.target, "ref-1")
			if testCase.expectedErr != nil {
				assert.ErrorIs(t, err, testCase.expectedErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestOrderService_UpdatePayment_RejectsUnknownStatus(t *testing.T) {
	svc := service.NewOrderService(mocks.NewOrderRepository(t), nil, nil, nil)

	err := svc.UpdatePayment(context.Background(), "ORD-000001-abc123", "shipped", "")
	assert.ErrorIs(t, err, service.ErrUnknownPaymentInfo)
}

func TestOrderService_Refund(t *testing.T) {
	repo := mocks.NewOrderRepository(t)
	repo.On("GetOrderByNumber", "ORD-000002-xyz789").Return(&domain.Order{
		OrderNumber:   "ORD-000002-xyz789",
		PaymentStatus: domain.PaymentPaid,
		Total:         80,
	}, nil).Once()
	repo.On("UpdatePaymentStatus", "ORD-000002-xyz789", domain.PaymentPaid, domain.PaymentRefunded, "").
		Return(int64(1), nil).Once()

	publisher := mocks.NewEventPublisher(t)
	publisher.On("PublishEvent", mock.Anything, mock.MatchedBy(func(event domain.Event) bool {
		return event.Type == domain.EventPaymentUpdated &&
			event.Status == domain.PaymentRefunded &&
			event.Total == 80
	})).Return(nil).Once()

	svc := service.NewOrderService(repo, nil, publisher, nil)

	assert.NoError(t, svc.Refund(context.Background(), "ORD-000002-xyz789"))
}

func TestOrderService_QRCode_RegeneratesWhenMissing(t *testing.T) {
	repo := mocks.NewOrderRepository(t)
	repo.On("GetOrderQRCode", "ORD-000003-aaa111").Return([]byte{}, nil).Once()
	repo.On("SaveOrderQRCode", "ORD-000003-aaa111", []byte("fresh")).Return(nil).Once()

	qr := mocks.NewQRGenerator(t)
	qr.On("Generate", "ORD-000003-aaa111").Return([]byte("fresh"), nil).Once()

	svc := service.NewOrderService(repo, nil, nil, qr)

	got, err := svc.QRCode("ORD-000003-aaa111")
	assert.NoError(t, err)
	assert.Equal(t, []byte("fresh"), got)
}

func TestGenerateOrderNumber_Format(t *testing.T) {
	pattern := regexp.MustCompile(`^ORD-\d{6}-[0-9a-z]{6}$`)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		n := service.GenerateOrderNumber()
		assert.Regexp(t, pattern, n)
		seen[n] = true
	}
	assert.Greater(t, len(seen), 1)
}
