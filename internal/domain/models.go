package domain

import "time"

// Payment statuses for an order.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

// CanTransition reports whether a payment status change is allowed:
// pending -> paid|failed, paid -> refunded. Everything else is final.
func CanTransition(from, to string) bool {
	switch from {
	case PaymentPending:
		return to == PaymentPaid || to == PaymentFailed
	case PaymentPaid:
		return to == PaymentRefunded
	default:
		return false
	}
}

// Discount coupon types.
const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

// Employee roles.
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

type MenuCategory struct {
	ID           int           `json:"id"`
	Key          string        `json:"key"`
	Title        LocalizedText `json:"title"`
	ListImage    string        `json:"list_image"`
	BannerImage  string        `json:"banner_image"`
	DisplayOrder int           `json:"display_order"`
	IsActive     bool          `json:"is_active"`
	CreatedAt    time.Time     `json:"created_at"`
}

type MenuItem struct {
	ID                int           `json:"id"`
	CategoryID        int           `json:"category_id"`
	Name              LocalizedText `json:"name"`
	Description       LocalizedText `json:"description"`
	ImageURL          string        `json:"image_url"`
	IsAvailable       bool          `json:"is_available"`
	HasSizes          bool          `json:"has_sizes"`
	IsDiscounted      bool          `json:"is_discounted"`
	IsDiscountedSmall bool          `json:"is_discounted_small"`
	IsDiscountedLarge bool          `json:"is_discounted_large"`
	Price             Price         `json:"price"`
	OriginalPrice     NullPrice     `json:"original_price"`
	DisplayOrder      int           `json:"display_order"`
	CreatedAt         time.Time     `json:"created_at"`
}

// MenuItemView is a menu item flattened for one display language.
type MenuItemView struct {
	ID                 int      `json:"id"`
	CategoryID         int      `json:"category_id"`
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	ImageURL           string   `json:"image_url"`
	IsAvailable        bool     `json:"is_available"`
	HasSizes           bool     `json:"has_sizes"`
	Price              *float64 `json:"price,omitempty"`
	OriginalPrice      *float64 `json:"original_price,omitempty"`
	PriceSmall         *float64 `json:"price_small,omitempty"`
	PriceLarge         *float64 `json:"price_large,omitempty"`
	OriginalPriceSmall *float64 `json:"original_price_small,omitempty"`
	OriginalPriceLarge *float64 `json:"original_price_large,omitempty"`
	DisplayOrder       int      `json:"display_order"`
}

type MenuCategoryView struct {
	ID           int            `json:"id"`
	Key          string         `json:"key"`
	Title        string         `json:"title"`
	ListImage    string         `json:"list_image"`
	BannerImage  string         `json:"banner_image"`
	DisplayOrder int            `json:"display_order"`
	Items        []MenuItemView `json:"items"`
}

type Customer struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type OrderItem struct {
	ItemID   int     `json:"item_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Size     string  `json:"size,omitempty"`
}

type Order struct {
	ID               int         `json:"id"`
	OrderNumber      string      `json:"order_number"`
	CustomerName     string      `json:"customer_name"`
	CustomerPhone    string      `json:"customer_phone"`
	CustomerAddress  string      `json:"customer_address"`
	CustomerEmail    string      `json:"customer_email,omitempty"`
	Items            []OrderItem `json:"items"`
	Subtotal         float64     `json:"subtotal"`
	DiscountAmount   float64     `json:"discount_amount"`
	DiscountCode     string      `json:"discount_code,omitempty"`
	Total            float64     `json:"total"`
	PaymentStatus    string      `json:"payment_status"`
	PaymentReference string      `json:"payment_reference,omitempty"`
	Notes            string      `json:"notes,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

type Coupon struct {
	ID                int        `json:"id"`
	Code              string     `json:"code"`
	DiscountType      string     `json:"discount_type"`
	DiscountValue     float64    `json:"discount_value"`
	MinOrderAmount    float64    `json:"min_order_amount"`
	MaxDiscountAmount *float64   `json:"max_discount_amount,omitempty"`
	UsageLimit        *int       `json:"usage_limit,omitempty"`
	UsedCount         int        `json:"used_count"`
	IsActive          bool       `json:"is_active"`
	ValidFrom         *time.Time `json:"valid_from,omitempty"`
	ValidUntil        *time.Time `json:"valid_until,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

// CouponResult is the outcome of a successful validation. Validation never
// consumes a use; used_count moves only when an order is created.
type CouponResult struct {
	Code           string  `json:"code"`
	DiscountType   string  `json:"discount_type"`
	DiscountValue  float64 `json:"discount_value"`
	DiscountAmount float64 `json:"discount_amount"`
	NewTotal       float64 `json:"new_total"`
}

type Survey struct {
	ID                int       `json:"id"`
	Name              string    `json:"name"`
	Phone             string    `json:"phone,omitempty"`
	Email             string    `json:"email,omitempty"`
	FoodRating        int       `json:"food_rating"`
	ServiceRating     int       `json:"service_rating"`
	AtmosphereRating  int       `json:"atmosphere_rating"`
	ValueRating       int       `json:"value_rating"`
	RecommendScore    int       `json:"recommend_score"`
	Liked             string    `json:"liked,omitempty"`
	Improve           string    `json:"improve,omitempty"`
	MarketingOptIn    bool      `json:"marketing_opt_in"`
	NewsletterOptIn   bool      `json:"newsletter_opt_in"`
	SubmittedIP       string    `json:"submitted_ip,omitempty"`
	SubmittedLanguage string    `json:"submitted_language,omitempty"`
	UserAgent         string    `json:"user_agent,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

type Employee struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// Event is the payload published to Kafka after state changes.
type Event struct {
	Type        string    `json:"type"`
	OrderNumber string    `json:"order_number,omitempty"`
	Total       float64   `json:"total,omitempty"`
	Status      string    `json:"status,omitempty"`
	SurveyID    int       `json:"survey_id,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Event types.
const (
	EventOrderCreated    = "order_created"
	EventPaymentUpdated  = "payment_updated"
	EventSurveySubmitted = "survey_submitted"
)
