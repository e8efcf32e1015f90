package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the fulfilment state of an order
type OrderStatus string

// Order statuses
const (
	StatusPending    OrderStatus = "pending"
	StatusConfirmed  OrderStatus = "confirmed"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
	StatusRefunded   OrderStatus = "refunded"
)

// Valid reports whether s is a known order status
func (s OrderStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// PaymentStatus is tracked independently from OrderStatus
type PaymentStatus string

// Payment statuses
const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// ParsePaymentStatus accepts the canonical values plus "completed" as an alias of paid
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch s {
	case "pending":
		return PaymentPending, true
	case "paid", "completed":
		return PaymentPaid, true
	case "failed":
		return PaymentFailed, true
	case "refunded":
		return PaymentRefunded, true
	}
	return "", false
}

// PaymentMethod is how the customer intends to pay
type PaymentMethod string

// Payment methods
const (
	MethodCreditCard     PaymentMethod = "credit_card"
	MethodDebitCard      PaymentMethod = "debit_card"
	MethodPayPal         PaymentMethod = "paypal"
	MethodBankTransfer   PaymentMethod = "bank_transfer"
	MethodCashOnDelivery PaymentMethod = "cash_on_delivery"
	MethodPayShap        PaymentMethod = "payshap"
)

// DefaultCountry is used when an address omits its country
const DefaultCountry = "South Africa"

// Address is a shipping or billing address embedded in an order
type Address struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,max=30"`
	Street    string `json:"street" validate:"required,max=200"`
	City      string `json:"city" validate:"required,max=100"`
	State     string `json:"state" validate:"required,max=100"`
	ZipCode   string `json:"zip_code" validate:"required,max=20"`
	Country   string `json:"country" validate:"max=100"`
}

// OrderItem is a snapshot of a product line as it was at order time
type OrderItem struct {
	ProductID   uuid.UUID       `json:"product_id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image,omitempty"`
	ProductCode string          `json:"product_code,omitempty"`
	SKU         string          `json:"sku,omitempty"`
	Quantity    int             `json:"quantity"`
	Total       decimal.Decimal `json:"total"`
}

// OrderItems is stored as an embedded JSON array
type OrderItems []OrderItem

// StatusHistoryEntry is immutable once appended
type StatusHistoryEntry struct {
	Status    OrderStatus `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	Note      string      `json:"note,omitempty"`
	ActorID   *uuid.UUID  `json:"actor_id,omitempty"`
}

// StatusHistory is stored as an embedded, append-only JSON array
type StatusHistory []StatusHistoryEntry

// Order represents a placed order
type Order struct {
	ID               uuid.UUID       `json:"id" db:"id"`
	OrderNumber      string          `json:"order_number" db:"order_number"`
	UserID           *uuid.UUID      `json:"user_id,omitempty" db:"user_id"`
	Items            OrderItems      `json:"items" db:"items"`
	Subtotal         decimal.Decimal `json:"subtotal" db:"subtotal"`
	Tax              decimal.Decimal `json:"tax" db:"tax"`
	Shipping         decimal.Decimal `json:"shipping" db:"shipping"`
	Discount         decimal.Decimal `json:"discount" db:"discount"`
	Total            decimal.Decimal `json:"total" db:"total"`
	Status           OrderStatus     `json:"status" db:"status"`
	PaymentStatus    PaymentStatus   `json:"payment_status" db:"payment_status"`
	PaymentMethod    PaymentMethod   `json:"payment_method" db:"payment_method"`
	PaymentIntentID  *string         `json:"payment_intent_id,omitempty" db:"payment_intent_id"`
	PaymentReference *string         `json:"payment_reference,omitempty" db:"payment_reference"`
	PaidAt           *time.Time      `json:"paid_at,omitempty" db:"paid_at"`
	ShippingAddress  Address         `json:"shipping_address" db:"shipping_address"`
	BillingAddress   Address         `json:"billing_address" db:"billing_address"`
	TrackingNumber   string          `json:"tracking_number,omitempty" db:"tracking_number"`
	Carrier          string          `json:"carrier,omitempty" db:"carrier"`
	CustomerNotes    string          `json:"customer_notes,omitempty" db:"customer_notes"`
	AdminNotes       string          `json:"admin_notes,omitempty" db:"admin_notes"`
	OrderDate        time.Time       `json:"order_date" db:"order_date"`
	ConfirmedAt      *time.Time      `json:"confirmed_at,omitempty" db:"confirmed_at"`
	ShippedAt        *time.Time      `json:"shipped_at,omitempty" db:"shipped_at"`
	DeliveredAt      *time.Time      `json:"delivered_at,omitempty" db:"delivered_at"`
	CancelledAt      *time.Time      `json:"cancelled_at,omitempty" db:"cancelled_at"`
	StatusHistory    StatusHistory   `json:"status_history" db:"status_history"`
	Version          int             `json:"version" db:"version"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at" db:"updated_at"`
}

// OrderFilter narrows order listings
type OrderFilter struct {
	UserID        *uuid.UUID
	Status        OrderStatus
	PaymentStatus PaymentStatus
}

// StockTx is the stock side of an order transaction
type StockTx interface {
	// GetProducts loads the given products; missing ids are simply absent from the result
	GetProducts(ctx context.Context, ids []uuid.UUID) ([]*Product, error)

	// DecrementStock subtracts quantity only if enough stock remains; false means it did not
	DecrementStock(ctx context.Context, productID uuid.UUID, quantity int) (bool, error)

	// RestoreStock adds quantity back to a product
	RestoreStock(ctx context.Context, productID uuid.UUID, quantity int) error
}

// OrderTx is the set of operations available inside one order transaction
type OrderTx interface {
	StockTx

	// NextOrderSequence atomically advances the daily counter for dayPrefix
	NextOrderSequence(ctx context.Context, dayPrefix string) (int, error)

	// InsertOrder persists a new order
	InsertOrder(ctx context.Context, order *Order) error

	// GetOrderForUpdate loads and locks an order by ID
	GetOrderForUpdate(ctx context.Context, id uuid.UUID) (*Order, error)

	// GetOrderByNumberForUpdate loads and locks an order by its order number
	GetOrderByNumberForUpdate(ctx context.Context, number string) (*Order, error)

	// GetOrderByPaymentIntentForUpdate loads and locks an order by payment intent
	GetOrderByPaymentIntentForUpdate(ctx context.Context, intentID string) (*Order, error)

	// UpdateOrder writes mutable order fields and appends the given history entries
	UpdateOrder(ctx context.Context, order *Order, appended ...StatusHistoryEntry) error
}

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	// WithinTx runs fn in a transaction, retrying it on transient conflicts
	WithinTx(ctx context.Context, fn func(tx OrderTx) error) error

	// GetByID retrieves an order by ID
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// GetByNumber retrieves an order by its order number
	GetByNumber(ctx context.Context, number string) (*Order, error)

	// List retrieves a paginated, newest-first list of orders
	List(ctx context.Context, filter OrderFilter, limit, offset int) ([]*Order, error)

	// Count returns the number of orders matching the filter
	Count(ctx context.Context, filter OrderFilter) (int, error)

	// DashboardStats aggregates order and product figures for the admin dashboard
	DashboardStats(ctx context.Context, monthStart, weekStart time.Time) (*DashboardStats, error)
}
