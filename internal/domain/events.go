package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Subjects events are published on
const (
	SubjectOrderEvents     = "orders.events"
	SubjectInventoryAlerts = "inventory.alerts"
)

// Event types
const (
	EventOrderCreated        = "order.created"
	EventOrderStatusChanged  = "order.status_changed"
	EventOrderPaymentUpdated = "order.payment_updated"
	EventLowStock            = "inventory.low_stock"
	EventOutOfStock          = "inventory.out_of_stock"
)

// EventItem is the stock-relevant part of an order line
type EventItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// OrderEvent is published after an order change has been committed
type OrderEvent struct {
	Type           string          `json:"type"`
	OrderID        uuid.UUID       `json:"order_id"`
	OrderNumber    string          `json:"order_number"`
	Status         OrderStatus     `json:"status"`
	PreviousStatus OrderStatus     `json:"previous_status,omitempty"`
	PaymentStatus  PaymentStatus   `json:"payment_status"`
	Total          decimal.Decimal `json:"total"`
	Items          []EventItem     `json:"items"`
	Timestamp      time.Time       `json:"timestamp"`
}

// NewOrderEvent snapshots an order into an event of the given type
func NewOrderEvent(eventType string, order *Order, previous OrderStatus, now time.Time) OrderEvent {
	items := make([]EventItem, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, EventItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return OrderEvent{
		Type:           eventType,
		OrderID:        order.ID,
		OrderNumber:    order.OrderNumber,
		Status:         order.Status,
		PreviousStatus: previous,
		PaymentStatus:  order.PaymentStatus,
		Total:          order.Total,
		Items:          items,
		Timestamp:      now,
	}
}

// StockAlert reports a product that dropped to or below its low-stock threshold
type StockAlert struct {
	Type          string    `json:"type"`
	ProductID     uuid.UUID `json:"product_id"`
	ProductCode   string    `json:"product_code"`
	Name          string    `json:"name"`
	StockQuantity int       `json:"stock_quantity"`
	Threshold     int       `json:"low_stock_threshold"`
	Timestamp     time.Time `json:"timestamp"`
}
