package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TopProduct is a best-selling product by quantity across non-cancelled orders
type TopProduct struct {
	ProductID uuid.UUID       `json:"product_id" db:"product_id"`
	Name      string          `json:"name" db:"name"`
	Quantity  int             `json:"quantity" db:"quantity"`
	Revenue   decimal.Decimal `json:"revenue" db:"revenue"`
}

// RecentOrder is a compact view of a recently placed order
type RecentOrder struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	OrderNumber   string          `json:"order_number" db:"order_number"`
	Total         decimal.Decimal `json:"total" db:"total"`
	Status        OrderStatus     `json:"status" db:"status"`
	PaymentStatus PaymentStatus   `json:"payment_status" db:"payment_status"`
	CustomerName  string          `json:"customer_name" db:"customer_name"`
}

// DashboardStats is the admin dashboard summary
type DashboardStats struct {
	TotalOrders     int                 `json:"total_orders"`
	TotalProducts   int                 `json:"total_products"`
	LowStockCount   int                 `json:"low_stock_count"`
	TotalRevenue    decimal.Decimal     `json:"total_revenue"`
	MonthRevenue    decimal.Decimal     `json:"month_revenue"`
	WeekRevenue     decimal.Decimal     `json:"week_revenue"`
	StatusBreakdown map[OrderStatus]int `json:"status_breakdown"`
	TopProducts     []TopProduct        `json:"top_products"`
	RecentOrders    []RecentOrder       `json:"recent_orders"`
}
