package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Pesokrava/autospares/internal/domain"
)

// DashboardStats aggregates order, revenue and product figures. Revenue only
// counts paid orders; top products ignore cancelled orders.
func (r *OrderRepository) DashboardStats(ctx context.Context, monthStart, weekStart time.Time) (*domain.DashboardStats, error) {
	stats := &domain.DashboardStats{
		StatusBreakdown: map[domain.OrderStatus]int{},
	}

	var totals struct {
		TotalOrders  int             `db:"total_orders"`
		TotalRevenue decimal.Decimal `db:"total_revenue"`
		MonthRevenue decimal.Decimal `db:"month_revenue"`
		WeekRevenue  decimal.Decimal `db:"week_revenue"`
	}
	err := r.db.GetContext(ctx, &totals, `
		SELECT
			COUNT(*) AS total_orders,
			COALESCE(SUM(total) FILTER (WHERE payment_status = 'paid'), 0) AS total_revenue,
			COALESCE(SUM(total) FILTER (WHERE payment_status = 'paid' AND created_at >= $1), 0) AS month_revenue,
			COALESCE(SUM(total) FILTER (WHERE payment_status = 'paid' AND created_at >= $2), 0) AS week_revenue
		FROM orders
	`, monthStart, weekStart)
	if err != nil {
		return nil, fmt.Errorf("order totals: %w", err)
	}
	stats.TotalOrders = totals.TotalOrders
	stats.TotalRevenue = totals.TotalRevenue
	stats.MonthRevenue = totals.MonthRevenue
	stats.WeekRevenue = totals.WeekRevenue

	var products struct {
		Active   int `db:"active"`
		LowStock int `db:"low_stock"`
	}
	err = r.db.GetContext(ctx, &products, `
		SELECT
			COUNT(*) FILTER (WHERE is_active) AS active,
			COUNT(*) FILTER (WHERE is_active AND stock_quantity <= low_stock_threshold) AS low_stock
		FROM products
	`)
	if err != nil {
		return nil, fmt.Errorf("product counts: %w", err)
	}
	stats.TotalProducts = products.Active
	stats.LowStockCount = products.LowStock

	var breakdown []struct {
		Status domain.OrderStatus `db:"status"`
		Count  int                `db:"count"`
	}
	if err := r.db.SelectContext(ctx, &breakdown, `SELECT status, COUNT(*) AS count FROM orders GROUP BY status`); err != nil {
		return nil, fmt.Errorf("status breakdown: %w", err)
	}
	for _, b := range breakdown {
		stats.StatusBreakdown[b.Status] = b.Count
	}

	stats.TopProducts = []domain.TopProduct{}
	err = r.db.SelectContext(ctx, &stats.TopProducts, `
		SELECT
			(item->>'product_id')::uuid AS product_id,
			MAX(item->>'name') AS name,
			SUM((item->>'quantity')::int) AS quantity,
			SUM((item->>'total')::numeric) AS revenue
		FROM orders, jsonb_array_elements(items) AS item
		WHERE status <> 'cancelled'
		GROUP BY 1
		ORDER BY quantity DESC, revenue DESC
		LIMIT 5
	`)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}

	stats.RecentOrders = []domain.RecentOrder{}
	err = r.db.SelectContext(ctx, &stats.RecentOrders, `
		SELECT id, order_number, total, status, payment_status,
			TRIM(CONCAT(shipping_address->>'first_name', ' ', shipping_address->>'last_name')) AS customer_name
		FROM orders
		ORDER BY created_at DESC
		LIMIT 5
	`)
	if err != nil {
		return nil, fmt.Errorf("recent orders: %w", err)
	}

	return stats, nil
}
