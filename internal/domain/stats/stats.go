// Package stats assembles the admin dashboard snapshot. Everything is
// recomputed from the store on each request; nothing is cached or
// incrementally maintained.
package stats

import (
	"context"
	"time"

	"github.com/elyvra/commerce-api/internal/domain/order"
	"github.com/elyvra/commerce-api/internal/domain/product"
)

// Dashboard windows and limits.
const (
	LowStockThreshold = 10
	AbandonedAfter    = 7 * 24 * time.Hour
	SalesWindow       = 30 * 24 * time.Hour
	TopSellersLimit   = 5
	RecentOrders      = 5
	RecentProducts    = 3
	ActivityLimit     = 10
)

// DailySales is one day's aggregated order volume, keyed by UTC date.
type DailySales struct {
	Date   string  `json:"date"`
	Sales  float64 `json:"sales"`
	Orders int     `json:"orders"`
}

// ProductSales is a top-seller entry aggregated over all orders.
type ProductSales struct {
	ProductID    string  `json:"product_id"`
	Name         string  `json:"name"`
	QuantitySold int     `json:"quantity_sold"`
	Revenue      float64 `json:"revenue"`
}

// LowStockAlert is a product running low on stock, projected to the fields
// the dashboard displays. Name is the English translation.
type LowStockAlert struct {
	ProductID    string `json:"product_id"`
	Name         string `json:"name"`
	CurrentStock int    `json:"current_stock"`
	SKU          string `json:"sku"`
}

// Activity is one entry in the recent-activity feed.
type Activity struct {
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	ID        string    `json:"id"`
}

// Stats is the full dashboard snapshot.
type Stats struct {
	TotalProducts      int             `json:"total_products"`
	TotalCarts         int             `json:"total_carts"`
	ActiveCarts        int             `json:"active_carts"`
	TotalOrders        int             `json:"total_orders"`
	TotalCustomers     int             `json:"total_customers"`
	TotalRevenue       float64         `json:"total_revenue"`
	ProductsByCategory map[string]int  `json:"products_by_category"`
	OrdersByStatus     map[string]int  `json:"orders_by_status"`
	RecentActivity     []Activity      `json:"recent_activity"`
	SalesChartData     []DailySales    `json:"sales_chart_data"`
	TopSellingProducts []ProductSales  `json:"top_selling_products"`
	LowStockAlerts     []LowStockAlert `json:"low_stock_alerts"`
	AbandonedCarts     int             `json:"abandoned_carts"`
}

// OrderSource provides the order-side aggregates.
type OrderSource interface {
	Count(ctx context.Context) (int, error)
	TotalRevenue(ctx context.Context) (float64, error)
	CountByStatus(ctx context.Context) (map[string]int, error)
	// DailySales groups orders created at or after since by UTC day,
	// ascending by date. Days without orders are absent.
	DailySales(ctx context.Context, since time.Time) ([]DailySales, error)
	// TopSellers ranks products by total quantity sold, quantity descending
	// with product id ascending as the tie-break.
	TopSellers(ctx context.Context, limit int) ([]ProductSales, error)
	Recent(ctx context.Context, limit int) ([]order.Order, error)
}

// ProductSource provides the catalog-side aggregates.
type ProductSource interface {
	Count(ctx context.Context) (int, error)
	CountByCategory(ctx context.Context) (map[string]int, error)
	LowStock(ctx context.Context, threshold int) ([]LowStockAlert, error)
	Recent(ctx context.Context, limit int) ([]product.Product, error)
}

// CartSource provides the cart-side counts.
type CartSource interface {
	Count(ctx context.Context) (int, error)
	// ActiveCount counts carts with at least one item.
	ActiveCount(ctx context.Context) (int, error)
	// AbandonedCount counts non-empty carts last updated before cutoff.
	AbandonedCount(ctx context.Context, cutoff time.Time) (int, error)
}

// CustomerSource provides the customer-side counts.
type CustomerSource interface {
	Count(ctx context.Context) (int, error)
}
