package stats

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/go-faster/errors"

	"github.com/elyvra/commerce-api/internal/domain/order"
	"github.com/elyvra/commerce-api/internal/domain/product"
)

// Service collects the dashboard snapshot from the entity sources.
type Service struct {
	orders    OrderSource
	products  ProductSource
	carts     CartSource
	customers CustomerSource
	now       func() time.Time
}

// NewService creates a stats Service.
func NewService(orders OrderSource, products ProductSource, carts CartSource, customers CustomerSource) *Service {
	return &Service{
		orders:    orders,
		products:  products,
		carts:     carts,
		customers: customers,
		now:       time.Now,
	}
}

// Collect recomputes the full dashboard snapshot.
func (s *Service) Collect(ctx context.Context) (*Stats, error) {
	now := s.now().UTC()
	out := &Stats{}

	var err error
	if out.TotalProducts, err = s.products.Count(ctx); err != nil {
		return nil, errors.Wrap(err, "count products")
	}
	if out.TotalCarts, err = s.carts.Count(ctx); err != nil {
		return nil, errors.Wrap(err, "count carts")
	}
	if out.ActiveCarts, err = s.carts.ActiveCount(ctx); err != nil {
		return nil, errors.Wrap(err, "count active carts")
	}
	if out.AbandonedCarts, err = s.carts.AbandonedCount(ctx, now.Add(-AbandonedAfter)); err != nil {
		return nil, errors.Wrap(err, "count abandoned carts")
	}
	if out.TotalOrders, err = s.orders.Count(ctx); err != nil {
		return nil, errors.Wrap(err, "count orders")
	}
	if out.TotalCustomers, err = s.customers.Count(ctx); err != nil {
		return nil, errors.Wrap(err, "count customers")
	}
	if out.TotalRevenue, err = s.orders.TotalRevenue(ctx); err != nil {
		return nil, errors.Wrap(err, "total revenue")
	}
	if out.ProductsByCategory, err = s.products.CountByCategory(ctx); err != nil {
		return nil, errors.Wrap(err, "products by category")
	}
	if out.OrdersByStatus, err = s.orders.CountByStatus(ctx); err != nil {
		return nil, errors.Wrap(err, "orders by status")
	}
	if out.LowStockAlerts, err = s.products.LowStock(ctx, LowStockThreshold); err != nil {
		return nil, errors.Wrap(err, "low stock")
	}
	if out.SalesChartData, err = s.orders.DailySales(ctx, now.Add(-SalesWindow)); err != nil {
		return nil, errors.Wrap(err, "daily sales")
	}
	if out.TopSellingProducts, err = s.orders.TopSellers(ctx, TopSellersLimit); err != nil {
		return nil, errors.Wrap(err, "top sellers")
	}

	recentOrders, err := s.orders.Recent(ctx, RecentOrders)
	if err != nil {
		return nil, errors.Wrap(err, "recent orders")
	}
	recentProducts, err := s.products.Recent(ctx, RecentProducts)
	if err != nil {
		return nil, errors.Wrap(err, "recent products")
	}
	out.RecentActivity = buildActivity(recentOrders, recentProducts)

	return out, nil
}

// buildActivity merges the newest orders and products into a single feed,
// newest first, capped at ActivityLimit entries.
func buildActivity(orders []order.Order, products []product.Product) []Activity {
	feed := make([]Activity, 0, len(orders)+len(products))
	for _, o := range orders {
		feed = append(feed, Activity{
			Type:      "order_created",
			Message:   fmt.Sprintf("New order #%s - $%.2f", shortID(o.ID), o.TotalAmount),
			Timestamp: o.CreatedAt,
			ID:        o.ID,
		})
	}
	for _, p := range products {
		feed = append(feed, Activity{
			Type:      "product_created",
			Message:   fmt.Sprintf("Product '%s' created", p.Name("en")),
			Timestamp: p.CreatedAt,
			ID:        p.ID,
		})
	}
	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Timestamp.After(feed[j].Timestamp)
	})
	if len(feed) > ActivityLimit {
		feed = feed[:ActivityLimit]
	}
	return feed
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
