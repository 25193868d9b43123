// Package handler exposes the storefront and admin HTTP API under /api.
// Routing uses net/http method patterns; business logic lives in the domain
// services.
package handler

import (
	"net/http"

	"github.com/elyvra/commerce-api/internal/domain/admin"
	"github.com/elyvra/commerce-api/internal/domain/cart"
	"github.com/elyvra/commerce-api/internal/domain/content"
	"github.com/elyvra/commerce-api/internal/domain/coupon"
	"github.com/elyvra/commerce-api/internal/domain/customer"
	"github.com/elyvra/commerce-api/internal/domain/order"
	"github.com/elyvra/commerce-api/internal/domain/product"
	"github.com/elyvra/commerce-api/internal/domain/stats"
)

// Handler wires the domain services into HTTP endpoints.
type Handler struct {
	products  *product.Service
	carts     *cart.Service
	orders    *order.Service
	coupons   *coupon.Service
	customers customer.Repository
	admins    *admin.Service
	contents  *content.Service
	stats     *stats.Service
}

// NewHandler constructs a Handler with the required domain dependencies.
func NewHandler(
	products *product.Service,
	carts *cart.Service,
	orders *order.Service,
	coupons *coupon.Service,
	customers customer.Repository,
	admins *admin.Service,
	contents *content.Service,
	statsSvc *stats.Service,
) *Handler {
	return &Handler{
		products:  products,
		carts:     carts,
		orders:    orders,
		coupons:   coupons,
		customers: customers,
		admins:    admins,
		contents:  contents,
		stats:     statsSvc,
	}
}

// Routes registers all API endpoints on mux.
func (h *Handler) Routes(mux *http.ServeMux) {
	// Storefront.
	mux.HandleFunc("GET /api/products", h.listProducts)
	mux.HandleFunc("GET /api/products/{id}", h.getProduct)
	mux.HandleFunc("GET /api/products/category/{category}", h.listProductsByCategory)
	mux.HandleFunc("POST /api/products", h.createProduct)

	mux.HandleFunc("POST /api/cart", h.createCart)
	mux.HandleFunc("GET /api/cart/{id}", h.getCart)
	mux.HandleFunc("POST /api/cart/{id}/items", h.addCartItem)

	mux.HandleFunc("POST /api/orders", h.createOrder)
	mux.HandleFunc("GET /api/orders", h.listOrders)
	mux.HandleFunc("GET /api/orders/{id}", h.getOrder)
	mux.HandleFunc("PUT /api/orders/{id}", h.updateOrder)

	mux.HandleFunc("GET /api/customers", h.listCustomers)
	mux.HandleFunc("GET /api/customers/{id}", h.getCustomer)

	mux.HandleFunc("POST /api/coupons", h.createCoupon)
	mux.HandleFunc("GET /api/coupons", h.listCoupons)

	mux.HandleFunc("GET /api/blog", h.listPublicBlog)

	// Admin.
	mux.HandleFunc("POST /api/admin/login", h.adminLogin)
	mux.HandleFunc("POST /api/admin/create", h.adminCreate)
	mux.HandleFunc("POST /api/admin/init-default-admin", h.adminInitDefault)
	mux.HandleFunc("GET /api/admin/stats", h.adminStats)

	mux.HandleFunc("PUT /api/admin/products/{id}", h.updateProduct)
	mux.HandleFunc("DELETE /api/admin/products/{id}", h.deleteProduct)

	mux.HandleFunc("GET /api/admin/carts", h.adminListCarts)
	mux.HandleFunc("DELETE /api/admin/carts/{id}", h.adminDeleteCart)

	mux.HandleFunc("POST /api/admin/blog", h.createBlogPost)
	mux.HandleFunc("GET /api/admin/blog", h.listBlogPosts)
	mux.HandleFunc("GET /api/admin/blog/{id}", h.getBlogPost)
	mux.HandleFunc("PUT /api/admin/blog/{id}", h.updateBlogPost)
	mux.HandleFunc("DELETE /api/admin/blog/{id}", h.deleteBlogPost)

	mux.HandleFunc("POST /api/admin/pages", h.createPage)
	mux.HandleFunc("GET /api/admin/pages", h.listPages)
	mux.HandleFunc("GET /api/admin/pages/{id}", h.getPage)
	mux.HandleFunc("PUT /api/admin/pages/{id}", h.updatePage)
}
