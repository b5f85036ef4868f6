package handler

import (
	"github.com/gin-gonic/gin"

	orderingapp "github.com/storefront/backend/internal/application/ordering"
)

// OrderHandler handles checkout and order history API endpoints
type OrderHandler struct {
	BaseHandler
	orders *orderingapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders *orderingapp.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// RegisterRoutes registers ordering routes on the given group
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	orders.POST("", h.Create)
	orders.GET("", h.List)
	orders.GET("/:id", h.GetByID)

	methods := rg.Group("/delivery-methods")
	methods.GET("", h.ListDeliveryMethods)
	methods.POST("", h.AddDeliveryMethod)
}

// Create performs checkout: it turns a basket into an immutable order
func (h *OrderHandler) Create(c *gin.Context) {
	var req orderingapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	order, err := h.orders.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, order)
}

// List returns the order history for a buyer, newest first
func (h *OrderHandler) List(c *gin.Context) {
	buyerEmail := c.Query("buyer_email")
	if buyerEmail == "" {
		h.BadRequest(c, "buyer_email query parameter is required")
		return
	}

	orders, err := h.orders.ListForBuyer(c.Request.Context(), buyerEmail)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, orders)
}

// GetByID returns a single order. The lookup is scoped to the buyer so
// one buyer cannot read another buyer's orders by guessing ids.
func (h *OrderHandler) GetByID(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	buyerEmail := c.Query("buyer_email")
	if buyerEmail == "" {
		h.BadRequest(c, "buyer_email query parameter is required")
		return
	}

	order, err := h.orders.GetByID(c.Request.Context(), id, buyerEmail)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// ListDeliveryMethods returns the available delivery methods
func (h *OrderHandler) ListDeliveryMethods(c *gin.Context) {
	methods, err := h.orders.ListDeliveryMethods(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, methods)
}

// AddDeliveryMethod registers a delivery method
func (h *OrderHandler) AddDeliveryMethod(c *gin.Context) {
	var req orderingapp.CreateDeliveryMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	method, err := h.orders.AddDeliveryMethod(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, method)
}
