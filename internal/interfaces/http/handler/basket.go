package handler

import (
	"github.com/gin-gonic/gin"

	basketapp "github.com/storefront/backend/internal/application/basket"
)

// BasketHandler handles basket API endpoints. Baskets are keyed by an
// opaque id chosen by the storefront client, typically the customer id.
type BasketHandler struct {
	BaseHandler
	baskets *basketapp.BasketService
}

// NewBasketHandler creates a new BasketHandler
func NewBasketHandler(baskets *basketapp.BasketService) *BasketHandler {
	return &BasketHandler{baskets: baskets}
}

// RegisterRoutes registers basket routes on the given group
func (h *BasketHandler) RegisterRoutes(rg *gin.RouterGroup) {
	baskets := rg.Group("/baskets")
	baskets.GET("/:id", h.Get)
	baskets.POST("/:id/items", h.AddItem)
	baskets.DELETE("/:id/items/:productId", h.RemoveItem)
	baskets.DELETE("/:id", h.Delete)
}

// Get returns the current state of a basket
func (h *BasketHandler) Get(c *gin.Context) {
	b, err := h.baskets.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, b)
}

// AddItem adds one unit of a product to a basket, creating the basket
// when it does not exist yet
func (h *BasketHandler) AddItem(c *gin.Context) {
	var req basketapp.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	b, err := h.baskets.AddItem(c.Request.Context(), c.Param("id"), req.ProductID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, b)
}

// RemoveItem removes one unit of a product from a basket
func (h *BasketHandler) RemoveItem(c *gin.Context) {
	productID, err := parseID(c, "productId")
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	b, err := h.baskets.RemoveItem(c.Request.Context(), c.Param("id"), productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, b)
}

// Delete discards a basket entirely. Deleting an absent basket is not an
// error, the outcome is the same.
func (h *BasketHandler) Delete(c *gin.Context) {
	if _, err := h.baskets.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
