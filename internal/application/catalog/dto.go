package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/catalog"
)

// Sort options accepted by ListProducts
const (
	SortNameAsc   = "name"
	SortPriceAsc  = "priceAsc"
	SortPriceDesc = "priceDesc"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Description string          `json:"description" binding:"max=2000"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Quantity    int             `json:"quantity" binding:"min=0"`
	Picture     string          `json:"picture" binding:"max=500"`
	Category    string          `json:"category" binding:"max=100"`
	Brand       string          `json:"brand" binding:"max=100"`
	SellerID    string          `json:"seller_id" binding:"max=64"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Description string          `json:"description" binding:"max=2000"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Picture     string          `json:"picture" binding:"max=500"`
	Category    string          `json:"category" binding:"max=100"`
	Brand       string          `json:"brand" binding:"max=100"`
	Quantity    *int            `json:"quantity" binding:"omitempty,min=0"`
}

// ProductListFilter represents query options for the product list
type ProductListFilter struct {
	Sort     string `form:"sort" binding:"omitempty,oneof=name priceAsc priceDesc"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Picture     string          `json:"picture"`
	Category    string          `json:"category"`
	Brand       string          `json:"brand"`
	SellerID    string          `json:"seller_id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Picture:     p.Picture,
		Category:    p.Category,
		Brand:       p.Brand,
		SellerID:    p.SellerID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of domain Products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}
