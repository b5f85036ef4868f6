package basket

import (
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/basket"
)

// AddItemRequest represents a request to add a product to a basket
type AddItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required,gt=0"`
}

// BasketItemResponse represents one basket line in API responses
type BasketItemResponse struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Picture     string          `json:"picture"`
	Brand       string          `json:"brand"`
	Category    string          `json:"category"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// BasketResponse represents a basket in API responses
type BasketResponse struct {
	ID         string               `json:"id"`
	Items      []BasketItemResponse `json:"items"`
	TotalPrice decimal.Decimal      `json:"total_price"`
}

// ToBasketResponse converts a domain CustomerBasket to BasketResponse
func ToBasketResponse(b *basket.CustomerBasket) BasketResponse {
	items := make([]BasketItemResponse, len(b.Items))
	for i, item := range b.Items {
		items[i] = BasketItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Price:       item.Price,
			Quantity:    item.Quantity,
			Picture:     item.Picture,
			Brand:       item.Brand,
			Category:    item.Category,
			LineTotal:   item.LineTotal(),
		}
	}
	return BasketResponse{
		ID:         b.ID,
		Items:      items,
		TotalPrice: b.TotalPrice,
	}
}
