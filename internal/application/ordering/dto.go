package ordering

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/ordering"
)

// CreateOrderRequest represents a checkout request
type CreateOrderRequest struct {
	BuyerEmail       string         `json:"buyer_email" binding:"required,email"`
	BasketID         string         `json:"basket_id" binding:"required"`
	DeliveryMethodID int64          `json:"delivery_method_id" binding:"required,gt=0"`
	ShipToAddress    AddressRequest `json:"ship_to_address" binding:"required"`
}

// AddressRequest represents a shipping address in requests
type AddressRequest struct {
	Street string `json:"street" binding:"required,max=500"`
	City   string `json:"city" binding:"required,max=100"`
	State  string `json:"state" binding:"required,max=100"`
}

// CreateDeliveryMethodRequest represents a request to register a
// delivery method
type CreateDeliveryMethodRequest struct {
	ShortName    string          `json:"short_name" binding:"required,max=100"`
	DeliveryTime string          `json:"delivery_time" binding:"required,max=100"`
	Description  string          `json:"description" binding:"max=500"`
	Price        decimal.Decimal `json:"price"`
}

// AddressResponse represents a shipping address in API responses
type AddressResponse struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
}

// OrderItemResponse represents one order line in API responses
type OrderItemResponse struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Picture     string          `json:"picture"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// DeliveryMethodResponse represents a delivery method in API responses
type DeliveryMethodResponse struct {
	ID           int64           `json:"id"`
	ShortName    string          `json:"short_name"`
	DeliveryTime string          `json:"delivery_time"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID             int64                   `json:"id"`
	OrderNumber    string                  `json:"order_number"`
	BuyerEmail     string                  `json:"buyer_email"`
	ShipToAddress  AddressResponse         `json:"ship_to_address"`
	DeliveryMethod *DeliveryMethodResponse `json:"delivery_method,omitempty"`
	Items          []OrderItemResponse     `json:"items"`
	Subtotal       decimal.Decimal         `json:"subtotal"`
	Total          decimal.Decimal         `json:"total"`
	Status         string                  `json:"status"`
	OrderDate      time.Time               `json:"order_date"`
}

// ToDeliveryMethodResponse converts a domain DeliveryMethod
func ToDeliveryMethodResponse(dm *ordering.DeliveryMethod) DeliveryMethodResponse {
	return DeliveryMethodResponse{
		ID:           dm.ID,
		ShortName:    dm.ShortName,
		DeliveryTime: dm.DeliveryTime,
		Description:  dm.Description,
		Price:        dm.Price,
	}
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *ordering.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Picture:     item.Picture,
			Price:       item.Price,
			Quantity:    item.Quantity,
			LineTotal:   item.LineTotal(),
		}
	}

	response := OrderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		BuyerEmail:  o.BuyerEmail,
		ShipToAddress: AddressResponse{
			Street: o.ShipToAddress.Street,
			City:   o.ShipToAddress.City,
			State:  o.ShipToAddress.State,
		},
		Items:     items,
		Subtotal:  o.Subtotal,
		Total:     o.Total(),
		Status:    string(o.Status),
		OrderDate: o.OrderDate,
	}

	if o.DeliveryMethod.ID != 0 {
		dm := ToDeliveryMethodResponse(&o.DeliveryMethod)
		response.DeliveryMethod = &dm
	}

	return response
}

// ToOrderResponses converts a slice of domain Orders
func ToOrderResponses(orders []ordering.Order) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}
	return responses
}
