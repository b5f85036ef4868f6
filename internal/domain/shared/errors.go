package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound          = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput      = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidID         = NewDomainError("INVALID_ID", "Identifier must be a positive integer")
	ErrProductNotFound   = NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
	ErrBasketNotFound    = NewDomainError("BASKET_NOT_FOUND", "Basket not found")
	ErrItemNotFound      = NewDomainError("ITEM_NOT_FOUND", "Item not found in the basket")
	ErrOrderNotFound     = NewDomainError("ORDER_NOT_FOUND", "Order not found")
	ErrDeliveryNotFound  = NewDomainError("DELIVERY_METHOD_NOT_FOUND", "Delivery method not found")
	ErrOutOfStock        = NewDomainError("OUT_OF_STOCK", "Product is out of stock")
	ErrEmptyBasket       = NewDomainError("EMPTY_BASKET", "Basket has no items")
	ErrInvalidAddress    = NewDomainError("INVALID_ADDRESS", "Shipping address is missing or incomplete")
	ErrPersistenceFailed = NewDomainError("PERSISTENCE_FAILED", "No changes were persisted")
	ErrInvalidState      = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)
