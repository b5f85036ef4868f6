package ordering

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusShipped, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusShipped || target == OrderStatusCancelled
	case OrderStatusShipped:
		return target == OrderStatusCompleted
	}
	return false
}

// OrderItem is one line of an order. Product id, name and picture are
// snapshots of the product at checkout time; they do not follow later
// catalog changes.
type OrderItem struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	OrderID     int64           `gorm:"not null;index"`
	ProductID   int64           `gorm:"not null"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Picture     string          `gorm:"type:varchar(500)"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Quantity    int             `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrderItem creates an order line from a product snapshot
func NewOrderItem(productID int64, productName, picture string, price decimal.Decimal, quantity int) (OrderItem, error) {
	if productID <= 0 {
		return OrderItem{}, shared.NewDomainError("INVALID_PRODUCT", "Product id must be positive")
	}
	if productName == "" {
		return OrderItem{}, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if price.IsNegative() {
		return OrderItem{}, shared.NewDomainError("INVALID_PRICE", "Item price cannot be negative")
	}
	if quantity < 1 {
		return OrderItem{}, shared.NewDomainError("INVALID_QUANTITY", "Item quantity must be at least 1")
	}

	return OrderItem{
		ProductID:   productID,
		ProductName: productName,
		Picture:     picture,
		Price:       price,
		Quantity:    quantity,
	}, nil
}

// LineTotal returns price multiplied by quantity for this line
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is the immutable record of a completed purchase. It exclusively
// owns its items, and its subtotal is fixed at creation. The shipping
// address is a copied snapshot, not a reference.
type Order struct {
	shared.BaseEntity
	OrderNumber      string              `gorm:"type:varchar(40);uniqueIndex;not null"`
	BuyerEmail       string              `gorm:"type:varchar(200);not null;index"`
	ShipToAddress    valueobject.Address `gorm:"embedded;embeddedPrefix:ship_"`
	DeliveryMethodID int64               `gorm:"not null"`
	DeliveryMethod   DeliveryMethod      `gorm:"foreignKey:DeliveryMethodID"`
	Items            []OrderItem         `gorm:"foreignKey:OrderID"`
	Subtotal         decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	Status           OrderStatus         `gorm:"type:varchar(20);not null;default:'pending'"`
	OrderDate        time.Time           `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder constructs an order aggregate in the pending state. The subtotal
// is computed from the items and never changes afterwards.
func NewOrder(buyerEmail string, shipTo valueobject.Address, deliveryMethod *DeliveryMethod, items []OrderItem) (*Order, error) {
	if buyerEmail == "" {
		return nil, shared.NewDomainError("INVALID_BUYER", "Buyer email cannot be empty")
	}
	if !shipTo.IsComplete() {
		return nil, shared.ErrInvalidAddress
	}
	if deliveryMethod == nil {
		return nil, shared.ErrDeliveryNotFound
	}
	if len(items) == 0 {
		return nil, shared.ErrEmptyBasket
	}

	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
	}

	now := time.Now()
	return &Order{
		BaseEntity: shared.BaseEntity{
			CreatedAt: now,
			UpdatedAt: now,
		},
		OrderNumber:      generateOrderNumber(),
		BuyerEmail:       buyerEmail,
		ShipToAddress:    shipTo,
		DeliveryMethodID: deliveryMethod.ID,
		DeliveryMethod:   *deliveryMethod,
		Items:            items,
		Subtotal:         subtotal,
		Status:           OrderStatusPending,
		OrderDate:        now,
	}, nil
}

// Total returns the subtotal plus the delivery price
func (o *Order) Total() decimal.Decimal {
	return o.Subtotal.Add(o.DeliveryMethod.Price)
}

// generateOrderNumber produces an opaque unique order reference
func generateOrderNumber() string {
	return fmt.Sprintf("ORD-%s", uuid.NewString())
}
