package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
)

// Product represents a sellable item in the catalog.
// It is the aggregate root for catalog operations; its stock quantity is
// adjusted by basket reservations and order fulfilment and never goes
// negative.
type Product struct {
	shared.BaseEntity
	Name        string          `gorm:"type:varchar(200);not null;index"`
	Description string          `gorm:"type:text"`
	Quantity    int             `gorm:"not null;default:0"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Picture     string          `gorm:"type:varchar(500)"`
	Category    string          `gorm:"type:varchar(100);index"`
	Brand       string          `gorm:"type:varchar(100);index"`
	SellerID    string          `gorm:"type:varchar(64);index"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(name, description string, price decimal.Decimal, quantity int, picture, category, brand, sellerID string) (*Product, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if !price.IsPositive() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price must be positive")
	}
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Stock quantity cannot be negative")
	}

	now := time.Now()
	return &Product{
		BaseEntity: shared.BaseEntity{
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        name,
		Description: description,
		Quantity:    quantity,
		Price:       price,
		Picture:     picture,
		Category:    category,
		Brand:       brand,
		SellerID:    sellerID,
	}, nil
}

// Update updates the product's catalog information
func (p *Product) Update(name, description string, price decimal.Decimal, picture, category, brand string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if !price.IsPositive() {
		return shared.NewDomainError("INVALID_PRICE", "Price must be positive")
	}

	p.Name = name
	p.Description = description
	p.Price = price
	p.Picture = picture
	p.Category = category
	p.Brand = brand
	p.UpdatedAt = time.Now()

	return nil
}

// InStock returns true if at least one unit is available
func (p *Product) InStock() bool {
	return p.Quantity > 0
}

// ReserveStock decrements the available quantity by one unit.
// Fails with ErrOutOfStock when no units remain.
func (p *Product) ReserveStock() error {
	if p.Quantity <= 0 {
		return shared.ErrOutOfStock
	}
	p.Quantity--
	p.UpdatedAt = time.Now()
	return nil
}

// RestoreStock returns one previously reserved unit to the available stock.
func (p *Product) RestoreStock() {
	p.Quantity++
	p.UpdatedAt = time.Now()
}

// SetQuantity replaces the stock level, e.g. after a recount
func (p *Product) SetQuantity(quantity int) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Stock quantity cannot be negative")
	}
	p.Quantity = quantity
	p.UpdatedAt = time.Now()
	return nil
}

func validateName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
