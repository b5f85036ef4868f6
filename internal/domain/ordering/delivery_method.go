package ordering

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
)

// DeliveryMethod is immutable reference data describing one shipping option.
// Created by an admin workflow; orders reference it by id.
type DeliveryMethod struct {
	shared.BaseEntity
	ShortName    string          `gorm:"type:varchar(100);not null"`
	DeliveryTime string          `gorm:"type:varchar(100);not null"`
	Description  string          `gorm:"type:text"`
	Price        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (DeliveryMethod) TableName() string {
	return "delivery_methods"
}

// NewDeliveryMethod creates a new delivery method
func NewDeliveryMethod(shortName, deliveryTime, description string, price decimal.Decimal) (*DeliveryMethod, error) {
	if shortName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Delivery method name cannot be empty")
	}
	if deliveryTime == "" {
		return nil, shared.NewDomainError("INVALID_DELIVERY_TIME", "Delivery time cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Delivery price cannot be negative")
	}

	now := time.Now()
	return &DeliveryMethod{
		BaseEntity: shared.BaseEntity{
			CreatedAt: now,
			UpdatedAt: now,
		},
		ShortName:    shortName,
		DeliveryTime: deliveryTime,
		Description:  description,
		Price:        price,
	}, nil
}
