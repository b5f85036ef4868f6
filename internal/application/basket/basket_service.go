package basket

import (
	"context"
	"errors"

	"github.com/storefront/backend/internal/domain/basket"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// WorkUnit provides the stores and commit boundary the basket service
// needs. Basket writes go to the cache store and stock adjustments to the
// relational store; the two are not mutually atomic.
type WorkUnit interface {
	Products() shared.Repository[catalog.Product]
	Baskets() basket.Store
	Complete(ctx context.Context) (int64, error)
}

// WorkUnitFactory supplies a fresh WorkUnit per operation. Units carry
// per-operation write staging and must not be shared across requests.
type WorkUnitFactory func() WorkUnit

// BasketService handles basket mutations and stock reservation
type BasketService struct {
	units WorkUnitFactory
}

// NewBasketService creates a new BasketService
func NewBasketService(units WorkUnitFactory) *BasketService {
	return &BasketService{units: units}
}

// Get retrieves a basket by id
func (s *BasketService) Get(ctx context.Context, basketID string) (*BasketResponse, error) {
	b, err := s.units().Baskets().Get(ctx, basketID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, shared.ErrBasketNotFound
	}

	response := ToBasketResponse(b)
	return &response, nil
}

// AddItem adds one unit of a product to a basket, creating the basket if
// it does not exist yet. One unit of stock is reserved on the product at
// add time; the reservation and the basket upsert are separate stores and
// are not mutually atomic.
func (s *BasketService) AddItem(ctx context.Context, basketID string, productID int64) (*BasketResponse, error) {
	uow := s.units()
	b, err := uow.Baskets().Get(ctx, basketID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		b = basket.NewCustomerBasket(basketID)
	}

	product, err := uow.Products().GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrProductNotFound
		}
		return nil, err
	}

	if err := product.ReserveStock(); err != nil {
		return nil, err
	}

	b.AddItem(basket.Item{
		ProductID:   product.ID,
		ProductName: product.Name,
		Price:       product.Price,
		Picture:     product.Picture,
		Brand:       product.Brand,
		Category:    product.Category,
	})

	stored, err := uow.Baskets().Upsert(ctx, b)
	if err != nil {
		return nil, err
	}

	uow.Products().Update(product)
	if _, err := uow.Complete(ctx); err != nil {
		return nil, err
	}

	response := ToBasketResponse(stored)
	return &response, nil
}

// RemoveItem removes one unit of a product from a basket and returns the
// reserved unit to the product's stock.
func (s *BasketService) RemoveItem(ctx context.Context, basketID string, productID int64) (*BasketResponse, error) {
	uow := s.units()
	b, err := uow.Baskets().Get(ctx, basketID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, shared.ErrBasketNotFound
	}

	if err := b.RemoveItem(productID); err != nil {
		return nil, err
	}

	product, err := uow.Products().GetByID(ctx, productID)
	switch {
	case err == nil:
		product.RestoreStock()
		uow.Products().Update(product)
	case errors.Is(err, shared.ErrNotFound):
		// Product was removed from the catalog; nothing to restore.
	default:
		return nil, err
	}

	stored, err := uow.Baskets().Upsert(ctx, b)
	if err != nil {
		return nil, err
	}

	if _, err := uow.Complete(ctx); err != nil {
		return nil, err
	}

	response := ToBasketResponse(stored)
	return &response, nil
}

// Delete removes a basket unconditionally, reporting whether one existed
func (s *BasketService) Delete(ctx context.Context, basketID string) (bool, error) {
	return s.units().Baskets().Delete(ctx, basketID)
}
