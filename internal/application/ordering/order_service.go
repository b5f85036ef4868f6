package ordering

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/basket"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/ordering"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// WorkUnit provides the repositories, the basket store and the commit
// boundary the order service needs.
type WorkUnit interface {
	Products() shared.Repository[catalog.Product]
	Orders() shared.Repository[ordering.Order]
	DeliveryMethods() shared.Repository[ordering.DeliveryMethod]
	Baskets() basket.Store
	Complete(ctx context.Context) (int64, error)
}

// WorkUnitFactory supplies a fresh WorkUnit per operation. Units carry
// per-operation write staging and must not be shared across requests.
type WorkUnitFactory func() WorkUnit

// OrderService converts baskets into immutable orders and answers order
// queries.
type OrderService struct {
	units  WorkUnitFactory
	logger *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(units WorkUnitFactory, logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{units: units, logger: logger}
}

// Create converts a basket into an order. Order items snapshot the
// product's current price and picture, not the basket's stale snapshot.
// After the order is durably committed the basket is deleted best-effort;
// a failed deletion is logged but never fails the checkout, leaving a
// stale basket as a known two-store hazard.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	uow := s.units()
	b, err := uow.Baskets().Get(ctx, req.BasketID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, shared.ErrBasketNotFound
	}
	if b.IsEmpty() {
		return nil, shared.ErrEmptyBasket
	}

	items := make([]ordering.OrderItem, 0, len(b.Items))
	for _, line := range b.Items {
		product, err := uow.Products().GetByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.ErrProductNotFound
			}
			return nil, err
		}

		item, err := ordering.NewOrderItem(product.ID, product.Name, product.Picture, product.Price, line.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	deliveryMethod, err := uow.DeliveryMethods().GetByID(ctx, req.DeliveryMethodID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrDeliveryNotFound
		}
		return nil, err
	}

	address, err := valueobject.NewAddress(req.ShipToAddress.Street, req.ShipToAddress.City, req.ShipToAddress.State)
	if err != nil {
		return nil, shared.ErrInvalidAddress
	}

	order, err := ordering.NewOrder(req.BuyerEmail, address, deliveryMethod, items)
	if err != nil {
		return nil, err
	}

	uow.Orders().Add(order)
	affected, err := uow.Complete(ctx)
	if err != nil {
		return nil, err
	}
	if affected <= 0 {
		return nil, shared.ErrPersistenceFailed
	}

	if _, err := uow.Baskets().Delete(ctx, req.BasketID); err != nil {
		s.logger.Warn("failed to delete basket after checkout",
			zap.String("basket_id", req.BasketID),
			zap.String("order_number", order.OrderNumber),
			zap.Error(err),
		)
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// GetByID retrieves one of a buyer's orders with its items and delivery
// method loaded.
func (s *OrderService) GetByID(ctx context.Context, id int64, buyerEmail string) (*OrderResponse, error) {
	if id <= 0 {
		return nil, shared.ErrInvalidID
	}

	spec := shared.NewSpecification[ordering.Order]().
		Where("id = ?", id).
		Where("buyer_email = ?", buyerEmail).
		Include("Items").
		Include("DeliveryMethod")

	order, err := s.units().Orders().FirstBySpec(ctx, spec)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrOrderNotFound
		}
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// ListForBuyer retrieves a buyer's orders, most recent first
func (s *OrderService) ListForBuyer(ctx context.Context, buyerEmail string) ([]OrderResponse, error) {
	spec := shared.NewSpecification[ordering.Order]().
		Where("buyer_email = ?", buyerEmail).
		Include("Items").
		Include("DeliveryMethod").
		OrderBy("order_date", shared.SortDescending)

	orders, err := s.units().Orders().ListBySpec(ctx, spec)
	if err != nil {
		return nil, err
	}
	return ToOrderResponses(orders), nil
}

// ListDeliveryMethods retrieves all registered delivery methods
func (s *OrderService) ListDeliveryMethods(ctx context.Context) ([]DeliveryMethodResponse, error) {
	methods, err := s.units().DeliveryMethods().ListAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]DeliveryMethodResponse, len(methods))
	for i := range methods {
		responses[i] = ToDeliveryMethodResponse(&methods[i])
	}
	return responses, nil
}

// AddDeliveryMethod registers a delivery method
func (s *OrderService) AddDeliveryMethod(ctx context.Context, req CreateDeliveryMethodRequest) (*DeliveryMethodResponse, error) {
	dm, err := ordering.NewDeliveryMethod(req.ShortName, req.DeliveryTime, req.Description, req.Price)
	if err != nil {
		return nil, err
	}

	uow := s.units()
	uow.DeliveryMethods().Add(dm)
	affected, err := uow.Complete(ctx)
	if err != nil {
		return nil, err
	}
	if affected <= 0 {
		return nil, shared.ErrPersistenceFailed
	}

	response := ToDeliveryMethodResponse(dm)
	return &response, nil
}
