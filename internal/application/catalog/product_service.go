package catalog

import (
	"context"
	"errors"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// WorkUnit provides the repositories and commit boundary the catalog
// service needs.
type WorkUnit interface {
	Products() shared.Repository[catalog.Product]
	Complete(ctx context.Context) (int64, error)
}

// WorkUnitFactory supplies a fresh WorkUnit per operation. Units carry
// per-operation write staging and must not be shared across requests.
type WorkUnitFactory func() WorkUnit

// ProductService handles catalog queries and product management
type ProductService struct {
	units WorkUnitFactory
}

// NewProductService creates a new ProductService
func NewProductService(units WorkUnitFactory) *ProductService {
	return &ProductService{units: units}
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id int64) (*ProductResponse, error) {
	if id <= 0 {
		return nil, shared.ErrInvalidID
	}

	product, err := s.units().Products().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrProductNotFound
		}
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves one page of the catalog. The default ordering is by name;
// priceAsc and priceDesc override it. The total count is computed over the
// same filter without paging.
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) (*shared.Paginated[ProductResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	spec := shared.NewSpecification[catalog.Product]()
	switch filter.Sort {
	case SortPriceAsc:
		spec = spec.OrderBy("price", shared.SortAscending)
	case SortPriceDesc:
		spec = spec.OrderBy("price", shared.SortDescending)
	default:
		spec = spec.OrderBy("name", shared.SortAscending)
	}
	spec = spec.Page((filter.Page-1)*filter.PageSize, filter.PageSize)

	uow := s.units()
	products, err := uow.Products().ListBySpec(ctx, spec)
	if err != nil {
		return nil, err
	}

	total, err := uow.Products().CountBySpec(ctx, spec)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToProductResponses(products), total, filter.Page, filter.PageSize)
	return &page, nil
}

// Create adds a new product to the catalog
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.Name, req.Description, req.Price, req.Quantity,
		req.Picture, req.Category, req.Brand, req.SellerID)
	if err != nil {
		return nil, err
	}

	uow := s.units()
	uow.Products().Add(product)
	affected, err := uow.Complete(ctx)
	if err != nil {
		return nil, err
	}
	if affected <= 0 {
		return nil, shared.ErrPersistenceFailed
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Update modifies a product's catalog information and optionally its
// stock level.
func (s *ProductService) Update(ctx context.Context, id int64, req UpdateProductRequest) (*ProductResponse, error) {
	if id <= 0 {
		return nil, shared.ErrInvalidID
	}

	uow := s.units()
	product, err := uow.Products().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrProductNotFound
		}
		return nil, err
	}

	if err := product.Update(req.Name, req.Description, req.Price, req.Picture, req.Category, req.Brand); err != nil {
		return nil, err
	}
	if req.Quantity != nil {
		if err := product.SetQuantity(*req.Quantity); err != nil {
			return nil, err
		}
	}

	uow.Products().Update(product)
	affected, err := uow.Complete(ctx)
	if err != nil {
		return nil, err
	}
	if affected <= 0 {
		return nil, shared.ErrPersistenceFailed
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Delete removes a product from the catalog
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrInvalidID
	}

	uow := s.units()
	product, err := uow.Products().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.ErrProductNotFound
		}
		return err
	}

	uow.Products().Delete(product)
	affected, err := uow.Complete(ctx)
	if err != nil {
		return err
	}
	if affected <= 0 {
		return shared.ErrPersistenceFailed
	}
	return nil
}
