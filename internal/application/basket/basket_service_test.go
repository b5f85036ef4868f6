package basket

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/basket"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// fakeStore is an in-memory basket.Store with the same copy semantics as
// the cache-backed stores: reads return decoded copies, upserts replace
// the whole value (last write wins).
type fakeStore struct {
	baskets map[string][]byte
}

func newFakeStore() *fakeStore {
	return &fakeStore{baskets: make(map[string][]byte)}
}

func (f *fakeStore) Get(ctx context.Context, id string) (*basket.CustomerBasket, error) {
	data, ok := f.baskets[id]
	if !ok {
		return nil, nil
	}
	var b basket.CustomerBasket
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (f *fakeStore) Upsert(ctx context.Context, b *basket.CustomerBasket) (*basket.CustomerBasket, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return nil, err
	}
	f.baskets[b.ID] = data
	return f.Get(ctx, b.ID)
}

func (f *fakeStore) Delete(ctx context.Context, id string) (bool, error) {
	_, ok := f.baskets[id]
	delete(f.baskets, id)
	return ok, nil
}

// staleReadStore serves every Get from a snapshot taken at construction,
// modelling two callers that loaded the same basket state before either
// wrote it back.
type staleReadStore struct {
	*fakeStore
	snapshot map[string][]byte
}

func newStaleReadStore(inner *fakeStore) *staleReadStore {
	snapshot := make(map[string][]byte, len(inner.baskets))
	for k, v := range inner.baskets {
		snapshot[k] = v
	}
	return &staleReadStore{fakeStore: inner, snapshot: snapshot}
}

func (s *staleReadStore) Get(ctx context.Context, id string) (*basket.CustomerBasket, error) {
	data, ok := s.snapshot[id]
	if !ok {
		return nil, nil
	}
	var b basket.CustomerBasket
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// fakeProducts is a staged-write product repository over a map. Reads
// return copies; writes become visible only when the owning unit flushes.
type fakeProducts struct {
	db     map[int64]catalog.Product
	staged []catalog.Product
}

func newFakeProducts(products ...*catalog.Product) *fakeProducts {
	db := make(map[int64]catalog.Product)
	for _, p := range products {
		db[p.ID] = *p
	}
	return &fakeProducts{db: db}
}

func (f *fakeProducts) GetByID(ctx context.Context, id int64) (*catalog.Product, error) {
	p, ok := f.db[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := p
	return &copied, nil
}

func (f *fakeProducts) FindOne(ctx context.Context, clause string, args ...any) (*catalog.Product, error) {
	return nil, shared.ErrNotFound
}

func (f *fakeProducts) FirstBySpec(ctx context.Context, spec shared.Specification[catalog.Product]) (*catalog.Product, error) {
	return nil, shared.ErrNotFound
}

func (f *fakeProducts) ListAll(ctx context.Context) ([]catalog.Product, error) {
	return nil, nil
}

func (f *fakeProducts) ListBySpec(ctx context.Context, spec shared.Specification[catalog.Product]) ([]catalog.Product, error) {
	return nil, nil
}

func (f *fakeProducts) CountBySpec(ctx context.Context, spec shared.Specification[catalog.Product]) (int64, error) {
	return 0, nil
}

func (f *fakeProducts) ExistsBySpec(ctx context.Context, spec shared.Specification[catalog.Product]) (bool, error) {
	return false, nil
}

func (f *fakeProducts) Add(entity *catalog.Product)             { f.staged = append(f.staged, *entity) }
func (f *fakeProducts) AddRange(entities []*catalog.Product)    {}
func (f *fakeProducts) Update(entity *catalog.Product)          { f.staged = append(f.staged, *entity) }
func (f *fakeProducts) Delete(entity *catalog.Product)          {}
func (f *fakeProducts) DeleteRange(entities []*catalog.Product) {}

// fakeUnit wires the fakes behind the WorkUnit interface
type fakeUnit struct {
	store     basket.Store
	products  *fakeProducts
	completes int
}

func (f *fakeUnit) Products() shared.Repository[catalog.Product] { return f.products }
func (f *fakeUnit) Baskets() basket.Store                        { return f.store }

func (f *fakeUnit) Complete(ctx context.Context) (int64, error) {
	f.completes++
	var affected int64
	for _, p := range f.products.staged {
		f.products.db[p.ID] = p
		affected++
	}
	f.products.staged = nil
	return affected, nil
}

// fixedUnit hands the same work unit to every operation; fine for tests
// that drive a single service call.
func fixedUnit(uow WorkUnit) WorkUnitFactory {
	return func() WorkUnit { return uow }
}

func newProduct(t *testing.T, id int64, name string, price float64, quantity int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, "test", decimal.NewFromFloat(price), quantity, "pic.png", "tools", "Acme", "seller-1")
	require.NoError(t, err)
	p.ID = id
	return p
}

func assertTotalInvariant(t *testing.T, b *BasketResponse) {
	t.Helper()
	sum := decimal.Zero
	for _, item := range b.Items {
		sum = sum.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	assert.True(t, b.TotalPrice.Equal(sum),
		"total %s != sum of lines %s", b.TotalPrice, sum)
}

func TestBasketService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("absent basket fails with basket not found", func(t *testing.T) {
		uow := &fakeUnit{store: newFakeStore(), products: newFakeProducts()}
		service := NewBasketService(fixedUnit(uow))

		_, err := service.Get(ctx, "missing")
		assert.ErrorIs(t, err, shared.ErrBasketNotFound)
	})
}

func TestBasketService_AddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the basket on first add and reserves stock", func(t *testing.T) {
		uow := &fakeUnit{store: newFakeStore(), products: newFakeProducts(newProduct(t, 1, "hammer", 9.99, 3))}
		service := NewBasketService(fixedUnit(uow))

		resp, err := service.AddItem(ctx, "customer-1", 1)
		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "hammer", resp.Items[0].ProductName)
		assert.Equal(t, 1, resp.Items[0].Quantity)
		assertTotalInvariant(t, resp)

		stored, err := uow.products.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 2, stored.Quantity)
		assert.Equal(t, 1, uow.completes)
	})

	t.Run("adding the same product increments the line", func(t *testing.T) {
		uow := &fakeUnit{store: newFakeStore(), products: newFakeProducts(newProduct(t, 1, "hammer", 9.99, 3))}
		service := NewBasketService(fixedUnit(uow))

		_, err := service.AddItem(ctx, "customer-1", 1)
		require.NoError(t, err)
		resp, err := service.AddItem(ctx, "customer-1", 1)
		require.NoError(t, err)

		require.Len(t, resp.Items, 1)
		assert.Equal(t, 2, resp.Items[0].Quantity)
		assertTotalInvariant(t, resp)

		stored, err := uow.products.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, stored.Quantity)
	})

	t.Run("missing product fails with product not found", func(t *testing.T) {
		uow := &fakeUnit{store: newFakeStore(), products: newFakeProducts()}
		service := NewBasketService(fixedUnit(uow))

		_, err := service.AddItem(ctx, "customer-1", 42)
		assert.ErrorIs(t, err, shared.ErrProductNotFound)
	})

	t.Run("out of stock leaves basket and product unchanged", func(t *testing.T) {
		store := newFakeStore()
		uow := &fakeUnit{store: store, products: newFakeProducts(newProduct(t, 1, "hammer", 9.99, 0))}
		service := NewBasketService(fixedUnit(uow))

		_, err := service.AddItem(ctx, "customer-1", 1)
		assert.ErrorIs(t, err, shared.ErrOutOfStock)

		b, err := store.Get(ctx, "customer-1")
		require.NoError(t, err)
		assert.Nil(t, b)

		stored, err := uow.products.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 0, stored.Quantity)
		assert.Zero(t, uow.completes)
	})
}

func TestBasketService_RemoveItem(t *testing.T) {
	ctx := context.Background()

	t.Run("missing basket fails with basket not found", func(t *testing.T) {
		uow := &fakeUnit{store: newFakeStore(), products: newFakeProducts()}
		service := NewBasketService(fixedUnit(uow))

		_, err := service.RemoveItem(ctx, "missing", 1)
		assert.ErrorIs(t, err, shared.ErrBasketNotFound)
	})

	t.Run("missing line fails with item not found", func(t *testing.T) {
		uow := &fakeUnit{store: newFakeStore(), products: newFakeProducts(newProduct(t, 1, "hammer", 9.99, 3))}
		service := NewBasketService(fixedUnit(uow))

		_, err := service.AddItem(ctx, "customer-1", 1)
		require.NoError(t, err)

		_, err = service.RemoveItem(ctx, "customer-1", 42)
		assert.ErrorIs(t, err, shared.ErrItemNotFound)
	})

	t.Run("restores the reserved unit to stock", func(t *testing.T) {
		uow := &fakeUnit{store: newFakeStore(), products: newFakeProducts(newProduct(t, 1, "hammer", 9.99, 3))}
		service := NewBasketService(fixedUnit(uow))

		_, err := service.AddItem(ctx, "customer-1", 1)
		require.NoError(t, err)

		resp, err := service.RemoveItem(ctx, "customer-1", 1)
		require.NoError(t, err)
		assert.Empty(t, resp.Items)
		assertTotalInvariant(t, resp)

		stored, err := uow.products.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 3, stored.Quantity)
	})

	t.Run("add then remove restores the prior basket state", func(t *testing.T) {
		uow := &fakeUnit{store: newFakeStore(), products: newFakeProducts(
			newProduct(t, 1, "hammer", 9.99, 3),
			newProduct(t, 2, "wrench", 14.50, 3),
		)}
		service := NewBasketService(fixedUnit(uow))

		before, err := service.AddItem(ctx, "customer-1", 1)
		require.NoError(t, err)

		_, err = service.AddItem(ctx, "customer-1", 2)
		require.NoError(t, err)
		after, err := service.RemoveItem(ctx, "customer-1", 2)
		require.NoError(t, err)

		assert.Equal(t, before.Items, after.Items)
		assert.True(t, before.TotalPrice.Equal(after.TotalPrice))
	})

	t.Run("total invariant holds across mutation sequences", func(t *testing.T) {
		uow := &fakeUnit{store: newFakeStore(), products: newFakeProducts(
			newProduct(t, 1, "hammer", 9.99, 10),
			newProduct(t, 2, "wrench", 14.50, 10),
		)}
		service := NewBasketService(fixedUnit(uow))

		steps := []struct {
			remove    bool
			productID int64
		}{
			{false, 1}, {false, 1}, {false, 2}, {true, 1}, {false, 2}, {true, 2},
		}

		for _, step := range steps {
			var resp *BasketResponse
			var err error
			if step.remove {
				resp, err = service.RemoveItem(ctx, "customer-1", step.productID)
			} else {
				resp, err = service.AddItem(ctx, "customer-1", step.productID)
			}
			require.NoError(t, err)
			assertTotalInvariant(t, resp)
		}
	})
}

func TestBasketService_Delete(t *testing.T) {
	ctx := context.Background()

	uow := &fakeUnit{store: newFakeStore(), products: newFakeProducts(newProduct(t, 1, "hammer", 9.99, 3))}
	service := NewBasketService(fixedUnit(uow))

	_, err := service.AddItem(ctx, "customer-1", 1)
	require.NoError(t, err)

	existed, err := service.Delete(ctx, "customer-1")
	require.NoError(t, err)
	assert.True(t, existed)

	existed, err = service.Delete(ctx, "customer-1")
	require.NoError(t, err)
	assert.False(t, existed)
}

// Two adds that both read the basket before either wrote it back keep
// only one increment. The store contract is last-write-wins; this pins
// the hazard down rather than preventing it.
func TestBasketService_ConcurrentAddLastWriteWins(t *testing.T) {
	ctx := context.Background()

	inner := newFakeStore()
	products := newFakeProducts(newProduct(t, 1, "hammer", 9.99, 10))

	seed := &fakeUnit{store: inner, products: products}
	_, err := NewBasketService(fixedUnit(seed)).AddItem(ctx, "customer-1", 1)
	require.NoError(t, err)

	// Both subsequent adds observe the state as of this snapshot.
	stale := newStaleReadStore(inner)
	service := NewBasketService(fixedUnit(&fakeUnit{store: stale, products: products}))

	_, err = service.AddItem(ctx, "customer-1", 1)
	require.NoError(t, err)
	_, err = service.AddItem(ctx, "customer-1", 1)
	require.NoError(t, err)

	final, err := inner.Get(ctx, "customer-1")
	require.NoError(t, err)
	require.Len(t, final.Items, 1)
	assert.Equal(t, 2, final.Items[0].Quantity, "one of the two increments is lost")
}
