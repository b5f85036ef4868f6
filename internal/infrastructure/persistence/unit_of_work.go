package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/basket"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/ordering"
	"github.com/storefront/backend/internal/domain/shared"
)

// UnitOfWork owns one repository per entity type, created lazily and
// cached for its lifetime, plus the handle to the basket store. All writes
// staged through its repositories are flushed by a single Complete call as
// one transaction against the relational store.
//
// The basket store is deliberately outside that transaction: basket
// mutations are independent, non-transactional I/O against the cache.
type UnitOfWork struct {
	db      *gorm.DB
	baskets basket.Store
	stage   *staging

	products        *GormRepository[catalog.Product]
	orders          *GormRepository[ordering.Order]
	deliveryMethods *GormRepository[ordering.DeliveryMethod]
}

// NewUnitOfWork creates a unit of work over a database handle and a basket
// store.
func NewUnitOfWork(db *gorm.DB, baskets basket.Store) *UnitOfWork {
	return &UnitOfWork{
		db:      db,
		baskets: baskets,
		stage:   &staging{},
	}
}

// UnitOfWorkFactory builds a fresh unit of work per logical operation over
// a shared database handle and basket store. A unit must not be shared
// between concurrent operations: each unit owns its staging queue, and a
// shared unit would let one caller's Complete flush writes staged by
// another.
type UnitOfWorkFactory struct {
	db      *gorm.DB
	baskets basket.Store
}

// NewUnitOfWorkFactory creates a factory over a database handle and a
// basket store.
func NewUnitOfWorkFactory(db *gorm.DB, baskets basket.Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{db: db, baskets: baskets}
}

// New creates a unit of work with its own empty staging queue.
func (f *UnitOfWorkFactory) New() *UnitOfWork {
	return NewUnitOfWork(f.db, f.baskets)
}

// Products returns the product repository
func (u *UnitOfWork) Products() shared.Repository[catalog.Product] {
	if u.products == nil {
		u.products = NewGormRepository[catalog.Product](u.db, u.stage)
	}
	return u.products
}

// Orders returns the order repository
func (u *UnitOfWork) Orders() shared.Repository[ordering.Order] {
	if u.orders == nil {
		u.orders = NewGormRepository[ordering.Order](u.db, u.stage)
	}
	return u.orders
}

// DeliveryMethods returns the delivery method repository
func (u *UnitOfWork) DeliveryMethods() shared.Repository[ordering.DeliveryMethod] {
	if u.deliveryMethods == nil {
		u.deliveryMethods = NewGormRepository[ordering.DeliveryMethod](u.db, u.stage)
	}
	return u.deliveryMethods
}

// Baskets returns the basket store handle
func (u *UnitOfWork) Baskets() basket.Store {
	return u.baskets
}

// Complete flushes every write staged since the previous call as a single
// transaction, in staging order, and returns the total number of affected
// rows. Zero affected rows with a nil error means nothing was persisted;
// callers treat that as a failure signal, not an error. On error the
// transaction is rolled back and the staged writes are discarded either way.
func (u *UnitOfWork) Complete(ctx context.Context) (int64, error) {
	ops := u.stage.ops
	u.stage.clear()

	if len(ops) == 0 {
		return 0, nil
	}

	var affected int64
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, op := range ops {
			var result *gorm.DB
			switch op.kind {
			case opAdd:
				result = tx.Create(op.entity)
			case opUpdate:
				result = tx.Save(op.entity)
			case opDelete:
				result = tx.Delete(op.entity)
			}
			if result.Error != nil {
				return result.Error
			}
			affected += result.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

// Close discards any staged writes and drops the cached repositories.
// The underlying connection pool is shared and stays open.
func (u *UnitOfWork) Close() {
	u.stage.clear()
	u.products = nil
	u.orders = nil
	u.deliveryMethods = nil
}

// Ensure UnitOfWork implements shared.UnitOfWork
var _ shared.UnitOfWork = (*UnitOfWork)(nil)
