package persistence

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// newTestDatabase opens an isolated in-memory sqlite database with the
// schema migrated.
func newTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&catalog.Product{}))
	return db
}

// seedCatalog inserts n products named product-01..n with price n, 2n, 3n...
func seedCatalog(t *testing.T, db *gorm.DB, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		p, err := catalog.NewProduct(
			fmt.Sprintf("product-%02d", i),
			"seeded",
			decimal.NewFromInt(int64(i)),
			10,
			"", "tools", "Acme", "seller-1",
		)
		require.NoError(t, err)
		require.NoError(t, db.Create(p).Error)
	}
}

func TestApplySpecification_Filter(t *testing.T) {
	db := newTestDatabase(t)
	seedCatalog(t, db, 5)

	spec := shared.NewSpecification[catalog.Product]().Where("price > ?", 3)

	var products []catalog.Product
	err := ApplySpecification(db.Model(&catalog.Product{}), spec).Find(&products).Error
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestApplySpecification_NoFilterIsFullScan(t *testing.T) {
	db := newTestDatabase(t)
	seedCatalog(t, db, 5)

	spec := shared.NewSpecification[catalog.Product]()

	var products []catalog.Product
	err := ApplySpecification(db.Model(&catalog.Product{}), spec).Find(&products).Error
	require.NoError(t, err)
	assert.Len(t, products, 5)
}

func TestApplySpecification_Ordering(t *testing.T) {
	db := newTestDatabase(t)
	seedCatalog(t, db, 3)

	t.Run("descending", func(t *testing.T) {
		spec := shared.NewSpecification[catalog.Product]().OrderBy("price", shared.SortDescending)

		var products []catalog.Product
		err := ApplySpecification(db.Model(&catalog.Product{}), spec).Find(&products).Error
		require.NoError(t, err)
		require.Len(t, products, 3)
		assert.Equal(t, "product-03", products[0].Name)
		assert.Equal(t, "product-01", products[2].Name)
	})

	t.Run("default ordering is deterministic", func(t *testing.T) {
		spec := shared.NewSpecification[catalog.Product]().Page(0, 2)

		var first []catalog.Product
		require.NoError(t, ApplySpecification(db.Model(&catalog.Product{}), spec).Find(&first).Error)
		var second []catalog.Product
		require.NoError(t, ApplySpecification(db.Model(&catalog.Product{}), spec).Find(&second).Error)

		require.Len(t, first, 2)
		assert.Equal(t, first[0].ID, second[0].ID)
		assert.Equal(t, first[1].ID, second[1].ID)
	})

	t.Run("malicious sort key falls back to primary key", func(t *testing.T) {
		spec := shared.NewSpecification[catalog.Product]().
			OrderBy("price; DROP TABLE products", shared.SortAscending)

		var products []catalog.Product
		err := ApplySpecification(db.Model(&catalog.Product{}), spec).Find(&products).Error
		require.NoError(t, err)
		assert.Len(t, products, 3)
	})
}

func TestApplySpecification_Paging(t *testing.T) {
	db := newTestDatabase(t)
	seedCatalog(t, db, 15)

	t.Run("first page with total count", func(t *testing.T) {
		spec := shared.NewSpecification[catalog.Product]().
			OrderBy("price", shared.SortDescending).
			Page(0, 10)

		var products []catalog.Product
		err := ApplySpecification(db.Model(&catalog.Product{}), spec).Find(&products).Error
		require.NoError(t, err)
		require.Len(t, products, 10)
		assert.Equal(t, "product-15", products[0].Name)

		var total int64
		err = ApplySpecificationForCount(db.Model(&catalog.Product{}), spec).Count(&total).Error
		require.NoError(t, err)
		assert.Equal(t, int64(15), total)
	})

	t.Run("last partial page", func(t *testing.T) {
		spec := shared.NewSpecification[catalog.Product]().
			OrderBy("price", shared.SortDescending).
			Page(10, 10)

		var products []catalog.Product
		err := ApplySpecification(db.Model(&catalog.Product{}), spec).Find(&products).Error
		require.NoError(t, err)
		assert.Len(t, products, 5)
	})

	t.Run("paging past the end yields an empty page", func(t *testing.T) {
		spec := shared.NewSpecification[catalog.Product]().Page(100, 10)

		var products []catalog.Product
		err := ApplySpecification(db.Model(&catalog.Product{}), spec).Find(&products).Error
		require.NoError(t, err)
		assert.Empty(t, products)
	})
}

func TestGormRepository_Reads(t *testing.T) {
	db := newTestDatabase(t)
	seedCatalog(t, db, 5)

	repo := NewGormRepository[catalog.Product](db, &staging{})
	ctx := context.Background()

	t.Run("GetByID", func(t *testing.T) {
		p, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "product-01", p.Name)
	})

	t.Run("GetByID not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 999)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("FindOne", func(t *testing.T) {
		p, err := repo.FindOne(ctx, "name = ?", "product-03")
		require.NoError(t, err)
		assert.Equal(t, int64(3), p.ID)
	})

	t.Run("ListAll", func(t *testing.T) {
		products, err := repo.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, products, 5)
	})

	t.Run("ListBySpec and CountBySpec share the filter", func(t *testing.T) {
		spec := shared.NewSpecification[catalog.Product]().
			Where("price >= ?", 2).
			OrderBy("price", shared.SortAscending).
			Page(0, 2)

		products, err := repo.ListBySpec(ctx, spec)
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "product-02", products[0].Name)

		total, err := repo.CountBySpec(ctx, spec)
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
	})

	t.Run("ExistsBySpec", func(t *testing.T) {
		exists, err := repo.ExistsBySpec(ctx, shared.NewSpecification[catalog.Product]().Where("price = ?", 5))
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsBySpec(ctx, shared.NewSpecification[catalog.Product]().Where("price = ?", 99))
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("FirstBySpec", func(t *testing.T) {
		spec := shared.NewSpecification[catalog.Product]().OrderBy("price", shared.SortDescending)
		p, err := repo.FirstBySpec(ctx, spec)
		require.NoError(t, err)
		assert.Equal(t, "product-05", p.Name)

		_, err = repo.FirstBySpec(ctx, shared.NewSpecification[catalog.Product]().Where("price = ?", 99))
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
