package persistence

import (
	"context"
	"testing"

	apporder "github.com/akau-shop/backend/internal/application/order"
	"github.com/akau-shop/backend/internal/domain/catalog"
	"github.com/akau-shop/backend/internal/domain/order"
	"github.com/akau-shop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&catalog.Category{},
		&catalog.Product{},
		&catalog.ShippingOption{},
		&order.Order{},
		&order.Item{},
	))
	return db
}

func mustProduct(t *testing.T, name string, price, stock int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, price)
	require.NoError(t, err)
	require.NoError(t, p.SetStock(stock))
	return p
}

func TestGormCategoryRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("save and find", func(t *testing.T) {
		repo := NewGormCategoryRepository(newTestDB(t))

		c, err := catalog.NewCategory("Snacks", 1, true)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, c))

		found, err := repo.FindByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "Snacks", found.Name)

		ok, err := repo.ExistsByID(ctx, c.ID)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("duplicate name maps to already exists", func(t *testing.T) {
		repo := NewGormCategoryRepository(newTestDB(t))

		first, err := catalog.NewCategory("Tea", 0, true)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, first))

		second, err := catalog.NewCategory("Tea", 5, true)
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Save(ctx, second), shared.ErrAlreadyExists)
	})

	t.Run("active listing filters and orders by sort", func(t *testing.T) {
		repo := NewGormCategoryRepository(newTestDB(t))

		for _, tc := range []struct {
			name   string
			sort   int
			active bool
		}{
			{"Later", 2, true},
			{"First", 1, true},
			{"Hidden", 0, false},
		} {
			c, err := catalog.NewCategory(tc.name, tc.sort, tc.active)
			require.NoError(t, err)
			require.NoError(t, repo.Save(ctx, c))
		}

		active, err := repo.FindActive(ctx)
		require.NoError(t, err)
		require.Len(t, active, 2)
		assert.Equal(t, "First", active[0].Name)

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("missing id yields not found", func(t *testing.T) {
		repo := NewGormCategoryRepository(newTestDB(t))
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormProductRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("save preserves shipping options", func(t *testing.T) {
		repo := NewGormProductRepository(newTestDB(t))

		p := mustProduct(t, "Roasted peanuts", 150, 10)
		require.NoError(t, p.ReplaceShippingOptions([]catalog.ShippingOption{
			{Method: catalog.ShippingMethodPost, Fee: 60},
			{Method: catalog.ShippingMethodCVS711, Fee: 45},
		}))
		require.NoError(t, repo.Save(ctx, p))

		found, err := repo.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Len(t, found.ShippingOptions, 2)
	})

	t.Run("save replaces option set wholesale", func(t *testing.T) {
		repo := NewGormProductRepository(newTestDB(t))

		p := mustProduct(t, "Tea", 100, 5)
		require.NoError(t, p.ReplaceShippingOptions([]catalog.ShippingOption{
			{Method: catalog.ShippingMethodPost, Fee: 60},
		}))
		require.NoError(t, repo.Save(ctx, p))

		require.NoError(t, p.ReplaceShippingOptions([]catalog.ShippingOption{
			{Method: catalog.ShippingMethodCourier, Fee: 120},
		}))
		require.NoError(t, repo.Save(ctx, p))

		found, err := repo.FindByID(ctx, p.ID)
		require.NoError(t, err)
		require.Len(t, found.ShippingOptions, 1)
		assert.Equal(t, catalog.ShippingMethodCourier, found.ShippingOptions[0].Method)
	})

	t.Run("active lookups skip hidden products", func(t *testing.T) {
		repo := NewGormProductRepository(newTestDB(t))

		p := mustProduct(t, "Hidden tea", 100, 5)
		p.SetActive(false)
		require.NoError(t, repo.Save(ctx, p))

		_, err := repo.FindActiveByID(ctx, p.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		active, err := repo.FindActive(ctx)
		require.NoError(t, err)
		assert.Empty(t, active)
	})

	t.Run("decrement stock succeeds within bounds", func(t *testing.T) {
		repo := NewGormProductRepository(newTestDB(t))

		p := mustProduct(t, "Tea", 100, 5)
		require.NoError(t, repo.Save(ctx, p))

		require.NoError(t, repo.DecrementStock(ctx, p.ID, 3))

		found, err := repo.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, found.StockQty)
	})

	t.Run("decrement stock refuses to oversell", func(t *testing.T) {
		repo := NewGormProductRepository(newTestDB(t))

		p := mustProduct(t, "Tea", 100, 2)
		require.NoError(t, repo.Save(ctx, p))

		err := repo.DecrementStock(ctx, p.ID, 3)
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)

		found, err := repo.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, found.StockQty)
	})

	t.Run("delete removes product and options", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewGormProductRepository(db)

		p := mustProduct(t, "Tea", 100, 2)
		require.NoError(t, p.ReplaceShippingOptions([]catalog.ShippingOption{
			{Method: catalog.ShippingMethodPost, Fee: 60},
		}))
		require.NoError(t, repo.Save(ctx, p))

		require.NoError(t, repo.Delete(ctx, p.ID))

		_, err := repo.FindByID(ctx, p.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		var count int64
		require.NoError(t, db.Model(&catalog.ShippingOption{}).
			Where("product_id = ?", p.ID).Count(&count).Error)
		assert.Zero(t, count)
	})
}

func TestGormOrderRepository(t *testing.T) {
	ctx := context.Background()

	newOrder := func(t *testing.T) *order.Order {
		o, err := order.NewOrder(
			order.CustomerInfo{Name: "Mei", Email: "mei@example.com", Phone: "0912345678"},
			order.ShippingInfo{
				Method:         catalog.ShippingMethodPost,
				Address:        "Tainan City",
				RecipientName:  "Mei",
				RecipientPhone: "0912345678",
			},
		)
		require.NoError(t, err)
		return o
	}

	t.Run("create persists order with items", func(t *testing.T) {
		repo := NewGormOrderRepository(newTestDB(t))

		productID := uuid.New()
		o := newOrder(t)
		require.NoError(t, o.AddItem(productID, 2, 100))
		o.TotalAmount = 200
		require.NoError(t, repo.Create(ctx, o))

		found, err := repo.FindByIDWithItems(ctx, o.ID)
		require.NoError(t, err)
		require.Len(t, found.Items, 1)
		assert.Equal(t, 200, found.TotalAmount)

		items, err := repo.FindItems(ctx, o.ID)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, productID, items[0].ProductID)
	})

	t.Run("count items by product", func(t *testing.T) {
		repo := NewGormOrderRepository(newTestDB(t))

		productID := uuid.New()
		for i := 0; i < 2; i++ {
			o := newOrder(t)
			require.NoError(t, o.AddItem(productID, 1, 50))
			require.NoError(t, repo.Create(ctx, o))
		}

		count, err := repo.CountItemsByProduct(ctx, productID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)

		count, err = repo.CountItemsByProduct(ctx, uuid.New())
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("find all pages newest first", func(t *testing.T) {
		repo := NewGormOrderRepository(newTestDB(t))

		for i := 0; i < 3; i++ {
			require.NoError(t, repo.Create(ctx, newOrder(t)))
		}

		page, err := repo.FindAll(ctx, 2, 0)
		require.NoError(t, err)
		assert.Len(t, page, 2)

		rest, err := repo.FindAll(ctx, 2, 2)
		require.NoError(t, err)
		assert.Len(t, rest, 1)
	})

	t.Run("save updates status", func(t *testing.T) {
		repo := NewGormOrderRepository(newTestDB(t))

		o := newOrder(t)
		require.NoError(t, repo.Create(ctx, o))

		o.MarkShipped("TW42")
		require.NoError(t, repo.Save(ctx, o))

		found, err := repo.FindByID(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, order.StatusShipped, found.Status)
		require.NotNil(t, found.TrackingNo)
		assert.Equal(t, "TW42", *found.TrackingNo)
	})
}

func TestGormTransactionScope(t *testing.T) {
	ctx := context.Background()

	t.Run("rolls back everything on failure", func(t *testing.T) {
		db := newTestDB(t)
		scope := NewGormTransactionScope(db)

		p := mustProduct(t, "Tea", 100, 5)
		require.NoError(t, NewGormProductRepository(db).Save(ctx, p))

		o, err := order.NewOrder(
			order.CustomerInfo{Name: "Mei", Email: "mei@example.com", Phone: "0912345678"},
			order.ShippingInfo{
				Method:         catalog.ShippingMethodPost,
				Address:        "Tainan City",
				RecipientName:  "Mei",
				RecipientPhone: "0912345678",
			},
		)
		require.NoError(t, err)
		require.NoError(t, o.AddItem(p.ID, 2, 100))

		err = scope.Execute(ctx, func(repos apporder.TransactionalRepositories) error {
			if err := repos.Orders().Create(ctx, o); err != nil {
				return err
			}
			if err := repos.Products().DecrementStock(ctx, p.ID, 2); err != nil {
				return err
			}
			// Over-ask to force a rollback after the successful writes above
			return repos.Products().DecrementStock(ctx, p.ID, 100)
		})
		require.ErrorIs(t, err, shared.ErrInsufficientStock)

		_, err = NewGormOrderRepository(db).FindByID(ctx, o.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		found, err := NewGormProductRepository(db).FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 5, found.StockQty)
	})

	t.Run("commits on success", func(t *testing.T) {
		db := newTestDB(t)
		scope := NewGormTransactionScope(db)

		p := mustProduct(t, "Tea", 100, 5)
		require.NoError(t, NewGormProductRepository(db).Save(ctx, p))

		err := scope.Execute(ctx, func(repos apporder.TransactionalRepositories) error {
			return repos.Products().DecrementStock(ctx, p.ID, 2)
		})
		require.NoError(t, err)

		found, err := NewGormProductRepository(db).FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, found.StockQty)
	})
}

func TestSeedDemoData(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	require.NoError(t, SeedDemoData(ctx, db))

	var products []catalog.Product
	require.NoError(t, db.Preload("ShippingOptions").Find(&products).Error)
	require.Len(t, products, 3)
	for _, p := range products {
		assert.False(t, p.IsActive)
		assert.Zero(t, p.StockQty)
		assert.Len(t, p.ShippingOptions, 4)
	}

	// Re-seeding must not duplicate anything
	require.NoError(t, SeedDemoData(ctx, db))
	var count int64
	require.NoError(t, db.Model(&catalog.Product{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}
