package catalog

import (
	"context"
	"testing"

	"github.com/akau-shop/backend/internal/domain/catalog"
	"github.com/akau-shop/backend/internal/domain/order"
	"github.com/akau-shop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindActive(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) DecrementStock(ctx context.Context, id uuid.UUID, qty int) error {
	args := m.Called(ctx, id, qty)
	return args.Error(0)
}

// MockCategoryRepository is a mock implementation of catalog.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context) ([]catalog.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindActive(ctx context.Context) ([]catalog.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

// MockOrderRepository is a mock implementation of order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByIDWithItems(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindItems(ctx context.Context, orderID uuid.UUID) ([]order.Item, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]order.Item), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, limit, offset int) ([]order.Order, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) Create(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) CountItemsByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

func newProductService() (*ProductService, *MockProductRepository, *MockCategoryRepository, *MockOrderRepository) {
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	orderRepo := new(MockOrderRepository)
	return NewProductService(productRepo, categoryRepo, orderRepo), productRepo, categoryRepo, orderRepo
}

func TestProductServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates product with shipping options", func(t *testing.T) {
		svc, productRepo, _, _ := newProductService()
		productRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		resp, err := svc.Create(ctx, CreateProductRequest{
			Name:     "Roasted peanuts",
			Price:    150,
			StockQty: 10,
			ShippingOptions: []ShippingOptionInput{
				{Method: "post", Fee: 60},
				{Method: "cvs_711", Fee: 45},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 150, resp.Price)
		assert.Len(t, resp.ShippingOptions, 2)
		productRepo.AssertExpectations(t)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		svc, productRepo, categoryRepo, _ := newProductService()
		categoryID := uuid.New()
		categoryRepo.On("ExistsByID", ctx, categoryID).Return(false, nil)

		_, err := svc.Create(ctx, CreateProductRequest{
			Name:       "Tea",
			Price:      100,
			CategoryID: &categoryID,
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CATEGORY", domainErr.Code)
		productRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects duplicate shipping methods", func(t *testing.T) {
		svc, _, _, _ := newProductService()
		_, err := svc.Create(ctx, CreateProductRequest{
			Name:  "Tea",
			Price: 100,
			ShippingOptions: []ShippingOptionInput{
				{Method: "post", Fee: 60},
				{Method: "post", Fee: 45},
			},
		})
		assert.Error(t, err)
	})
}

func TestProductServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces shipping options wholesale", func(t *testing.T) {
		svc, productRepo, _, _ := newProductService()
		p, err := catalog.NewProduct("Tea", 100)
		require.NoError(t, err)
		require.NoError(t, p.ReplaceShippingOptions([]catalog.ShippingOption{
			{Method: catalog.ShippingMethodPost, Fee: 60},
		}))

		productRepo.On("FindByID", ctx, p.ID).Return(p, nil)
		productRepo.On("Save", ctx, p).Return(nil)

		options := []ShippingOptionInput{{Method: "courier", Fee: 120}}
		resp, err := svc.Update(ctx, p.ID, UpdateProductRequest{ShippingOptions: &options})
		require.NoError(t, err)
		require.Len(t, resp.ShippingOptions, 1)
		assert.Equal(t, "courier", resp.ShippingOptions[0].Method)
	})

	t.Run("partial update leaves other fields alone", func(t *testing.T) {
		svc, productRepo, _, _ := newProductService()
		p, err := catalog.NewProduct("Tea", 100)
		require.NoError(t, err)
		require.NoError(t, p.SetStock(7))

		productRepo.On("FindByID", ctx, p.ID).Return(p, nil)
		productRepo.On("Save", ctx, p).Return(nil)

		newPrice := 120
		resp, err := svc.Update(ctx, p.ID, UpdateProductRequest{Price: &newPrice})
		require.NoError(t, err)
		assert.Equal(t, 120, resp.Price)
		assert.Equal(t, "Tea", resp.Name)
		assert.Equal(t, 7, resp.StockQty)
	})
}

func TestProductServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("blocks deletion when referenced by order items", func(t *testing.T) {
		svc, productRepo, _, orderRepo := newProductService()
		p, err := catalog.NewProduct("Tea", 100)
		require.NoError(t, err)

		productRepo.On("FindByID", ctx, p.ID).Return(p, nil)
		orderRepo.On("CountItemsByProduct", ctx, p.ID).Return(int64(3), nil)

		err = svc.Delete(ctx, p.ID)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "PRODUCT_REFERENCED", domainErr.Code)
		productRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("deletes unreferenced product", func(t *testing.T) {
		svc, productRepo, _, orderRepo := newProductService()
		p, err := catalog.NewProduct("Tea", 100)
		require.NoError(t, err)

		productRepo.On("FindByID", ctx, p.ID).Return(p, nil)
		orderRepo.On("CountItemsByProduct", ctx, p.ID).Return(int64(0), nil)
		productRepo.On("Delete", ctx, p.ID).Return(nil)

		assert.NoError(t, svc.Delete(ctx, p.ID))
		productRepo.AssertExpectations(t)
	})

	t.Run("propagates not found", func(t *testing.T) {
		svc, productRepo, _, _ := newProductService()
		id := uuid.New()
		productRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		err := svc.Delete(ctx, id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestCategoryService(t *testing.T) {
	ctx := context.Background()

	t.Run("creates category with defaults", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		svc := NewCategoryService(categoryRepo)
		categoryRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Category")).Return(nil)

		resp, err := svc.Create(ctx, CreateCategoryRequest{Name: "Snacks"})
		require.NoError(t, err)
		assert.True(t, resp.IsActive)
	})

	t.Run("surfaces duplicate name conflict", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		svc := NewCategoryService(categoryRepo)
		categoryRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Category")).Return(shared.ErrAlreadyExists)

		_, err := svc.Create(ctx, CreateCategoryRequest{Name: "Snacks"})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("partial update", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		svc := NewCategoryService(categoryRepo)
		c, err := catalog.NewCategory("Snacks", 0, true)
		require.NoError(t, err)

		categoryRepo.On("FindByID", ctx, c.ID).Return(c, nil)
		categoryRepo.On("Save", ctx, c).Return(nil)

		inactive := false
		resp, err := svc.Update(ctx, c.ID, UpdateCategoryRequest{IsActive: &inactive})
		require.NoError(t, err)
		assert.False(t, resp.IsActive)
		assert.Equal(t, "Snacks", resp.Name)
	})
}
