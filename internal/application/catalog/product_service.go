package catalog

import (
	"context"
	"fmt"

	"github.com/akau-shop/backend/internal/domain/catalog"
	"github.com/akau-shop/backend/internal/domain/order"
	"github.com/akau-shop/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	orderRepo    order.Repository
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	orderRepo order.Repository,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		orderRepo:    orderRepo,
	}
}

// Create creates a new product with its shipping options
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.Name, req.Price)
	if err != nil {
		return nil, err
	}

	product.Description = req.Description
	product.DescriptionText = req.DescriptionText
	product.ImageURL = req.ImageURL
	if err := product.SetStock(req.StockQty); err != nil {
		return nil, err
	}
	if req.IsActive != nil {
		product.SetActive(*req.IsActive)
	}

	if req.CategoryID != nil {
		if err := s.requireCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		product.SetCategory(req.CategoryID)
	}

	if len(req.ShippingOptions) > 0 {
		if err := product.ReplaceShippingOptions(toShippingOptions(req.ShippingOptions)); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	return ToProductResponse(product), nil
}

// Update applies a partial update; a non-nil ShippingOptions replaces the
// whole option set.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := product.Name
	price := product.Price
	if req.Name != nil {
		name = *req.Name
	}
	if req.Price != nil {
		price = *req.Price
	}
	if err := product.Update(name, price); err != nil {
		return nil, err
	}

	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.DescriptionText != nil {
		product.DescriptionText = *req.DescriptionText
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}
	if req.StockQty != nil {
		if err := product.SetStock(*req.StockQty); err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil {
		product.SetActive(*req.IsActive)
	}

	switch {
	case req.ClearCategory:
		product.SetCategory(nil)
	case req.CategoryID != nil:
		if err := s.requireCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		product.SetCategory(req.CategoryID)
	}

	if req.ShippingOptions != nil {
		if err := product.ReplaceShippingOptions(toShippingOptions(*req.ShippingOptions)); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	return ToProductResponse(product), nil
}

// SetActive toggles storefront visibility for a product
func (s *ProductService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.SetActive(active)
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	return ToProductResponse(product), nil
}

// Delete removes a product. Products referenced by any order item cannot be
// deleted; history must survive, so deactivation is the supported path.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		return err
	}

	referenced, err := s.orderRepo.CountItemsByProduct(ctx, id)
	if err != nil {
		return err
	}
	if referenced > 0 {
		return shared.NewDomainError("PRODUCT_REFERENCED",
			"Product appears in order history and cannot be deleted; deactivate it instead")
	}

	return s.productRepo.Delete(ctx, id)
}

// Get retrieves a product regardless of visibility (admin view)
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// GetActive retrieves an active product for the storefront
func (s *ProductService) GetActive(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// List returns every product, newest first (admin view)
func (s *ProductService) List(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return toProductResponses(products), nil
}

// ListActive returns visible products for the storefront
func (s *ProductService) ListActive(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.productRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	return toProductResponses(products), nil
}

func (s *ProductService) requireCategory(ctx context.Context, id uuid.UUID) error {
	ok, err := s.categoryRepo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return shared.NewDomainError("INVALID_CATEGORY", fmt.Sprintf("Invalid category_id: %s", id))
	}
	return nil
}

func toProductResponses(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = *ToProductResponse(&products[i])
	}
	return out
}
