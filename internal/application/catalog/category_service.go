package catalog

import (
	"context"

	"github.com/akau-shop/backend/internal/domain/catalog"
	"github.com/google/uuid"
)

// CategoryService handles category-related business operations
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo catalog.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// Create creates a new category.
// A duplicate name surfaces as shared.ErrAlreadyExists from the repository.
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	category, err := catalog.NewCategory(req.Name, req.SortOrder, isActive)
	if err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	return ToCategoryResponse(category), nil
}

// Update applies a partial update to a category
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := category.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.SortOrder != nil {
		category.SetSortOrder(*req.SortOrder)
	}
	if req.IsActive != nil {
		category.SetActive(*req.IsActive)
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	return ToCategoryResponse(category), nil
}

// List returns every category for the admin console
func (s *CategoryService) List(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return toCategoryResponses(categories), nil
}

// ListActive returns visible categories for the storefront
func (s *CategoryService) ListActive(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	return toCategoryResponses(categories), nil
}

func toCategoryResponses(categories []catalog.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(categories))
	for i := range categories {
		out[i] = *ToCategoryResponse(&categories[i])
	}
	return out
}
