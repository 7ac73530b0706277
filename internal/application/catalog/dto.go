package catalog

import (
	"time"

	"github.com/akau-shop/backend/internal/domain/catalog"
	"github.com/google/uuid"
)

// ShippingOptionInput is a shipping option in create/update requests
type ShippingOptionInput struct {
	Method     string `json:"method" binding:"required"`
	Fee        int    `json:"fee" binding:"min=0"`
	RegionNote string `json:"region_note" binding:"max=200"`
}

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name            string                `json:"name" binding:"required,min=1,max=200"`
	Price           int                   `json:"price" binding:"min=0"`
	Description     string                `json:"description" binding:"max=1000"`
	DescriptionText string                `json:"description_text" binding:"max=4000"`
	ImageURL        string                `json:"image_url" binding:"max=500"`
	StockQty        int                   `json:"stock_qty" binding:"min=0"`
	IsActive        *bool                 `json:"is_active"`
	CategoryID      *uuid.UUID            `json:"category_id"`
	ShippingOptions []ShippingOptionInput `json:"shipping_options"`
}

// UpdateProductRequest represents a partial product update.
// Nil fields are left untouched; a non-nil ShippingOptions replaces the
// whole option set.
type UpdateProductRequest struct {
	Name            *string                `json:"name" binding:"omitempty,min=1,max=200"`
	Price           *int                   `json:"price" binding:"omitempty,min=0"`
	Description     *string                `json:"description" binding:"omitempty,max=1000"`
	DescriptionText *string                `json:"description_text" binding:"omitempty,max=4000"`
	ImageURL        *string                `json:"image_url" binding:"omitempty,max=500"`
	StockQty        *int                   `json:"stock_qty" binding:"omitempty,min=0"`
	IsActive        *bool                  `json:"is_active"`
	CategoryID      *uuid.UUID             `json:"category_id"`
	ClearCategory   bool                   `json:"clear_category"`
	ShippingOptions *[]ShippingOptionInput `json:"shipping_options"`
}

// SetProductActiveRequest toggles storefront visibility
type SetProductActiveRequest struct {
	IsActive bool `json:"is_active"`
}

// ShippingOptionResponse represents a shipping option in API responses
type ShippingOptionResponse struct {
	ID         uuid.UUID `json:"id"`
	Method     string    `json:"method"`
	Fee        int       `json:"fee"`
	RegionNote string    `json:"region_note"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID              uuid.UUID                `json:"id"`
	Name            string                   `json:"name"`
	Price           int                      `json:"price"`
	Description     string                   `json:"description"`
	DescriptionText string                   `json:"description_text"`
	ImageURL        string                   `json:"image_url"`
	StockQty        int                      `json:"stock_qty"`
	IsActive        bool                     `json:"is_active"`
	CategoryID      *uuid.UUID               `json:"category_id"`
	ShippingOptions []ShippingOptionResponse `json:"shipping_options"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=50"`
	SortOrder int    `json:"sort_order"`
	IsActive  *bool  `json:"is_active"`
}

// UpdateCategoryRequest represents a partial category update
type UpdateCategoryRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=1,max=50"`
	SortOrder *int    `json:"sort_order"`
	IsActive  *bool   `json:"is_active"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	SortOrder int       `json:"sort_order"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToCategoryResponse maps a category to its response DTO
func ToCategoryResponse(c *catalog.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		SortOrder: c.SortOrder,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToProductResponse maps a product to its response DTO
func ToProductResponse(p *catalog.Product) *ProductResponse {
	options := make([]ShippingOptionResponse, len(p.ShippingOptions))
	for i, o := range p.ShippingOptions {
		options[i] = ShippingOptionResponse{
			ID:         o.ID,
			Method:     o.Method.String(),
			Fee:        o.Fee,
			RegionNote: o.RegionNote,
		}
	}
	return &ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		Price:           p.Price,
		Description:     p.Description,
		DescriptionText: p.DescriptionText,
		ImageURL:        p.ImageURL,
		StockQty:        p.StockQty,
		IsActive:        p.IsActive,
		CategoryID:      p.CategoryID,
		ShippingOptions: options,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func toShippingOptions(inputs []ShippingOptionInput) []catalog.ShippingOption {
	options := make([]catalog.ShippingOption, len(inputs))
	for i, in := range inputs {
		options[i] = catalog.ShippingOption{
			Method:     catalog.ShippingMethod(in.Method),
			Fee:        in.Fee,
			RegionNote: in.RegionNote,
		}
	}
	return options
}
