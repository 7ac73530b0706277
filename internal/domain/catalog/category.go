package catalog

import (
	"strings"
	"time"

	"github.com/akau-shop/backend/internal/domain/shared"
)

// Category groups products for storefront navigation.
// Names are unique across the shop.
type Category struct {
	shared.BaseEntity
	Name      string `gorm:"type:varchar(50);not null;uniqueIndex"`
	SortOrder int    `gorm:"not null;default:0"`
	IsActive  bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category
func NewCategory(name string, sortOrder int, isActive bool) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot be blank")
	}
	if len(name) > 50 {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 50 characters")
	}

	return &Category{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		SortOrder:  sortOrder,
		IsActive:   isActive,
	}, nil
}

// Rename changes the category name
func (c *Category) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be blank")
	}
	if len(name) > 50 {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 50 characters")
	}
	c.Name = name
	c.UpdatedAt = time.Now()
	return nil
}

// SetSortOrder updates the display position
func (c *Category) SetSortOrder(order int) {
	c.SortOrder = order
	c.UpdatedAt = time.Now()
}

// SetActive toggles storefront visibility
func (c *Category) SetActive(active bool) {
	c.IsActive = active
	c.UpdatedAt = time.Now()
}
