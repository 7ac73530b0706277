package catalog

import (
	"context"

	"github.com/google/uuid"
)

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindByID finds a category by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindAll finds all categories ordered by sort_order then id
	FindAll(ctx context.Context) ([]Category, error)

	// FindActive finds active categories ordered by sort_order then id
	FindActive(ctx context.Context) ([]Category, error)

	// ExistsByID checks whether a category exists
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// Save creates or updates a category.
	// Returns shared.ErrAlreadyExists when the unique name constraint is violated.
	Save(ctx context.Context, category *Category) error
}
