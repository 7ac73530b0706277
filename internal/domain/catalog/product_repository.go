package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindActiveByID finds an active product by its ID
	FindActiveByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByIDs finds multiple products by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// FindAll finds all products, newest first
	FindAll(ctx context.Context) ([]Product, error)

	// FindActive finds all active products, oldest first
	FindActive(ctx context.Context) ([]Product, error)

	// Save creates or updates a product together with its shipping options
	Save(ctx context.Context, product *Product) error

	// Delete removes a product and its shipping options
	Delete(ctx context.Context, id uuid.UUID) error

	// DecrementStock atomically decrements stock_qty for a product,
	// guarded so the quantity never goes below zero.
	// Returns shared.ErrInsufficientStock when the guard rejects the update.
	DecrementStock(ctx context.Context, id uuid.UUID, qty int) error
}
