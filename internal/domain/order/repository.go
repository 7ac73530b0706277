package order

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for order persistence
type Repository interface {
	// FindByID finds an order without its items
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByIDWithItems finds an order with its line items preloaded
	FindByIDWithItems(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindItems finds the line items of an order
	FindItems(ctx context.Context, orderID uuid.UUID) ([]Item, error)

	// FindAll finds orders newest first with offset pagination
	FindAll(ctx context.Context, limit, offset int) ([]Order, error)

	// Create inserts a new order together with its line items
	Create(ctx context.Context, o *Order) error

	// Save updates an existing order row (not its items)
	Save(ctx context.Context, o *Order) error

	// CountItemsByProduct counts order items referencing a product.
	// Used to block deletion of products with order history.
	CountItemsByProduct(ctx context.Context, productID uuid.UUID) (int64, error)
}
