package order

import (
	"context"

	"github.com/akau-shop/backend/internal/domain/catalog"
	"github.com/akau-shop/backend/internal/domain/order"
)

// TransactionalRepositories provides access to the repositories needed by
// order placement, all scoped to one database transaction.
type TransactionalRepositories interface {
	Products() catalog.ProductRepository
	Orders() order.Repository
}

// TransactionScope executes a function atomically. Any error returned by fn
// rolls back every repository operation performed through repos.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}
