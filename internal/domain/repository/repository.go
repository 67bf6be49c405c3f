package repository

import (
	"context"

	"github.com/am24/brickshop/internal/domain/model/cart"
	"github.com/am24/brickshop/internal/domain/model/catalog"
)

// ProductRepository is the local product cache: an id-keyed table queryable
// by id, by type, or by id-set. Writes are insert-or-replace by product id.
// Lookups that find nothing return (nil, nil) rather than an error; an
// absent product is a legitimate "state not ready yet" condition.
type ProductRepository interface {
	Save(ctx context.Context, p catalog.Product) error
	SaveAll(ctx context.Context, ps []catalog.Product) error
	FindByID(ctx context.Context, id int) (*catalog.Product, error)
	FindByIDs(ctx context.Context, ids []int) ([]catalog.Product, error)
	FindByType(ctx context.Context, productType string) ([]catalog.Product, error)
	FindAll(ctx context.Context) ([]catalog.Product, error)
	Clear(ctx context.Context) error
}

// CartRepository persists cart rows keyed by product id. Row ids are
// assigned by the store. FindByProductID returns (nil, nil) when the
// product has no row.
type CartRepository interface {
	FindAll(ctx context.Context) ([]cart.Row, error)
	FindByProductID(ctx context.Context, productID int) (*cart.Row, error)
	Insert(ctx context.Context, row cart.Row) (int64, error)
	UpdateQuantity(ctx context.Context, rowID int64, quantity int) error
	DeleteByID(ctx context.Context, rowID int64) error
	Clear(ctx context.Context) error
}
