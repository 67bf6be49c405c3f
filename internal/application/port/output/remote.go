// Package output defines the ports the application layer expects the
// infrastructure layer to implement: the remote REST service boundary.
package output

import (
	"context"

	"github.com/am24/brickshop/internal/domain/model/catalog"
	"github.com/am24/brickshop/internal/domain/model/order"
	"github.com/am24/brickshop/internal/domain/model/wishlist"
	"github.com/am24/brickshop/internal/domain/session"
)

// CatalogAPI is the remote product catalog.
type CatalogAPI interface {
	ListByType(ctx context.Context, productType string) ([]catalog.Product, error)
	GetByID(ctx context.Context, id int) (*catalog.Product, error)
}

// WishlistAPI is the remote wishlist. Get returns (nil, nil) when the
// service answers with a non-2xx status or an undecodable body; callers
// treat that as an empty wishlist.
type WishlistAPI interface {
	Get(ctx context.Context) (*wishlist.Snapshot, error)
	Add(ctx context.Context, productID int) error
	Remove(ctx context.Context, itemID int) error
	// RemoveOne is the dedicated decrement-by-one verb, distinct from
	// SetQuantity.
	RemoveOne(ctx context.Context, itemID int) error
	SetQuantity(ctx context.Context, itemID, quantity int) error
	Clear(ctx context.Context) error
}

// OrderAPI is the remote order service.
type OrderAPI interface {
	Create(ctx context.Context, items []order.LineItem, totalPrice float64) (*order.Placed, error)
	ListMine(ctx context.Context) (*order.Page, error)
	Get(ctx context.Context, id int) (*order.Details, error)
}

// AuthAPI is the remote auth service.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (token string, err error)
	Register(ctx context.Context, username, email, password string) (id int64, err error)
	Me(ctx context.Context) (*session.User, error)
}
