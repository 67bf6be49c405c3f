package api

import (
	"context"
	"fmt"

	"github.com/am24/brickshop/internal/application/port/output"
	"github.com/am24/brickshop/internal/domain/model/wishlist"
)

// WishlistAPI implements output.WishlistAPI.
type WishlistAPI struct {
	client *Client
}

// NewWishlistAPI creates the wishlist gateway.
func NewWishlistAPI(client *Client) output.WishlistAPI {
	return &WishlistAPI{client: client}
}

// Get returns (nil, nil) for any non-2xx answer or undecodable body; the
// engine treats both as an empty wishlist.
func (a *WishlistAPI) Get(ctx context.Context) (*wishlist.Snapshot, error) {
	var snap wishlist.Snapshot
	if err := a.client.get(ctx, "/wishlist", nil, &snap); err != nil {
		return nil, nil
	}
	return &snap, nil
}

func (a *WishlistAPI) Add(ctx context.Context, productID int) error {
	body := map[string]int{"productId": productID}
	if err := a.client.post(ctx, "/wishlist/add", body, nil); err != nil {
		return fmt.Errorf("add wishlist item failed: %w", err)
	}
	return nil
}

func (a *WishlistAPI) Remove(ctx context.Context, itemID int) error {
	if err := a.client.delete(ctx, fmt.Sprintf("/wishlist/remove/%d", itemID)); err != nil {
		return fmt.Errorf("remove wishlist item failed: %w", err)
	}
	return nil
}

func (a *WishlistAPI) RemoveOne(ctx context.Context, itemID int) error {
	body := map[string]int{"itemId": itemID}
	if err := a.client.post(ctx, "/wishlist/remove-one", body, nil); err != nil {
		return fmt.Errorf("decrement wishlist item failed: %w", err)
	}
	return nil
}

func (a *WishlistAPI) SetQuantity(ctx context.Context, itemID, quantity int) error {
	body := map[string]int{"quantity": quantity}
	if err := a.client.put(ctx, fmt.Sprintf("/wishlist/item/%d", itemID), body); err != nil {
		return fmt.Errorf("set wishlist quantity failed: %w", err)
	}
	return nil
}

func (a *WishlistAPI) Clear(ctx context.Context) error {
	if err := a.client.delete(ctx, "/wishlist/clear"); err != nil {
		return fmt.Errorf("clear wishlist failed: %w", err)
	}
	return nil
}
