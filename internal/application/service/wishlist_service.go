package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/am24/brickshop/internal/app"
	"github.com/am24/brickshop/internal/application/port/output"
	"github.com/am24/brickshop/internal/domain/model/wishlist"
)

// WishlistService mirrors the remote wishlist into an observable local
// view. The remote service owns the entry ids, so the engine keeps the raw
// last-fetched items around: an entry whose remote id is unknown locally
// cannot be individually addressed and has to go through a full refresh
// first.
type WishlistService interface {
	// Refresh pulls the canonical wishlist. Any failure or empty response
	// resets the local view to empty; a transient fetch error must not
	// leave stale favorites marked.
	Refresh(ctx context.Context) error
	// Toggle schedules a debounced add-or-remove for productID. Once a
	// burst of toggles settles, one reconciling refresh re-pulls canonical
	// truth.
	Toggle(ctx context.Context, productID int) <-chan error
	// UpdateQuantity applies a relative quantity change: a result <= 0
	// removes the entry, delta == -1 uses the dedicated decrement verb,
	// anything else sets the absolute quantity. No-op for unknown products.
	UpdateQuantity(ctx context.Context, productID, delta int) error
	// RemoveCompletely drops the entry whatever its quantity.
	RemoveCompletely(ctx context.Context, productID int) error
	// Clear empties the remote wishlist, then the local view.
	Clear(ctx context.Context) error
	// LastFetchedItem looks up the raw remote entry for productID, nil if
	// unknown.
	LastFetchedItem(productID int) *wishlist.Item
	// ClearLocal resets in-memory state only. Used on logout.
	ClearLocal()
	// Snapshot returns the current observable state.
	Snapshot() wishlist.State
}

// WishlistServiceImpl implements WishlistService.
type WishlistServiceImpl struct {
	api         output.WishlistAPI
	coordinator *ToggleCoordinator

	mu       sync.Mutex
	items    map[int]int // productID -> quantity
	raw      []wishlist.Item
	busy     map[int]int
	clearing bool
	loading  bool
	loaded   bool
}

// NewWishlistService creates a wishlist sync engine.
func NewWishlistService(api output.WishlistAPI, coordinator *ToggleCoordinator) WishlistService {
	return &WishlistServiceImpl{
		api:         api,
		coordinator: coordinator,
		items:       make(map[int]int),
		busy:        make(map[int]int),
	}
}

func (s *WishlistServiceImpl) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.loaded = true
		s.mu.Unlock()
	}()

	snap, err := s.api.Get(ctx)
	if err != nil || snap == nil {
		// Fail-safe-empty, not fail-sticky.
		if err != nil {
			app.GetLogger().Warn("wishlist refresh failed, resetting local view: %v", err)
		}
		s.mu.Lock()
		s.items = make(map[int]int)
		s.raw = nil
		s.mu.Unlock()
		return nil
	}

	items := make(map[int]int, len(snap.Items))
	for _, item := range snap.Items {
		items[item.ProductID] = item.Quantity
	}

	s.mu.Lock()
	s.items = items
	s.raw = append([]wishlist.Item(nil), snap.Items...)
	s.mu.Unlock()
	return nil
}

func (s *WishlistServiceImpl) setBusy(productID int) {
	s.mu.Lock()
	s.busy[productID]++
	s.mu.Unlock()
}

func (s *WishlistServiceImpl) clearBusy(productID int) {
	s.mu.Lock()
	if s.busy[productID] > 1 {
		s.busy[productID]--
	} else {
		delete(s.busy, productID)
	}
	s.mu.Unlock()
}

func (s *WishlistServiceImpl) withBusy(productID int, fn func() error) error {
	s.setBusy(productID)
	defer s.clearBusy(productID)
	return fn()
}

func (s *WishlistServiceImpl) Toggle(ctx context.Context, productID int) <-chan error {
	return s.coordinator.Schedule(ctx, productID,
		func(ctx context.Context) error {
			return s.performToggle(ctx, productID)
		},
		// One reconciling refresh after the burst settles, correcting any
		// staleness the debounce window tolerated.
		s.Refresh,
	)
}

func (s *WishlistServiceImpl) performToggle(ctx context.Context, productID int) error {
	return s.withBusy(productID, func() error {
		item := s.LastFetchedItem(productID)

		if item != nil {
			if err := s.api.Remove(ctx, item.ItemID); err != nil {
				return fmt.Errorf("remove wishlist item failed: %w", err)
			}
			// Drop it from the local view immediately; the quiescence
			// refresh will reconcile.
			s.mu.Lock()
			delete(s.items, productID)
			raw := s.raw[:0]
			for _, it := range s.raw {
				if it.ProductID != productID {
					raw = append(raw, it)
				}
			}
			s.raw = raw
			s.mu.Unlock()
			return nil
		}

		if err := s.api.Add(ctx, productID); err != nil {
			return fmt.Errorf("add wishlist item failed: %w", err)
		}
		return nil
	})
}

func (s *WishlistServiceImpl) UpdateQuantity(ctx context.Context, productID, delta int) error {
	item := s.LastFetchedItem(productID)
	if item == nil {
		// Unknown product: legitimate "state not ready yet", not an error.
		return nil
	}

	return s.withBusy(productID, func() error {
		newQuantity := item.Quantity + delta

		var err error
		switch {
		case newQuantity <= 0:
			err = s.api.Remove(ctx, item.ItemID)
		case delta == -1:
			// The remote API distinguishes "decrement by one" from
			// "set to N"; a single decrement must use the decrement verb.
			err = s.api.RemoveOne(ctx, item.ItemID)
		default:
			err = s.api.SetQuantity(ctx, item.ItemID, newQuantity)
		}
		if err != nil {
			return fmt.Errorf("update wishlist quantity failed: %w", err)
		}

		return s.Refresh(ctx)
	})
}

func (s *WishlistServiceImpl) RemoveCompletely(ctx context.Context, productID int) error {
	item := s.LastFetchedItem(productID)
	if item == nil {
		return nil
	}

	return s.withBusy(productID, func() error {
		if err := s.api.Remove(ctx, item.ItemID); err != nil {
			return fmt.Errorf("remove wishlist item failed: %w", err)
		}
		return s.Refresh(ctx)
	})
}

func (s *WishlistServiceImpl) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.clearing = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.clearing = false
		s.mu.Unlock()
	}()

	if err := s.api.Clear(ctx); err != nil {
		return fmt.Errorf("clear wishlist failed: %w", err)
	}

	// Only reset after remote success.
	s.mu.Lock()
	s.items = make(map[int]int)
	s.raw = nil
	s.mu.Unlock()
	return nil
}

func (s *WishlistServiceImpl) LastFetchedItem(productID int) *wishlist.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.raw {
		if s.raw[i].ProductID == productID {
			item := s.raw[i]
			return &item
		}
	}
	return nil
}

func (s *WishlistServiceImpl) ClearLocal() {
	s.mu.Lock()
	s.items = make(map[int]int)
	s.raw = nil
	s.busy = make(map[int]int)
	s.clearing = false
	s.loading = false
	s.loaded = false
	s.mu.Unlock()
}

func (s *WishlistServiceImpl) Snapshot() wishlist.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make(map[int]int, len(s.items))
	for k, v := range s.items {
		items[k] = v
	}
	busy := make(map[int]bool, len(s.busy))
	for k := range s.busy {
		busy[k] = true
	}
	raw := append([]wishlist.Item(nil), s.raw...)
	return wishlist.State{
		Items:    items,
		Raw:      raw,
		Busy:     busy,
		Clearing: s.clearing,
		Loading:  s.loading,
		Loaded:   s.loaded,
	}
}
