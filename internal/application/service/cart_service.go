package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/am24/brickshop/internal/app"
	"github.com/am24/brickshop/internal/application/port/output"
	"github.com/am24/brickshop/internal/domain/model/cart"
	"github.com/am24/brickshop/internal/domain/model/order"
	"github.com/am24/brickshop/internal/domain/repository"
)

// CartService keeps the observable local cart consistent with the persisted
// cart rows and commits checkouts to the remote order service.
type CartService interface {
	// Refresh reloads the cart wholesale from the local cache.
	Refresh(ctx context.Context) error
	// Add schedules a debounced increment-or-insert for productID. The
	// returned channel delivers the action's outcome once it settles.
	Add(ctx context.Context, productID int) <-chan error
	// Toggle inserts the product with quantity 1 or deletes its row.
	Toggle(ctx context.Context, productID int) error
	// UpdateQuantity sets the row to newQuantity exactly, deleting it when
	// newQuantity <= 0. No-op when the product has no row.
	UpdateQuantity(ctx context.Context, productID, newQuantity int) error
	// RemoveCompletely deletes the row if present.
	RemoveCompletely(ctx context.Context, productID int) error
	// Clear deletes all rows.
	Clear(ctx context.Context) error
	// Checkout submits one order for the persisted cart rows. It returns
	// (nil, nil) — no order — for an empty cart or when any line cannot be
	// priced from the local cache; it never submits an unpriced line.
	Checkout(ctx context.Context) (*order.Placed, error)
	// ClearLocal resets the in-memory state only; persisted rows and the
	// remote service are untouched. Used on logout.
	ClearLocal()
	// Snapshot returns the current observable state.
	Snapshot() cart.State
}

// CartServiceImpl implements CartService.
type CartServiceImpl struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	orderAPI    output.OrderAPI
	coordinator *ToggleCoordinator

	mu       sync.Mutex
	items    map[int]int
	busy     map[int]int // productID -> reference count of in-flight mutations
	clearing bool
	loading  bool
	loaded   bool
}

// NewCartService creates a cart sync engine.
func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	orderAPI output.OrderAPI,
	coordinator *ToggleCoordinator,
) CartService {
	return &CartServiceImpl{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		orderAPI:    orderAPI,
		coordinator: coordinator,
		items:       make(map[int]int),
		busy:        make(map[int]int),
	}
}

func (s *CartServiceImpl) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		// Attempted at least once, not necessarily succeeded.
		s.loaded = true
		s.mu.Unlock()
	}()

	return s.republish(ctx)
}

// republish re-reads all rows and swaps the observable map wholesale. Each
// mutating operation calls this after its own write, so the last write to
// complete determines the published state.
func (s *CartServiceImpl) republish(ctx context.Context) error {
	rows, err := s.cartRepo.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("load cart rows failed: %w", err)
	}

	items := make(map[int]int, len(rows))
	for _, row := range rows {
		items[row.ProductID] = row.Quantity
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return nil
}

func (s *CartServiceImpl) setBusy(productID int) {
	s.mu.Lock()
	s.busy[productID]++
	s.mu.Unlock()
}

func (s *CartServiceImpl) clearBusy(productID int) {
	s.mu.Lock()
	if s.busy[productID] > 1 {
		s.busy[productID]--
	} else {
		delete(s.busy, productID)
	}
	s.mu.Unlock()
}

// withBusy keeps productID in the busy set for the entire span of fn, even
// when fn fails.
func (s *CartServiceImpl) withBusy(productID int, fn func() error) error {
	s.setBusy(productID)
	defer s.clearBusy(productID)
	return fn()
}

func (s *CartServiceImpl) Add(ctx context.Context, productID int) <-chan error {
	return s.coordinator.Schedule(ctx, productID, func(ctx context.Context) error {
		return s.performAdd(ctx, productID)
	}, nil)
}

func (s *CartServiceImpl) performAdd(ctx context.Context, productID int) error {
	return s.withBusy(productID, func() error {
		current, err := s.cartRepo.FindByProductID(ctx, productID)
		if err != nil {
			return fmt.Errorf("find cart row failed: %w", err)
		}

		if current == nil {
			if _, err := s.cartRepo.Insert(ctx, cart.Row{ProductID: productID, Quantity: 1}); err != nil {
				return fmt.Errorf("insert cart row failed: %w", err)
			}
		} else {
			if err := s.cartRepo.UpdateQuantity(ctx, current.ID, current.Quantity+1); err != nil {
				return fmt.Errorf("increment cart row failed: %w", err)
			}
		}

		return s.republish(ctx)
	})
}

func (s *CartServiceImpl) Toggle(ctx context.Context, productID int) error {
	return s.withBusy(productID, func() error {
		current, err := s.cartRepo.FindByProductID(ctx, productID)
		if err != nil {
			return fmt.Errorf("find cart row failed: %w", err)
		}

		if current == nil {
			if _, err := s.cartRepo.Insert(ctx, cart.Row{ProductID: productID, Quantity: 1}); err != nil {
				return fmt.Errorf("insert cart row failed: %w", err)
			}
		} else {
			if err := s.cartRepo.DeleteByID(ctx, current.ID); err != nil {
				return fmt.Errorf("delete cart row failed: %w", err)
			}
		}

		return s.republish(ctx)
	})
}

func (s *CartServiceImpl) UpdateQuantity(ctx context.Context, productID, newQuantity int) error {
	return s.withBusy(productID, func() error {
		current, err := s.cartRepo.FindByProductID(ctx, productID)
		if err != nil {
			return fmt.Errorf("find cart row failed: %w", err)
		}
		if current == nil {
			// Not an error: the row is simply not there yet.
			return nil
		}

		if newQuantity <= 0 {
			if err := s.cartRepo.DeleteByID(ctx, current.ID); err != nil {
				return fmt.Errorf("delete cart row failed: %w", err)
			}
		} else {
			if err := s.cartRepo.UpdateQuantity(ctx, current.ID, newQuantity); err != nil {
				return fmt.Errorf("update cart row failed: %w", err)
			}
		}

		return s.republish(ctx)
	})
}

func (s *CartServiceImpl) RemoveCompletely(ctx context.Context, productID int) error {
	return s.withBusy(productID, func() error {
		current, err := s.cartRepo.FindByProductID(ctx, productID)
		if err != nil {
			return fmt.Errorf("find cart row failed: %w", err)
		}
		if current == nil {
			return nil
		}

		if err := s.cartRepo.DeleteByID(ctx, current.ID); err != nil {
			return fmt.Errorf("delete cart row failed: %w", err)
		}

		return s.republish(ctx)
	})
}

func (s *CartServiceImpl) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.clearing = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.clearing = false
		s.mu.Unlock()
	}()

	if err := s.cartRepo.Clear(ctx); err != nil {
		return fmt.Errorf("clear cart failed: %w", err)
	}

	s.mu.Lock()
	s.items = make(map[int]int)
	s.mu.Unlock()
	return nil
}

// Checkout reads whatever is durably persisted at call time; a debounced
// add still pending when it runs will land afterwards and republish on its
// own.
func (s *CartServiceImpl) Checkout(ctx context.Context) (*order.Placed, error) {
	rows, err := s.cartRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load cart rows failed: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	lines := make([]order.LineItem, 0, len(rows))
	ids := make([]int, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, order.LineItem{ProductID: row.ProductID, Quantity: row.Quantity})
		ids = append(ids, row.ProductID)
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve prices failed: %w", err)
	}
	prices := make(map[int]float64, len(products))
	for _, p := range products {
		prices[p.ID] = p.Price
	}

	total := decimal.Zero
	for _, row := range rows {
		price, ok := prices[row.ProductID]
		if !ok {
			// Never submit an order with an unpriced line.
			app.GetLogger().Warn("checkout aborted: product %d has no local price", row.ProductID)
			return nil, nil
		}
		line := decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(row.Quantity)))
		total = total.Add(line)
	}

	placed, err := s.orderAPI.Create(ctx, lines, total.InexactFloat64())
	if err != nil {
		// Leave the cart untouched on failure.
		return nil, fmt.Errorf("create order failed: %w", err)
	}

	if err := s.cartRepo.Clear(ctx); err != nil {
		return placed, fmt.Errorf("clear cart after checkout failed: %w", err)
	}
	s.mu.Lock()
	s.items = make(map[int]int)
	s.mu.Unlock()

	return placed, nil
}

func (s *CartServiceImpl) ClearLocal() {
	s.mu.Lock()
	s.items = make(map[int]int)
	s.busy = make(map[int]int)
	s.clearing = false
	s.loading = false
	s.loaded = false
	s.mu.Unlock()
}

func (s *CartServiceImpl) Snapshot() cart.State {
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
	return cart.State{
		Items:    items,
		Busy:     busy,
		Clearing: s.clearing,
		Loading:  s.loading,
		Loaded:   s.loaded,
	}
}
