package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/am24/brickshop/internal/app"
	"github.com/am24/brickshop/internal/application/port/output"
	"github.com/am24/brickshop/internal/domain/model/catalog"
	"github.com/am24/brickshop/internal/domain/repository"
)

// ErrProductNotFound is returned when a product exists neither remotely nor
// in the local cache.
var ErrProductNotFound = errors.New("product not found locally or remotely")

// CatalogService refills the local product cache from the remote catalog
// category by category and answers lookups remote-first with a local
// fallback.
type CatalogService interface {
	// RefreshAll fetches every configured category with bounded retry and
	// upserts the results into the local cache. One category's exhaustion
	// never blocks the others, and no fetch error escapes the call.
	RefreshAll(ctx context.Context) error
	// SyncByType refreshes a single category and returns what was fetched
	// (empty after exhausted retries).
	SyncByType(ctx context.Context, productType string) ([]catalog.Product, error)
	// GetByID tries the remote catalog first, caching a hit; on remote
	// failure it falls back to the cache, and fails with
	// ErrProductNotFound when neither side knows the id.
	GetByID(ctx context.Context, id int) (*catalog.Product, error)
	// CachedByType reads a category from the local cache only.
	CachedByType(ctx context.Context, productType string) ([]catalog.Product, error)
	// SearchLocal filters cached products by a case-insensitive name
	// substring.
	SearchLocal(ctx context.Context, query string) ([]catalog.Product, error)
	// CategoryState returns the observable state of one category.
	CategoryState(productType string) catalog.CategoryState
}

// CatalogServiceConfig holds the refill engine's retry knobs.
type CatalogServiceConfig struct {
	Types      []string
	Attempts   int
	RetryDelay time.Duration
}

// DefaultCatalogServiceConfig returns the built-in category set and retry
// policy.
func DefaultCatalogServiceConfig() CatalogServiceConfig {
	return CatalogServiceConfig{
		Types:      []string{"set", "minifigure", "detail", "polybag", "other"},
		Attempts:   3,
		RetryDelay: 300 * time.Millisecond,
	}
}

// CatalogServiceImpl implements CatalogService.
type CatalogServiceImpl struct {
	api    output.CatalogAPI
	repo   repository.ProductRepository
	config CatalogServiceConfig

	mu         sync.Mutex
	categories map[string]catalog.CategoryState
}

// NewCatalogService creates a catalog refill engine.
func NewCatalogService(
	api output.CatalogAPI,
	repo repository.ProductRepository,
	config CatalogServiceConfig,
) CatalogService {
	if config.Attempts <= 0 {
		config.Attempts = 1
	}
	return &CatalogServiceImpl{
		api:        api,
		repo:       repo,
		config:     config,
		categories: make(map[string]catalog.CategoryState),
	}
}

// safeFetchType retries a category fetch up to the configured attempt
// count. An empty successful result is retried too: content alone cannot
// distinguish "nothing exists" from "transient error", so the engine is
// conservative. After the last attempt it resolves to empty.
func (s *CatalogServiceImpl) safeFetchType(ctx context.Context, productType string) []catalog.Product {
	for attempt := 0; attempt < s.config.Attempts; attempt++ {
		result, err := s.api.ListByType(ctx, productType)
		if err == nil && len(result) > 0 {
			return result
		}
		if err != nil {
			app.GetLogger().Debug("fetch %q attempt %d failed: %v", productType, attempt+1, err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(s.config.RetryDelay):
		}
	}
	return nil
}

func (s *CatalogServiceImpl) setCategory(productType string, state catalog.CategoryState) {
	s.mu.Lock()
	s.categories[productType] = state
	s.mu.Unlock()
}

func (s *CatalogServiceImpl) RefreshAll(ctx context.Context) error {
	for _, productType := range s.config.Types {
		s.setCategory(productType, catalog.CategoryState{Loading: true})

		fetched := s.safeFetchType(ctx, productType)
		if len(fetched) == 0 {
			s.setCategory(productType, catalog.CategoryState{})
			app.GetLogger().Warn("category %q resolved empty after %d attempts", productType, s.config.Attempts)
			continue
		}

		if err := s.repo.SaveAll(ctx, fetched); err != nil {
			s.setCategory(productType, catalog.CategoryState{Err: err})
			app.GetLogger().Error("cache category %q failed: %v", productType, err)
			continue
		}

		s.setCategory(productType, catalog.CategoryState{Products: fetched})
	}
	return ctx.Err()
}

func (s *CatalogServiceImpl) SyncByType(ctx context.Context, productType string) ([]catalog.Product, error) {
	fetched := s.safeFetchType(ctx, productType)
	if len(fetched) == 0 {
		s.setCategory(productType, catalog.CategoryState{})
		return nil, ctx.Err()
	}

	if err := s.repo.SaveAll(ctx, fetched); err != nil {
		return nil, fmt.Errorf("cache products failed: %w", err)
	}
	s.setCategory(productType, catalog.CategoryState{Products: fetched})
	return fetched, nil
}

func (s *CatalogServiceImpl) GetByID(ctx context.Context, id int) (*catalog.Product, error) {
	remote, err := s.api.GetByID(ctx, id)
	if err == nil && remote != nil {
		if saveErr := s.repo.Save(ctx, *remote); saveErr != nil {
			app.GetLogger().Warn("cache product %d failed: %v", id, saveErr)
		}
		return remote, nil
	}

	local, lookupErr := s.repo.FindByID(ctx, id)
	if lookupErr != nil {
		return nil, fmt.Errorf("local product lookup failed: %w", lookupErr)
	}
	if local == nil {
		return nil, ErrProductNotFound
	}
	return local, nil
}

func (s *CatalogServiceImpl) CachedByType(ctx context.Context, productType string) ([]catalog.Product, error) {
	return s.repo.FindByType(ctx, productType)
}

func (s *CatalogServiceImpl) SearchLocal(ctx context.Context, query string) ([]catalog.Product, error) {
	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("local search failed: %w", err)
	}

	needle := strings.ToLower(query)
	var matches []catalog.Product
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

func (s *CatalogServiceImpl) CategoryState(productType string) catalog.CategoryState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.categories[productType]
}
