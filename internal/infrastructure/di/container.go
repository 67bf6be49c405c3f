// Package di wires the client together: local cache, connectivity
// monitoring, remote gateways, sync engines and the auth lifecycle.
package di

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/spf13/afero"

	"github.com/am24/brickshop/internal/app/config"
	"github.com/am24/brickshop/internal/application/port/output"
	"github.com/am24/brickshop/internal/application/service"
	"github.com/am24/brickshop/internal/application/usecase/auth"
	"github.com/am24/brickshop/internal/domain/session"
	"github.com/am24/brickshop/internal/infrastructure/credstore"
	"github.com/am24/brickshop/internal/infrastructure/gateway/api"
	"github.com/am24/brickshop/internal/infrastructure/network"
	"github.com/am24/brickshop/internal/infrastructure/persistence/sqlite"
)

// Container holds all application dependencies.
type Container struct {
	Config  config.Config
	Session *session.Session
	Monitor *network.Monitor

	CatalogService  service.CatalogService
	CartService     service.CartService
	WishlistService service.WishlistService
	OrderAPI        output.OrderAPI
	Auth            *auth.UseCase

	db *sql.DB
}

// NewContainer builds the full dependency graph from the given config.
func NewContainer(cfg config.Config) (*Container, error) {
	db, err := sqlite.Open(cfg.DBPath())
	if err != nil {
		return nil, fmt.Errorf("open local cache failed: %w", err)
	}

	// The probe client is deliberately NOT wrapped in network.Transport:
	// a failing probe must not re-report the failure it is probing for.
	probeClient := &http.Client{Timeout: cfg.ProbeTimeout()}
	monitor := network.NewMonitor(
		network.NewHealthProbe(probeClient, cfg.BaseURL()),
		network.MonitorConfig{
			Attempts:     cfg.ProbeAttempts(),
			Interval:     cfg.ProbeInterval(),
			ProbeTimeout: cfg.ProbeTimeout(),
			SettleDelay:  cfg.SettleDelay(),
		},
	)

	sess := session.New()
	httpClient := &http.Client{
		Timeout:   cfg.HTTPTimeout(),
		Transport: &network.Transport{Monitor: monitor},
	}
	client := api.NewClient(httpClient, cfg.BaseURL(), sess)

	catalogAPI := api.NewProductAPI(client)
	wishlistAPI := api.NewWishlistAPI(client)
	orderAPI := api.NewOrderAPI(client)
	authAPI := api.NewAuthAPI(client)

	productRepo := sqlite.NewProductRepository(db)
	cartRepo := sqlite.NewCartRepository(db)

	cartCoordinator := service.NewToggleCoordinator(cfg.DebounceDelay())
	wishlistCoordinator := service.NewToggleCoordinator(cfg.DebounceDelay())

	catalogSvc := service.NewCatalogService(catalogAPI, productRepo, service.CatalogServiceConfig{
		Types:      cfg.CategoryTypes(),
		Attempts:   cfg.CategoryAttempts(),
		RetryDelay: cfg.CategoryRetryDelay(),
	})
	cartSvc := service.NewCartService(cartRepo, productRepo, orderAPI, cartCoordinator)
	wishlistSvc := service.NewWishlistService(wishlistAPI, wishlistCoordinator)

	store := credstore.NewStore(afero.NewOsFs(), cfg.Home())
	authUC := auth.NewUseCase(authAPI, sess, store, cartSvc, wishlistSvc, cartCoordinator, wishlistCoordinator)
	authUC.Restore()

	return &Container{
		Config:          cfg,
		Session:         sess,
		Monitor:         monitor,
		CatalogService:  catalogSvc,
		CartService:     cartSvc,
		WishlistService: wishlistSvc,
		OrderAPI:        orderAPI,
		Auth:            authUC,
		db:              db,
	}, nil
}

// Close releases held resources.
func (c *Container) Close() error {
	c.Monitor.Close()
	if err := c.db.Close(); err != nil {
		return fmt.Errorf("close local cache failed: %w", err)
	}
	return nil
}
