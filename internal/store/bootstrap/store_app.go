package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Lexv0lk/coin-shop/internal/pkg/clock"
	"github.com/Lexv0lk/coin-shop/internal/pkg/jwt"
	"github.com/Lexv0lk/coin-shop/internal/pkg/logging"
	"github.com/Lexv0lk/coin-shop/internal/store/application"
	"github.com/Lexv0lk/coin-shop/internal/store/display"
	"github.com/Lexv0lk/coin-shop/internal/store/fulfillment"
	"github.com/Lexv0lk/coin-shop/internal/store/infrastructure/bridge"
	httpwrap "github.com/Lexv0lk/coin-shop/internal/store/infrastructure/http"
)

const (
	shutdownTimeout = 5 * time.Second

	limiterSweepInterval = time.Minute
	limiterIdleTimeout   = 10 * time.Minute
)

type StoreApp struct {
	cfg    ShopConfig
	logger logging.Logger

	server   *http.Server
	backend  backend
	notifier *fulfillment.Notifier
	registry *display.Registry
}

func NewStoreApp(cfg ShopConfig, logger logging.Logger) *StoreApp {
	return &StoreApp{
		cfg:    cfg,
		logger: logger,
	}
}

func (a *StoreApp) Run(ctx context.Context) error {
	logger := a.logger
	cfg := a.cfg

	switch cfg.StoreDriver {
	case DriverMemory:
		a.backend = newMemoryBackend()
	default:
		b, err := newPostgresBackend(ctx, cfg, logger)
		if err != nil {
			return err
		}
		a.backend = b
	}
	logger.Info("store backend ready", "driver", cfg.StoreDriver)

	store := a.backend
	clk := clock.NewRealClock()
	bridgeClient := bridge.NewClient(cfg.BridgeURL, nil)

	a.notifier = fulfillment.NewNotifier(bridgeClient, cfg.RetractAfter, logger)
	a.registry = display.NewRegistry(store.catalog, bridgeClient, display.NewCardRenderer(), cfg.RefreshInterval, logger)

	catalogCase := application.NewCatalogCase(store.catalog, store.coupons, logger)
	purchaseCase := application.NewPurchaseCase(store.catalog, store.coupons, store.ledger, store.committer, clk, cfg.TaxPercent, logger)
	cartCase := application.NewCartCase(store.catalog, store.cart, store.ledger, store.committer, clk, logger)
	walletCase := application.NewWalletCase(store.ledger, store.orders, logger)

	limiter := httpwrap.NewUserRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	router := httpwrap.NewRouter(httpwrap.Handlers{
		Shop:   httpwrap.NewShopHandler(catalogCase, purchaseCase, a.notifier, logger),
		Cart:   httpwrap.NewCartHandler(cartCase, logger),
		Wallet: httpwrap.NewWalletHandler(walletCase, logger),
		Admin:  httpwrap.NewAdminHandler(catalogCase, walletCase, a.registry, logger),
	}, httpwrap.NewAuthMiddleware(jwt.NewJWTTokenParser(), []byte(cfg.JwtSecret), logger), limiter)

	a.server = &http.Server{
		Addr:    cfg.HttpPort,
		Handler: router,
	}

	go a.sweepLimiter(ctx, limiter)

	errChan := make(chan error, 1)
	go func() {
		logger.Info("starting http server", "addr", cfg.HttpPort)
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("error while starting http server: %w", err)
			return
		}

		errChan <- nil
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		return nil
	}
}

func (a *StoreApp) sweepLimiter(ctx context.Context, limiter *httpwrap.UserRateLimiter) {
	ticker := time.NewTicker(limiterSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := limiter.Sweep(limiterIdleTimeout); removed > 0 {
				a.logger.Debug("forgot idle rate limit buckets", "count", removed)
			}
		}
	}
}

// Shutdown stops accepting requests, then stops display refreshes and pending retractions before closing the store.
func (a *StoreApp) Shutdown() {
	if a.server != nil {
		a.logger.Info("shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := a.server.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("server shutdown failed", "error", err.Error())
		}
	}

	if a.registry != nil {
		a.registry.Close()
	}
	if a.notifier != nil {
		a.notifier.Close()
	}
	if a.backend.close != nil {
		a.backend.close()
	}

	a.logger.Info("store stopped")
}
