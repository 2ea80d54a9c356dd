package bootstrap

import (
	"context"
	"fmt"

	"github.com/Lexv0lk/coin-shop/internal/pkg/database"
	"github.com/Lexv0lk/coin-shop/internal/pkg/logging"
	"github.com/Lexv0lk/coin-shop/internal/store/domain"
	"github.com/Lexv0lk/coin-shop/internal/store/infrastructure/memory"
	"github.com/Lexv0lk/coin-shop/internal/store/infrastructure/postgres"
	"github.com/Lexv0lk/coin-shop/migrations"
	"github.com/jackc/pgx/v5/pgxpool"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	migrationsDriver  = "pgx"
	migrationsDialect = "postgres"
)

type backend struct {
	catalog   domain.CatalogRepository
	coupons   domain.CouponRepository
	ledger    domain.LedgerRepository
	cart      domain.CartRepository
	orders    domain.OrdersRepository
	committer domain.PurchaseCommitter

	close func()
}

func newMemoryBackend() backend {
	store := memory.New()

	return backend{
		catalog:   store,
		coupons:   store,
		ledger:    store,
		cart:      store,
		orders:    store,
		committer: store,
		close:     func() {},
	}
}

func newPostgresBackend(ctx context.Context, cfg ShopConfig, logger logging.Logger) (backend, error) {
	dbURL := cfg.DbSettings.GetURL()

	if cfg.AutoMigrate {
		applied, err := database.MigrateDatabase(ctx, logger, dbURL, database.MigrationSource{
			FS:      migrations.FS,
			Dir:     ".",
			Driver:  migrationsDriver,
			Dialect: migrationsDialect,
		})
		if err != nil {
			return backend{}, fmt.Errorf("failed to migrate database: %w", err)
		}
		logger.Info("database migrated", "applied", applied)
	}

	dbpool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return backend{}, fmt.Errorf("failed to connect to database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.StoreTimeout)
	defer cancel()
	if err := dbpool.Ping(pingCtx); err != nil {
		dbpool.Close()
		return backend{}, fmt.Errorf("failed to reach database: %w", err)
	}

	txManager := database.NewDelegateTxManager(dbpool, logger)

	return backend{
		catalog:   postgres.NewCatalogRepository(dbpool, cfg.StoreTimeout),
		coupons:   postgres.NewCouponsRepository(dbpool, cfg.StoreTimeout),
		ledger:    postgres.NewAccountsRepository(dbpool, cfg.StoreTimeout),
		cart:      postgres.NewCartRepository(dbpool, cfg.StoreTimeout),
		orders:    postgres.NewOrdersRepository(dbpool, cfg.StoreTimeout),
		committer: postgres.NewPurchaseHandler(txManager, cfg.StoreTimeout, logger),
		close:     dbpool.Close,
	}, nil
}
