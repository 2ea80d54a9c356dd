package database

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/Lexv0lk/coin-shop/internal/pkg/logging"
	"github.com/pressly/goose/v3"
)

// MigrationSource points at a directory of goose SQL migrations.
type MigrationSource struct {
	FS      fs.FS
	Dir     string
	Driver  string
	Dialect string
}

// MigrateDatabase applies every pending migration and returns how many ran.
func MigrateDatabase(ctx context.Context, logger logging.Logger, databaseUrl string, source MigrationSource) (int, error) {
	dir, err := fs.Sub(source.FS, source.Dir)
	if err != nil {
		return 0, fmt.Errorf("failed to open migrations dir %q: %w", source.Dir, err)
	}

	db, err := sql.Open(source.Driver, databaseUrl)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s connection: %w", source.Driver, err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.Dialect(source.Dialect), db, dir)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare migrations: %w", err)
	}

	results, err := provider.Up(ctx)
	for _, result := range results {
		if result.Error != nil {
			continue
		}
		logger.Debug("migration applied",
			"version", result.Source.Version,
			"path", result.Source.Path,
			"duration", result.Duration,
		)
	}
	if err != nil {
		return len(results), fmt.Errorf("failed to apply migrations: %w", err)
	}

	return len(results), nil
}
