package store

import (
	"context"
	"fmt"

	"github.com/vsinha/importdesk/pkg/config"
	"github.com/vsinha/importdesk/pkg/logger"
)

// Open builds the backend selected in configuration
func Open(ctx context.Context, cfg *config.Config, logg *logger.Logger) (Store, error) {
	var (
		s   Store
		err error
	)
	switch cfg.Store.Backend {
	case config.BackendMemory:
		s = NewMemoryStore()
	case config.BackendFile:
		s, err = NewFileStore(cfg.Store.Path, cfg.Store.Namespace)
	case config.BackendRedis:
		s, err = NewRedisStore(ctx, cfg.Redis, cfg.Store.Namespace)
	case config.BackendSQLite:
		s, err = OpenSQLite(ctx, cfg.SQL.DSN, cfg.Store.Namespace)
	case config.BackendPostgres:
		s, err = OpenPostgres(ctx, cfg.SQL.DSN, cfg.Store.Namespace)
	default:
		return nil, fmt.Errorf("unsupported store backend %q", cfg.Store.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", cfg.Store.Backend, err)
	}
	if logg != nil {
		logg.Debug(logg.WithField(ctx, "backend", cfg.Store.Backend), "store opened")
	}
	return s, nil
}
