// Package store opens the round store selected by configuration.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/store/postgres"
	"github.com/lox/blackjack/internal/store/sqlite"
)

// ErrDisabled is returned by Open when persistence is turned off
var ErrDisabled = errors.New("store: persistence disabled")

// Open opens and migrates the configured backend
func Open(ctx context.Context, cfg config.StoreConfig, clock quartz.Clock) (game.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	switch cfg.Driver {
	case config.DriverNone:
		return nil, ErrDisabled
	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.PostgresDSN())
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
		return db, nil
	case config.DriverSQLite:
		return sqlite.Open(ctx, cfg.Path, clock)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// Connect checks the settings, opens the store and registers the player. Any
// failure leaves the session offline for good: the returned store is then
// game.OfflineStore and the error says why.
func Connect(ctx context.Context, cfg config.StoreConfig, player string, clock quartz.Clock, logger *log.Logger) (game.Store, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger = logger.WithPrefix("store")

	if err := cfg.Validate(); err != nil {
		logger.Warn("Invalid store settings, playing offline", "driver", cfg.Driver, "error", err)
		return game.OfflineStore{}, err
	}

	s, err := Open(ctx, cfg, clock)
	if errors.Is(err, ErrDisabled) {
		logger.Info("Persistence disabled", "driver", cfg.Driver)
		return game.OfflineStore{}, err
	}
	if err != nil {
		logger.Warn("Store unavailable, playing offline", "driver", cfg.Driver, "error", err)
		return game.OfflineStore{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := s.EnsurePlayer(ctx, player); err != nil {
		_ = s.Close()
		logger.Warn("Could not register player, playing offline", "player", player, "error", err)
		return game.OfflineStore{}, err
	}

	logger.Info("Store connected", "driver", cfg.Driver, "player", player)
	return s, nil
}
