// Package sqlite stores blackjack rounds in a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/coder/quartz"
	_ "modernc.org/sqlite"

	"github.com/lox/blackjack/internal/game"
)

//go:embed schema.sql
var schema string

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Store provides SQLite-backed persistence for rounds
type Store struct {
	sqlDB *sql.DB
	clock quartz.Clock
}

// Open opens (creating if needed) a SQLite store at path. A nil clock uses
// the real clock.
func Open(ctx context.Context, path string, clock quartz.Clock) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if clock == nil {
		clock = quartz.NewReal()
	}

	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if _, err := sqlDB.ExecContext(ctx, schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{sqlDB: sqlDB, clock: clock}, nil
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) EnsurePlayer(ctx context.Context, name string) error {
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT OR IGNORE INTO players (name, created_at) VALUES (?, ?)`,
		name, toMillis(s.clock.Now()))
	if err != nil {
		return fmt.Errorf("ensure player %q: %w", name, err)
	}
	return nil
}

func (s *Store) LogRound(ctx context.Context, o game.RoundOutcome) error {
	createdAt := o.SettledAt
	if createdAt.IsZero() {
		createdAt = s.clock.Now()
	}
	_, err := s.sqlDB.ExecContext(ctx, `
		INSERT INTO rounds (name, session_id, round_no, bet, player_hand, dealer_hand,
		                    player_value, dealer_value, result, chips_after, deck_remaining, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, o.PlayerName, o.SessionID, o.Round, o.Bet, o.PlayerHand, o.DealerHand,
		o.PlayerValue, o.DealerValue, o.Result.String(), o.ChipsAfter, o.DeckRemaining, toMillis(createdAt))
	if err != nil {
		return fmt.Errorf("log round %d: %w", o.Round, err)
	}
	return nil
}

func (s *Store) Stats(ctx context.Context, name string) (*game.PlayerStats, error) {
	var stats game.PlayerStats
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(MAX(chips_after), 0) FROM rounds WHERE name = ?`,
		name).Scan(&stats.TotalRounds, &stats.MaxChips)
	if err != nil {
		return nil, fmt.Errorf("player stats %q: %w", name, err)
	}
	return &stats, nil
}

// PlayerSince returns when a player was first seen
func (s *Store) PlayerSince(ctx context.Context, name string) (time.Time, error) {
	var createdAt int64
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT created_at FROM players WHERE name = ?`, name).Scan(&createdAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("player %q: %w", name, err)
	}
	return fromMillis(createdAt), nil
}
