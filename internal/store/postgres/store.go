// Package postgres stores blackjack rounds in PostgreSQL.
package postgres

import (
	"context"
	"embed"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lox/blackjack/internal/game"
)

//go:embed schema.sql
var schema embed.FS

type DB struct{ *pgxpool.Pool }

// Open connects to dsn and checks the connection
func Open(ctx context.Context, dsn string) (*DB, error) {
	p, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := p.Ping(ctx); err != nil {
		p.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &DB{p}, nil
}

func (db *DB) Close() error {
	db.Pool.Close()
	return nil
}

// Migrate creates the tables if they do not exist yet
func (db *DB) Migrate(ctx context.Context) error {
	sqlBytes, err := schema.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	if _, err := db.Exec(ctx, string(sqlBytes)); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (db *DB) EnsurePlayer(ctx context.Context, name string) error {
	_, err := db.Exec(ctx, `INSERT INTO players(name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name)
	if err != nil {
		return fmt.Errorf("ensure player %q: %w", name, err)
	}
	return nil
}

func (db *DB) LogRound(ctx context.Context, o game.RoundOutcome) error {
	createdAt := o.SettledAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := db.Exec(ctx, `
		INSERT INTO rounds(name, session_id, round_no, bet, player_hand, dealer_hand,
		                   player_value, dealer_value, result, chips_after, deck_remaining, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`, o.PlayerName, o.SessionID, o.Round, o.Bet, o.PlayerHand, o.DealerHand,
		o.PlayerValue, o.DealerValue, o.Result.String(), o.ChipsAfter, o.DeckRemaining, createdAt.UTC())
	if err != nil {
		return fmt.Errorf("log round %d: %w", o.Round, err)
	}
	return nil
}

func (db *DB) Stats(ctx context.Context, name string) (*game.PlayerStats, error) {
	var stats game.PlayerStats
	err := db.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(MAX(chips_after), 0)
		  FROM rounds WHERE name = $1
	`, name).Scan(&stats.TotalRounds, &stats.MaxChips)
	if err != nil {
		return nil, fmt.Errorf("player stats %q: %w", name, err)
	}
	return &stats, nil
}
