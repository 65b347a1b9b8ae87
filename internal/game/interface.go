package game

import (
	"context"

	"github.com/lox/blackjack/internal/statistics"
)

// Player choices during the player's turn
const (
	ActionHit   = "H"
	ActionStand = "S"
)

// Input is where the engine gets decisions from. Implementations re-prompt
// on invalid entries themselves; an error means input is gone (interrupt or
// EOF) and the session should stop.
type Input interface {
	// AskName returns the player's identity, falling back to a default for blank input.
	AskName(ctx context.Context) (string, error)
	// AskBet returns a bet between 1 and chips inclusive.
	AskBet(ctx context.Context, chips int) (int, error)
	// AskChoice returns one of options, matched case-insensitively.
	AskChoice(ctx context.Context, prompt string, options []string) (string, error)
	// AskContinue asks whether to play another round. Blank means yes.
	AskContinue(ctx context.Context, chips int) (bool, error)
	// Acknowledge waits for the player to read the result.
	Acknowledge(ctx context.Context) error
}

// TableView is a snapshot of everything the display needs to draw the table.
type TableView struct {
	Header         string
	Round          int
	CardsRemaining int
	PlayerName     string
	Player         Hand
	PlayerValue    int
	Dealer         Hand
	DealerValue    int
	RevealDealer   bool
	Chips          int
	Bet            int
	Stats          *PlayerStats
	Recent         []statistics.Record
	Notice         string // shown with the table, e.g. a failed stats lookup
}

// Display renders table state and messages
type Display interface {
	ShowTable(view TableView)
	ShowResult(outcome RoundOutcome)
	Notice(msg string)
	Message(msg string)
}

// PlayerStats are the lifetime aggregates a store keeps per player name.
type PlayerStats struct {
	TotalRounds int
	MaxChips    int
}

// Store persists round outcomes. Writes are best-effort: callers log and
// ignore errors.
type Store interface {
	EnsurePlayer(ctx context.Context, name string) error
	LogRound(ctx context.Context, outcome RoundOutcome) error
	// Stats returns nil stats when the store keeps none.
	Stats(ctx context.Context, name string) (*PlayerStats, error)
	Close() error
}

// OfflineStore is the Store used when no database is attached. Every call
// succeeds and nothing is kept.
type OfflineStore struct{}

func (OfflineStore) EnsurePlayer(context.Context, string) error          { return nil }
func (OfflineStore) LogRound(context.Context, RoundOutcome) error        { return nil }
func (OfflineStore) Stats(context.Context, string) (*PlayerStats, error) { return nil, nil }
func (OfflineStore) Close() error                                        { return nil }
