// Package simulator plays many rounds of blackjack with a fixed strategy
// and reports how it fared.
package simulator

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/statistics"
)

// Config holds configuration for running simulations
type Config struct {
	Rounds   int
	Decks    int
	Chips    int
	Bet      int
	Strategy string
	Seed     int64
	Logger   *log.Logger
}

// Simulator runs blackjack rounds against the real engine
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	return &Simulator{config: config}
}

// Run plays until the round count is reached, the bankroll is gone or ctx is
// done. Rounds played before a cancellation are still returned.
func (s *Simulator) Run(ctx context.Context) (*statistics.Tracker, error) {
	strategy, err := NewStrategy(s.config.Strategy)
	if err != nil {
		return nil, err
	}
	if s.config.Bet < 1 {
		return nil, fmt.Errorf("bet must be at least 1")
	}
	if s.config.Chips < s.config.Bet {
		return nil, fmt.Errorf("chips (%d) must cover one bet (%d)", s.config.Chips, s.config.Bet)
	}

	bot := &autoPlayer{strategy: strategy, bet: s.config.Bet}
	engine := game.NewEngine(game.EngineConfig{
		Deck:    deck.New(s.config.Decks, randutil.New(s.config.Seed)),
		Player:  game.NewPlayer(strategy.Name(), s.config.Chips),
		Input:   bot,
		Display: bot,
		Logger:  s.config.Logger,
	})

	for range s.config.Rounds {
		if err := ctx.Err(); err != nil {
			s.config.Logger.Info("Simulation interrupted", "rounds", engine.Round(), "error", err)
			break
		}
		if engine.Player().Chips <= 0 {
			s.config.Logger.Info("Bankroll exhausted", "rounds", engine.Round())
			break
		}
		if _, err := engine.PlayRound(ctx); err != nil {
			return nil, fmt.Errorf("round %d: %w", engine.Round(), err)
		}
	}

	history := engine.History()
	if err := history.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return history, nil
}

// PrintSummary writes a report of simulation results
func PrintSummary(w io.Writer, stats *statistics.Tracker, strategy string) {
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== FINAL RESULTS: %s strategy ===\n", strategy)
	fmt.Fprintf(w, "Rounds played: %d\n", stats.Rounds)
	fmt.Fprintf(w, "Chips: %d -> %d (net %+d, peak %d)\n",
		stats.StartChips, stats.StartChips+stats.Net, stats.Net, stats.PeakChips)

	fmt.Fprintf(w, "\n=== STATISTICAL RESULTS ===\n")
	fmt.Fprintf(w, "Mean: %.4f chips/round\n", stats.Mean())
	fmt.Fprintf(w, "Std Dev: %.4f chips\n", stats.StdDev())
	fmt.Fprintf(w, "Std Error: %.4f chips\n", stats.StdError())
	fmt.Fprintf(w, "95%% CI: [%.4f, %.4f] chips/round\n", low, high)
	fmt.Fprintf(w, "Win rate: %.1f%%\n", stats.WinRate()*100)

	fmt.Fprintf(w, "\n=== RESULT BREAKDOWN ===\n")
	for _, r := range game.Results {
		n, ok := stats.ByResult[r.String()]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%-12s %7d (%.1f%%)\n", r, n, float64(n)/float64(stats.Rounds)*100)
	}
}
