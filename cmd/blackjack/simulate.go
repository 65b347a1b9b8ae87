package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/fileutil"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/simulator"
)

// SimulateCmd runs a strategy over many rounds without any prompts
type SimulateCmd struct {
	Rounds   int    `default:"100000" help:"Number of rounds to simulate"`
	Strategy string `default:"basic" enum:"dealer,cautious,basic" help:"Strategy: dealer, cautious, basic"`
	Decks    int    `default:"6" help:"Number of 52-card decks in the shoe"`
	Chips    int    `default:"1000000" help:"Starting bankroll"`
	Bet      int    `default:"10" help:"Flat bet per round"`
	Seed     int64  `default:"0" help:"RNG seed (0 for random)"`
	JSON     string `name:"json" help:"Write the result summary as JSON to this file"`
	Verbose  bool   `help:"Verbose logging"`
}

func (c *SimulateCmd) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return c.run(ctx, os.Stdout, os.Stderr)
}

func (c *SimulateCmd) run(ctx context.Context, out, errOut io.Writer) error {
	level := log.WarnLevel
	if c.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(errOut, log.Options{Level: level, ReportTimestamp: true})

	seed := randutil.Resolve(c.Seed)
	logger.Info("Starting simulation", "rounds", c.Rounds, "strategy", c.Strategy, "decks", c.Decks, "seed", seed)

	start := time.Now()
	stats, err := simulator.New(simulator.Config{
		Rounds:   c.Rounds,
		Decks:    c.Decks,
		Chips:    c.Chips,
		Bet:      c.Bet,
		Strategy: c.Strategy,
		Seed:     seed,
		Logger:   logger,
	}).Run(ctx)
	if err != nil {
		return err
	}

	simulator.PrintSummary(out, stats, c.Strategy)
	if ctx.Err() != nil {
		fmt.Fprintf(out, "\nStopped early after %d of %d rounds (interrupted)\n", stats.Rounds, c.Rounds)
	} else if stats.Rounds < c.Rounds {
		fmt.Fprintf(out, "\nStopped early after %d of %d rounds (out of chips)\n", stats.Rounds, c.Rounds)
	}
	fmt.Fprintf(out, "\nSeed: %d (replay with --seed %d)\n", seed, seed)
	fmt.Fprintf(out, "Elapsed: %s\n", time.Since(start).Round(time.Millisecond))

	if c.JSON != "" {
		if err := fileutil.WriteJSON(c.JSON, stats.Summary()); err != nil {
			return fmt.Errorf("write %s: %w", c.JSON, err)
		}
	}
	return nil
}
