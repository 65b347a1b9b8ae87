package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"

	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/display"
	"github.com/lox/blackjack/internal/fileutil"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/prompt"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/sessionid"
	"github.com/lox/blackjack/internal/statistics"
	"github.com/lox/blackjack/internal/store"
)

// PlayCmd plays an interactive session
type PlayCmd struct {
	Config   string `help:"HCL config file (default blackjack.hcl, missing file uses defaults)"`
	EnvFile  string `name:"env-file" default:".env" help:"dotenv file with DB_* settings"`
	Decks    int    `help:"Number of 52-card decks in the shoe"`
	Chips    int    `help:"Starting chips"`
	LowCards int    `name:"low-cards" help:"Warn when fewer cards than this remain"`
	Seed     int64  `help:"Shuffle seed for a reproducible shoe"`
	Plain    bool   `help:"Line prompts without colours or screen clearing"`
	LogLevel string `name:"log-level" help:"Log level (debug, info, warn, error)"`
	LogFile  string `name:"log-file" help:"Log file path"`
	Summary  string `help:"Write a JSON session summary to this file on exit"`
}

// sessionSummary is written to --summary when the session ends
type sessionSummary struct {
	SessionID string             `json:"session_id"`
	Player    string             `json:"player"`
	Seed      int64              `json:"seed"`
	Decks     int                `json:"decks"`
	StartedAt time.Time          `json:"started_at"`
	EndedAt   time.Time          `json:"ended_at"`
	Offline   bool               `json:"offline"`
	Stats     statistics.Summary `json:"stats"`
}

// loadConfig merges the config file, environment and flags
func (c *PlayCmd) loadConfig() (*config.Config, error) {
	if err := godotenv.Load(c.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", c.EnvFile, err)
	}

	path := c.Config
	if path == "" {
		path = config.DefaultFile
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if cfg.Store, err = config.LoadStore(); err != nil {
		cfg.Store, cfg.StoreErr = config.DefaultStore(), err
	}

	if c.Decks != 0 {
		cfg.Table.Decks = c.Decks
	}
	if c.Chips != 0 {
		cfg.Table.StartingChips = c.Chips
	}
	if c.LowCards != 0 {
		cfg.Table.LowCardThreshold = c.LowCards
	}
	if c.Seed != 0 {
		cfg.Table.Seed = c.Seed
	}
	if c.Plain {
		cfg.UI.Plain = true
	}
	if c.LogLevel != "" {
		cfg.UI.LogLevel = c.LogLevel
	}
	if c.LogFile != "" {
		cfg.UI.LogFile = c.LogFile
	}
	if c.Summary != "" {
		cfg.UI.SummaryFile = c.Summary
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *PlayCmd) Run() error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	level, _ := cfg.Level()
	logFile, err := os.OpenFile(cfg.UI.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	logger := log.NewWithOptions(logFile, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	interactive := !cfg.UI.Plain &&
		isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())

	term := display.New(os.Stdout, display.Options{
		LowCardThreshold: cfg.Table.LowCardThreshold,
		ClearScreen:      interactive && !cfg.UI.NoClear,
		Plain:            !interactive,
	})

	var input game.Input
	if interactive {
		input = prompt.NewTea(nil, nil, logger)
	} else {
		input = prompt.NewLine(os.Stdin, os.Stdout, logger)
	}

	return play(ctx, cfg, input, term, quartz.NewReal(), logger)
}

// play runs one session from the welcome banner to the farewell
func play(ctx context.Context, cfg *config.Config, input game.Input, term *display.Terminal, clock quartz.Clock, logger *log.Logger) error {
	startedAt := clock.Now()
	term.Banner()

	name, err := input.AskName(ctx)
	if err != nil {
		return farewell(term, err)
	}

	st, err := connectStore(ctx, cfg, name, clock, logger)
	switch {
	case errors.Is(err, store.ErrDisabled):
		term.Message("(Persistence disabled, playing offline)")
	case err != nil:
		term.Notice(fmt.Sprintf("Database unavailable, playing offline: %v", err))
	default:
		term.Message(fmt.Sprintf("(Connected to %s)", cfg.Store.Driver))
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Warn("Failed to close store", "error", err)
		}
	}()

	seed := randutil.Resolve(cfg.Table.Seed)
	sid, err := sessionid.NewGenerator(clock, nil).New()
	if err != nil {
		logger.Warn("Failed to create session id", "error", err)
	}
	logger.Info("Session starting",
		"session", sid,
		"player", name,
		"seed", seed,
		"decks", cfg.Table.Decks,
		"chips", cfg.Table.StartingChips)

	engine := game.NewEngine(game.EngineConfig{
		Deck:      deck.New(cfg.Table.Decks, randutil.New(seed)),
		Player:    game.NewPlayer(name, cfg.Table.StartingChips),
		Input:     input,
		Display:   term,
		Store:     st,
		Clock:     clock,
		Logger:    logger,
		SessionID: sid,
	})

	runErr := game.NewSession(engine, input, term, logger).Run(ctx)

	history := engine.History()
	if err := history.Validate(); err != nil {
		logger.Error("Session ledger mismatch", "error", err)
	}
	if cfg.UI.SummaryFile != "" {
		_, offline := st.(game.OfflineStore)
		summary := sessionSummary{
			SessionID: sid,
			Player:    name,
			Seed:      seed,
			Decks:     cfg.Table.Decks,
			StartedAt: startedAt,
			EndedAt:   clock.Now(),
			Offline:   offline,
			Stats:     history.Summary(),
		}
		if err := fileutil.WriteJSON(cfg.UI.SummaryFile, summary); err != nil {
			logger.Warn("Failed to write session summary", "file", cfg.UI.SummaryFile, "error", err)
			term.Notice(fmt.Sprintf("Could not write summary: %v", err))
		}
	}

	if runErr != nil {
		return farewell(term, runErr)
	}
	return nil
}

// connectStore opens the configured store, or stays offline when the DB_*
// settings could not be read
func connectStore(ctx context.Context, cfg *config.Config, name string, clock quartz.Clock, logger *log.Logger) (game.Store, error) {
	if cfg.StoreErr != nil {
		logger.Warn("Invalid store settings, playing offline", "error", cfg.StoreErr)
		return game.OfflineStore{}, cfg.StoreErr
	}
	return store.Connect(ctx, cfg.Store, name, clock, logger)
}

// farewell turns an interrupt or end of input into a clean exit
func farewell(term *display.Terminal, err error) error {
	if errors.Is(err, prompt.ErrInterrupted) || errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		term.Message("\nLeft the game.")
		return nil
	}
	return err
}
