// Package config loads game settings from an HCL file and the database
// settings from the environment.
package config

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// DefaultFile is the config file read when none is named
const DefaultFile = "blackjack.hcl"

// Config is the complete game configuration
type Config struct {
	Table TableSettings
	UI    UISettings
	Store StoreConfig

	// StoreErr records DB_* settings that could not be parsed. The game
	// still starts, offline.
	StoreErr error
}

// fileConfig mirrors the HCL layout; both blocks may be left out
type fileConfig struct {
	Table *TableSettings `hcl:"table,block"`
	UI    *UISettings    `hcl:"ui,block"`
}

// TableSettings tune the table. Dealer rules are fixed.
type TableSettings struct {
	Decks            int   `hcl:"decks,optional"`
	StartingChips    int   `hcl:"starting_chips,optional"`
	LowCardThreshold int   `hcl:"low_card_threshold,optional"`
	Seed             int64 `hcl:"seed,optional"` // 0 picks a random seed
}

// UISettings contains terminal and logging settings
type UISettings struct {
	LogLevel    string `hcl:"log_level,optional"`
	LogFile     string `hcl:"log_file,optional"`
	Plain       bool   `hcl:"plain,optional"`
	NoClear     bool   `hcl:"no_clear,optional"`
	SummaryFile string `hcl:"summary_file,optional"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Table: TableSettings{
			Decks:            1,
			StartingChips:    100,
			LowCardThreshold: 15,
		},
		UI: UISettings{
			LogLevel: "info",
			LogFile:  "blackjack.log",
		},
		Store: DefaultStore(),
	}
}

// Load reads an HCL config file. A missing file yields the defaults, and
// values left out of the file fall back to their defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &fc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config := Default()
	if fc.Table != nil {
		config.Table = *fc.Table
	}
	if fc.UI != nil {
		config.UI = *fc.UI
	}
	config.applyDefaults()
	return config, nil
}

func (c *Config) applyDefaults() {
	defaults := Default()

	if c.Table.Decks == 0 {
		c.Table.Decks = defaults.Table.Decks
	}
	if c.Table.StartingChips == 0 {
		c.Table.StartingChips = defaults.Table.StartingChips
	}
	if c.Table.LowCardThreshold == 0 {
		c.Table.LowCardThreshold = defaults.Table.LowCardThreshold
	}

	if c.UI.LogLevel == "" {
		c.UI.LogLevel = defaults.UI.LogLevel
	}
	if c.UI.LogFile == "" {
		c.UI.LogFile = defaults.UI.LogFile
	}
}

// Validate checks the configuration for values the game cannot start with.
// Store settings are checked when the store is opened, so bad DB_* values
// only cost persistence.
func (c *Config) Validate() error {
	if c.Table.Decks < 1 || c.Table.Decks > 8 {
		return fmt.Errorf("decks must be between 1 and 8, got %d", c.Table.Decks)
	}
	if c.Table.StartingChips <= 0 {
		return fmt.Errorf("starting chips must be positive")
	}
	if c.Table.LowCardThreshold < 0 {
		return fmt.Errorf("low card threshold cannot be negative")
	}
	_, err := c.Level()
	return err
}

// Level returns the configured log level
func (c *Config) Level() (log.Level, error) {
	level, err := log.ParseLevel(c.UI.LogLevel)
	if err != nil {
		return 0, fmt.Errorf("invalid log level: %s", c.UI.LogLevel)
	}
	return level, nil
}
