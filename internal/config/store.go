package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
)

// Store drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverNone     = "none"
)

// StoreConfig selects and configures the round store
type StoreConfig struct {
	Driver         string        `env:"DB_DRIVER"          envDefault:"postgres"`
	URL            string        `env:"DATABASE_URL"`
	Host           string        `env:"DB_HOST"            envDefault:"localhost"`
	Port           int           `env:"DB_PORT"            envDefault:"5432"`
	User           string        `env:"DB_USER"            envDefault:"blackjack"`
	Password       string        `env:"DB_PASS"`
	Name           string        `env:"DB_NAME"            envDefault:"blackjack"`
	Path           string        `env:"DB_PATH"            envDefault:"blackjack.db"`
	ConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"5s"`
}

// DefaultStore returns the store settings used with an empty environment
func DefaultStore() StoreConfig {
	return StoreConfig{
		Driver:         DriverPostgres,
		Host:           "localhost",
		Port:           5432,
		User:           "blackjack",
		Name:           "blackjack",
		Path:           "blackjack.db",
		ConnectTimeout: 5 * time.Second,
	}
}

// LoadStore reads the store settings from the environment
func LoadStore() (StoreConfig, error) {
	var cfg StoreConfig
	if err := env.Parse(&cfg); err != nil {
		return StoreConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks the driver and its required settings
func (s StoreConfig) Validate() error {
	switch s.Driver {
	case DriverPostgres:
		if s.URL == "" && (s.Host == "" || s.Name == "") {
			return fmt.Errorf("postgres store needs DATABASE_URL or DB_HOST and DB_NAME")
		}
	case DriverSQLite:
		if s.Path == "" {
			return fmt.Errorf("sqlite store needs DB_PATH")
		}
	case DriverNone:
	default:
		return fmt.Errorf("unknown DB_DRIVER %q (want postgres, sqlite or none)", s.Driver)
	}
	if s.ConnectTimeout <= 0 {
		return fmt.Errorf("connect timeout must be positive")
	}
	return nil
}

// PostgresDSN returns DATABASE_URL when set, otherwise a URL built from the
// individual DB_* settings.
func (s StoreConfig) PostgresDSN() string {
	if s.URL != "" {
		return s.URL
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(s.Host, strconv.Itoa(s.Port)),
		Path:   "/" + s.Name,
	}
	if s.Password != "" {
		u.User = url.UserPassword(s.User, s.Password)
	} else if s.User != "" {
		u.User = url.User(s.User)
	}
	q := url.Values{}
	q.Set("connect_timeout", strconv.Itoa(max(1, int(s.ConnectTimeout.Seconds()))))
	u.RawQuery = q.Encode()
	return u.String()
}
