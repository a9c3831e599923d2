package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr            string        `env:"ADDR" envDefault:":3000"`
	AllowedOrigins  []string      `env:"ALLOWED_ORIGINS" envSeparator:","`
	CatalogDSN      string        `env:"CATALOG_DSN"`
	TurnTimeout     time.Duration `env:"TURN_TIMEOUT" envDefault:"0s"`
	MinPlayers      int           `env:"MIN_PLAYERS" envDefault:"3"`
	EventRate       float64       `env:"EVENT_RATE" envDefault:"120"`
	EventBurst      int           `env:"EVENT_BURST" envDefault:"240"`
	OutboxSize      int           `env:"OUTBOX_SIZE" envDefault:"256"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogDev          bool          `env:"LOG_DEV" envDefault:"false"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// Load reads optional .env files (missing ones are skipped), then the
// process environment. Variables already set win over file values.
func Load(files ...string) (Config, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Addr == "":
		return errors.New("config: ADDR is empty")
	case c.MinPlayers < 1:
		return fmt.Errorf("config: MIN_PLAYERS must be positive, got %d", c.MinPlayers)
	case c.TurnTimeout < 0:
		return fmt.Errorf("config: TURN_TIMEOUT must not be negative, got %s", c.TurnTimeout)
	case c.EventRate <= 0 || c.EventBurst <= 0:
		return errors.New("config: EVENT_RATE and EVENT_BURST must be positive")
	case c.OutboxSize <= 0:
		return fmt.Errorf("config: OUTBOX_SIZE must be positive, got %d", c.OutboxSize)
	}
	return nil
}
