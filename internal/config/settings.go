package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Settings are process-level options read from the environment (and an
// optional .env file). Command line flags take precedence over them.
type Settings struct {
	ConfigPath string `env:"PREFLOP_CONFIG"`
	Seed       int64  `env:"PREFLOP_SEED"`
	Mode       string `env:"PREFLOP_MODE"`
	LogLevel   string `env:"PREFLOP_LOG_LEVEL" envDefault:"info"`
	LogFile    string `env:"PREFLOP_LOG_FILE" envDefault:"preflop-trainer.log"`
	HistoryDB  string `env:"PREFLOP_HISTORY_DB"`
	NoHistory  bool   `env:"PREFLOP_NO_HISTORY"`
}

// LoadSettings loads .env files (missing files are ignored) and parses the
// PREFLOP_* environment variables.
func LoadSettings(dotenvFiles ...string) (*Settings, error) {
	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load(dotenvFiles...)

	var s Settings
	if err := env.Parse(&s); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &s, nil
}
