// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"hawkins/internal/storage"
)

// DefaultLogName is the log file kept next to the database when HAWK_LOG_FILE is unset.
const DefaultLogName = ".hawkins.log"

type Config struct {
	DBPath   string        `env:"HAWK_DB_PATH"`
	Username string        `env:"HAWK_USERNAME" envDefault:"DemogorgonHunter"`
	Seed     uint64        `env:"HAWK_SEED" envDefault:"0"`
	LogFile  string        `env:"HAWK_LOG_FILE"`
	Tick     time.Duration `env:"HAWK_TICK" envDefault:"16ms"`
}

// Load reads envFiles (missing files are skipped) and then parses the
// environment. Variables already set win over file values.
func Load(envFiles ...string) (Config, error) {
	for _, path := range envFiles {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", path, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Username = strings.TrimSpace(cfg.Username)
	if cfg.Tick <= 0 {
		return Config{}, fmt.Errorf("HAWK_TICK must be positive, got %s", cfg.Tick)
	}
	if cfg.DBPath == "" {
		path, err := storage.DefaultDBPath()
		if err != nil {
			return Config{}, err
		}
		cfg.DBPath = path
	}
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(filepath.Dir(cfg.DBPath), DefaultLogName)
	}
	return cfg, nil
}
