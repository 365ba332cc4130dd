package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const appName = "authdash"

type Config struct {
	DataDir        string        `env:"AUTHDASH_DATA_DIR"`
	DBPath         string        `env:"AUTHDASH_DB_PATH"`
	LogPath        string        `env:"AUTHDASH_LOG_PATH"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	BackendURL     string        `env:"BACKEND_URL" envDefault:"http://127.0.0.1:5000"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
}

// Default returns the configuration used when nothing is set in the environment.
func Default() Config {
	dataDir := filepath.Join(userConfigDir(), appName)
	return Config{
		DataDir:        dataDir,
		DBPath:         filepath.Join(dataDir, appName+".db"),
		LogPath:        filepath.Join(dataDir, "debug.log"),
		LogLevel:       "info",
		BackendURL:     "http://127.0.0.1:5000",
		RequestTimeout: 10 * time.Second,
	}
}

// Load reads the given env files (or ./.env when none are given) and overlays
// the environment on top of Default. Missing env files are not an error.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		_ = godotenv.Load()
	} else if err := godotenv.Load(envFiles...); err != nil {
		return Config{}, fmt.Errorf("loading env files: %w", err)
	}

	cfg := Default()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}

	// A data dir override moves the derived paths with it unless they were
	// set explicitly.
	if dir, ok := os.LookupEnv("AUTHDASH_DATA_DIR"); ok && dir != "" {
		if _, set := os.LookupEnv("AUTHDASH_DB_PATH"); !set {
			cfg.DBPath = filepath.Join(dir, appName+".db")
		}
		if _, set := os.LookupEnv("AUTHDASH_LOG_PATH"); !set {
			cfg.LogPath = filepath.Join(dir, "debug.log")
		}
	}

	cfg.BackendURL = strings.TrimRight(cfg.BackendURL, "/")
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings that would otherwise fail late.
func (c Config) Validate() error {
	if c.BackendURL == "" {
		return fmt.Errorf("BACKEND_URL is required")
	}
	if !strings.HasPrefix(c.BackendURL, "http://") && !strings.HasPrefix(c.BackendURL, "https://") {
		return fmt.Errorf("BACKEND_URL must be an http(s) URL, got %q", c.BackendURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}
	return nil
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func userConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}
