// Package config loads the tool's configuration from .env files and
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMissingCredentials indicates the GitHub username or token was not
// provided through the environment.
var ErrMissingCredentials = errors.New("GITHUB_USERNAME and PERSONAL_ACCESS_TOKEN are required")

// Defaults applied when the environment does not override them.
const (
	DefaultOutputDir  = "reports"
	DefaultMaxWorkers = 3
	DefaultWindowDays = 14
	DefaultVisibility = "public"
	DefaultTheme      = "light"
)

// Config holds the run configuration. Credentials come from the
// environment; the remaining fields have defaults and can be overridden
// by environment variables or command-line flags.
type Config struct {
	Username   string
	Token      string
	OutputDir  string
	MaxWorkers int
	WindowDays int
	Visibility string
	Theme      string
}

// Load reads configuration from an optional .env file and the process
// environment. envFile overrides the default .env discovery; pass "" to
// look for a .env next to the working directory.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("loading env file %s: %w", envFile, err)
		}
	} else if cwd, err := os.Getwd(); err == nil {
		// Best effort; absence of a .env file is fine when the variables
		// are already exported.
		_ = godotenv.Load(filepath.Join(cwd, ".env"))
	}

	v := viper.New()
	v.SetDefault("output_dir", DefaultOutputDir)
	v.SetDefault("max_workers", DefaultMaxWorkers)
	v.SetDefault("window_days", DefaultWindowDays)
	v.SetDefault("visibility", DefaultVisibility)
	v.SetDefault("theme", DefaultTheme)
	v.AutomaticEnv()

	// Credentials keep the names the original .env used.
	_ = v.BindEnv("github_username", "GITHUB_USERNAME")
	_ = v.BindEnv("personal_access_token", "PERSONAL_ACCESS_TOKEN")
	_ = v.BindEnv("output_dir", "OUTPUT_DIR")
	_ = v.BindEnv("max_workers", "MAX_WORKERS")
	_ = v.BindEnv("window_days", "WINDOW_DAYS")
	_ = v.BindEnv("visibility", "REPO_VISIBILITY")
	_ = v.BindEnv("theme", "REPORT_THEME")

	cfg := &Config{
		Username:   v.GetString("github_username"),
		Token:      v.GetString("personal_access_token"),
		OutputDir:  v.GetString("output_dir"),
		MaxWorkers: v.GetInt("max_workers"),
		WindowDays: v.GetInt("window_days"),
		Visibility: v.GetString("visibility"),
		Theme:      v.GetString("theme"),
	}

	if cfg.Username == "" || cfg.Token == "" {
		return nil, ErrMissingCredentials
	}
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = DefaultMaxWorkers
	}
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = DefaultWindowDays
	}

	return cfg, nil
}
