package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func setCredentials(t *testing.T) {
	t.Helper()
	t.Setenv("GITHUB_USERNAME", "octocat")
	t.Setenv("PERSONAL_ACCESS_TOKEN", "ghp_testtoken")
}

func TestLoadDefaults(t *testing.T) {
	setCredentials(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Username != "octocat" {
		t.Errorf("Username = %q, want octocat", cfg.Username)
	}
	if cfg.Token != "ghp_testtoken" {
		t.Errorf("Token = %q, want ghp_testtoken", cfg.Token)
	}
	if cfg.OutputDir != DefaultOutputDir {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, DefaultOutputDir)
	}
	if cfg.MaxWorkers != DefaultMaxWorkers {
		t.Errorf("MaxWorkers = %d, want %d", cfg.MaxWorkers, DefaultMaxWorkers)
	}
	if cfg.WindowDays != DefaultWindowDays {
		t.Errorf("WindowDays = %d, want %d", cfg.WindowDays, DefaultWindowDays)
	}
	if cfg.Visibility != DefaultVisibility {
		t.Errorf("Visibility = %q, want %q", cfg.Visibility, DefaultVisibility)
	}
	if cfg.Theme != DefaultTheme {
		t.Errorf("Theme = %q, want %q", cfg.Theme, DefaultTheme)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	setCredentials(t)
	t.Setenv("OUTPUT_DIR", "custom-reports")
	t.Setenv("MAX_WORKERS", "7")
	t.Setenv("WINDOW_DAYS", "7")
	t.Setenv("REPO_VISIBILITY", "private")
	t.Setenv("REPORT_THEME", "dark")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.OutputDir != "custom-reports" {
		t.Errorf("OutputDir = %q, want custom-reports", cfg.OutputDir)
	}
	if cfg.MaxWorkers != 7 {
		t.Errorf("MaxWorkers = %d, want 7", cfg.MaxWorkers)
	}
	if cfg.WindowDays != 7 {
		t.Errorf("WindowDays = %d, want 7", cfg.WindowDays)
	}
	if cfg.Visibility != "private" {
		t.Errorf("Visibility = %q, want private", cfg.Visibility)
	}
	if cfg.Theme != "dark" {
		t.Errorf("Theme = %q, want dark", cfg.Theme)
	}
}

func TestLoadClampsInvalidNumbers(t *testing.T) {
	setCredentials(t)
	t.Setenv("MAX_WORKERS", "-2")
	t.Setenv("WINDOW_DAYS", "0")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.MaxWorkers != DefaultMaxWorkers {
		t.Errorf("MaxWorkers = %d, want %d", cfg.MaxWorkers, DefaultMaxWorkers)
	}
	if cfg.WindowDays != DefaultWindowDays {
		t.Errorf("WindowDays = %d, want %d", cfg.WindowDays, DefaultWindowDays)
	}
}

func TestLoadMissingCredentials(t *testing.T) {
	t.Setenv("GITHUB_USERNAME", "")
	t.Setenv("PERSONAL_ACCESS_TOKEN", "")

	_, err := Load("")
	if !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("Load error = %v, want ErrMissingCredentials", err)
	}
}

func TestLoadEnvFile(t *testing.T) {
	// godotenv does not override variables already in the environment, so
	// clear them first and restore afterwards via t.Setenv's cleanup.
	t.Setenv("GITHUB_USERNAME", "")
	t.Setenv("PERSONAL_ACCESS_TOKEN", "")
	os.Unsetenv("GITHUB_USERNAME")
	os.Unsetenv("PERSONAL_ACCESS_TOKEN")

	envFile := filepath.Join(t.TempDir(), ".env")
	content := "GITHUB_USERNAME=filed-user\nPERSONAL_ACCESS_TOKEN=filed-token\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatalf("writing env file: %v", err)
	}

	cfg, err := Load(envFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Username != "filed-user" {
		t.Errorf("Username = %q, want filed-user", cfg.Username)
	}
	if cfg.Token != "filed-token" {
		t.Errorf("Token = %q, want filed-token", cfg.Token)
	}
}

func TestLoadMissingEnvFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.env"))
	if err == nil {
		t.Fatal("Load returned nil error for a missing env file")
	}
}
