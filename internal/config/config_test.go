package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, k := range []string{"HAWK_DB_PATH", "HAWK_USERNAME", "HAWK_SEED", "HAWK_LOG_FILE", "HAWK_TICK"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Username != "DemogorgonHunter" || cfg.Seed != 0 || cfg.Tick != 16*time.Millisecond {
		t.Fatalf("defaults: %+v", cfg)
	}
	if cfg.DBPath != filepath.Join(home, ".hawkins.db") {
		t.Fatalf("db path=%q", cfg.DBPath)
	}
	if cfg.LogFile != filepath.Join(home, DefaultLogName) {
		t.Fatalf("log file=%q, want beside the database", cfg.LogFile)
	}
}

func TestLoadFileAndEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	body := "HAWK_USERNAME=Eleven\nHAWK_SEED=42\nHAWK_DB_PATH=" + filepath.Join(dir, "p.db") + "\n"
	if err := os.WriteFile(envFile, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	for _, k := range []string{"HAWK_USERNAME", "HAWK_SEED", "HAWK_DB_PATH", "HAWK_LOG_FILE"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Setenv("HAWK_TICK", "33ms")

	cfg, err := Load(envFile)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Username != "Eleven" || cfg.Seed != 42 || cfg.Tick != 33*time.Millisecond || cfg.DBPath != filepath.Join(dir, "p.db") {
		t.Fatalf("cfg=%+v", cfg)
	}
	if cfg.LogFile != filepath.Join(dir, DefaultLogName) {
		t.Fatalf("log file=%q, want in %s", cfg.LogFile, dir)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("HAWK_SEED", "not-a-number")
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("err=%v, want parse env error", err)
	}

	t.Setenv("HAWK_SEED", "1")
	t.Setenv("HAWK_TICK", "0s")
	if _, err := Load(); err == nil {
		t.Fatalf("zero tick accepted")
	}
}

func TestLoadKeepsExplicitLogFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HAWK_DB_PATH", filepath.Join(dir, "p.db"))
	t.Setenv("HAWK_LOG_FILE", filepath.Join(dir, "logs", "run.log"))
	t.Setenv("HAWK_SEED", "0")
	t.Setenv("HAWK_TICK", "16ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogFile != filepath.Join(dir, "logs", "run.log") {
		t.Fatalf("log file=%q", cfg.LogFile)
	}
}
