package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("KANBAN_CONFIG", "")

	cfg, err := Load(Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != "127.0.0.1:8080" || cfg.DBPath != "data/kanban.db" || !cfg.Scoped {
		t.Fatalf("defaults = %+v", cfg)
	}
	if cfg.Breaker.Timeout != 5*time.Second || cfg.Breaker.MaxFailures != 3 {
		t.Fatalf("breaker defaults = %+v", cfg.Breaker)
	}
	if cfg.Log.MaxSizeMB != 10 || cfg.Log.Level != "info" {
		t.Fatalf("log defaults = %+v", cfg.Log)
	}
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "board.yaml", `
addr: ":9000"
db_path: /tmp/from-file.db
scoped: false
log:
  level: debug
breaker:
  timeout: 30s
`)
	t.Setenv("KANBAN_DB_PATH", "/tmp/from-env.db")
	t.Setenv("KANBAN_LOG_FILE", "/tmp/kanban.log")

	chdir(t, dir)

	cfg, err := Load(Options{ConfigFile: file})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":9000" {
		t.Errorf("addr = %q, want file value", cfg.Addr)
	}
	if cfg.DBPath != "/tmp/from-env.db" {
		t.Errorf("db_path = %q, want env value", cfg.DBPath)
	}
	if cfg.Scoped {
		t.Error("scoped = true, want file value false")
	}
	if cfg.Log.Level != "debug" || cfg.Log.File != "/tmp/kanban.log" {
		t.Errorf("log = %+v", cfg.Log)
	}
	if cfg.Breaker.Timeout != 30*time.Second {
		t.Errorf("breaker.timeout = %v", cfg.Breaker.Timeout)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := writeFile(t, dir, "test.env", "KANBAN_STATIC_DIR=/srv/board\n")
	t.Setenv("KANBAN_CONFIG", "")
	chdir(t, dir)
	// Register for cleanup so the value loaded by godotenv does not leak.
	t.Setenv("KANBAN_STATIC_DIR", "")
	os.Unsetenv("KANBAN_STATIC_DIR")

	cfg, err := Load(Options{EnvFile: envFile})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.StaticDir != "/srv/board" {
		t.Fatalf("static_dir = %q, want value from .env", cfg.StaticDir)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(Options{ConfigFile: filepath.Join(t.TempDir(), "nope.yaml")}); err == nil {
		t.Fatal("Load succeeded with a missing explicit config file")
	}
}

func TestLoadMissingExplicitEnvFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("KANBAN_CONFIG", "")

	_, err := Load(Options{EnvFile: filepath.Join(dir, "nope.env")})
	if err == nil {
		t.Fatal("Load succeeded with a missing explicit env file")
	}
	if !strings.Contains(err.Error(), "nope.env") {
		t.Errorf("error %q does not name the file", err)
	}
}

func TestLoadWithoutDefaultEnvFile(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("KANBAN_CONFIG", "")

	if _, err := Load(Options{}); err != nil {
		t.Fatalf("Load without ./.env: %v", err)
	}
}

func TestValidate(t *testing.T) {
	cfg := Config{Addr: ":8080"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty db_path accepted")
	}
}
