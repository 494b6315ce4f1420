package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnvOrDefault(t *testing.T) {
	t.Setenv("KANBAN_TEST_VALUE", "")
	if got := EnvOrDefault("KANBAN_TEST_VALUE", "fallback"); got != "fallback" {
		t.Fatalf("empty env = %q, want fallback", got)
	}
	t.Setenv("KANBAN_TEST_VALUE", "set")
	if got := EnvOrDefault("KANBAN_TEST_VALUE", "fallback"); got != "set" {
		t.Fatalf("set env = %q, want set", got)
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "kanban.yaml")
	if err := os.WriteFile(file, []byte("addr: :9000\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if !FileExists(file) {
		t.Error("FileExists(file) = false")
	}
	if FileExists(dir) {
		t.Error("FileExists(dir) = true")
	}
	if FileExists(filepath.Join(dir, "missing")) || FileExists("") {
		t.Error("FileExists reported a missing path")
	}
}
