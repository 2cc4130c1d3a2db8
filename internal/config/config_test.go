package config

import (
	"os"
	"path/filepath"
	"testing"
)

func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func TestLoadReturnsDefaultsWithoutFile(t *testing.T) {
	isolateConfig(t)

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if Exists() {
		t.Fatal("Exists() true with no config file")
	}
	if cfg.General.TabSize != 8 {
		t.Fatalf("tab size=%d, want default 8", cfg.General.TabSize)
	}
	if cfg.Appearance.Theme != "flexoki-dark" {
		t.Fatalf("theme=%q, want default", cfg.Appearance.Theme)
	}
	if cfg.Preview.Width != 100 {
		t.Fatalf("preview width=%d, want default 100", cfg.Preview.Width)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	isolateConfig(t)

	cfg := DefaultConfig()
	cfg.Appearance.Theme = "tokyo-night"
	cfg.General.LineNumbers = false
	cfg.Preview.Pager = "bat --paging=always"

	if err := Save(cfg); err != nil {
		t.Fatal(err)
	}
	if !Exists() {
		t.Fatal("Exists() false after save")
	}

	back, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if back.Appearance.Theme != "tokyo-night" {
		t.Fatalf("theme=%q", back.Appearance.Theme)
	}
	if back.General.LineNumbers {
		t.Fatal("line numbers flag not round-tripped")
	}
	if back.Preview.Pager != "bat --paging=always" {
		t.Fatalf("pager=%q", back.Preview.Pager)
	}
}

func TestPartialFileKeepsOtherDefaults(t *testing.T) {
	isolateConfig(t)
	if err := os.MkdirAll(ConfigDir(), 0o755); err != nil {
		t.Fatal(err)
	}
	partial := "[appearance]\ntheme = \"terminal\"\n"
	if err := os.WriteFile(ConfigPath(), []byte(partial), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Appearance.Theme != "terminal" {
		t.Fatalf("theme=%q, want terminal", cfg.Appearance.Theme)
	}
	if cfg.General.TabSize != 8 {
		t.Fatalf("tab size=%d, want default preserved", cfg.General.TabSize)
	}
}

func TestConfigPathUnderXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	want := filepath.Join(dir, "nbterm", "config.toml")
	if got := ConfigPath(); got != want {
		t.Fatalf("path=%q, want %q", got, want)
	}
}
