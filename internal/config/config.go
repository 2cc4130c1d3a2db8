package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all nbterm configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Appearance AppearanceConfig `toml:"appearance"`
	Preview    PreviewConfig    `toml:"preview"`
}

// GeneralConfig holds editing preferences.
type GeneralConfig struct {
	TabSize     int    `toml:"tab_size"`
	KeyMap      string `toml:"key_map"` // "default" or "vi"
	LineNumbers bool   `toml:"line_numbers"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme       string `toml:"theme"`
	SyntaxTheme string `toml:"syntax_theme,omitempty"` // overrides the theme's chroma style
}

// PreviewConfig holds settings for non-interactive rendering.
type PreviewConfig struct {
	Width int    `toml:"width"`
	Pager string `toml:"pager,omitempty"` // overrides $PAGER
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			TabSize:     8,
			KeyMap:      "default",
			LineNumbers: true,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Preview: PreviewConfig{
			Width: 100,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "nbterm")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "nbterm")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
