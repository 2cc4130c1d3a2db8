// Package cmd implements the nbterm CLI commands.
package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/nbterm/nbterm/internal/config"
	"github.com/nbterm/nbterm/internal/store"
	"github.com/nbterm/nbterm/internal/ui"
	"github.com/nbterm/nbterm/internal/ui/theme"
)

var (
	flagTheme     string
	flagLogFile   string
	flagNoHistory bool
)

var rootCmd = &cobra.Command{
	Use:   "nbterm [file...]",
	Short: "Terminal Jupyter notebook editor",
	Long:  "Edit, run and preview Jupyter notebooks without leaving the terminal.",
	Args:  cobra.ArbitraryArgs,
	RunE:  runTUI,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "", "Override the configured color theme")
	rootCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write debug logs to this file")
	rootCmd.Flags().BoolVar(&flagNoHistory, "no-history", false, "Do not record opened files")
}

// loadConfig loads the config, falling back to defaults so the UI can
// always start, and applies command-line overrides.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v (using defaults)\n", err)
		cfg = config.DefaultConfig()
	}
	if flagTheme != "" {
		cfg.Appearance.Theme = flagTheme
	}
	return cfg
}

func defaultLogPath() string {
	return filepath.Join(filepath.Dir(store.DefaultPath()), "nbterm.log")
}

func runTUI(_ *cobra.Command, args []string) error {
	cfg := loadConfig()
	theme.SetActive(cfg.Appearance.Theme)
	theme.SetSyntax(cfg.Appearance.SyntaxTheme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	// The standard logger would corrupt the alternate screen, so it goes
	// to a file; the log tab reads it back.
	logPath := flagLogFile
	if logPath == "" {
		logPath = defaultLogPath()
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0o750); err == nil {
		if f, err := tea.LogToFile(logPath, "nbterm"); err == nil {
			defer func() { _ = f.Close() }()
		} else {
			log.SetOutput(io.Discard)
		}
	} else {
		log.SetOutput(io.Discard)
	}

	var history *store.History
	if !flagNoHistory {
		h, err := store.Open(store.DefaultPath())
		if err != nil {
			log.Printf("history unavailable: %v", err)
		} else {
			history = h
			defer func() { _ = h.Close() }()
		}
	}

	app := ui.NewApp(cfg, history, logPath, args)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
