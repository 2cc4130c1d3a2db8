package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nbterm/nbterm/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Tab size:     %d\n", cfg.General.TabSize)
	fmt.Printf("    Key map:      %s\n", cfg.General.KeyMap)
	fmt.Printf("    Line numbers: %v\n", cfg.General.LineNumbers)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme:        %s\n", cfg.Appearance.Theme)
	if cfg.Appearance.SyntaxTheme != "" {
		fmt.Printf("    Syntax theme: %s\n", cfg.Appearance.SyntaxTheme)
	}
	fmt.Println()

	fmt.Println("  [Preview]")
	fmt.Printf("    Width: %d\n", cfg.Preview.Width)
	if cfg.Preview.Pager != "" {
		fmt.Printf("    Pager: %s\n", cfg.Preview.Pager)
	}

	return nil
}
