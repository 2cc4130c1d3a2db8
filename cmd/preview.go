package cmd

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/nbterm/nbterm/internal/preview"
	"github.com/nbterm/nbterm/internal/ui/theme"
)

var (
	flagOutputFile string
	flagPage       bool
	flagWidth      int
)

var previewCmd = &cobra.Command{
	Use:   "preview [file...]",
	Short: "Render notebooks to the terminal without the editor",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPreview,
}

func init() {
	previewCmd.Flags().StringVarP(&flagOutputFile, "output-file", "o", "", "Write output here instead of stdout")
	previewCmd.Flags().BoolVar(&flagPage, "page", false, "Pipe output through $PAGER")
	previewCmd.Flags().IntVarP(&flagWidth, "width", "w", 0, "Render width in columns")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(_ *cobra.Command, args []string) error {
	cfg := loadConfig()
	theme.SetActive(cfg.Appearance.Theme)
	theme.SetSyntax(cfg.Appearance.SyntaxTheme)
	lipgloss.SetColorProfile(termenv.TrueColor)

	return preview.Run(args, cfg, preview.Options{
		OutputFile: flagOutputFile,
		Page:       flagPage,
		Width:      flagWidth,
	})
}
