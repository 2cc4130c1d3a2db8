package ui

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/nbterm/nbterm/internal/config"
	"github.com/nbterm/nbterm/internal/ui/theme"
)

// setupValues collects the first-run form answers.
type setupValues struct {
	theme       string
	keyMap      string
	lineNumbers bool
}

// newSetupForm builds the first-run setup form, pre-filled from the
// current configuration.
func newSetupForm(cfg config.Config, vals *setupValues) *huh.Form {
	vals.theme = cfg.Appearance.Theme
	vals.keyMap = cfg.General.KeyMap
	vals.lineNumbers = cfg.General.LineNumbers

	themeOptions := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOptions = append(themeOptions, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOptions...).
				Value(&vals.theme),
			huh.NewSelect[string]().
				Title("Key map").
				Options(
					huh.NewOption("default", "default"),
					huh.NewOption("vi", "vi"),
				).
				Value(&vals.keyMap),
			huh.NewConfirm().
				Title("Show line numbers in code cells?").
				Value(&vals.lineNumbers),
		),
	)
}

// updateSetupForm advances the setup form. On completion the answers are
// saved and applied; aborting keeps the defaults for this session.
func (a *App) updateSetupForm(msg tea.Msg) tea.Cmd {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		a.saveSetupConfig()
		a.setupForm = nil
		return nil
	case huh.StateAborted:
		a.setupForm = nil
		return nil
	}
	return cmd
}

func (a *App) saveSetupConfig() {
	a.cfg.Appearance.Theme = a.setupVals.theme
	a.cfg.General.KeyMap = a.setupVals.keyMap
	a.cfg.General.LineNumbers = a.setupVals.lineNumbers
	theme.SetActive(a.cfg.Appearance.Theme)
	// The render context snapshots the palette at construction; keep it in
	// step with the choice just made.
	a.renderCtx.Palette = theme.Active

	if err := config.Save(a.cfg); err != nil {
		log.Printf("saving config: %v", err)
		a.errorDialog("Setup", err)
	}
}
