package ui

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nbterm/nbterm/internal/notebook"
	"github.com/nbterm/nbterm/internal/ui/theme"
)

const recentFilesShown = 5

// openFileDialog prompts for a notebook path. Recently opened files are
// listed for reference; a path that does not point at a readable file is
// rejected and the dialog stays open.
func (a *App) openFileDialog() {
	ti := textinput.New()
	ti.Placeholder = "path/to/notebook.ipynb"
	ti.CharLimit = 512

	d := &Dialog{
		Title: "Open file",
		Body:  a.recentFilesBody(),
		Input: &ti,
		Validate: func(value string) string {
			value = strings.TrimSpace(value)
			if value == "" {
				return "enter a file path"
			}
			info, err := os.Stat(value)
			if err != nil {
				return fmt.Sprintf("cannot open %s", value)
			}
			if info.IsDir() {
				return fmt.Sprintf("%s is a directory", value)
			}
			return ""
		},
	}
	d.Buttons = []DialogButton{
		{Label: "Open", OnClick: func() tea.Cmd {
			a.openPath(strings.TrimSpace(d.Input.Value()))
			return nil
		}},
		{Label: "Cancel"},
	}
	a.OpenDialog(d)
}

func (a *App) recentFilesBody() string {
	if a.history == nil {
		return ""
	}
	recent, err := a.history.List(recentFilesShown)
	if err != nil || len(recent) == 0 {
		return ""
	}
	muted := lipgloss.NewStyle().Foreground(theme.Active.TextMuted)
	lines := []string{"Recent:"}
	for _, f := range recent {
		lines = append(lines, muted.Render("  "+f.Path))
	}
	return strings.Join(lines, "\n")
}

// openPath loads a notebook file into a new tab, focusing the existing
// tab if the file is already open.
func (a *App) openPath(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	for _, t := range a.tabs {
		if nt, ok := t.(*NotebookTab); ok && nt.nb.Path() == abs {
			a.focusTab(t)
			return
		}
	}

	nb, err := notebook.Load(abs)
	if err != nil {
		log.Printf("opening %s: %v", path, err)
		a.errorDialog("Open failed", err)
		return
	}

	tab := NewNotebookTab(nb, a)
	if a.history != nil {
		tab.selectCell(a.history.LastCell(abs))
	}
	a.addTab(tab)
	a.rememberFile(abs, tab.selected)
}

// newNotebook opens a fresh untitled notebook, picking the first unused
// untitled-N name in the working directory.
func (a *App) newNotebook() {
	var path string
	for i := 1; ; i++ {
		path = fmt.Sprintf("untitled-%d.ipynb", i)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			break
		}
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	a.addTab(NewNotebookTab(notebook.New(path), a))
}
