package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nbterm/nbterm/internal/ui/theme"
)

// LogTab shows the session log file in a scrollable viewport. It reloads
// the file each time it becomes visible so new entries appear.
type LogTab struct {
	path string
	vp   viewport.Model
	err  error
}

// NewLogTab creates the log viewer over the given log file.
func NewLogTab(path string) *LogTab {
	t := &LogTab{path: path, vp: viewport.New(80, 24)}
	t.reload()
	return t
}

func (t *LogTab) reload() {
	data, err := os.ReadFile(t.path)
	if err != nil {
		t.err = err
		return
	}
	t.err = nil
	t.vp.SetContent(string(data))
	t.vp.GotoBottom()
}

// Title implements Tab.
func (t *LogTab) Title() string { return "Logs" }

// StatusFields implements Tab.
func (t *LogTab) StatusFields() (left, right []string) {
	left = []string{t.path}
	right = []string{fmt.Sprintf("%3.f%%", t.vp.ScrollPercent()*100)}
	return left, right
}

// View implements Tab.
func (t *LogTab) View(width, height int) string {
	if t.err != nil {
		return lipgloss.NewStyle().
			Foreground(theme.Active.TextMuted).
			Render("no log file: " + t.err.Error())
	}
	t.vp.Width = width
	t.vp.Height = height
	return t.vp.View()
}

// Update implements Tab.
func (t *LogTab) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "r" {
		t.reload()
		return nil
	}
	var cmd tea.Cmd
	t.vp, cmd = t.vp.Update(msg)
	return cmd
}

// Close implements Tab: nothing to save.
func (t *LogTab) Close(done func()) { done() }

// Operation implements Tab.
func (t *LogTab) Operation(string) func() tea.Cmd { return nil }
