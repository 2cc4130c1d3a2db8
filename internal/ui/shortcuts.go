package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/nbterm/nbterm/internal/ui/theme"
	"github.com/nbterm/nbterm/internal/ui/widgets"
)

// ShortcutsTab is the keyboard reference: one accordion section per
// binding group, expanded one at a time.
type ShortcutsTab struct {
	accordion *widgets.AccordionSplit
}

// NewShortcutsTab builds the reference from the global and notebook key
// maps.
func NewShortcutsTab() *ShortcutsTab {
	groups := map[string][]keyBinding{}
	var order []string
	for _, b := range append(append([]keyBinding(nil), globalBindings...), notebookBindings...) {
		if _, ok := groups[b.Group]; !ok {
			order = append(order, b.Group)
		}
		groups[b.Group] = append(groups[b.Group], b)
	}

	children := make([]widgets.Container, 0, len(order))
	for _, g := range order {
		children = append(children, bindingTable(groups[g]))
	}
	return &ShortcutsTab{
		accordion: widgets.NewAccordionSplit(children, order, 0, nil),
	}
}

// bindingTable renders one group as a static two-column listing.
func bindingTable(bindings []keyBinding) widgets.Text {
	t := theme.Active
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent)

	keyWidth := 0
	for _, b := range bindings {
		if w := runewidth.StringWidth(strings.Join(b.Keys, ", ")); w > keyWidth {
			keyWidth = w
		}
	}

	var rows []string
	for _, b := range bindings {
		keys := strings.Join(b.Keys, ", ")
		rows = append(rows, " "+keyStyle.Render(runewidth.FillRight(keys, keyWidth))+"  "+b.Label)
	}
	return widgets.Text(strings.Join(rows, "\n"))
}

// Title implements Tab.
func (t *ShortcutsTab) Title() string { return "Shortcuts" }

// StatusFields implements Tab.
func (t *ShortcutsTab) StatusFields() (left, right []string) {
	return []string{"click a section to expand it"}, nil
}

// View implements Tab.
func (t *ShortcutsTab) View(width, _ int) string {
	return t.accordion.View(width)
}

// Update implements Tab.
func (t *ShortcutsTab) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "up", "k":
			t.accordion.SetActive(t.accordion.Active() - 1)
			return nil
		case "down", "j":
			t.accordion.SetActive(t.accordion.Active() + 1)
			return nil
		}
	}
	return t.accordion.Update(msg)
}

// Close implements Tab.
func (t *ShortcutsTab) Close(done func()) { done() }

// Operation implements Tab.
func (t *ShortcutsTab) Operation(string) func() tea.Cmd { return nil }
