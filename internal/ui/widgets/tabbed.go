package widgets

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nbterm/nbterm/internal/ui/theme"
)

// TabbedSplit shows one child at a time behind a tab bar. Switching tabs
// swaps which child is mounted; non-active children keep their state.
type TabbedSplit struct {
	*StackedSplit

	// Control is the tab bar fed from the current titles.
	Control *TabControl
	// Height, when positive, fixes the height of the content box.
	Height int
	// OnClose, when set, makes tabs closeable; it receives the index of
	// the tab whose close button was clicked.
	OnClose func(i int)
}

// NewTabbedSplit creates a tabbed container. children and titles must
// have equal length.
func NewTabbedSplit(children []Container, titles []string, active int, onChange func(*StackedSplit)) *TabbedSplit {
	t := &TabbedSplit{}
	t.StackedSplit = newStackedSplit(children, titles, active, false, onChange)
	t.StackedSplit.refresh = t.refreshControl
	t.Control = NewTabControl(t.loadTabs(), t.Active(), 1, false)
	return t
}

// SetCloseable toggles per-tab close buttons, routing them to onClose.
func (t *TabbedSplit) SetCloseable(onClose func(i int)) {
	t.OnClose = onClose
	t.refreshControl()
}

func (t *TabbedSplit) loadTabs() []Tab {
	tabs := make([]Tab, len(t.Titles()))
	for i, title := range t.Titles() {
		i := i
		tabs[i] = Tab{
			Title:      title,
			OnActivate: func() { t.SetActive(i) },
		}
		if t.OnClose != nil {
			tabs[i].OnClose = func() { t.OnClose(i) }
		}
	}
	return tabs
}

func (t *TabbedSplit) refreshControl() {
	if t.Control == nil {
		return
	}
	t.Control.Tabs = t.loadTabs()
	t.Control.Closeable = t.OnClose != nil
	if a := t.Active(); a != ActiveNone {
		t.Control.SetActive(a)
	}
}

// barHeight is the tab bar's two rows; the content box adds one border
// row at the bottom and one column either side.
const barHeight = 2

// View implements Container: the tab bar above a bordered box holding the
// active child.
func (t *TabbedSplit) View(width int) string {
	bar := t.Control.View(width)

	var body string
	if child, ok := t.ActiveChild(); ok {
		body = child.View(width - 2)
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, true, true, true).
		BorderForeground(theme.Active.Border).
		Width(width - 2)
	if t.Height > 0 {
		box = box.Height(t.Height - barHeight - 1)
	}

	return lipgloss.JoinVertical(lipgloss.Left, bar, box.Render(body))
}

// Update routes mouse input on the bar rows to the control and everything
// else to the active child, translating coordinates into its frame.
func (t *TabbedSplit) Update(msg tea.Msg) tea.Cmd {
	if m, ok := msg.(tea.MouseMsg); ok {
		if m.Y < barHeight {
			return t.Control.Update(m)
		}
		m.Y -= barHeight
		m.X-- // left border column
		if child, ok := t.ActiveChild(); ok {
			return child.Update(m)
		}
		return nil
	}
	if child, ok := t.ActiveChild(); ok {
		return child.Update(msg)
	}
	return nil
}
