// Package widgets implements the layout subsystem shared by the
// interactive shell and the preview renderer: a tab bar control, stacked
// split containers with a single active child, and structural adapters.
//
// Widgets follow one contract: they report what to draw for a given width
// and consume input messages whose coordinates have already been
// translated into the widget's own frame by the parent.
package widgets

import tea "github.com/charmbracelet/bubbletea"

// Container is the contract between a widget and the render loop.
type Container interface {
	// View renders the widget into the given number of columns.
	View(width int) string
	// Update consumes an input message. Mouse coordinates are relative
	// to the widget's top-left corner.
	Update(msg tea.Msg) tea.Cmd
}

// Focusable is implemented by containers that can receive input focus.
// Focus reports whether focus was actually taken.
type Focusable interface {
	Focus() bool
}

// Sizer is implemented by containers with a fixed width preference, such
// as a prompt gutter. Horizontal splits give sizers their preferred width
// and share the remainder among the rest.
type Sizer interface {
	PreferredWidth(max int) int
}

// Text is a minimal static container. It ignores all input.
type Text string

// View implements Container.
func (t Text) View(int) string { return string(t) }

// Update implements Container.
func (t Text) Update(tea.Msg) tea.Cmd { return nil }

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
