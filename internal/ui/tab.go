package ui

import tea "github.com/charmbracelet/bubbletea"

// Tab is one open document in the shell: a notebook, the log viewer, or
// the shortcut reference. The shell addresses tabs only through this
// surface.
type Tab interface {
	Title() string
	View(width, height int) string
	Update(msg tea.Msg) tea.Cmd

	// StatusFields returns the left and right status bar fields to show
	// while this tab is focused.
	StatusFields() (left, right []string)

	// Close asks the tab to close itself, prompting about unsaved
	// changes if needed. done runs once the tab has actually agreed to
	// close; it never runs if the user cancels.
	Close(done func())

	// Operation returns the named operation, or nil when the tab does
	// not support it. Unknown names are a silent no-op at the caller.
	Operation(name string) func() tea.Cmd
}
