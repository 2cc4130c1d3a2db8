package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nbterm/nbterm/internal/ui/theme"
)

// DialogButton is one action in a dialog's button row. OnClick runs after
// the dialog has been removed from the stack.
type DialogButton struct {
	Label   string
	OnClick func() tea.Cmd
}

// Dialog is a modal card floated over the shell. Dialogs stack; only the
// topmost one receives input. Each dialog remembers what was focused when
// it opened so closing it can hand focus back.
type Dialog struct {
	Title   string
	Body    string
	Input   *textinput.Model
	Buttons []DialogButton

	// Validate rejects the input value before the primary button fires;
	// a non-empty return keeps the dialog open and shows the message.
	Validate func(value string) string

	focused      int
	inputFocused bool
	errText      string
	prev         focusTarget
}

// focusTarget is whatever held focus before a dialog opened: a Tab or an
// earlier *Dialog.
type focusTarget any

// topDialog returns the dialog currently receiving input, if any.
func (a *App) topDialog() *Dialog {
	if len(a.dialogs) == 0 {
		return nil
	}
	return a.dialogs[0]
}

func (a *App) focusedTarget() focusTarget {
	if d := a.topDialog(); d != nil {
		return d
	}
	if t := a.currentTab(); t != nil {
		return t
	}
	return nil
}

// OpenDialog pushes a dialog on top of the stack, capturing the current
// focus so it can be restored on close.
func (a *App) OpenDialog(d *Dialog) {
	d.prev = a.focusedTarget()
	if d.Input != nil {
		d.inputFocused = true
		d.Input.Focus()
	}
	a.dialogs = append([]*Dialog{d}, a.dialogs...)
}

// closeDialog removes a dialog from the stack wherever it sits, restores
// the focus it captured, and then runs the optional callback. The
// callback runs after restoration so that dialogs it opens capture the
// restored state, not the closing dialog.
func (a *App) closeDialog(d *Dialog, cb func() tea.Cmd) tea.Cmd {
	for i, dd := range a.dialogs {
		if dd == d {
			a.dialogs = append(a.dialogs[:i], a.dialogs[i+1:]...)
			break
		}
	}
	a.restoreFocus(d.prev)
	if cb != nil {
		return cb()
	}
	return nil
}

// restoreFocus hands focus back to a captured target if it is still
// reachable. A vanished target (closed dialog, closed tab) is ignored and
// focus falls to whatever the stack and tab bar now say.
func (a *App) restoreFocus(prev focusTarget) {
	switch target := prev.(type) {
	case *Dialog:
		for i, d := range a.dialogs {
			if d == target {
				rest := append(a.dialogs[:i:i], a.dialogs[i+1:]...)
				a.dialogs = append([]*Dialog{target}, rest...)
				return
			}
		}
	case Tab:
		for i, t := range a.tabs {
			if t == target {
				a.split.SetActive(i)
				return
			}
		}
	}
}

// update handles input while this dialog is topmost.
func (d *Dialog) update(a *App, msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch key.String() {
	case "esc":
		return a.closeDialog(d, nil)
	case "tab", "right":
		if d.inputFocused {
			d.inputFocused = false
			d.Input.Blur()
		} else if d.focused < len(d.Buttons)-1 {
			d.focused++
		} else if d.Input != nil {
			d.inputFocused = true
			d.Input.Focus()
			d.focused = 0
		} else {
			d.focused = 0
		}
		return nil
	case "shift+tab", "left":
		if d.inputFocused {
			return nil
		}
		if d.focused > 0 {
			d.focused--
		} else if d.Input != nil {
			d.inputFocused = true
			d.Input.Focus()
		} else {
			d.focused = len(d.Buttons) - 1
		}
		return nil
	case "enter":
		if len(d.Buttons) == 0 {
			return a.closeDialog(d, nil)
		}
		btn := d.Buttons[0]
		if !d.inputFocused {
			btn = d.Buttons[d.focused]
		}
		// The primary button is gated on validation; the rest (Cancel,
		// No) fire unconditionally.
		if d.Validate != nil && d.Input != nil && (d.inputFocused || d.focused == 0) {
			if errText := d.Validate(d.Input.Value()); errText != "" {
				d.errText = errText
				return nil
			}
		}
		return a.closeDialog(d, btn.OnClick)
	}

	if d.inputFocused && d.Input != nil {
		var cmd tea.Cmd
		*d.Input, cmd = d.Input.Update(msg)
		d.errText = ""
		return cmd
	}
	return nil
}

// render paints the dialog card as full-width rows, horizontally
// centered, ready to be overlaid onto the base view.
func (d *Dialog) render(width int) string {
	t := theme.Active

	cardWidth := 52
	if cardWidth > width-4 {
		cardWidth = width - 4
	}
	inner := cardWidth - 4

	var rows []string
	if d.Body != "" {
		rows = append(rows, lipgloss.NewStyle().
			Foreground(t.TextPrimary).
			Width(inner).
			Render(d.Body))
	}
	if d.Input != nil {
		d.Input.Width = inner - 3
		rows = append(rows, d.Input.View())
	}
	if d.errText != "" {
		rows = append(rows, lipgloss.NewStyle().
			Foreground(t.Red).
			Width(inner).
			Render(d.errText))
	}
	if len(d.Buttons) > 0 {
		rows = append(rows, d.renderButtons(inner))
	}

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(0, 1).
		Width(cardWidth - 2)

	body := strings.Join(rows, "\n\n")
	if d.Title != "" {
		title := lipgloss.NewStyle().
			Foreground(t.AccentBright).
			Bold(true).
			Render(d.Title)
		body = title + "\n\n" + body
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, card.Render(body))
}

func (d *Dialog) renderButtons(width int) string {
	t := theme.Active

	active := lipgloss.NewStyle().
		Foreground(t.Background).
		Background(t.Accent).
		Padding(0, 2)
	inactive := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.SurfaceHover).
		Padding(0, 2)

	parts := make([]string, 0, len(d.Buttons))
	for i, b := range d.Buttons {
		style := inactive
		if !d.inputFocused && i == d.focused {
			style = active
		}
		parts = append(parts, style.Render(b.Label))
	}
	row := strings.Join(parts, "  ")
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, row)
}

// errorDialog shows an error to the user without interrupting anything
// else; the single OK button just dismisses it.
func (a *App) errorDialog(title string, err error) {
	body := ""
	if err != nil {
		body = err.Error()
	}
	a.OpenDialog(&Dialog{
		Title:   title,
		Body:    body,
		Buttons: []DialogButton{{Label: "OK"}},
	})
}

// confirmDialog asks a yes/no/cancel question. onNo is optional.
func (a *App) confirmDialog(title, body string, onYes, onNo func() tea.Cmd) {
	buttons := []DialogButton{
		{Label: "Yes", OnClick: onYes},
		{Label: "No", OnClick: onNo},
		{Label: "Cancel"},
	}
	a.OpenDialog(&Dialog{Title: title, Body: body, Buttons: buttons})
}
