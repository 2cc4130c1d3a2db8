package widgets

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nbterm/nbterm/internal/ui/theme"
)

// AccordionSplit renders every child as a titled, collapsible section.
// Only the section at the active index is expanded; the none sentinel
// means everything is collapsed.
type AccordionSplit struct {
	*StackedSplit

	// titleRows maps rendered row index to section index, rebuilt each
	// render for mouse hit testing on section title rows.
	titleRows map[int]int
}

// NewAccordionSplit creates an accordion over children and titles.
func NewAccordionSplit(children []Container, titles []string, active int, onChange func(*StackedSplit)) *AccordionSplit {
	a := &AccordionSplit{titleRows: make(map[int]int)}
	a.StackedSplit = newStackedSplit(children, titles, active, true, onChange)
	return a
}

// Toggle collapses the section if it is already active, otherwise expands
// it (implicitly collapsing whichever section was open).
func (a *AccordionSplit) Toggle(index int) {
	if a.Active() == index {
		a.SetActive(ActiveNone)
	} else {
		a.SetActive(index)
	}
}

// View implements Container.
func (a *AccordionSplit) View(width int) string {
	t := theme.Active
	titleStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)
	activeTitleStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	border := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(t.Border).
		Width(width - 2)

	a.titleRows = make(map[int]int)
	active := a.renderIndex()

	var sections []string
	row := 0
	for i, child := range a.Children() {
		title := ""
		if i < len(a.Titles()) {
			title = a.Titles()[i]
		}

		marker := "⮞"
		style := titleStyle
		if i == active {
			marker = "⮟"
			style = activeTitleStyle
		}
		head := " " + markerStyle.Render(marker) + " " + style.Render(title)

		body := head
		if i == active {
			body = lipgloss.JoinVertical(lipgloss.Left, head, child.View(width-2))
		}
		section := border.Render(body)

		// The clickable title row sits just below the section's top
		// border row.
		a.titleRows[row+1] = i
		row += lipgloss.Height(section)
		sections = append(sections, section)
	}

	return strings.Join(sections, "\n")
}

// Update toggles sections on title-row clicks and forwards everything
// else to the expanded child.
func (a *AccordionSplit) Update(msg tea.Msg) tea.Cmd {
	if m, ok := msg.(tea.MouseMsg); ok {
		if m.Button == tea.MouseButtonLeft && m.Action == tea.MouseActionRelease {
			if i, ok := a.titleRows[m.Y]; ok {
				a.Toggle(i)
				return nil
			}
		}
		return nil
	}
	if child, ok := a.ActiveChild(); ok {
		return child.Update(msg)
	}
	return nil
}
