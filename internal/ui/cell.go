package ui

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/nbterm/nbterm/internal/notebook"
	"github.com/nbterm/nbterm/internal/ui/output"
	"github.com/nbterm/nbterm/internal/ui/theme"
	"github.com/nbterm/nbterm/internal/ui/widgets"
)

// promptGutter renders a cell's execution prompt. It asks for exactly the
// width of its text so the source area gets the rest of the row.
type promptGutter struct {
	cell    *notebook.Cell
	running bool
}

func (g *promptGutter) text() string {
	switch {
	case g.cell.CellType != "code":
		return ""
	case g.running:
		return "In [*]:"
	case g.cell.ExecutionCount != nil:
		return fmt.Sprintf("In [%d]:", *g.cell.ExecutionCount)
	default:
		return "In [ ]:"
	}
}

// PreferredWidth implements widgets.Sizer.
func (g *promptGutter) PreferredWidth(int) int {
	if t := g.text(); t != "" {
		return runewidth.StringWidth(t) + 1
	}
	return 1
}

// View implements widgets.Container.
func (g *promptGutter) View(width int) string {
	t := g.text()
	if t == "" {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(theme.Active.Accent).
		Width(width).
		Render(t)
}

// Update implements widgets.Container.
func (g *promptGutter) Update(tea.Msg) tea.Cmd { return nil }

// sourceView renders a cell's source, highlighted for code cells and
// rendered as markdown for markdown cells.
type sourceView struct {
	cell     *notebook.Cell
	language string
	numbers  bool
	tabSize  int

	src       string // source the cache was built from
	lastWidth int
	rendered  string
}

// View implements widgets.Container.
func (s *sourceView) View(width int) string {
	src := s.cell.Source.String()
	if src == s.src && width == s.lastWidth && s.rendered != "" {
		return s.rendered
	}
	s.src = src
	s.lastWidth = width
	s.rendered = s.render(src, width)
	return s.rendered
}

// Update implements widgets.Container.
func (s *sourceView) Update(tea.Msg) tea.Cmd { return nil }

func (s *sourceView) render(src string, width int) string {
	src = strings.TrimRight(src, "\n")
	if src == "" {
		return " "
	}

	switch s.cell.CellType {
	case "markdown":
		d := output.NewDisplay(src, "markdown", output.DisplayOptions{TabSize: s.tabSize})
		return d.View(width)
	case "raw":
		return lipgloss.NewStyle().Foreground(theme.Active.TextMuted).Render(src)
	}

	body := highlightSource(src, s.language)
	if !s.numbers {
		return body
	}

	lines := strings.Split(body, "\n")
	digits := len(fmt.Sprint(len(lines)))
	numStyle := lipgloss.NewStyle().Foreground(theme.Active.TextDim)
	for i, line := range lines {
		lines[i] = numStyle.Render(fmt.Sprintf("%*d ", digits, i+1)) + line
	}
	return strings.Join(lines, "\n")
}

func highlightSource(src, language string) string {
	if language == "" {
		language = "python"
	}
	var buf strings.Builder
	if err := quick.Highlight(&buf, src, language, "terminal256", theme.Active.SyntaxTheme); err != nil {
		return src
	}
	return strings.TrimRight(buf.String(), "\n")
}

// CellWidget is the visual form of one notebook cell: a bordered frame
// around the prompt gutter, the source and the output area. The gutter
// sits beside the source on wide terminals and above it on narrow ones.
type CellWidget struct {
	cell *notebook.Cell
	ctx  *output.RenderContext
	area *output.CellOutputArea

	gutter *promptGutter
	source *sourceView
	layout *widgets.ConditionalSplit

	Selected   bool
	HideInput  bool
	HideOutput bool
	lastWidth  int
}

// NewCellWidget creates the widget for a cell.
func NewCellWidget(cell *notebook.Cell, language string, numbers bool, ctx *output.RenderContext) *CellWidget {
	cellCtx := ctx.ForCell(cell.ID)
	w := &CellWidget{
		cell:   cell,
		ctx:    cellCtx,
		area:   output.NewArea(cell.Outputs, cellCtx),
		gutter: &promptGutter{cell: cell},
		source: &sourceView{cell: cell, language: language, numbers: numbers, tabSize: cellCtx.TabSize},
	}
	w.layout = widgets.NewConditionalSplit(
		func() bool { return w.lastWidth < 50 },
		w.gutter, w.source,
	)
	return w
}

// Cell returns the backing cell.
func (w *CellWidget) Cell() *notebook.Cell { return w.cell }

// SetRunning marks the prompt as busy while the kernel executes the cell.
func (w *CellWidget) SetRunning(v bool) { w.gutter.running = v }

// RefreshOutputs reconciles the output area against the cell's current
// output records.
func (w *CellWidget) RefreshOutputs() { w.area.SetRaw(w.cell.Outputs) }

// View implements widgets.Container.
func (w *CellWidget) View(width int) string {
	t := theme.Active
	w.lastWidth = width

	inner := width - 2
	if inner < 1 {
		inner = 1
	}

	body := w.layout.View(inner)
	if w.HideInput {
		body = lipgloss.NewStyle().Foreground(t.TextDim).Render("…")
	}
	if !w.HideOutput && w.cell.CellType == "code" {
		if out := w.area.View(inner); out != "" {
			body = lipgloss.JoinVertical(lipgloss.Left, body, "", out)
		}
	}

	border := t.Border
	if w.Selected {
		border = t.BorderAccent
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(inner).
		Render(body)
}

// Update implements widgets.Container. Coordinates arrive relative to the
// widget frame; the border absorbs one row and column.
func (w *CellWidget) Update(msg tea.Msg) tea.Cmd {
	if m, ok := msg.(tea.MouseMsg); ok {
		m.X--
		m.Y--
		return w.layout.Update(m)
	}
	return w.layout.Update(msg)
}
