package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nbterm/nbterm/internal/kernel"
	"github.com/nbterm/nbterm/internal/notebook"
	"github.com/nbterm/nbterm/internal/ui/output"
	"github.com/nbterm/nbterm/internal/ui/widgets"
)

const kernelTimeout = 30 * time.Second

// NotebookTab shows one notebook document: a scrollable stack of cell
// widgets over the notebook model, with structural editing and kernel
// operations.
type NotebookTab struct {
	app *App
	nb  *notebook.Notebook
	ctx *output.RenderContext

	// cells backs the referenced split; structural edits mutate it and
	// the split picks the change up on the next render.
	cells   []widgets.Container
	widgets map[*notebook.Cell]*CellWidget
	split   *widgets.ReferencedSplit

	selected int
	scroll   int
	kern     kernel.Client
}

// NewNotebookTab creates a tab over an already-loaded notebook.
func NewNotebookTab(nb *notebook.Notebook, app *App) *NotebookTab {
	t := &NotebookTab{
		app:     app,
		nb:      nb,
		ctx:     app.renderCtx,
		widgets: make(map[*notebook.Cell]*CellWidget),
	}
	t.split = widgets.NewReferencedSplit(true, &t.cells)
	t.syncCells()
	return t
}

// syncCells rebuilds the container list from the notebook's cells,
// reusing the widget already bound to each cell so render caches and
// output areas survive structural edits.
func (t *NotebookTab) syncCells() {
	if len(t.nb.Cells) == 0 {
		t.selected = 0
	} else if t.selected >= len(t.nb.Cells) {
		t.selected = len(t.nb.Cells) - 1
	}

	lang := t.nb.Language()
	seen := make(map[*notebook.Cell]bool, len(t.nb.Cells))
	cells := make([]widgets.Container, len(t.nb.Cells))
	for i, c := range t.nb.Cells {
		w, ok := t.widgets[c]
		if !ok {
			w = NewCellWidget(c, lang, t.app.cfg.General.LineNumbers, t.ctx)
			t.widgets[c] = w
		}
		w.Selected = i == t.selected
		cells[i] = w
		seen[c] = true
	}
	for c := range t.widgets {
		if !seen[c] {
			delete(t.widgets, c)
		}
	}
	t.cells = cells
}

// SetKernel attaches a kernel client. Execution operations report an
// error dialog until one is attached.
func (t *NotebookTab) SetKernel(k kernel.Client) { t.kern = k }

// Title implements Tab.
func (t *NotebookTab) Title() string {
	title := t.nb.Title()
	if t.nb.Dirty() {
		title = "*" + title
	}
	return title
}

// StatusFields implements Tab.
func (t *NotebookTab) StatusFields() (left, right []string) {
	left = []string{fmt.Sprintf("cell %d/%d", t.selected+1, len(t.nb.Cells))}
	right = []string{t.nb.Language()}
	if t.kern == nil {
		right = append(right, "no kernel")
	}
	return left, right
}

// View implements Tab: all cells stacked, windowed by the scroll offset.
func (t *NotebookTab) View(width, height int) string {
	body := t.split.View(width)
	lines := strings.Split(body, "\n")

	if t.scroll > len(lines)-1 {
		t.scroll = len(lines) - 1
	}
	if t.scroll < 0 {
		t.scroll = 0
	}
	end := t.scroll + height
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[t.scroll:end], "\n")
}

// Update implements Tab.
func (t *NotebookTab) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return t.handleKey(msg)
	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			t.scroll -= 3
			if t.scroll < 0 {
				t.scroll = 0
			}
			return nil
		case tea.MouseButtonWheelDown:
			t.scroll += 3
			return nil
		}
		if msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft {
			t.selectAt(msg.Y + t.scroll)
		}
		return nil
	case cellDoneMsg:
		return t.finishRun(msg)
	}
	return nil
}

func (t *NotebookTab) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if t.app.cfg.General.KeyMap != "vi" {
		switch key {
		case "j", "k", "g", "G":
			return nil
		}
	}
	var op string
	switch key {
	case "up", "k":
		op = opPrevCell
	case "down", "j":
		op = opNextCell
	case "x":
		op = opCutCell
	case "c":
		op = opCopyCell
	case "v":
		op = opPasteCell
	case "o":
		op = opToggleOutput
	case "z":
		op = opToggleInput
	case "t":
		op = opCycleCellType
	case "enter":
		op = opRunCell
	case "i":
		op = opInterruptKernel
	case "0":
		op = opRestartKernel
	case "a":
		t.insertCell(t.selected)
		return nil
	case "b":
		t.insertCell(t.selected + 1)
		return nil
	case "home", "g":
		t.selectCell(0)
		return nil
	case "end", "G":
		t.selectCell(len(t.nb.Cells) - 1)
		return nil
	default:
		return nil
	}
	if fn := t.Operation(op); fn != nil {
		return fn()
	}
	return nil
}

// selectAt maps a content row (in unscrolled coordinates) to the cell
// rendered there and selects it.
func (t *NotebookTab) selectAt(row int) {
	y := 0
	for i, c := range t.cells {
		h := strings.Count(c.View(t.app.contentWidth()), "\n") + 1
		if row < y+h {
			t.selectCell(i)
			return
		}
		y += h
	}
}

func (t *NotebookTab) selectCell(i int) {
	if len(t.nb.Cells) == 0 {
		return
	}
	if i < 0 {
		i = 0
	}
	if i >= len(t.nb.Cells) {
		i = len(t.nb.Cells) - 1
	}
	t.selected = i
	t.syncCells()
	t.scrollIntoView()
}

// scrollIntoView adjusts the scroll offset so the selected cell is fully
// visible where possible.
func (t *NotebookTab) scrollIntoView() {
	width := t.app.contentWidth()
	top := 0
	for i := 0; i < t.selected && i < len(t.cells); i++ {
		top += strings.Count(t.cells[i].View(width), "\n") + 1
	}
	h := 1
	if t.selected < len(t.cells) {
		h = strings.Count(t.cells[t.selected].View(width), "\n") + 1
	}
	height := t.app.contentHeight()

	if top < t.scroll {
		t.scroll = top
	} else if top+h > t.scroll+height {
		t.scroll = top + h - height
	}
	if t.scroll < 0 {
		t.scroll = 0
	}
}

func (t *NotebookTab) insertCell(at int) {
	t.nb.InsertCell(at, notebook.NewCell("code"))
	t.selected = at
	if t.selected >= len(t.nb.Cells) {
		t.selected = len(t.nb.Cells) - 1
	}
	t.syncCells()
}

// Operation implements Tab.
func (t *NotebookTab) Operation(name string) func() tea.Cmd {
	switch name {
	case opSave:
		return t.save
	case opCutCell:
		return t.cutCell
	case opCopyCell:
		return t.copyCell
	case opPasteCell:
		return t.pasteCell
	case opRunCell:
		return t.runCell
	case opRunAll:
		return t.runAll
	case opInterruptKernel:
		return t.interruptKernel
	case opRestartKernel:
		return t.restartKernel
	case opToggleOutput:
		return t.toggleOutput
	case opToggleInput:
		return t.toggleInput
	case opCycleCellType:
		return t.cycleCellType
	case opNextCell:
		return func() tea.Cmd { t.selectCell(t.selected + 1); return nil }
	case opPrevCell:
		return func() tea.Cmd { t.selectCell(t.selected - 1); return nil }
	}
	return nil
}

func (t *NotebookTab) save() tea.Cmd {
	if err := t.nb.Save(); err != nil {
		t.app.errorDialog("Save failed", err)
		return nil
	}
	t.app.rememberFile(t.nb.Path(), t.selected)
	t.app.syncTabs()
	return nil
}

func (t *NotebookTab) cutCell() tea.Cmd {
	if c := t.nb.RemoveCell(t.selected); c != nil {
		t.app.clipboard = c
		t.syncCells()
	}
	return nil
}

func (t *NotebookTab) copyCell() tea.Cmd {
	if t.selected < len(t.nb.Cells) {
		t.app.clipboard = copyCell(t.nb.Cells[t.selected])
	}
	return nil
}

func (t *NotebookTab) pasteCell() tea.Cmd {
	if t.app.clipboard == nil {
		return nil
	}
	// Paste a copy so repeated pastes stay independent, with a fresh id.
	c := copyCell(t.app.clipboard)
	t.nb.InsertCell(t.selected+1, c)
	t.selectCell(t.selected + 1)
	return nil
}

// copyCell deep-copies the parts structural editing moves around. The
// copy gets a fresh id so comm and selection keys stay unique.
func copyCell(c *notebook.Cell) *notebook.Cell {
	dup := notebook.NewCell(c.CellType)
	dup.Source = c.Source
	dup.Outputs = append([]notebook.Output(nil), c.Outputs...)
	if c.ExecutionCount != nil {
		n := *c.ExecutionCount
		dup.ExecutionCount = &n
	}
	for k, v := range c.Metadata {
		dup.Metadata[k] = v
	}
	return dup
}

func (t *NotebookTab) toggleOutput() tea.Cmd {
	if t.selected < len(t.nb.Cells) {
		if w, ok := t.widgets[t.nb.Cells[t.selected]]; ok {
			w.HideOutput = !w.HideOutput
		}
	}
	return nil
}

func (t *NotebookTab) toggleInput() tea.Cmd {
	if t.selected < len(t.nb.Cells) {
		if w, ok := t.widgets[t.nb.Cells[t.selected]]; ok {
			w.HideInput = !w.HideInput
		}
	}
	return nil
}

// cycleCellType steps the selected cell through code, markdown and raw.
// Leaving code discards outputs and the execution count, which have no
// meaning for the other types.
func (t *NotebookTab) cycleCellType() tea.Cmd {
	if t.selected >= len(t.nb.Cells) {
		return nil
	}
	c := t.nb.Cells[t.selected]
	switch c.CellType {
	case "code":
		c.CellType = "markdown"
	case "markdown":
		c.CellType = "raw"
	default:
		c.CellType = "code"
	}
	if c.CellType != "code" {
		c.Outputs = nil
		c.ExecutionCount = nil
	}
	// The widget's render caches key off the old type; rebuild it.
	delete(t.widgets, c)
	t.nb.MarkDirty()
	t.syncCells()
	t.app.syncTabs()
	return nil
}

// cellDoneMsg reports a finished execution back to the update loop.
type cellDoneMsg struct {
	cell *notebook.Cell
	err  error
}

// kernelErrMsg reports a failed kernel control operation. It carries no
// cell, so the shell shows it once instead of broadcasting it.
type kernelErrMsg struct {
	title string
	err   error
}

func (t *NotebookTab) runCell() tea.Cmd {
	if t.selected >= len(t.nb.Cells) {
		return nil
	}
	cell := t.nb.Cells[t.selected]
	if cell.CellType != "code" {
		t.selectCell(t.selected + 1)
		return nil
	}
	if t.kern == nil {
		t.app.errorDialog("No kernel", fmt.Errorf("no kernel is attached to %s", t.nb.Title()))
		return nil
	}
	if w, ok := t.widgets[cell]; ok {
		w.SetRunning(true)
	}
	kern, src := t.kern, cell.Source.String()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), kernelTimeout)
		defer cancel()
		return cellDoneMsg{cell: cell, err: kern.Execute(ctx, src)}
	}
}

func (t *NotebookTab) finishRun(msg cellDoneMsg) tea.Cmd {
	// Completion messages are broadcast; only the owning tab reacts.
	w, ok := t.widgets[msg.cell]
	if !ok {
		return nil
	}
	w.SetRunning(false)
	w.RefreshOutputs()
	if msg.err != nil {
		t.app.errorDialog("Execution failed", msg.err)
	}
	t.nb.MarkDirty()
	t.app.syncTabs()
	return nil
}

func (t *NotebookTab) runAll() tea.Cmd {
	if t.kern == nil {
		t.app.errorDialog("No kernel", fmt.Errorf("no kernel is attached to %s", t.nb.Title()))
		return nil
	}
	var cmds []tea.Cmd
	for i := range t.nb.Cells {
		t.selected = i
		if cmd := t.runCell(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	t.syncCells()
	return tea.Sequence(cmds...)
}

func (t *NotebookTab) interruptKernel() tea.Cmd {
	if t.kern == nil {
		return nil
	}
	kern := t.kern
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), kernelTimeout)
		defer cancel()
		if err := kern.Interrupt(ctx); err != nil {
			return kernelErrMsg{title: "Interrupt failed", err: err}
		}
		return nil
	}
}

func (t *NotebookTab) restartKernel() tea.Cmd {
	if t.kern == nil {
		return nil
	}
	kern := t.kern
	t.app.confirmDialog("Restart kernel",
		"Restart the kernel? All execution state will be lost.",
		func() tea.Cmd {
			return func() tea.Msg {
				ctx, cancel := context.WithTimeout(context.Background(), kernelTimeout)
				defer cancel()
				if err := kern.Restart(ctx); err != nil {
					return kernelErrMsg{title: "Restart failed", err: err}
				}
				return nil
			}
		}, nil)
	return nil
}

// Close implements Tab: clean notebooks close immediately, dirty ones ask
// first. done never runs when the user cancels.
func (t *NotebookTab) Close(done func()) {
	t.app.rememberFile(t.nb.Path(), t.selected)
	if !t.nb.Dirty() {
		done()
		return
	}
	t.app.confirmDialog("Unsaved changes",
		fmt.Sprintf("Save changes to %s before closing?", t.nb.Title()),
		func() tea.Cmd {
			if err := t.nb.Save(); err != nil {
				t.app.errorDialog("Save failed", err)
				return nil
			}
			done()
			return nil
		},
		func() tea.Cmd {
			done()
			return nil
		})
}
