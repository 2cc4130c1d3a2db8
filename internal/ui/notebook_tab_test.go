package ui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nbterm/nbterm/internal/notebook"
)

func newTestNotebookTab(t *testing.T, sources ...string) (*App, *NotebookTab) {
	t.Helper()
	a := newTestApp()
	nb := notebook.New(filepath.Join(t.TempDir(), "test.ipynb"))
	nb.Cells = nil
	for _, src := range sources {
		c := notebook.NewCell("code")
		c.Source = notebook.MultilineString(src)
		nb.Cells = append(nb.Cells, c)
	}
	tab := NewNotebookTab(nb, a)
	a.addTab(tab)
	return a, tab
}

func TestCutMovesCellToClipboard(t *testing.T) {
	a, tab := newTestNotebookTab(t, "one", "two", "three")
	tab.selectCell(1)

	tab.cutCell()

	if a.clipboard == nil || a.clipboard.Source.String() != "two" {
		t.Fatal("cut cell did not land on the clipboard")
	}
	if len(tab.nb.Cells) != 2 {
		t.Fatalf("%d cells remain, want 2", len(tab.nb.Cells))
	}
	if got := tab.nb.Cells[1].Source.String(); got != "three" {
		t.Fatalf("cell 1 is %q, want %q", got, "three")
	}
	if !tab.nb.Dirty() {
		t.Fatal("cut did not mark the notebook dirty")
	}
}

func TestPasteInsertsIndependentCopy(t *testing.T) {
	a, tab := newTestNotebookTab(t, "one", "two")
	tab.selectCell(0)
	tab.copyCell()

	if a.clipboard == nil {
		t.Fatal("copy put nothing on the clipboard")
	}
	if a.clipboard == tab.nb.Cells[0] {
		t.Fatal("clipboard shares the original cell")
	}

	tab.pasteCell()
	if len(tab.nb.Cells) != 3 {
		t.Fatalf("%d cells after paste, want 3", len(tab.nb.Cells))
	}
	pasted := tab.nb.Cells[1]
	if pasted.Source.String() != "one" {
		t.Fatalf("pasted source=%q", pasted.Source.String())
	}
	if pasted.ID == tab.nb.Cells[0].ID {
		t.Fatal("pasted cell reuses the original id")
	}
	if tab.selected != 1 {
		t.Fatalf("selection=%d after paste, want 1", tab.selected)
	}

	// A second paste is independent of the first.
	tab.pasteCell()
	if tab.nb.Cells[2].ID == tab.nb.Cells[1].ID {
		t.Fatal("repeated paste reused a cell id")
	}
}

func TestCellWidgetsSurviveStructuralEdits(t *testing.T) {
	_, tab := newTestNotebookTab(t, "one", "two", "three")

	keep := tab.nb.Cells[2]
	before := tab.widgets[keep]
	if before == nil {
		t.Fatal("no widget bound to cell")
	}

	tab.selectCell(0)
	tab.cutCell()

	after := tab.widgets[keep]
	if after != before {
		t.Fatal("surviving cell lost its widget instance")
	}
	if len(tab.widgets) != 2 {
		t.Fatalf("%d widgets cached, want 2", len(tab.widgets))
	}
}

func TestViKeysGatedOnKeyMap(t *testing.T) {
	a, tab := newTestNotebookTab(t, "one", "two")
	tab.selectCell(0)

	j := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}
	tab.handleKey(j)
	if tab.selected != 0 {
		t.Fatalf("selection=%d: default key map honored a vi key", tab.selected)
	}

	a.cfg.General.KeyMap = "vi"
	tab.handleKey(j)
	if tab.selected != 1 {
		t.Fatalf("selection=%d after j under the vi key map, want 1", tab.selected)
	}

	// Arrow keys work under either map.
	a.cfg.General.KeyMap = "default"
	tab.handleKey(tea.KeyMsg{Type: tea.KeyUp})
	if tab.selected != 0 {
		t.Fatalf("selection=%d after up, want 0", tab.selected)
	}
}

func TestSelectionClampsAtEdges(t *testing.T) {
	_, tab := newTestNotebookTab(t, "one", "two")

	tab.selectCell(-3)
	if tab.selected != 0 {
		t.Fatalf("selection=%d, want 0", tab.selected)
	}
	tab.selectCell(99)
	if tab.selected != 1 {
		t.Fatalf("selection=%d, want 1", tab.selected)
	}
}

func TestCycleCellTypeDiscardsOutputs(t *testing.T) {
	_, tab := newTestNotebookTab(t, "print(1)")
	cell := tab.nb.Cells[0]
	n := 3
	cell.ExecutionCount = &n
	cell.Outputs = []notebook.Output{{OutputType: "stream", Name: "stdout", Text: "1\n"}}

	tab.cycleCellType()
	if cell.CellType != "markdown" {
		t.Fatalf("cell type=%q after one cycle, want markdown", cell.CellType)
	}
	if cell.Outputs != nil || cell.ExecutionCount != nil {
		t.Fatal("leaving code kept outputs or the execution count")
	}
	if !tab.nb.Dirty() {
		t.Fatal("changing the cell type did not mark the notebook dirty")
	}

	tab.cycleCellType()
	tab.cycleCellType()
	if cell.CellType != "code" {
		t.Fatalf("cell type=%q after full cycle, want code", cell.CellType)
	}
}

func TestRunCellWithoutKernelShowsError(t *testing.T) {
	a, tab := newTestNotebookTab(t, "print(1)")
	tab.runCell()
	if a.topDialog() == nil {
		t.Fatal("running without a kernel did not raise an error dialog")
	}
}

func TestUnknownOperationIsNil(t *testing.T) {
	_, tab := newTestNotebookTab(t, "one")
	if tab.Operation("does-not-exist") != nil {
		t.Fatal("unknown operation returned a handler")
	}
}

func TestCloseCleanNotebookNeedsNoPrompt(t *testing.T) {
	a, tab := newTestNotebookTab(t, "one")
	tab.nb.Save() // clears dirty

	closed := false
	tab.Close(func() { closed = true })
	if !closed {
		t.Fatal("clean notebook did not close immediately")
	}
	if a.topDialog() != nil {
		t.Fatal("clean close raised a prompt")
	}
}

func TestCloseDirtyNotebookPrompts(t *testing.T) {
	a, tab := newTestNotebookTab(t, "one")
	tab.nb.MarkDirty()

	closed := false
	tab.Close(func() { closed = true })
	if closed {
		t.Fatal("dirty notebook closed without confirmation")
	}
	d := a.topDialog()
	if d == nil {
		t.Fatal("dirty close raised no prompt")
	}
	if len(d.Buttons) != 3 {
		t.Fatalf("prompt has %d buttons, want save/discard/cancel", len(d.Buttons))
	}

	// "No" discards and closes.
	a.closeDialog(d, d.Buttons[1].OnClick)
	if !closed {
		t.Fatal("discarding changes did not close the tab")
	}
}
