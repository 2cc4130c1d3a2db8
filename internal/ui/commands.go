package ui

import tea "github.com/charmbracelet/bubbletea"

// Operation names. Shell-level operations are handled by the App; the
// rest are forwarded to the focused tab, which silently ignores any it
// does not support.
const (
	opNewNotebook     = "new-notebook"
	opOpenFile        = "open-file"
	opCloseTab        = "close-tab"
	opQuit            = "quit"
	opNextTab         = "next-tab"
	opPrevTab         = "prev-tab"
	opShowShortcuts   = "show-shortcuts"
	opShowLogs        = "show-logs"
	opAbout           = "about"
	opSave            = "save"
	opRunCell         = "run-cell"
	opRunAll          = "run-all"
	opCutCell         = "cut-cell"
	opCopyCell        = "copy-cell"
	opPasteCell       = "paste-cell"
	opInterruptKernel = "interrupt-kernel"
	opRestartKernel   = "restart-kernel"
	opToggleOutput    = "toggle-output"
	opToggleInput     = "toggle-input"
	opCycleCellType   = "cycle-cell-type"
	opNextCell        = "next-cell"
	opPrevCell        = "prev-cell"
)

// keyBinding is one global key-to-operation binding.
type keyBinding struct {
	Keys  []string
	Op    string
	Label string
	Group string
}

// globalBindings is the default key map. Keys listed here are consumed by
// the shell before the focused tab sees them.
var globalBindings = []keyBinding{
	{[]string{"ctrl+n"}, opNewNotebook, "New notebook", "Application"},
	{[]string{"ctrl+o"}, opOpenFile, "Open file", "Application"},
	{[]string{"ctrl+w"}, opCloseTab, "Close tab", "Application"},
	{[]string{"ctrl+q"}, opQuit, "Quit", "Application"},
	{[]string{"ctrl+pgdown", "ctrl+right"}, opNextTab, "Next tab", "Application"},
	{[]string{"ctrl+pgup", "ctrl+left"}, opPrevTab, "Previous tab", "Application"},
	{[]string{"f1"}, opShowShortcuts, "Keyboard shortcuts", "Application"},
	{[]string{"f2"}, opShowLogs, "View logs", "Application"},
	{[]string{"ctrl+s"}, opSave, "Save notebook", "Notebook"},
	{[]string{"ctrl+e"}, opRunCell, "Run cell", "Notebook"},
	{[]string{"ctrl+r"}, opRunAll, "Run all cells", "Notebook"},
}

// notebookBindings are handled inside the notebook tab itself; they are
// listed here only so the shortcut reference can show them.
var notebookBindings = []keyBinding{
	{[]string{"up", "k"}, opPrevCell, "Previous cell", "Notebook"},
	{[]string{"down", "j"}, opNextCell, "Next cell", "Notebook"},
	{[]string{"x"}, opCutCell, "Cut cell", "Notebook"},
	{[]string{"c"}, opCopyCell, "Copy cell", "Notebook"},
	{[]string{"v"}, opPasteCell, "Paste cell", "Notebook"},
	{[]string{"o"}, opToggleOutput, "Toggle output", "Notebook"},
	{[]string{"z"}, opToggleInput, "Toggle input", "Notebook"},
	{[]string{"t"}, opCycleCellType, "Change cell type", "Notebook"},
	{[]string{"enter"}, opRunCell, "Run cell", "Notebook"},
	{[]string{"i"}, opInterruptKernel, "Interrupt kernel", "Kernel"},
	{[]string{"0"}, opRestartKernel, "Restart kernel", "Kernel"},
}

// lookupBinding resolves a pressed key against the global key map.
func lookupBinding(key string) (string, bool) {
	for _, b := range globalBindings {
		for _, k := range b.Keys {
			if k == key {
				return b.Op, true
			}
		}
	}
	return "", false
}

// dispatch runs a named operation: shell operations directly, anything
// else through the focused tab. Unknown operations and operations the
// focused tab does not support are silent no-ops.
func (a *App) dispatch(op string) tea.Cmd {
	switch op {
	case opQuit:
		a.closeAll()
		return nil
	case opCloseTab:
		a.closeCurrentTab()
		return nil
	case opNewNotebook:
		a.newNotebook()
		return nil
	case opOpenFile:
		a.openFileDialog()
		return nil
	case opNextTab:
		a.split.SetActive(a.split.Active() + 1)
		return nil
	case opPrevTab:
		a.split.SetActive(a.split.Active() - 1)
		return nil
	case opShowShortcuts:
		a.showShortcuts()
		return nil
	case opShowLogs:
		a.showLogs()
		return nil
	case opAbout:
		a.showAbout()
		return nil
	default:
		return a.tabOp(op)
	}
}

// tabOp forwards an operation to the focused tab.
func (a *App) tabOp(op string) tea.Cmd {
	tab := a.currentTab()
	if tab == nil {
		return nil
	}
	if fn := tab.Operation(op); fn != nil {
		return fn()
	}
	return nil
}
