// Package ui implements the interactive notebook shell: a tabbed window
// of open documents under a menu bar, a status bar fed by the focused
// tab, and a stack of modal dialogs.
package ui

import (
	"log"
	"runtime/debug"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nbterm/nbterm/internal/config"
	"github.com/nbterm/nbterm/internal/notebook"
	"github.com/nbterm/nbterm/internal/store"
	"github.com/nbterm/nbterm/internal/ui/output"
	"github.com/nbterm/nbterm/internal/ui/theme"
	"github.com/nbterm/nbterm/internal/ui/widgets"
)

const (
	menuBarRows   = 1
	statusBarRows = 1
)

// App is the root bubbletea model.
type App struct {
	cfg       config.Config
	renderCtx *output.RenderContext
	history   *store.History // nil when the history db could not open
	logPath   string

	width, height int

	tabs  []Tab
	split *widgets.TabbedSplit

	dialogs   []*Dialog
	menu      *menuState
	clipboard *notebook.Cell

	setupForm *huh.Form
	setupVals setupValues

	quitting bool
}

// tabAdapter mounts a Tab into the widget tree, supplying the content
// height the split does not know about.
type tabAdapter struct {
	app *App
	tab Tab
}

func (ta *tabAdapter) View(width int) string {
	return ta.tab.View(width, ta.app.contentHeight())
}

func (ta *tabAdapter) Update(msg tea.Msg) tea.Cmd { return ta.tab.Update(msg) }

// NewApp creates the shell, opening one tab per notebook path. Paths that
// fail to load surface as error dialogs rather than aborting startup.
func NewApp(cfg config.Config, history *store.History, logPath string, paths []string) *App {
	a := &App{
		cfg:       cfg,
		history:   history,
		logPath:   logPath,
		renderCtx: output.NewRenderContext(theme.Active, nil, cfg.General.TabSize),
		menu:      newMenuState(),
	}
	a.split = widgets.NewTabbedSplit(nil, nil, 0, nil)
	a.split.SetCloseable(func(i int) {
		if i >= 0 && i < len(a.tabs) {
			tab := a.tabs[i]
			tab.Close(func() { a.removeTab(tab) })
		}
	})

	for _, p := range paths {
		a.openPath(p)
	}

	if !config.Exists() {
		a.setupForm = newSetupForm(cfg, &a.setupVals)
	}
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnableMouseCellMotion}
	if a.setupForm != nil {
		cmds = append(cmds, a.setupForm.Init())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model. A panic anywhere in the widget tree is
// caught, logged and surfaced as an error dialog instead of tearing down
// the terminal.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("panic in update: %v\n%s", r, debug.Stack())
				a.errorDialog("Internal error", nil)
			}
		}()
		cmd = a.update(msg)
	}()

	if a.quitting {
		return a, tea.Quit
	}
	return a, cmd
}

func (a *App) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.split.Height = a.height - menuBarRows - statusBarRows
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
		}
		return nil

	case tea.KeyMsg:
		if a.setupForm != nil {
			return a.updateSetupForm(msg)
		}
		if d := a.topDialog(); d != nil {
			return d.update(a, msg)
		}
		if a.menu.isOpen() {
			if op := a.menu.update(msg); op != "" {
				return a.dispatch(op)
			}
			return nil
		}
		if msg.String() == "f10" {
			a.menu.openMenu(0)
			return nil
		}
		if op, ok := lookupBinding(msg.String()); ok {
			return a.dispatch(op)
		}
		return a.split.Update(msg)

	case tea.MouseMsg:
		if a.setupForm != nil || a.topDialog() != nil {
			return nil
		}
		if a.menu.isOpen() || msg.Y == 0 {
			if op := a.menu.update(msg); op != "" {
				return a.dispatch(op)
			}
			return nil
		}
		msg.Y -= menuBarRows
		return a.split.Update(msg)

	case kernelErrMsg:
		a.errorDialog(msg.title, msg.err)
		return nil

	default:
		if a.setupForm != nil {
			return a.updateSetupForm(msg)
		}
		// Completion messages from background work go to every tab; each
		// tab ignores messages that are not for it.
		var cmds []tea.Cmd
		for _, t := range a.tabs {
			if c := t.Update(msg); c != nil {
				cmds = append(cmds, c)
			}
		}
		return tea.Batch(cmds...)
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.setupForm != nil {
		return a.setupForm.View()
	}

	menuBar := a.menu.renderBar(a.width)

	var body string
	if len(a.tabs) == 0 {
		body = a.viewWelcome()
	} else {
		body = a.split.View(a.width)
	}

	left, right := a.statusFields()
	status := renderStatusBar(a.width, left, right)

	view := lipgloss.JoinVertical(lipgloss.Left, menuBar, body, status)

	if panel, offsetX := a.menu.renderDropdown(); panel != "" {
		view = overlayRows(view, lipgloss.NewStyle().MarginLeft(offsetX).Render(panel), menuBarRows)
	}
	if d := a.topDialog(); d != nil {
		card := d.render(a.width)
		top := (a.height - lipgloss.Height(card)) / 2
		if top < menuBarRows {
			top = menuBarRows
		}
		view = overlayRows(view, card, top)
	}
	return view
}

// overlayRows replaces whole rows of base with the rows of over, starting
// at row top. Rows are swapped wholesale so no ANSI-aware splicing is
// needed; over's rows carry their own horizontal placement.
func overlayRows(base, over string, top int) string {
	baseLines := strings.Split(base, "\n")
	for i, line := range strings.Split(over, "\n") {
		if row := top + i; row >= 0 && row < len(baseLines) {
			baseLines[row] = line
		}
	}
	return strings.Join(baseLines, "\n")
}

func (a *App) statusFields() (left, right []string) {
	if d := a.topDialog(); d != nil {
		return []string{"tab: next field", "enter: confirm", "esc: cancel"}, nil
	}
	if t := a.currentTab(); t != nil {
		return t.StatusFields()
	}
	return []string{"ctrl+n: new", "ctrl+o: open", "ctrl+q: quit"}, nil
}

func (a *App) viewWelcome() string {
	t := theme.Active
	title := lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Render("nbterm")
	hint := lipgloss.NewStyle().Foreground(t.TextMuted).
		Render("ctrl+n new notebook   ctrl+o open   f1 shortcuts")
	body := lipgloss.JoinVertical(lipgloss.Center, title, "", hint)
	return lipgloss.Place(a.width, a.split.Height, lipgloss.Center, lipgloss.Center, body)
}

// contentWidth is the width available inside the document box.
func (a *App) contentWidth() int {
	w := a.width - 2
	if w < 1 {
		w = 1
	}
	return w
}

// contentHeight is the height available inside the document box: the
// window minus menu bar, status bar, tab bar and the box's bottom border.
func (a *App) contentHeight() int {
	h := a.height - menuBarRows - statusBarRows - 3
	if h < 1 {
		h = 1
	}
	return h
}

func (a *App) currentTab() Tab {
	if len(a.tabs) == 0 {
		return nil
	}
	i := a.split.Active()
	if i < 0 {
		i = 0
	}
	if i >= len(a.tabs) {
		i = len(a.tabs) - 1
	}
	return a.tabs[i]
}

// syncTabs rebuilds the split's children and titles from the tab list.
// Called after any structural change and after title-affecting state
// changes (dirty flag).
func (a *App) syncTabs() {
	children := make([]widgets.Container, len(a.tabs))
	titles := make([]string, len(a.tabs))
	for i, t := range a.tabs {
		children[i] = &tabAdapter{app: a, tab: t}
		titles[i] = t.Title()
	}
	a.split.SetChildren(children)
	a.split.SetTitles(titles)
}

func (a *App) addTab(t Tab) {
	a.tabs = append(a.tabs, t)
	a.syncTabs()
	a.split.SetActive(len(a.tabs) - 1)
}

// focusTab activates an already-open tab.
func (a *App) focusTab(t Tab) {
	for i, existing := range a.tabs {
		if existing == t {
			a.split.SetActive(i)
			return
		}
	}
}

// rememberFile records a notebook in the recent-files history.
func (a *App) rememberFile(path string, lastCell int) {
	if a.history == nil || path == "" {
		return
	}
	if err := a.history.Touch(path, lastCell); err != nil {
		log.Printf("recording recent file %s: %v", path, err)
	}
}

// showLogs opens (or focuses) the log viewer tab.
func (a *App) showLogs() {
	for _, t := range a.tabs {
		if lt, ok := t.(*LogTab); ok {
			lt.reload()
			a.focusTab(t)
			return
		}
	}
	a.addTab(NewLogTab(a.logPath))
}

// showShortcuts opens (or focuses) the keyboard reference tab.
func (a *App) showShortcuts() {
	for _, t := range a.tabs {
		if _, ok := t.(*ShortcutsTab); ok {
			a.focusTab(t)
			return
		}
	}
	a.addTab(NewShortcutsTab())
}

func (a *App) showAbout() {
	a.OpenDialog(&Dialog{
		Title: "nbterm",
		Body: "A terminal notebook editor.\n\n" +
			"Edit, run and preview Jupyter notebooks without leaving\n" +
			"the terminal.",
		Buttons: []DialogButton{{Label: "OK"}},
	})
}
