package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/nbterm/nbterm/internal/ui/theme"
)

// menuItem is one dropdown entry. An empty op renders a separator.
type menuItem struct {
	label string
	op    string
	key   string // displayed shortcut hint
}

type menu struct {
	title string
	items []menuItem
}

func appMenus() []menu {
	return []menu{
		{"File", []menuItem{
			{"New", opNewNotebook, "ctrl+n"},
			{"Open…", opOpenFile, "ctrl+o"},
			{"Save", opSave, "ctrl+s"},
			{label: "—"},
			{"Close tab", opCloseTab, "ctrl+w"},
			{"Quit", opQuit, "ctrl+q"},
		}},
		{"Edit", []menuItem{
			{"Cut cell", opCutCell, "x"},
			{"Copy cell", opCopyCell, "c"},
			{"Paste cell", opPasteCell, "v"},
			{label: "—"},
			{"Change cell type", opCycleCellType, "t"},
			{"Toggle input", opToggleInput, "z"},
			{"Toggle output", opToggleOutput, "o"},
		}},
		{"Run", []menuItem{
			{"Run cell", opRunCell, "ctrl+enter"},
			{"Run all cells", opRunAll, ""},
		}},
		{"Kernel", []menuItem{
			{"Interrupt kernel", opInterruptKernel, "i"},
			{"Restart kernel", opRestartKernel, "0"},
		}},
		{"Help", []menuItem{
			{"Keyboard shortcuts", opShowShortcuts, "f1"},
			{"View logs", opShowLogs, "f2"},
			{"About", opAbout, ""},
		}},
	}
}

// menuState tracks the menu bar: which menu is open (-1 for none) and
// which item in it is highlighted.
type menuState struct {
	menus    []menu
	open     int
	selected int
	// hitMap maps bar columns to menu indices, rebuilt on render.
	hitMap map[int]int
}

func newMenuState() *menuState {
	return &menuState{menus: appMenus(), open: -1, hitMap: make(map[int]int)}
}

func (m *menuState) isOpen() bool { return m.open >= 0 }

func (m *menuState) openMenu(i int) {
	if i < 0 || i >= len(m.menus) {
		m.open = -1
		return
	}
	m.open = i
	m.selected = 0
}

func (m *menuState) close() { m.open = -1 }

// update handles input while a menu is open. It returns the op to
// dispatch, if the user activated an item.
func (m *menuState) update(msg tea.Msg) (op string) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "f10":
			m.close()
		case "left":
			m.openMenu((m.open + len(m.menus) - 1) % len(m.menus))
		case "right":
			m.openMenu((m.open + 1) % len(m.menus))
		case "up":
			m.moveSelection(-1)
		case "down":
			m.moveSelection(1)
		case "enter":
			item := m.menus[m.open].items[m.selected]
			m.close()
			return item.op
		}
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
			return ""
		}
		if msg.Y == 0 {
			if i, ok := m.hitMap[msg.X]; ok {
				if i == m.open {
					m.close()
				} else {
					m.openMenu(i)
				}
			} else {
				m.close()
			}
			return ""
		}
		// Dropdown rows start below the bar; row 0 of the panel is its
		// top border.
		row := msg.Y - 1 - 1
		items := m.menus[m.open].items
		if row >= 0 && row < len(items) && items[row].op != "" {
			m.close()
			return items[row].op
		}
		m.close()
	}
	return ""
}

func (m *menuState) moveSelection(delta int) {
	items := m.menus[m.open].items
	for range items {
		m.selected = (m.selected + delta + len(items)) % len(items)
		if items[m.selected].op != "" {
			return
		}
	}
}

// renderBar paints the top menu row and rebuilds the column hit map.
func (m *menuState) renderBar(width int) string {
	t := theme.Active
	for k := range m.hitMap {
		delete(m.hitMap, k)
	}

	var b strings.Builder
	col := 0
	for i, mn := range m.menus {
		label := " " + mn.title + " "
		style := lipgloss.NewStyle().Foreground(t.TextMuted)
		if i == m.open {
			style = lipgloss.NewStyle().Foreground(t.Background).Background(t.Accent)
		}
		b.WriteString(style.Render(label))
		for c := 0; c < runewidth.StringWidth(label); c++ {
			m.hitMap[col] = i
			col++
		}
	}
	bar := b.String()
	if pad := width - col; pad > 0 {
		bar += lipgloss.NewStyle().Render(strings.Repeat(" ", pad))
	}
	return bar
}

// renderDropdown paints the open menu's panel, positioned under its bar
// title. The panel replaces the rows it covers.
func (m *menuState) renderDropdown() (panel string, offsetX int) {
	if !m.isOpen() {
		return "", 0
	}
	t := theme.Active
	mn := m.menus[m.open]

	// Column offset of the menu title in the bar.
	for i := 0; i < m.open; i++ {
		offsetX += runewidth.StringWidth(m.menus[i].title) + 2
	}

	labelWidth, keyWidth := 0, 0
	for _, it := range mn.items {
		if w := runewidth.StringWidth(it.label); w > labelWidth {
			labelWidth = w
		}
		if w := runewidth.StringWidth(it.key); w > keyWidth {
			keyWidth = w
		}
	}
	inner := labelWidth + 2 + keyWidth

	rows := make([]string, 0, len(mn.items))
	for i, it := range mn.items {
		if it.op == "" {
			rows = append(rows, lipgloss.NewStyle().
				Foreground(t.Border).
				Render(strings.Repeat("─", inner+2)))
			continue
		}
		line := " " + runewidth.FillRight(it.label, labelWidth) + "  " +
			lipgloss.NewStyle().Foreground(t.TextDim).Render(runewidth.FillLeft(it.key, keyWidth)) + " "
		style := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
		if i == m.selected {
			style = lipgloss.NewStyle().Foreground(t.Background).Background(t.Accent)
		}
		rows = append(rows, style.Render(line))
	}

	panel = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(t.Border).
		Background(t.Surface).
		Render(strings.Join(rows, "\n"))
	return panel, offsetX
}
