package widgets

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mattn/go-runewidth"

	"github.com/nbterm/nbterm/internal/ui/theme"
)

// Tab describes one tab header and its callbacks.
type Tab struct {
	Title        string
	OnActivate   func()
	OnDeactivate func()
	OnClose      func()
}

// Box-drawing characters used by the tab bar.
const (
	charTop    = "▁"
	charBottom = "▁"
	charLeft   = "▏"
	charRight  = "▕"
	charClose  = "✖"
)

// contentCacheSize bounds the number of distinct render states kept.
const contentCacheSize = 50

type contentKey struct {
	titles    string
	width     int
	closeable bool
	active    int
}

// TabControl renders a row of clickable tab headers with box-drawing
// borders and an active-tab indicator. Rendering populates a mapping from
// screen column to callback, consulted on mouse clicks.
type TabControl struct {
	Tabs      []Tab
	Spacing   int
	Closeable bool

	active int
	hitMap map[int]func()
	cache  *lru.Cache[contentKey, []string]
}

// NewTabControl creates a tab bar over the given tabs.
func NewTabControl(tabs []Tab, active, spacing int, closeable bool) *TabControl {
	cache, _ := lru.New[contentKey, []string](contentCacheSize)
	return &TabControl{
		Tabs:      tabs,
		Spacing:   spacing,
		Closeable: closeable,
		active:    active,
		hitMap:    make(map[int]func()),
		cache:     cache,
	}
}

// Active returns the active tab index.
func (c *TabControl) Active() int { return c.active }

// SetActive sets the active tab index without firing callbacks; the
// owning split drives activation callbacks.
func (c *TabControl) SetActive(i int) {
	c.active = clamp(i, 0, len(c.Tabs)-1)
}

// PreferredWidth always claims all available width.
func (c *TabControl) PreferredWidth(maxAvailable int) int { return maxAvailable }

// PreferredHeight is fixed: a border row plus the tab-label row.
func (c *TabControl) PreferredHeight() int { return 2 }

// View implements Container.
func (c *TabControl) View(width int) string {
	return strings.Join(c.Render(width), "\n")
}

// Render produces the two styled lines of the tab bar. The column hit-map
// is rebuilt on every call since column positions depend on title widths;
// the styled lines are cached by their full input key.
func (c *TabControl) Render(width int) []string {
	key := contentKey{
		titles:    c.titleKey(),
		width:     width,
		closeable: c.Closeable,
		active:    c.active,
	}
	if lines, ok := c.cache.Get(key); ok {
		c.renderInto(width, nil)
		return lines
	}

	var top, tabs strings.Builder
	c.renderInto(width, &[2]*strings.Builder{&top, &tabs})
	lines := []string{top.String(), tabs.String()}
	c.cache.Add(key, lines)
	return lines
}

func (c *TabControl) titleKey() string {
	titles := make([]string, len(c.Tabs))
	for i, t := range c.Tabs {
		titles[i] = t.Title
	}
	return strings.Join(titles, "\x00")
}

// renderInto walks the tab layout once, assigning a callback to every
// column. When out is non-nil the styled top and tab lines are written as
// a side effect.
func (c *TabControl) renderInto(width int, out *[2]*strings.Builder) {
	t := theme.Active
	borderStyle := lipgloss.NewStyle().Foreground(t.Border)
	activeStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	inactiveStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	closeStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	c.hitMap = make(map[int]func())
	col := 0

	emit := func(line int, s string) {
		if out != nil {
			out[line].WriteString(s)
		}
	}

	// Initial spacing
	emit(0, strings.Repeat(" ", c.Spacing))
	emit(1, borderStyle.Render(strings.Repeat(charBottom, c.Spacing)))
	col += c.Spacing

	for j, tab := range c.Tabs {
		style := inactiveStyle
		if j == c.active {
			style = activeStyle
		}
		titleWidth := runewidth.StringWidth(tab.Title)

		// Top edge over the tab, widened for the close button.
		topWidth := titleWidth + 2
		if c.Closeable {
			topWidth += 2
		}
		emit(0, style.Render(strings.Repeat(charTop, topWidth)))

		// Left edge
		emit(1, style.Render(charLeft))
		c.hitMap[col] = tab.OnActivate
		col++

		// Title
		emit(1, style.Render(tab.Title))
		for k := 0; k < titleWidth; k++ {
			c.hitMap[col] = tab.OnActivate
			col++
		}

		// Close button: the separator column still activates, only the
		// glyph itself closes.
		if c.Closeable {
			emit(1, " ")
			c.hitMap[col] = tab.OnActivate
			col++
			emit(1, closeStyle.Render(charClose))
			c.hitMap[col] = tab.OnClose
			col++
		}

		// Right edge
		emit(1, style.Render(charRight))
		c.hitMap[col] = tab.OnActivate
		col++

		// Inter-tab spacing
		emit(0, strings.Repeat(" ", c.Spacing))
		emit(1, borderStyle.Render(strings.Repeat(charBottom, c.Spacing)))
		col += c.Spacing
	}

	// Pad the tab line with the bottom border out to exactly the full
	// width. Only this trailing filler run ever absorbs the difference.
	if fill := width - col; fill > 0 {
		emit(1, borderStyle.Render(strings.Repeat(charBottom, fill)))
	}
}

// Update handles mouse input: clicks on the label row dispatch through
// the hit-map, wheel events step the active tab.
func (c *TabControl) Update(msg tea.Msg) tea.Cmd {
	m, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}

	switch m.Button {
	case tea.MouseButtonLeft:
		if m.Action == tea.MouseActionRelease && m.Y == 1 {
			if handler := c.hitMap[m.X]; handler != nil {
				handler()
			}
		}
	case tea.MouseButtonWheelUp:
		c.step(-1)
	case tea.MouseButtonWheelDown:
		c.step(1)
	}
	return nil
}

// step moves the active tab by delta, clamped to the tab range, firing
// deactivate on the old tab then activate on the new one.
func (c *TabControl) step(delta int) {
	if len(c.Tabs) == 0 {
		return
	}
	index := clamp(c.active+delta, 0, len(c.Tabs)-1)
	if index == c.active {
		return
	}
	if f := c.Tabs[c.active].OnDeactivate; f != nil {
		f()
	}
	if f := c.Tabs[index].OnActivate; f != nil {
		f()
	}
}
