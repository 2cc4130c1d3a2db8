package widgets

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
}

// Layout with spacing=1, closeable=false and titles "aa", "bb":
//
//	col 0      spacing
//	col 1      tab 0 left edge
//	col 2-3    tab 0 title
//	col 4      tab 0 right edge
//	col 5      spacing
//	col 6      tab 1 left edge
//	col 7-8    tab 1 title
//	col 9      tab 1 right edge
func newTestControl(closeable bool) (*TabControl, *[]string) {
	var events []string
	tabs := []Tab{
		{
			Title:        "aa",
			OnActivate:   func() { events = append(events, "activate:0") },
			OnDeactivate: func() { events = append(events, "deactivate:0") },
			OnClose:      func() { events = append(events, "close:0") },
		},
		{
			Title:        "bb",
			OnActivate:   func() { events = append(events, "activate:1") },
			OnDeactivate: func() { events = append(events, "deactivate:1") },
			OnClose:      func() { events = append(events, "close:1") },
		},
	}
	return NewTabControl(tabs, 0, 1, closeable), &events
}

func TestClickActivatesTabUnderColumn(t *testing.T) {
	c, events := newTestControl(false)
	c.View(40) // build the hit map

	c.Update(click(7, 1))
	if len(*events) != 1 || (*events)[0] != "activate:1" {
		t.Fatalf("events=%v, want [activate:1]", *events)
	}
}

func TestClickOnFillerDoesNothing(t *testing.T) {
	c, events := newTestControl(false)
	c.View(40)

	c.Update(click(0, 1))  // leading spacing
	c.Update(click(25, 1)) // trailing filler
	c.Update(click(2, 0))  // wrong row
	if len(*events) != 0 {
		t.Fatalf("events=%v, want none", *events)
	}
}

func TestCloseButtonColumnCloses(t *testing.T) {
	c, events := newTestControl(true)
	c.View(40)

	// With close buttons each tab widens by two columns: a separator that
	// still activates and the glyph that closes.
	c.Update(click(4, 1)) // tab 0 separator column
	c.Update(click(5, 1)) // tab 0 close glyph
	want := []string{"activate:0", "close:0"}
	if len(*events) != len(want) {
		t.Fatalf("events=%v, want %v", *events, want)
	}
	for i := range want {
		if (*events)[i] != want[i] {
			t.Fatalf("events=%v, want %v", *events, want)
		}
	}
}

func TestTabLineFillsWidthExactly(t *testing.T) {
	// The trailing border filler must absorb exactly the difference, so the
	// tab line always measures the full requested width.
	for _, closeable := range []bool{false, true} {
		c, _ := newTestControl(closeable)
		for _, width := range []int{20, 40, 79} {
			lines := c.Render(width)
			if got := lipgloss.Width(lines[1]); got != width {
				t.Fatalf("closeable=%v width=%d: tab line measures %d", closeable, width, got)
			}
		}
	}
}

func TestHitMapRebuiltOnCachedRender(t *testing.T) {
	c, events := newTestControl(false)
	c.View(40)
	c.hitMap = make(map[int]func()) // simulate stale state

	c.View(40) // cache hit must still rebuild the hit map
	c.Update(click(2, 1))
	if len(*events) != 1 || (*events)[0] != "activate:0" {
		t.Fatalf("events=%v, want [activate:0]", *events)
	}
}

func TestRenderCacheKeyedByInputs(t *testing.T) {
	c, _ := newTestControl(false)
	c.View(40)
	c.View(40)
	if got := c.cache.Len(); got != 1 {
		t.Fatalf("cache entries=%d after repeated render, want 1", got)
	}

	c.SetActive(1)
	c.View(40)
	if got := c.cache.Len(); got != 2 {
		t.Fatalf("cache entries=%d after active change, want 2", got)
	}

	c.View(60)
	if got := c.cache.Len(); got != 3 {
		t.Fatalf("cache entries=%d after width change, want 3", got)
	}

	// Revisiting an earlier state is a cache hit, not a new entry.
	c.SetActive(0)
	c.View(40)
	if got := c.cache.Len(); got != 3 {
		t.Fatalf("cache entries=%d after revisiting, want 3", got)
	}
}

func TestWheelStepsAndClamps(t *testing.T) {
	c, events := newTestControl(false)

	c.Update(tea.MouseMsg{Button: tea.MouseButtonWheelUp}) // already at 0
	if len(*events) != 0 {
		t.Fatalf("wheel up at first tab fired %v", *events)
	}

	c.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown})
	want := []string{"deactivate:0", "activate:1"}
	if len(*events) != len(want) || (*events)[0] != want[0] || (*events)[1] != want[1] {
		t.Fatalf("events=%v, want %v", *events, want)
	}

	// The control's own index is driven by the split; step computes from
	// it, so a second wheel down stays clamped at the last tab once the
	// index is updated.
	c.SetActive(1)
	*events = nil
	c.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown})
	if len(*events) != 0 {
		t.Fatalf("wheel down at last tab fired %v", *events)
	}
}

func TestSetActiveClampsWithoutCallbacks(t *testing.T) {
	c, events := newTestControl(false)
	c.SetActive(99)
	if got := c.Active(); got != 1 {
		t.Fatalf("active=%d, want 1", got)
	}
	if len(*events) != 0 {
		t.Fatalf("SetActive fired callbacks: %v", *events)
	}
}
