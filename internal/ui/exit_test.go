package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nbterm/nbterm/internal/config"
	"github.com/nbterm/nbterm/internal/ui/output"
	"github.com/nbterm/nbterm/internal/ui/theme"
	"github.com/nbterm/nbterm/internal/ui/widgets"
)

func newTestApp() *App {
	a := &App{
		cfg:       config.DefaultConfig(),
		menu:      newMenuState(),
		renderCtx: output.NewRenderContext(theme.Terminal, nil, 8),
		width:     80,
		height:    24,
	}
	a.split = widgets.NewTabbedSplit(nil, nil, 0, nil)
	a.split.Height = a.height - menuBarRows - statusBarRows
	return a
}

// fakeTab records close prompts and can simulate a cancelled prompt by
// never invoking done.
type fakeTab struct {
	name   string
	cancel bool
	asked  *[]string
}

func (f *fakeTab) Title() string { return f.name }

func (f *fakeTab) View(int, int) string { return f.name }

func (f *fakeTab) Update(tea.Msg) tea.Cmd { return nil }

func (f *fakeTab) StatusFields() ([]string, []string) { return nil, nil }

func (f *fakeTab) Operation(string) func() tea.Cmd { return nil }
func (f *fakeTab) Close(done func()) {
	*f.asked = append(*f.asked, f.name)
	if !f.cancel {
		done()
	}
}

func TestCloseAllAsksRightToLeft(t *testing.T) {
	a := newTestApp()
	var asked []string
	a.addTab(&fakeTab{name: "a", asked: &asked})
	a.addTab(&fakeTab{name: "b", asked: &asked})
	a.addTab(&fakeTab{name: "c", asked: &asked})

	a.closeAll()

	want := []string{"c", "b", "a"}
	if len(asked) != len(want) {
		t.Fatalf("asked=%v, want %v", asked, want)
	}
	for i := range want {
		if asked[i] != want[i] {
			t.Fatalf("asked=%v, want %v", asked, want)
		}
	}
	if !a.quitting {
		t.Fatal("all tabs agreed but the app is not quitting")
	}
	if len(a.tabs) != 0 {
		t.Fatalf("%d tabs remain after closeAll", len(a.tabs))
	}
}

func TestCloseAllAbortsAtCancelledTab(t *testing.T) {
	a := newTestApp()
	var asked []string
	a.addTab(&fakeTab{name: "a", asked: &asked})
	a.addTab(&fakeTab{name: "b", cancel: true, asked: &asked})
	a.addTab(&fakeTab{name: "c", asked: &asked})

	a.closeAll()

	// c agreed and was removed; b cancelled; a was never asked.
	want := []string{"c", "b"}
	if len(asked) != len(want) || asked[0] != want[0] || asked[1] != want[1] {
		t.Fatalf("asked=%v, want %v", asked, want)
	}
	if a.quitting {
		t.Fatal("app is quitting despite a cancelled close")
	}
	if len(a.tabs) != 2 {
		t.Fatalf("%d tabs remain, want 2", len(a.tabs))
	}
	if a.tabs[0].Title() != "a" || a.tabs[1].Title() != "b" {
		t.Fatalf("remaining tabs %q, %q, want a, b", a.tabs[0].Title(), a.tabs[1].Title())
	}
}

func TestCloseCurrentTabRemovesOnlyThatTab(t *testing.T) {
	a := newTestApp()
	var asked []string
	a.addTab(&fakeTab{name: "a", asked: &asked})
	a.addTab(&fakeTab{name: "b", asked: &asked})
	a.split.SetActive(0)

	a.closeCurrentTab()

	if len(asked) != 1 || asked[0] != "a" {
		t.Fatalf("asked=%v, want [a]", asked)
	}
	if len(a.tabs) != 1 || a.tabs[0].Title() != "b" {
		t.Fatalf("remaining tabs wrong: %v", a.tabs)
	}
	if a.quitting {
		t.Fatal("closing one tab must not quit")
	}
}

func TestCloseAllWithNoTabsQuits(t *testing.T) {
	a := newTestApp()
	a.closeAll()
	if !a.quitting {
		t.Fatal("closeAll with no tabs did not quit")
	}
}
