package widgets

import "testing"

// focusChild records focus requests.
type focusChild struct {
	Text
	focused int
}

func (f *focusChild) Focus() bool {
	f.focused++
	return true
}

func three() []Container {
	return []Container{Text("a"), Text("b"), Text("c")}
}

func TestInitialActiveClamped(t *testing.T) {
	cases := []struct {
		name      string
		active    int
		allowNone bool
		want      int
	}{
		{"beyond end", 99, false, 2},
		{"negative", -5, false, 0},
		{"none without allowNone", ActiveNone, false, 0},
		{"none with allowNone", ActiveNone, true, ActiveNone},
		{"in range", 1, false, 1},
	}
	for _, tc := range cases {
		s := newStackedSplit(three(), []string{"a", "b", "c"}, tc.active, tc.allowNone, nil)
		if got := s.Active(); got != tc.want {
			t.Errorf("%s: active=%d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestInitialActiveDoesNotNotify(t *testing.T) {
	fired := 0
	newStackedSplit(three(), []string{"a", "b", "c"}, 99, false, func(*StackedSplit) { fired++ })
	if fired != 0 {
		t.Fatalf("construction fired onChange %d times, want 0", fired)
	}
}

func TestSetActiveNoOpWhenUnchanged(t *testing.T) {
	fired := 0
	s := newStackedSplit(three(), []string{"a", "b", "c"}, 1, false, func(*StackedSplit) { fired++ })

	s.SetActive(1)
	if fired != 0 {
		t.Fatalf("SetActive(same) fired onChange %d times, want 0", fired)
	}
	s.SetActive(99) // clamps to 2, which differs
	if fired != 1 {
		t.Fatalf("SetActive(new) fired onChange %d times, want 1", fired)
	}
	if got := s.Active(); got != 2 {
		t.Fatalf("active=%d, want 2", got)
	}
}

func TestSetActiveFocusesNewChild(t *testing.T) {
	fc := &focusChild{}
	s := newStackedSplit([]Container{Text("a"), fc}, []string{"a", "b"}, 0, false, nil)

	s.SetActive(1)
	if fc.focused != 1 {
		t.Fatalf("new active child focused %d times, want 1", fc.focused)
	}
}

func TestEmptySplitActiveIsNone(t *testing.T) {
	s := newStackedSplit(nil, nil, 3, false, nil)
	if got := s.Active(); got != ActiveNone {
		t.Fatalf("empty split active=%d, want %d", got, ActiveNone)
	}
	if _, ok := s.ActiveChild(); ok {
		t.Fatal("empty split reported an active child")
	}
}

func TestSetChildrenKeepsStaleIndex(t *testing.T) {
	s := newStackedSplit(three(), []string{"a", "b", "c"}, 2, false, nil)

	// Shrinking the children does not touch the stored index.
	s.SetChildren([]Container{Text("only")})
	if got := s.Active(); got != 2 {
		t.Fatalf("active=%d after SetChildren, want 2 (unclamped)", got)
	}

	// Rendering clamps defensively instead.
	child, ok := s.ActiveChild()
	if !ok {
		t.Fatal("no active child after SetChildren")
	}
	if got := child.View(10); got != "only" {
		t.Fatalf("active child view=%q, want %q", got, "only")
	}
}

func TestAccordionToggle(t *testing.T) {
	a := NewAccordionSplit(three(), []string{"a", "b", "c"}, 0, nil)

	a.Toggle(0)
	if got := a.Active(); got != ActiveNone {
		t.Fatalf("toggling the active section gave %d, want %d", got, ActiveNone)
	}
	a.Toggle(2)
	if got := a.Active(); got != 2 {
		t.Fatalf("toggling a collapsed section gave %d, want 2", got)
	}
	a.Toggle(1)
	if got := a.Active(); got != 1 {
		t.Fatalf("toggling another section gave %d, want 1", got)
	}
}
