package widgets

// ActiveNone is the sentinel active index meaning no child is active.
// Only AccordionSplit produces it (all sections collapsed).
const ActiveNone = -1

// StackedSplit owns the active-index state machine shared by the split
// variants: parallel children/titles sequences and an active index.
// Invariant: len(children) == len(titles).
type StackedSplit struct {
	children  []Container
	titles    []string
	active    int
	allowNone bool

	onChange func(*StackedSplit)
	// refresh is the variant hook invoked whenever children, titles or
	// the active index change, so cached render state can be rebuilt.
	refresh func()
}

func newStackedSplit(children []Container, titles []string, active int, allowNone bool, onChange func(*StackedSplit)) *StackedSplit {
	s := &StackedSplit{
		children:  append([]Container(nil), children...),
		titles:    append([]string(nil), titles...),
		active:    ActiveNone,
		allowNone: allowNone,
		onChange:  onChange,
	}
	// Clamp the requested initial index without firing the change
	// notification or focusing.
	s.active = s.clampIndex(active)
	return s
}

func (s *StackedSplit) clampIndex(v int) int {
	if len(s.children) == 0 {
		return ActiveNone
	}
	if v == ActiveNone {
		if s.allowNone {
			return ActiveNone
		}
		return 0
	}
	return clamp(v, 0, len(s.children)-1)
}

// Active returns the active index, or ActiveNone.
func (s *StackedSplit) Active() int { return s.active }

// SetActive changes the active child. The value is clamped into range
// (or the none sentinel where allowed). A no-op if unchanged; otherwise
// cached render state is rebuilt, the change notification fires, and
// focus moves best-effort to the new active child.
func (s *StackedSplit) SetActive(v int) {
	v = s.clampIndex(v)
	if v == s.active {
		return
	}
	s.active = v
	if s.refresh != nil {
		s.refresh()
	}
	if s.onChange != nil {
		s.onChange(s)
	}
	if v != ActiveNone {
		if f, ok := s.children[v].(Focusable); ok {
			_ = f.Focus() // unfocusable children are fine
		}
	}
}

// Children returns the child sequence.
func (s *StackedSplit) Children() []Container { return s.children }

// Titles returns the title sequence.
func (s *StackedSplit) Titles() []string { return s.titles }

// SetChildren replaces the children wholesale. The active index is not
// reset, even if now out of range; rendering clamps defensively.
func (s *StackedSplit) SetChildren(children []Container) {
	s.children = append([]Container(nil), children...)
	if s.refresh != nil {
		s.refresh()
	}
}

// SetTitles replaces the titles wholesale.
func (s *StackedSplit) SetTitles(titles []string) {
	s.titles = append([]string(nil), titles...)
	if s.refresh != nil {
		s.refresh()
	}
}

// ActiveChild returns the child at the active index. ok is false when the
// active index is the none sentinel or the children list is empty.
func (s *StackedSplit) ActiveChild() (Container, bool) {
	idx := s.renderIndex()
	if idx == ActiveNone {
		return nil, false
	}
	return s.children[idx], true
}

// renderIndex is the defensively clamped active index used at render
// time: SetChildren may have left the stored index out of range.
func (s *StackedSplit) renderIndex() int {
	if s.active == ActiveNone || len(s.children) == 0 {
		if len(s.children) == 0 {
			return ActiveNone
		}
		if s.allowNone {
			return ActiveNone
		}
		return 0
	}
	return clamp(s.active, 0, len(s.children)-1)
}
