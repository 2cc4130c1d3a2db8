package widgets

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	lru "github.com/hashicorp/golang-lru/v2"
)

// splitBox arranges children in a fixed orientation.
type splitBox struct {
	vertical bool
	children []Container
}

func (b *splitBox) View(width int) string {
	if len(b.children) == 0 {
		return ""
	}
	views := make([]string, len(b.children))
	if b.vertical {
		for i, c := range b.children {
			views[i] = c.View(width)
		}
		return lipgloss.JoinVertical(lipgloss.Left, views...)
	}
	widths := make([]int, len(b.children))
	remaining, flexible := width, 0
	for i, c := range b.children {
		if s, ok := c.(Sizer); ok {
			widths[i] = s.PreferredWidth(width)
			remaining -= widths[i]
		} else {
			flexible++
		}
	}
	per := 1
	if flexible > 0 && remaining > flexible {
		per = remaining / flexible
	}
	for i, c := range b.children {
		w := widths[i]
		if w == 0 {
			w = per
		}
		views[i] = c.View(w)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, views...)
}

func (b *splitBox) Update(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for _, c := range b.children {
		if cmd := c.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// ConditionalSplit picks a horizontal or vertical arrangement of its
// children by a runtime predicate. One composed container per orientation
// is kept in a two-entry cache.
type ConditionalSplit struct {
	// Vertical reports whether the children should be stacked
	// vertically for the current render.
	Vertical func() bool

	children []Container
	cache    *lru.Cache[bool, *splitBox]
}

// NewConditionalSplit creates a conditional split over children.
func NewConditionalSplit(vertical func() bool, children ...Container) *ConditionalSplit {
	cache, _ := lru.New[bool, *splitBox](2)
	return &ConditionalSplit{
		Vertical: vertical,
		children: children,
		cache:    cache,
	}
}

func (c *ConditionalSplit) container() *splitBox {
	vertical := c.Vertical()
	if b, ok := c.cache.Get(vertical); ok {
		return b
	}
	b := &splitBox{vertical: vertical, children: c.children}
	c.cache.Add(vertical, b)
	return b
}

// View implements Container.
func (c *ConditionalSplit) View(width int) string {
	return c.container().View(width)
}

// Update implements Container.
func (c *ConditionalSplit) Update(msg tea.Msg) tea.Cmd {
	return c.container().Update(msg)
}

// ReferencedSplit keeps a split's children in sync with an externally
// owned slice: the reference is re-read on every render and update, so
// mutations of the backing slice show up without explicit notification.
type ReferencedSplit struct {
	Ref *[]Container

	box splitBox
}

// NewReferencedSplit creates a split whose children track *ref.
func NewReferencedSplit(vertical bool, ref *[]Container) *ReferencedSplit {
	return &ReferencedSplit{
		Ref: ref,
		box: splitBox{vertical: vertical},
	}
}

func (r *ReferencedSplit) sync() {
	r.box.children = *r.Ref
}

// View implements Container.
func (r *ReferencedSplit) View(width int) string {
	r.sync()
	return r.box.View(width)
}

// Update implements Container.
func (r *ReferencedSplit) Update(msg tea.Msg) tea.Cmd {
	r.sync()
	return r.box.Update(msg)
}
