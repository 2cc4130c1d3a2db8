package output

import (
	"github.com/nbterm/nbterm/internal/kernel"
	"github.com/nbterm/nbterm/internal/ui/theme"
)

// RenderContext carries the collaborators output elements need: the
// active palette, the comm registry for interactive widgets, and
// config-derived hints. It is passed explicitly into constructors; there
// is no process-global accessor.
type RenderContext struct {
	Palette theme.Theme
	Comms   *kernel.Registry
	// CellID identifies the owning cell, used when asking a comm to
	// build its view.
	CellID string
	// TabSize is the column width used when expanding tabs in text
	// output.
	TabSize int
}

// NewRenderContext returns a context over the given palette and registry
// with defaults applied. A nil registry and a non-positive tab size fall
// back to an empty registry and 8 columns.
func NewRenderContext(palette theme.Theme, comms *kernel.Registry, tabSize int) *RenderContext {
	if comms == nil {
		comms = kernel.NewRegistry()
	}
	if tabSize <= 0 {
		tabSize = 8
	}
	return &RenderContext{
		Palette: palette,
		Comms:   comms,
		TabSize: tabSize,
	}
}

// ForCell returns a copy of the context bound to a cell id.
func (c *RenderContext) ForCell(cellID string) *RenderContext {
	cp := *c
	cp.CellID = cellID
	return &cp
}
