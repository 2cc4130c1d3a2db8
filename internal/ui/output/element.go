package output

import (
	"encoding/json"

	"github.com/nbterm/nbterm/internal/notebook"
)

// Element renders one MIME representation of an output.
type Element interface {
	View(width int) string
}

// mimeRenderers maps MIME glob patterns to element constructors,
// evaluated in order with first match winning. The final wildcard entry
// guarantees every output has some visual representation.
var mimeRenderers = []struct {
	pattern string
	build   func(mime, data string, meta notebook.MimeMetadata, ctx *RenderContext) Element
}{
	{"application/vnd.jupyter.widget-view+json", newWidgetElement},
	{"*", newDataElement},
}

func buildElement(mime, data string, meta notebook.MimeMetadata, ctx *RenderContext) Element {
	for _, r := range mimeRenderers {
		if MatchMime(r.pattern, mime) {
			return r.build(mime, data, meta, ctx)
		}
	}
	// Unreachable while the wildcard entry is present.
	return newDataElement(mime, data, meta, ctx)
}

// DataElement renders static output data by converting it to terminal
// text in a format derived from its MIME type.
type DataElement struct {
	display *Display
}

func newDataElement(mime, data string, meta notebook.MimeMetadata, ctx *RenderContext) Element {
	// Background hint from the output metadata, foreground from the
	// active palette.
	bg := ""
	switch meta.NeedsBackground {
	case "light":
		bg = "#FFFFFF"
	case "dark":
		bg = "#000000"
	}

	return &DataElement{
		display: NewDisplay(data, formatForMime(mime), DisplayOptions{
			FgColor: string(ctx.Palette.TextPrimary),
			BgColor: bg,
			Px:      meta.Width,
			Py:      meta.Height,
			TabSize: ctx.TabSize,
			Syntax:  ctx.Palette.SyntaxTheme,
		}),
	}
}

// View implements Element.
func (e *DataElement) View(width int) string { return e.display.View(width) }

// WidgetElement renders an interactive widget output by asking its live
// comm channel for a view. A comm that is not currently registered falls
// back to a plain textual placeholder.
type WidgetElement struct {
	ctx     *RenderContext
	commID  string
	display *Display // placeholder when the comm is missing
}

func newWidgetElement(mime, data string, meta notebook.MimeMetadata, ctx *RenderContext) Element {
	var view struct {
		ModelID string `json:"model_id"`
	}
	_ = json.Unmarshal([]byte(data), &view)

	w := &WidgetElement{ctx: ctx, commID: view.ModelID}
	if _, ok := ctx.Comms.Lookup(view.ModelID); !ok {
		w.display = NewDisplay(view.ModelID, formatANSI, DisplayOptions{TabSize: ctx.TabSize})
	}
	return w
}

// View implements Element.
func (e *WidgetElement) View(width int) string {
	if comm, ok := e.ctx.Comms.Lookup(e.commID); ok {
		return comm.CreateView(e.ctx.CellID)
	}
	if e.display != nil {
		return e.display.View(width)
	}
	return e.commID
}
