package output

import (
	"sort"
	"strings"

	"github.com/nbterm/nbterm/internal/notebook"
)

// MimeData is one representation of an output record.
type MimeData struct {
	Mime string
	Data string
}

// CellOutput wraps one raw output record and selects among its MIME
// representations. Renderers are built lazily, one per representation,
// and reused while the backing record is unchanged.
type CellOutput struct {
	ctx *RenderContext
	raw notebook.Output

	selected string
	elements map[string]Element
}

// New creates a cell output over a raw record.
func New(raw notebook.Output, ctx *RenderContext) *CellOutput {
	return &CellOutput{
		ctx:      ctx,
		raw:      raw,
		elements: make(map[string]Element),
	}
}

// Raw returns the backing output record.
func (o *CellOutput) Raw() notebook.Output { return o.raw }

// SetRaw replaces the backing record. All cached renderers are dropped
// and the MIME selection resets to the default.
func (o *CellOutput) SetRaw(raw notebook.Output) {
	o.raw = raw
	o.elements = make(map[string]Element)
	o.selected = ""
}

// Data derives the MIME representations of the record. Stream outputs
// synthesize a single stream/<name> entry and error outputs a
// text/x-python-traceback entry; everything else passes the data bundle
// through. The result is sorted ascending by rank, ties broken by the
// original key order.
func (o *CellOutput) Data() []MimeData {
	var entries []MimeData
	switch o.raw.OutputType {
	case "stream":
		entries = []MimeData{{
			Mime: "stream/" + o.raw.Name,
			Data: o.raw.Text.String(),
		}}
	case "error":
		entries = []MimeData{{
			Mime: "text/x-python-traceback",
			Data: strings.Join(o.raw.Traceback, "\n"),
		}}
	default:
		for _, mime := range o.raw.Data.Keys() {
			entries = append(entries, MimeData{Mime: mime, Data: o.raw.Data.Text(mime)})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return Rank(entries[i].Mime, entries[i].Data) < Rank(entries[j].Mime, entries[j].Data)
	})
	return entries
}

// SelectedMime returns the selected MIME type, falling back to the
// highest-ranked available representation when no explicit selection is
// in effect.
func (o *CellOutput) SelectedMime() string {
	data := o.Data()
	for _, d := range data {
		if d.Mime == o.selected {
			return o.selected
		}
	}
	if len(data) == 0 {
		return ""
	}
	return data[0].Mime
}

// SelectMime picks an explicit MIME representation to display.
func (o *CellOutput) SelectMime(mime string) { o.selected = mime }

// Element returns the renderer for the selected representation,
// materializing it on first use and memoizing it per MIME type.
func (o *CellOutput) Element() Element {
	mime := o.SelectedMime()
	if el, ok := o.elements[mime]; ok {
		return el
	}

	var payload string
	for _, d := range o.Data() {
		if d.Mime == mime {
			payload = d.Data
			break
		}
	}

	el := buildElement(mime, payload, o.raw.Metadata.ForMime(mime), o.ctx)
	o.elements[mime] = el
	return el
}

// View renders the selected representation.
func (o *CellOutput) View(width int) string {
	el := o.Element()
	if el == nil {
		return ""
	}
	return el.View(width)
}

// CellOutputArea is the ordered sequence of outputs of one cell.
type CellOutputArea struct {
	ctx     *RenderContext
	outputs []*CellOutput
}

// NewArea creates an output area over the raw output records.
func NewArea(raws []notebook.Output, ctx *RenderContext) *CellOutputArea {
	a := &CellOutputArea{ctx: ctx}
	a.SetRaw(raws)
	return a
}

// Outputs returns the current CellOutput sequence.
func (a *CellOutputArea) Outputs() []*CellOutput { return a.outputs }

// SetRaw reconciles the area against a new record list positionally:
// overlapping positions update the existing CellOutput in place (keeping
// its renderer cache useful for unchanged records), positions beyond the
// old length get fresh instances, and trailing instances are dropped.
// Positional matching misattributes caches if outputs are reordered; for
// the append-only streams kernels produce it avoids rebuilding renderers.
func (a *CellOutputArea) SetRaw(raws []notebook.Output) {
	outputs := make([]*CellOutput, 0, len(raws))
	for i, raw := range raws {
		if i < len(a.outputs) {
			existing := a.outputs[i]
			existing.SetRaw(raw)
			outputs = append(outputs, existing)
		} else {
			outputs = append(outputs, New(raw, a.ctx))
		}
	}
	a.outputs = outputs
}

// View renders all outputs stacked vertically.
func (a *CellOutputArea) View(width int) string {
	views := make([]string, 0, len(a.outputs))
	for _, o := range a.outputs {
		if v := o.View(width); v != "" {
			views = append(views, v)
		}
	}
	return strings.Join(views, "\n")
}
