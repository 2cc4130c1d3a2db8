package output

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// Display formats supported by the generic conversion component.
const (
	formatANSI      = "ansi"
	formatMarkdown  = "markdown"
	formatHTML      = "html"
	formatLatex     = "latex"
	formatImage     = "image"
	formatPDF       = "pdf"
	formatTraceback = "traceback"
)

// formatForMime maps a MIME type to the internal display format.
func formatForMime(mime string) string {
	switch {
	case MatchMime("image/*", mime):
		return formatImage
	case mime == "application/pdf":
		return formatPDF
	case mime == "text/latex":
		return formatLatex
	case mime == "text/markdown" || mime == "text/x-markdown":
		return formatMarkdown
	case mime == "text/html":
		return formatHTML
	case mime == "text/x-python-traceback":
		return formatTraceback
	default:
		return formatANSI
	}
}

// DisplayOptions carries conversion hints derived from output metadata
// and the active palette.
type DisplayOptions struct {
	FgColor string
	BgColor string
	Px, Py  int // pixel dimensions from output metadata, if any
	TabSize int
	Syntax  string // chroma style for highlighted formats
}

// Display converts one datum to terminal text in a given format. The
// conversion runs once per width and is cached; widths change rarely.
type Display struct {
	datum  string
	format string
	opts   DisplayOptions

	lastWidth int
	rendered  string
	valid     bool
}

// NewDisplay creates a display over a datum.
func NewDisplay(datum, format string, opts DisplayOptions) *Display {
	if opts.TabSize <= 0 {
		opts.TabSize = 8
	}
	return &Display{datum: datum, format: format, opts: opts}
}

// View implements the element contract.
func (d *Display) View(width int) string {
	if d.valid && width == d.lastWidth {
		return d.rendered
	}
	d.rendered = d.convert(width)
	d.lastWidth = width
	d.valid = true
	return d.rendered
}

func (d *Display) convert(width int) string {
	switch d.format {
	case formatMarkdown:
		return d.convertMarkdown(width)
	case formatHTML:
		return stripTags(d.datum)
	case formatTraceback:
		return d.convertTraceback()
	case formatImage, formatPDF, formatLatex:
		return d.placeholder(width)
	default:
		out := expandTabs(strings.TrimRight(d.datum, "\n"), d.opts.TabSize)
		if d.opts.FgColor != "" && !strings.Contains(out, "\x1b[") {
			return lipgloss.NewStyle().Foreground(lipgloss.Color(d.opts.FgColor)).Render(out)
		}
		return out
	}
}

func (d *Display) convertMarkdown(width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return d.datum
	}
	out, err := r.Render(d.datum)
	if err != nil {
		return d.datum
	}
	return strings.TrimRight(out, "\n")
}

func (d *Display) convertTraceback() string {
	src := strings.TrimRight(d.datum, "\n")
	// Kernel tracebacks usually arrive pre-colored; only highlight the
	// plain ones.
	if strings.Contains(src, "\x1b[") {
		return src
	}
	var buf strings.Builder
	if err := quick.Highlight(&buf, src, "py3tb", "terminal256", d.opts.Syntax); err != nil {
		return src
	}
	return buf.String()
}

// placeholder stands in for representations the terminal cannot paint
// directly, sized from the metadata hints when present.
func (d *Display) placeholder(width int) string {
	label := fmt.Sprintf("[%s output]", d.format)
	if d.opts.Px > 0 && d.opts.Py > 0 {
		label = fmt.Sprintf("[%s output %dx%d]", d.format, d.opts.Px, d.opts.Py)
	}
	style := lipgloss.NewStyle().Faint(true)
	if d.opts.BgColor != "" {
		style = style.Background(lipgloss.Color(d.opts.BgColor))
	}
	if w := lipgloss.Width(label); width > w {
		style = style.Width(width)
	}
	return style.Render(label)
}

// stripTags reduces simple HTML to its text content: tags are dropped,
// block-level closers break lines. Not a real HTML renderer; rich HTML
// outputs rank below their text/plain siblings anyway.
func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	out := strings.ReplaceAll(b.String(), "&nbsp;", " ")
	out = strings.ReplaceAll(out, "&lt;", "<")
	out = strings.ReplaceAll(out, "&gt;", ">")
	out = strings.ReplaceAll(out, "&amp;", "&")
	return strings.TrimSpace(out)
}

func expandTabs(s string, tabSize int) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		switch r {
		case '\t':
			n := tabSize - col%tabSize
			b.WriteString(strings.Repeat(" ", n))
			col += n
		case '\n':
			b.WriteRune(r)
			col = 0
		default:
			b.WriteRune(r)
			col++
		}
	}
	return b.String()
}
