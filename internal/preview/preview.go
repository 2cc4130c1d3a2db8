// Package preview renders notebooks to the terminal without starting the
// interactive shell, for piping, paging or writing to a file.
package preview

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nbterm/nbterm/internal/config"
	"github.com/nbterm/nbterm/internal/notebook"
	"github.com/nbterm/nbterm/internal/ui"
	"github.com/nbterm/nbterm/internal/ui/output"
	"github.com/nbterm/nbterm/internal/ui/theme"
)

// Options control where and how wide the preview is rendered.
type Options struct {
	OutputFile string // write here instead of stdout; falls back to stdout on error
	Page       bool   // pipe through the user's pager
	Width      int    // overrides the configured preview width
}

// Run renders each notebook and delivers the result. Failing to open the
// output file is never fatal: the preview falls back to stdout so the
// render is not lost.
func Run(paths []string, cfg config.Config, opts Options) error {
	width := opts.Width
	if width <= 0 {
		width = cfg.Preview.Width
	}
	if width <= 0 {
		width = 100
	}

	var buf bytes.Buffer
	for i, path := range paths {
		nb, err := notebook.Load(path)
		if err != nil {
			return fmt.Errorf("previewing %s: %w", path, err)
		}
		if i > 0 {
			buf.WriteString("\n")
		}
		if len(paths) > 1 {
			buf.WriteString(renderHeader(nb, width) + "\n")
		}
		buf.WriteString(Render(nb, cfg, width))
		buf.WriteString("\n")
	}

	if opts.Page {
		return page(&buf, cfg)
	}

	var w io.Writer = os.Stdout
	if opts.OutputFile != "" {
		f, err := os.Create(opts.OutputFile)
		if err != nil {
			log.Printf("opening output file %s: %v; writing to stdout", opts.OutputFile, err)
		} else {
			defer func() { _ = f.Close() }()
			w = f
		}
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// Render renders a loaded notebook as stacked cell frames at the given
// width, using the same cell widgets as the interactive shell.
func Render(nb *notebook.Notebook, cfg config.Config, width int) string {
	ctx := output.NewRenderContext(theme.ByName(cfg.Appearance.Theme), nil, cfg.General.TabSize)

	lang := nb.Language()
	views := make([]string, 0, len(nb.Cells))
	for _, c := range nb.Cells {
		w := ui.NewCellWidget(c, lang, cfg.General.LineNumbers, ctx)
		views = append(views, w.View(width))
	}
	return strings.Join(views, "\n")
}

func renderHeader(nb *notebook.Notebook, width int) string {
	t := theme.Active
	return lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true).
		Width(width).
		Render("── " + nb.Title() + " ")
}

// page pipes the rendered preview through the configured pager, $PAGER,
// or less -R.
func page(r io.Reader, cfg config.Config) error {
	pager := cfg.Preview.Pager
	if pager == "" {
		pager = os.Getenv("PAGER")
	}
	if pager == "" {
		pager = "less -R"
	}

	parts := strings.Fields(pager)
	cmd := exec.Command(parts[0], parts[1:]...)
	cmd.Stdin = r
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running pager %q: %w", pager, err)
	}
	return nil
}
