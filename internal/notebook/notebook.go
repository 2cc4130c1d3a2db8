// Package notebook models Jupyter notebook files (nbformat 4) closely
// enough for display and editing: cells, outputs, and MIME bundles.
// Kernel execution and comm transport live behind internal/kernel.
package notebook

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Notebook is one open notebook document.
type Notebook struct {
	Cells         []*Cell                    `json:"cells"`
	Metadata      map[string]json.RawMessage `json:"metadata"`
	NBFormat      int                        `json:"nbformat"`
	NBFormatMinor int                        `json:"nbformat_minor"`

	path  string
	dirty bool
}

// Cell is a single notebook cell.
type Cell struct {
	ID             string                     `json:"id,omitempty"`
	CellType       string                     `json:"cell_type"`
	Source         MultilineString            `json:"source"`
	Metadata       map[string]json.RawMessage `json:"metadata"`
	ExecutionCount *int                       `json:"execution_count,omitempty"`
	Outputs        []Output                   `json:"outputs,omitempty"`
}

// Output is one raw output record of a code cell.
type Output struct {
	OutputType     string          `json:"output_type"`
	Name           string          `json:"name,omitempty"` // stream outputs: stdout/stderr
	Text           MultilineString `json:"text,omitempty"`
	EName          string          `json:"ename,omitempty"`
	EValue         string          `json:"evalue,omitempty"`
	Traceback      []string        `json:"traceback,omitempty"`
	Data           MimeBundle      `json:"data,omitempty"`
	Metadata       OutputMetadata  `json:"metadata,omitempty"`
	ExecutionCount *int            `json:"execution_count,omitempty"`
}

// OutputMetadata holds the per-MIME metadata of an output record. Values
// are decoded lazily since the bundle mixes per-MIME objects with loose
// scalar keys.
type OutputMetadata map[string]json.RawMessage

// MimeMetadata holds the display hints an output may carry for one MIME type.
type MimeMetadata struct {
	NeedsBackground string `json:"needs_background,omitempty"`
	Width           int    `json:"width,omitempty"`
	Height          int    `json:"height,omitempty"`
}

// ForMime returns the decoded metadata for a MIME type, zero if absent or
// malformed.
func (m OutputMetadata) ForMime(mime string) MimeMetadata {
	var meta MimeMetadata
	if raw, ok := m[mime]; ok {
		_ = json.Unmarshal(raw, &meta)
	}
	return meta
}

// New returns an empty notebook with a single code cell, ready to save at
// path.
func New(path string) *Notebook {
	nb := &Notebook{
		Cells:         []*Cell{NewCell("code")},
		Metadata:      map[string]json.RawMessage{},
		NBFormat:      4,
		NBFormatMinor: 5,
		path:          path,
		dirty:         true,
	}
	return nb
}

// NewCell returns an empty cell of the given type with a fresh id.
func NewCell(cellType string) *Cell {
	return &Cell{
		ID:       uuid.NewString(),
		CellType: cellType,
		Metadata: map[string]json.RawMessage{},
	}
}

// Load reads and parses a notebook file.
func Load(path string) (*Notebook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading notebook: %w", err)
	}

	var nb Notebook
	if err := json.Unmarshal(data, &nb); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	nb.path = path

	// Old nbformat versions omit cell ids; assign them so selection and
	// comm lookups have stable keys.
	for _, c := range nb.Cells {
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
	}

	return &nb, nil
}

// Save writes the notebook back to its path and clears the dirty flag.
func (nb *Notebook) Save() error {
	data, err := json.MarshalIndent(nb, "", " ")
	if err != nil {
		return fmt.Errorf("encoding notebook: %w", err)
	}
	if err := os.WriteFile(nb.path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing notebook: %w", err)
	}
	nb.dirty = false
	return nil
}

// Path returns the file path backing this notebook.
func (nb *Notebook) Path() string { return nb.path }

// Title returns the display name of the notebook.
func (nb *Notebook) Title() string { return filepath.Base(nb.path) }

// Dirty reports whether the notebook has unsaved changes.
func (nb *Notebook) Dirty() bool { return nb.dirty }

// MarkDirty flags the notebook as having unsaved changes.
func (nb *Notebook) MarkDirty() { nb.dirty = true }

// Language returns the kernel language recorded in the notebook metadata,
// defaulting to python.
func (nb *Notebook) Language() string {
	var info struct {
		Name string `json:"name"`
	}
	if raw, ok := nb.Metadata["language_info"]; ok {
		if err := json.Unmarshal(raw, &info); err == nil && info.Name != "" {
			return info.Name
		}
	}
	return "python"
}

// InsertCell inserts a cell at index, clamping index into range.
func (nb *Notebook) InsertCell(index int, c *Cell) {
	if index < 0 {
		index = 0
	}
	if index > len(nb.Cells) {
		index = len(nb.Cells)
	}
	nb.Cells = append(nb.Cells[:index], append([]*Cell{c}, nb.Cells[index:]...)...)
	nb.dirty = true
}

// RemoveCell removes and returns the cell at index, or nil if out of range.
func (nb *Notebook) RemoveCell(index int) *Cell {
	if index < 0 || index >= len(nb.Cells) {
		return nil
	}
	c := nb.Cells[index]
	nb.Cells = append(nb.Cells[:index], nb.Cells[index+1:]...)
	nb.dirty = true
	return c
}
