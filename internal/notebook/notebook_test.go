package notebook

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleNotebook = `{
 "cells": [
  {
   "cell_type": "markdown",
   "metadata": {},
   "source": ["# Title\n", "text"]
  },
  {
   "cell_type": "code",
   "execution_count": 2,
   "metadata": {},
   "outputs": [
    {
     "output_type": "stream",
     "name": "stdout",
     "text": ["hello\n"]
    }
   ],
   "source": "print('hello')"
  }
 ],
 "metadata": {
  "language_info": {"name": "python"}
 },
 "nbformat": 4,
 "nbformat_minor": 5
}`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.ipynb")
	if err := os.WriteFile(path, []byte(sampleNotebook), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadParsesCellsAndOutputs(t *testing.T) {
	nb, err := Load(writeSample(t))
	if err != nil {
		t.Fatal(err)
	}

	if len(nb.Cells) != 2 {
		t.Fatalf("got %d cells, want 2", len(nb.Cells))
	}
	if nb.Cells[0].CellType != "markdown" {
		t.Fatalf("cell 0 type=%q", nb.Cells[0].CellType)
	}
	if got := nb.Cells[0].Source.String(); got != "# Title\ntext" {
		t.Fatalf("cell 0 source=%q", got)
	}

	code := nb.Cells[1]
	if code.ExecutionCount == nil || *code.ExecutionCount != 2 {
		t.Fatal("execution count not parsed")
	}
	if len(code.Outputs) != 1 || code.Outputs[0].OutputType != "stream" {
		t.Fatalf("outputs=%v", code.Outputs)
	}
	if got := code.Outputs[0].Text.String(); got != "hello\n" {
		t.Fatalf("stream text=%q", got)
	}

	if nb.Language() != "python" {
		t.Fatalf("language=%q", nb.Language())
	}
	if nb.Dirty() {
		t.Fatal("freshly loaded notebook is dirty")
	}
}

func TestLoadAssignsMissingCellIDs(t *testing.T) {
	nb, err := Load(writeSample(t))
	if err != nil {
		t.Fatal(err)
	}
	seen := map[string]bool{}
	for i, c := range nb.Cells {
		if c.ID == "" {
			t.Fatalf("cell %d has no id", i)
		}
		if seen[c.ID] {
			t.Fatalf("duplicate cell id %q", c.ID)
		}
		seen[c.ID] = true
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := writeSample(t)
	nb, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	nb.Cells[1].Source = "print('changed')"
	nb.MarkDirty()
	if err := nb.Save(); err != nil {
		t.Fatal(err)
	}
	if nb.Dirty() {
		t.Fatal("save did not clear the dirty flag")
	}

	back, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := back.Cells[1].Source.String(); got != "print('changed')" {
		t.Fatalf("reloaded source=%q", got)
	}
	if back.NBFormat != 4 {
		t.Fatalf("nbformat=%d", back.NBFormat)
	}
}

func TestInsertAndRemoveCell(t *testing.T) {
	nb := New(filepath.Join(t.TempDir(), "new.ipynb"))
	if len(nb.Cells) != 1 {
		t.Fatalf("new notebook has %d cells, want 1", len(nb.Cells))
	}

	c := NewCell("markdown")
	nb.InsertCell(99, c) // clamps to the end
	if len(nb.Cells) != 2 || nb.Cells[1] != c {
		t.Fatal("insert beyond end did not append")
	}

	removed := nb.RemoveCell(0)
	if removed == nil || len(nb.Cells) != 1 || nb.Cells[0] != c {
		t.Fatal("remove did not drop the first cell")
	}
	if nb.RemoveCell(5) != nil {
		t.Fatal("out-of-range remove returned a cell")
	}
}
