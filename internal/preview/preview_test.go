package preview

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nbterm/nbterm/internal/config"
	"github.com/nbterm/nbterm/internal/notebook"
)

const sample = `{
 "cells": [
  {"cell_type": "code", "execution_count": 1, "metadata": {},
   "outputs": [{"output_type": "stream", "name": "stdout", "text": ["hi\n"]}],
   "source": "print('hi')"},
  {"cell_type": "markdown", "metadata": {}, "source": "# Heading"}
 ],
 "metadata": {"language_info": {"name": "python"}},
 "nbformat": 4, "nbformat_minor": 5
}`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.ipynb")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRenderContainsPromptAndOutput(t *testing.T) {
	nb, err := notebook.Load(writeSample(t))
	if err != nil {
		t.Fatal(err)
	}

	out := Render(nb, config.DefaultConfig(), 80)
	if !strings.Contains(out, "In [1]:") {
		t.Fatalf("render lacks the execution prompt:\n%s", out)
	}
	if !strings.Contains(out, "hi") {
		t.Fatal("render lacks the stream output")
	}
	if !strings.Contains(out, "Heading") {
		t.Fatal("render lacks the markdown cell")
	}
}

func TestRunWritesOutputFile(t *testing.T) {
	src := writeSample(t)
	dst := filepath.Join(t.TempDir(), "out.txt")

	err := Run([]string{src}, config.DefaultConfig(), Options{OutputFile: dst, Width: 80})
	if err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "In [1]:") {
		t.Fatal("output file lacks the rendered notebook")
	}
}

func TestRunMissingNotebookFails(t *testing.T) {
	err := Run([]string{"/does/not/exist.ipynb"}, config.DefaultConfig(), Options{Width: 80})
	if err == nil {
		t.Fatal("missing notebook did not error")
	}
}

func TestRunFallsBackToStdoutOnBadOutputFile(t *testing.T) {
	src := writeSample(t)

	// Swallow the stdout fallback so test output stays clean.
	old := os.Stdout
	devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = devNull
	defer func() {
		os.Stdout = old
		_ = devNull.Close()
	}()

	bad := filepath.Join(t.TempDir(), "no", "such", "dir", "out.txt")
	if err := Run([]string{src}, config.DefaultConfig(), Options{OutputFile: bad, Width: 80}); err != nil {
		t.Fatalf("unwritable output file must fall back, got error: %v", err)
	}
}
