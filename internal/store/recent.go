// Package store persists notebook history in SQLite: which files were
// opened, when, and where the selection was.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver
)

// History is the SQLite-backed recent-files store.
type History struct {
	db *sql.DB
}

// DefaultPath returns the XDG-compliant location of the history database.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "nbterm", "history.db")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "nbterm", "history.db")
}

// Open opens or creates the history database at the given path.
func Open(dbPath string) (*History, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &History{db: db}, nil
}

// Close closes the history database.
func (h *History) Close() error {
	return h.db.Close()
}

// RecentFile is one remembered notebook.
type RecentFile struct {
	Path       string
	LastCell   int
	OpenCount  int
	LastOpened time.Time
}

// Touch records that a file was opened (or closed) with the given cell
// selected, bumping its open count and recency.
func (h *History) Touch(path string, lastCell int) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = h.db.Exec(`INSERT INTO recent_files (path, last_cell, open_count, last_opened)
		VALUES (?, ?, 1, ?)
		ON CONFLICT(path) DO UPDATE SET
			last_cell   = excluded.last_cell,
			open_count  = open_count + 1,
			last_opened = excluded.last_opened`,
		abs, lastCell, now)
	return err
}

// List returns up to limit remembered files, most recent first. Files
// that no longer exist on disk are skipped and pruned.
func (h *History) List(limit int) ([]RecentFile, error) {
	rows, err := h.db.Query(`SELECT path, last_cell, open_count, last_opened
		FROM recent_files ORDER BY last_opened DESC LIMIT ?`, limit*2)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var files []RecentFile
	var stale []string
	for rows.Next() {
		var f RecentFile
		var opened string
		if err := rows.Scan(&f.Path, &f.LastCell, &f.OpenCount, &opened); err != nil {
			return nil, err
		}
		if _, err := os.Stat(f.Path); err != nil {
			stale = append(stale, f.Path)
			continue
		}
		f.LastOpened, _ = time.Parse(time.RFC3339, opened)
		if len(files) < limit {
			files = append(files, f)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, p := range stale {
		_, _ = h.db.Exec("DELETE FROM recent_files WHERE path = ?", p)
	}
	return files, nil
}

// LastCell returns the remembered selection for a path, zero if unknown.
func (h *History) LastCell(path string) int {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	var cell int
	_ = h.db.QueryRow("SELECT last_cell FROM recent_files WHERE path = ?", abs).Scan(&cell)
	return cell
}

// Count returns the number of remembered files.
func (h *History) Count() (int, error) {
	var count int
	err := h.db.QueryRow("SELECT COUNT(*) FROM recent_files").Scan(&count)
	return count, err
}
