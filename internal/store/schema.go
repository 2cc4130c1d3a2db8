package store

// schemaSQL creates the history tables. Kept idempotent so Open can run
// it unconditionally.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS recent_files (
    path        TEXT PRIMARY KEY,
    last_cell   INTEGER NOT NULL DEFAULT 0,
    open_count  INTEGER NOT NULL DEFAULT 0,
    last_opened TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_recent_files_last_opened
    ON recent_files(last_opened DESC);
`
