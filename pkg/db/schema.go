package db

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Runs: one row per extraction
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_uuid TEXT NOT NULL UNIQUE,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    stopwords_source TEXT NOT NULL,
    stopword_count INTEGER NOT NULL DEFAULT 0,
    keep_empty BOOLEAN NOT NULL DEFAULT 0,
    token_count INTEGER NOT NULL DEFAULT 0,  -- sum of all tag counts
    tag_count INTEGER NOT NULL DEFAULT 0,    -- distinct tags
    language TEXT,
    language_confidence REAL,
    output_path TEXT
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);

-- Run sources: every text source read by a run
CREATE TABLE IF NOT EXISTS run_sources (
    source_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL,
    name TEXT NOT NULL,
    kind TEXT NOT NULL,
    content_hash TEXT NOT NULL,
    line_count INTEGER NOT NULL DEFAULT 0,
    size_bytes INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_run_sources_run ON run_sources(run_id);
CREATE INDEX IF NOT EXISTS idx_run_sources_hash ON run_sources(content_hash);

-- Run tags: the full frequency map of a run
CREATE TABLE IF NOT EXISTS run_tags (
    run_id INTEGER NOT NULL,
    tag TEXT NOT NULL,
    count INTEGER NOT NULL,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE,
    PRIMARY KEY (run_id, tag)
);

CREATE INDEX IF NOT EXISTS idx_run_tags_tag ON run_tags(tag);
`
