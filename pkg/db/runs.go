package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dtnitsch/tag-extractor/pkg/tagger"
)

// Run is a recorded extraction.
type Run struct {
	RunID              int64
	UUID               string
	CreatedAt          time.Time
	StopWordsSource    string
	StopWordCount      int
	KeepEmpty          bool
	TokenCount         int
	TagCount           int
	Language           string
	LanguageConfidence float64
	OutputPath         string
	SourceCount        int
}

// RunSource is one text source read by a run.
type RunSource struct {
	Name        string
	Kind        string
	ContentHash string
	LineCount   int
	SizeBytes   int
}

// RunRecord is everything InsertRun stores.
type RunRecord struct {
	Run
	Sources []RunSource
	Tags    tagger.Frequencies
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// InsertRun stores a run with its sources and tags in a single transaction
// and returns the new run ID.
func (db *DB) InsertRun(rec RunRecord) (int64, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`
		INSERT INTO runs (run_uuid, stopwords_source, stopword_count, keep_empty,
			token_count, tag_count, language, language_confidence, output_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.UUID, rec.StopWordsSource, rec.StopWordCount, rec.KeepEmpty,
		rec.TokenCount, rec.TagCount, nullString(rec.Language), rec.LanguageConfidence,
		nullString(rec.OutputPath),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}

	for _, src := range rec.Sources {
		_, err := tx.Exec(`
			INSERT INTO run_sources (run_id, name, kind, content_hash, line_count, size_bytes)
			VALUES (?, ?, ?, ?, ?, ?)`,
			runID, src.Name, src.Kind, src.ContentHash, src.LineCount, src.SizeBytes,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert source %s: %w", src.Name, err)
		}
	}

	stmt, err := tx.Prepare("INSERT INTO run_tags (run_id, tag, count) VALUES (?, ?, ?)")
	if err != nil {
		return 0, fmt.Errorf("failed to prepare tag insert: %w", err)
	}
	defer stmt.Close()

	for tag, count := range rec.Tags {
		if _, err := stmt.Exec(runID, tag, count); err != nil {
			return 0, fmt.Errorf("failed to insert tag %q: %w", tag, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

const runColumns = `
	r.run_id, r.run_uuid, r.created_at, r.stopwords_source, r.stopword_count,
	r.keep_empty, r.token_count, r.tag_count, r.language, r.language_confidence,
	r.output_path,
	(SELECT COUNT(*) FROM run_sources s WHERE s.run_id = r.run_id)`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		r          Run
		language   sql.NullString
		confidence sql.NullFloat64
		outputPath sql.NullString
	)
	err := row.Scan(&r.RunID, &r.UUID, &r.CreatedAt, &r.StopWordsSource, &r.StopWordCount,
		&r.KeepEmpty, &r.TokenCount, &r.TagCount, &language, &confidence,
		&outputPath, &r.SourceCount)
	if err != nil {
		return Run{}, err
	}
	r.Language = language.String
	r.LanguageConfidence = confidence.Float64
	r.OutputPath = outputPath.String
	return r, nil
}

// ListRuns returns the most recent runs, newest first. limit <= 0 returns all.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	query := "SELECT" + runColumns + " FROM runs r ORDER BY r.run_id DESC"
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun returns a single run.
func (db *DB) GetRun(runID int64) (*Run, error) {
	row := db.QueryRow("SELECT"+runColumns+" FROM runs r WHERE r.run_id = ?", runID)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &r, nil
}

// LatestRunID returns the ID of the most recent run.
func (db *DB) LatestRunID() (int64, error) {
	var runID int64
	err := db.QueryRow("SELECT run_id FROM runs ORDER BY run_id DESC LIMIT 1").Scan(&runID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrRunNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get latest run: %w", err)
	}
	return runID, nil
}

// GetRunSources returns the sources of a run in insertion order.
func (db *DB) GetRunSources(runID int64) ([]RunSource, error) {
	rows, err := db.Query(`
		SELECT name, kind, content_hash, line_count, size_bytes
		FROM run_sources WHERE run_id = ? ORDER BY source_id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query run sources: %w", err)
	}
	defer rows.Close()

	var sources []RunSource
	for rows.Next() {
		var s RunSource
		if err := rows.Scan(&s.Name, &s.Kind, &s.ContentHash, &s.LineCount, &s.SizeBytes); err != nil {
			return nil, fmt.Errorf("failed to scan run source: %w", err)
		}
		sources = append(sources, s)
	}
	return sources, rows.Err()
}

// GetRunTags returns a run's tags, most frequent first. limit <= 0 returns all.
func (db *DB) GetRunTags(runID int64, limit int) ([]tagger.TagCount, error) {
	if _, err := db.GetRun(runID); err != nil {
		return nil, err
	}

	query := "SELECT tag, count FROM run_tags WHERE run_id = ? ORDER BY count DESC, tag ASC"
	args := []any{runID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query run tags: %w", err)
	}
	defer rows.Close()

	var tags []tagger.TagCount
	for rows.Next() {
		var tc tagger.TagCount
		if err := rows.Scan(&tc.Tag, &tc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan run tag: %w", err)
		}
		tags = append(tags, tc)
	}
	return tags, rows.Err()
}
