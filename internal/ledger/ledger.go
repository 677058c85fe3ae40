package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/tfk-discgolf/metrixbot/internal/model"
)

// dbFileName is the SQLite file created inside the ledger directory.
const dbFileName = "metrixbot.db"

// Ledger provides SQLite-based storage for run history and published
// posts.
//
// Design decision: We keep one database file for both runs and posts
// rather than separate files because:
//  1. The duplicate guard joins naturally against run history
//  2. One file is simpler to back up and to wipe
//  3. The write volume (one run per day) needs no separation
type Ledger struct {
	// db is the open SQLite handle.
	db *sql.DB

	// dbPath is where the database file lives, reported via Path.
	dbPath string
}

// Option configures how the ledger is opened.
type Option func(*settings)

type settings struct {
	createIfNotExists bool
	enableWAL         bool
}

// WithCreateIfNotExists controls whether the directory and database
// file are created when missing. Default is true; the history command
// disables it so an empty install reports "no history" instead of
// leaving an empty database behind.
func WithCreateIfNotExists(create bool) Option {
	return func(s *settings) {
		s.createIfNotExists = create
	}
}

// WithWAL controls Write-Ahead Logging. Default is true.
func WithWAL(enable bool) Option {
	return func(s *settings) {
		s.enableWAL = enable
	}
}

// Open opens or creates the ledger database inside dir.
func Open(dir string, opts ...Option) (*Ledger, error) {
	s := &settings{
		createIfNotExists: true,
		enableWAL:         true,
	}
	for _, opt := range opts {
		opt(s)
	}

	dbPath := filepath.Join(dir, dbFileName)

	if !s.createIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("check ledger path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("create ledger directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating
	// new files, mode=rwc allows creation.
	var dsn string
	if s.createIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open ledger database: %w", err)
	}

	// SQLite supports one writer; a single connection avoids
	// SQLITE_BUSY on the run/post double write.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	l := &Ledger{
		db:     db,
		dbPath: dbPath,
	}

	if s.enableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	if err := l.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return l, nil
}

// Close releases the database handle.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// Path returns the location of the database file.
func (l *Ledger) Path() string {
	return l.dbPath
}

// createTables applies the schema. Every statement is idempotent, so
// reopening an existing ledger is safe.
func (l *Ledger) createTables() error {
	schema := `
	-- Runs record every pipeline execution, successful or not
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		triggered_by TEXT NOT NULL,
		outcome TEXT NOT NULL,
		round_url TEXT,
		error TEXT,
		started_at DATETIME NOT NULL,
		finished_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
	CREATE INDEX IF NOT EXISTS idx_runs_outcome ON runs(outcome);

	-- Posts record published announcements, keyed by round URL so the
	-- same round is never announced twice
	CREATE TABLE IF NOT EXISTS posts (
		round_url TEXT PRIMARY KEY,
		post_id TEXT NOT NULL,
		message TEXT NOT NULL,
		posted_at DATETIME NOT NULL
	);
	`

	_, err := l.db.ExecContext(context.Background(), schema)
	return err
}

// RecordRun inserts or updates the ledger row for a run.
// Upserting on the run ID keeps the call idempotent: the record step
// writes the row, and the command layer writes it again for runs that
// failed before reaching that step.
func (l *Ledger) RecordRun(ctx context.Context, run *model.Run) error {
	roundURL := ""
	if run.Round != nil {
		roundURL = run.Round.URL
	}

	finishedAt := run.FinishedAt
	if finishedAt.IsZero() {
		finishedAt = time.Now().UTC()
	}

	query := `
	INSERT INTO runs (id, triggered_by, outcome, round_url, error, started_at, finished_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		outcome = excluded.outcome,
		round_url = excluded.round_url,
		error = excluded.error,
		finished_at = excluded.finished_at
	`

	_, err := l.db.ExecContext(ctx, query,
		run.ID,
		run.Trigger.String(),
		string(run.Outcome),
		roundURL,
		run.ErrorMessage,
		run.StartedAt.UTC().Format(time.RFC3339),
		finishedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record run %s: %w", run.ID, err)
	}

	return nil
}

// RecordPost stores the published announcement of a run.
// Publishing the same round twice only happens under --force; the
// newer post then replaces the older row.
func (l *Ledger) RecordPost(ctx context.Context, run *model.Run) error {
	if run.Round == nil || run.PostID == "" {
		return ErrNoPost
	}

	postedAt := run.FinishedAt
	if postedAt.IsZero() {
		postedAt = time.Now().UTC()
	}

	query := `
	INSERT INTO posts (round_url, post_id, message, posted_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(round_url) DO UPDATE SET
		post_id = excluded.post_id,
		message = excluded.message,
		posted_at = excluded.posted_at
	`

	_, err := l.db.ExecContext(ctx, query,
		run.Round.URL,
		run.PostID,
		run.Message,
		postedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record post for %s: %w", run.Round.URL, err)
	}

	return nil
}

// HasPost reports whether an announcement for the round URL was already
// published. This is the duplicate-post guard.
func (l *Ledger) HasPost(ctx context.Context, roundURL string) (bool, error) {
	var count int
	err := l.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM posts WHERE round_url = ?", roundURL,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check post for %s: %w", roundURL, err)
	}
	return count > 0, nil
}

// Post represents a stored published announcement.
type Post struct {
	// RoundURL is the announced round's event page URL.
	RoundURL string `json:"round_url"`

	// PostID is the Graph API post ID.
	PostID string `json:"post_id"`

	// Message is the full announcement text as published.
	Message string `json:"message"`

	// PostedAt is when the announcement was published (UTC).
	PostedAt time.Time `json:"posted_at"`
}

// Post retrieves the stored announcement for a round URL.
// Returns nil without error when no announcement exists.
func (l *Ledger) Post(ctx context.Context, roundURL string) (*Post, error) {
	var post Post
	var postedAt string

	err := l.db.QueryRowContext(ctx,
		"SELECT round_url, post_id, message, posted_at FROM posts WHERE round_url = ?",
		roundURL,
	).Scan(&post.RoundURL, &post.PostID, &post.Message, &postedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get post for %s: %w", roundURL, err)
	}

	post.PostedAt = parseTimestamp(postedAt)
	return &post, nil
}

// RunRecord is a stored run row, lean enough for history listings.
type RunRecord struct {
	// ID is the run's UUID.
	ID string `json:"id"`

	// TriggeredBy records what started the run.
	TriggeredBy string `json:"triggered_by"`

	// Outcome records how the run ended.
	Outcome model.Outcome `json:"outcome"`

	// RoundURL is the announced round, empty when none was selected.
	RoundURL string `json:"round_url,omitempty"`

	// Error is the failure message, empty for successful runs.
	Error string `json:"error,omitempty"`

	// StartedAt is when the run began (UTC).
	StartedAt time.Time `json:"started_at"`

	// FinishedAt is when the run ended (UTC).
	FinishedAt time.Time `json:"finished_at"`
}

// RecentRuns returns the newest runs, most recent first.
func (l *Ledger) RecentRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `
	SELECT id, triggered_by, outcome, round_url, error, started_at, finished_at
	FROM runs
	ORDER BY started_at DESC
	LIMIT ?
	`

	rows, err := l.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		var outcome, startedAt, finishedAt string

		err := rows.Scan(
			&rec.ID,
			&rec.TriggeredBy,
			&outcome,
			&rec.RoundURL,
			&rec.Error,
			&startedAt,
			&finishedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}

		rec.Outcome = model.ParseOutcome(outcome)
		rec.StartedAt = parseTimestamp(startedAt)
		rec.FinishedAt = parseTimestamp(finishedAt)
		records = append(records, rec)
	}

	return records, rows.Err()
}

// timestampFormats lists the renderings SQLite may hand back, tried in
// order from most to least specific.
var timestampFormats = []string{
	time.RFC3339,              // what we write
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05",     // sqlite datetime()
	"2006-01-02T15:04:05",     // ISO 8601, no zone
	"2006-01-02 15:04:05.999", // datetime() with milliseconds
}

// parseTimestamp tries each known format in turn. We write RFC3339 UTC
// ourselves, but SQLite tooling that touched the file may have
// rewritten rows in its own rendering. No format matching yields the
// zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
