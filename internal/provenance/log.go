// Package provenance persists one row per orchestration attempt so any
// dashboard on screen can be traced back to the fingerprint, inputs, and
// dataset versions that produced it.
package provenance

// #region imports
import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// #endregion imports

// #region schema

const schema = `
CREATE TABLE IF NOT EXISTS orchestration_attempts (
	attempt_id        TEXT PRIMARY KEY,
	fingerprint       TEXT NOT NULL,
	mode              TEXT NOT NULL,
	inputs_json       TEXT NOT NULL,
	outcome           TEXT NOT NULL,
	detail            TEXT,
	node_count        INTEGER NOT NULL DEFAULT 0,
	dataset_versions  TEXT,
	created_at        TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_attempts_fingerprint
ON orchestration_attempts(fingerprint);
`

// #endregion schema

// #region outcomes

// Attempt outcomes. "hit" and "stored" are successes; the rest mirror the
// orchestrator's error taxonomy.
const (
	OutcomeHit           = "hit"
	OutcomeStored        = "stored"
	OutcomeInputError    = "input_error"
	OutcomeDispatchError = "dispatch_error"
	OutcomeContractError = "contract_error"
)

// #endregion outcomes

// #region types

// Entry is one orchestration attempt record.
type Entry struct {
	AttemptID       string
	Fingerprint     string
	Mode            string
	InputsJSON      string
	Outcome         string
	Detail          string
	NodeCount       int
	DatasetVersions string
	CreatedAt       time.Time
}

// Log writes attempt entries to SQLite.
type Log struct {
	db *sql.DB
}

// #endregion types

// #region constructors

// Open opens (or creates) the attempt database at dbPath and runs migrations.
func Open(dbPath string) (*Log, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("provenance: open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("provenance: pragma: %w", err)
	}
	return NewLog(db)
}

// NewLog wraps an existing database handle, creating the table if needed.
func NewLog(db *sql.DB) (*Log, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("provenance: migrate: %w", err)
	}
	return &Log{db: db}, nil
}

// Close closes the underlying database connection.
func (l *Log) Close() error {
	return l.db.Close()
}

// #endregion constructors

// #region record

// Record inserts one attempt row. A missing attempt ID or timestamp is
// filled in here.
func (l *Log) Record(entry Entry) error {
	if entry.AttemptID == "" {
		entry.AttemptID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := l.db.Exec(
		`INSERT INTO orchestration_attempts
		 (attempt_id, fingerprint, mode, inputs_json, outcome, detail, node_count, dataset_versions, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.AttemptID,
		entry.Fingerprint,
		entry.Mode,
		entry.InputsJSON,
		entry.Outcome,
		nullIfEmpty(entry.Detail),
		entry.NodeCount,
		nullIfEmpty(entry.DatasetVersions),
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("provenance: record attempt: %w", err)
	}
	return nil
}

// #endregion record

// #region recent

// Recent returns the last n attempts, newest first.
func (l *Log) Recent(n int) ([]Entry, error) {
	rows, err := l.db.Query(
		`SELECT attempt_id, fingerprint, mode, inputs_json, outcome,
		        COALESCE(detail, ''), node_count, COALESCE(dataset_versions, ''), created_at
		 FROM orchestration_attempts
		 ORDER BY created_at DESC
		 LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("provenance: query recent: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdAt string
		if err := rows.Scan(&e.AttemptID, &e.Fingerprint, &e.Mode, &e.InputsJSON,
			&e.Outcome, &e.Detail, &e.NodeCount, &e.DatasetVersions, &createdAt); err != nil {
			return nil, fmt.Errorf("provenance: scan attempt: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			e.CreatedAt = ts
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CountByFingerprint returns the number of recorded attempts for fp.
func (l *Log) CountByFingerprint(fp string) (int, error) {
	var n int
	err := l.db.QueryRow(
		`SELECT COUNT(*) FROM orchestration_attempts WHERE fingerprint = ?`, fp,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("provenance: count attempts: %w", err)
	}
	return n, nil
}

// #endregion recent

// #region helpers

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
