// Package store persists aggregation runs to SQLite so successive uploads
// of the same tagging extract can be compared over time.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/bps-nganjuk/tagmap/internal/aggregate"
)

// Run is one persisted aggregation pass.
type Run struct {
	ID             string                `json:"id"`
	SourceFile     string                `json:"source_file"`
	DistrictCode   string                `json:"district_code"`
	BoundarySource string                `json:"boundary_source,omitempty"`
	TotalRows      int                   `json:"total_rows"`
	Villages       int                   `json:"villages"`
	Points         int                   `json:"points"`
	Ranked         []aggregate.RankedRow `json:"ranked"`
	CreatedAt      time.Time             `json:"created_at"`
}

// SQLiteStore persists runs using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id              TEXT PRIMARY KEY,
	source_file     TEXT NOT NULL,
	district_code   TEXT NOT NULL,
	boundary_source TEXT,
	total_rows      INTEGER NOT NULL,
	villages        INTEGER NOT NULL,
	points          INTEGER NOT NULL,
	ranked          TEXT NOT NULL,
	created_at      DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_runs_district_code ON runs(district_code);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

// Migrate creates the schema if it does not exist.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveRun persists one aggregation pass and returns it with its assigned
// id and timestamp.
func (s *SQLiteStore) SaveRun(ctx context.Context, run Run) (Run, error) {
	run.ID = uuid.New().String()
	run.CreatedAt = time.Now().UTC()

	rankedJSON, err := json.Marshal(run.Ranked)
	if err != nil {
		return Run{}, eris.Wrap(err, "sqlite: marshal ranked rows")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (id, source_file, district_code, boundary_source, total_rows, villages, points, ranked, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.SourceFile, run.DistrictCode, run.BoundarySource,
		run.TotalRows, run.Villages, run.Points, string(rankedJSON), run.CreatedAt,
	)
	if err != nil {
		return Run{}, eris.Wrap(err, "sqlite: insert run")
	}
	return run, nil
}

// GetRun fetches a run by id.
func (s *SQLiteStore) GetRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source_file, district_code, boundary_source, total_rows, villages, points, ranked, created_at
		 FROM runs WHERE id = ?`, id,
	)
	return scanRun(row)
}

// LatestRun fetches the most recent run for a district code.
func (s *SQLiteStore) LatestRun(ctx context.Context, districtCode string) (Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source_file, district_code, boundary_source, total_rows, villages, points, ranked, created_at
		 FROM runs WHERE district_code = ? ORDER BY created_at DESC LIMIT 1`, districtCode,
	)
	return scanRun(row)
}

// ListRuns returns runs newest first, up to limit.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source_file, district_code, boundary_source, total_rows, villages, points, ranked, created_at
		 FROM runs ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate runs")
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var run Run
	var boundarySource sql.NullString
	var rankedJSON string
	err := sc.Scan(&run.ID, &run.SourceFile, &run.DistrictCode, &boundarySource,
		&run.TotalRows, &run.Villages, &run.Points, &rankedJSON, &run.CreatedAt)
	if err == sql.ErrNoRows {
		return Run{}, eris.Wrap(err, "sqlite: run not found")
	}
	if err != nil {
		return Run{}, eris.Wrap(err, "sqlite: scan run")
	}
	run.BoundarySource = boundarySource.String
	if err := json.Unmarshal([]byte(rankedJSON), &run.Ranked); err != nil {
		return Run{}, eris.Wrap(err, "sqlite: decode ranked rows")
	}
	return run, nil
}
