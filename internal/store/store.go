package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrRunNotFound is returned when a run id has no row.
var ErrRunNotFound = errors.New("run not found")

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id        TEXT PRIMARY KEY,
	source        TEXT NOT NULL,
	description   TEXT,
	created_at    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS evaluations (
	id                 INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id             TEXT NOT NULL,
	case_id            TEXT,
	context_json       TEXT NOT NULL,
	text               TEXT NOT NULL,
	score              INTEGER NOT NULL,
	contributions_json TEXT NOT NULL,
	passed             INTEGER,
	created_at         TEXT NOT NULL,
	FOREIGN KEY (run_id) REFERENCES runs(run_id)
);

CREATE INDEX IF NOT EXISTS idx_evaluations_run ON evaluations(run_id);
`
// #endregion schema

// #region store-struct
// Store persists scored lines in SQLite.
type Store struct {
	db *sql.DB
}
// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations.
// foreign_keys is set through the DSN so every pooled connection enforces it.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", "file:"+dbPath+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}
// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB.
func (s *Store) DB() *sql.DB {
	return s.db
}
// #endregion close

// #region begin-run
// BeginRun inserts a new run row and returns it.
func (s *Store) BeginRun(source, description string) (Run, error) {
	run := Run{
		RunID:       uuid.New().String(),
		Source:      source,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
	_, err := s.db.Exec(
		`INSERT INTO runs (run_id, source, description, created_at) VALUES (?, ?, ?, ?)`,
		run.RunID, run.Source, nullIfEmpty(run.Description), run.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Run{}, fmt.Errorf("begin run: %w", err)
	}
	return run, nil
}
// #endregion begin-run

// #region log-evaluation
// LogEvaluation writes one scored line. The returned row carries its assigned id.
func (s *Store) LogEvaluation(ev Evaluation) (Evaluation, error) {
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	var passed interface{}
	if ev.Passed != nil {
		passed = boolToInt(*ev.Passed)
	}

	res, err := s.db.Exec(
		`INSERT INTO evaluations (run_id, case_id, context_json, text, score, contributions_json, passed, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.RunID,
		nullIfEmpty(ev.CaseID),
		ev.ContextJSON,
		ev.Text,
		ev.Score,
		ev.ContributionsJSON,
		passed,
		ev.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Evaluation{}, fmt.Errorf("log evaluation: %w", err)
	}
	ev.ID, err = res.LastInsertId()
	if err != nil {
		return Evaluation{}, fmt.Errorf("last insert id: %w", err)
	}
	return ev, nil
}
// #endregion log-evaluation

// #region list-runs
const runSelect = `
	SELECT r.run_id, r.source, r.description, r.created_at,
	       COUNT(e.id), COALESCE(AVG(e.score), 0), COALESCE(SUM(CASE WHEN e.passed = 0 THEN 1 ELSE 0 END), 0)
	FROM runs r LEFT JOIN evaluations e ON e.run_id = r.run_id`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row scanner) (Run, error) {
	var run Run
	var desc sql.NullString
	var createdStr string
	if err := row.Scan(&run.RunID, &run.Source, &desc, &createdStr, &run.Evaluations, &run.MeanScore, &run.Failed); err != nil {
		return Run{}, err
	}
	if desc.Valid {
		run.Description = desc.String
	}
	run.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
	return run, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(runSelect+`
	GROUP BY r.run_id ORDER BY r.rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun returns one run with its aggregates.
func (s *Store) GetRun(runID string) (Run, error) {
	run, err := scanRun(s.db.QueryRow(runSelect+`
	WHERE r.run_id = ? GROUP BY r.run_id`, runID))
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return Run{}, fmt.Errorf("get run %s: %w", runID, err)
	}
	return run, nil
}
// #endregion list-runs

// #region list-evaluations
// ListEvaluations returns a run's evaluations in insertion order.
func (s *Store) ListEvaluations(runID string) ([]Evaluation, error) {
	rows, err := s.db.Query(
		`SELECT id, run_id, case_id, context_json, text, score, contributions_json, passed, created_at
		 FROM evaluations WHERE run_id = ? ORDER BY id`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list evaluations: %w", err)
	}
	defer rows.Close()

	var evals []Evaluation
	for rows.Next() {
		var ev Evaluation
		var caseID sql.NullString
		var passed sql.NullInt64
		var createdStr string
		if err := rows.Scan(&ev.ID, &ev.RunID, &caseID, &ev.ContextJSON, &ev.Text, &ev.Score,
			&ev.ContributionsJSON, &passed, &createdStr); err != nil {
			return nil, fmt.Errorf("scan evaluation: %w", err)
		}
		if caseID.Valid {
			ev.CaseID = caseID.String
		}
		if passed.Valid {
			p := passed.Int64 != 0
			ev.Passed = &p
		}
		ev.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		evals = append(evals, ev)
	}
	return evals, rows.Err()
}
// #endregion list-evaluations

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
// #endregion helpers
