package store

import "time"

// #region run
// Run groups evaluations recorded by one invocation (a fixture check, a serve session, ...).
type Run struct {
	RunID       string    `json:"run_id"`
	Source      string    `json:"source"` // "check" | "eval" | "http" | "grpc"
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`

	// Aggregates filled by ListRuns and GetRun.
	Evaluations int     `json:"evaluations"`
	MeanScore   float64 `json:"mean_score"`
	Failed      int     `json:"failed"`
}
// #endregion run

// #region evaluation
// Evaluation is a single row in the evaluations table.
type Evaluation struct {
	ID                int64     `json:"id"`
	RunID             string    `json:"run_id"`
	CaseID            string    `json:"case_id,omitempty"`
	ContextJSON       string    `json:"context_json"`
	Text              string    `json:"text"`
	Score             int       `json:"score"`
	ContributionsJSON string    `json:"contributions_json"`
	Passed            *bool     `json:"passed,omitempty"` // nil when the line had no bounds
	CreatedAt         time.Time `json:"created_at"`
}
// #endregion evaluation
