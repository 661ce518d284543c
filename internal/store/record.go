package store

import (
	"encoding/json"
	"fmt"

	"github.com/danielpatrickdp/persona-score/internal/persona"
	"github.com/danielpatrickdp/persona-score/internal/scoring"
)

// Record builds an Evaluation row from a scored line. passed is nil for unbounded lines.
func Record(runID, caseID string, ctx persona.ScoringContext, text string, res scoring.Result, passed *bool) (Evaluation, error) {
	ctxJSON, err := json.Marshal(ctx.Raw())
	if err != nil {
		return Evaluation{}, fmt.Errorf("marshal context: %w", err)
	}
	resJSON, err := json.Marshal(res)
	if err != nil {
		return Evaluation{}, fmt.Errorf("marshal result: %w", err)
	}
	return Evaluation{
		RunID:             runID,
		CaseID:            caseID,
		ContextJSON:       string(ctxJSON),
		Text:              text,
		Score:             res.ScoreTotal,
		ContributionsJSON: string(resJSON),
		Passed:            passed,
	}, nil
}

// Result decodes the stored scoring result.
func (e Evaluation) Result() (scoring.Result, error) {
	var res scoring.Result
	if err := json.Unmarshal([]byte(e.ContributionsJSON), &res); err != nil {
		return scoring.Result{}, fmt.Errorf("unmarshal result %d: %w", e.ID, err)
	}
	return res, nil
}

// Context decodes the stored context.
func (e Evaluation) Context() (persona.ScoringContext, error) {
	var raw persona.RawContext
	if err := json.Unmarshal([]byte(e.ContextJSON), &raw); err != nil {
		return persona.ScoringContext{}, fmt.Errorf("unmarshal context %d: %w", e.ID, err)
	}
	return persona.Parse(raw), nil
}

// #region session
// Session appends evaluations to a single run.
type Session struct {
	store *Store
	run   Run
}

// Session begins a run and returns a handle for logging into it.
func (s *Store) Session(source, description string) (*Session, error) {
	run, err := s.BeginRun(source, description)
	if err != nil {
		return nil, err
	}
	return &Session{store: s, run: run}, nil
}

// RunID returns the id of the session's run.
func (ss *Session) RunID() string {
	return ss.run.RunID
}

// Log records one scored line in the session's run.
func (ss *Session) Log(caseID string, ctx persona.ScoringContext, text string, res scoring.Result, passed *bool) (Evaluation, error) {
	ev, err := Record(ss.run.RunID, caseID, ctx, text, res, passed)
	if err != nil {
		return Evaluation{}, err
	}
	return ss.store.LogEvaluation(ev)
}
// #endregion session
