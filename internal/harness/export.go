package harness

import (
	"encoding/json"
	"fmt"

	"github.com/danielpatrickdp/persona-score/internal/persona"
	"github.com/danielpatrickdp/persona-score/internal/scoring"
	"github.com/danielpatrickdp/persona-score/internal/store"
)

// #region export
// FromEvaluations turns recorded evaluations into a fixture. With pin >= 0 each case
// is bounded to its recorded score ± pin, clamped to the score range, which turns a
// run into a regression suite. pin < 0 leaves cases unbounded.
func FromEvaluations(description string, evals []store.Evaluation, pin int) (*Fixture, error) {
	f := &Fixture{Description: description, Cases: make([]FixtureCase, 0, len(evals))}
	used := make(map[string]bool, len(evals))
	for _, ev := range evals {
		var raw persona.RawContext
		if err := json.Unmarshal([]byte(ev.ContextJSON), &raw); err != nil {
			return nil, fmt.Errorf("evaluation %d context: %w", ev.ID, err)
		}

		id := ev.CaseID
		if id == "" {
			id = fmt.Sprintf("eval-%d", ev.ID)
		}
		// Ids must be unique within a fixture.
		for base, n := id, 2; used[id]; n++ {
			id = fmt.Sprintf("%s-%d", base, n)
		}
		used[id] = true

		fc := FixtureCase{ID: id, Context: raw, Text: ev.Text}
		if pin >= 0 {
			lo := max(ev.Score-pin, scoring.MinScore)
			hi := min(ev.Score+pin, scoring.MaxScore)
			fc.MinScore, fc.MaxScore = &lo, &hi
		}
		f.Cases = append(f.Cases, fc)
	}
	return f, nil
}
// #endregion export
