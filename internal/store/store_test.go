package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielpatrickdp/persona-score/internal/persona"
	"github.com/danielpatrickdp/persona-score/internal/scoring"
)

func tempDB(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func boolPtr(b bool) *bool { return &b }

func scored(t *testing.T, runID, caseID, text string, passed *bool) Evaluation {
	t.Helper()
	energy := 20.0
	ctx := persona.Parse(persona.RawContext{
		TimeBlock: "afternoon", TopNeed: "rest", TrustTier: "mid",
		Energy: &energy, LastInteraction: "Pet",
	})
	ev, err := Record(runID, caseID, ctx, text, scoring.Evaluate(ctx, text), passed)
	require.NoError(t, err)
	return ev
}

func TestBeginRunAndLogEvaluation(t *testing.T) {
	s := tempDB(t)

	run, err := s.BeginRun("check", "seed suite")
	require.NoError(t, err)
	assert.NotEmpty(t, run.RunID)

	first, err := s.LogEvaluation(scored(t, run.RunID, "a", "하지마… 피곤해냥. 건드리지마.", boolPtr(true)))
	require.NoError(t, err)
	second, err := s.LogEvaluation(scored(t, run.RunID, "", "상담해드릴게요", nil))
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)

	evals, err := s.ListEvaluations(run.RunID)
	require.NoError(t, err)
	require.Len(t, evals, 2)

	assert.Equal(t, "a", evals[0].CaseID)
	require.NotNil(t, evals[0].Passed)
	assert.True(t, *evals[0].Passed)
	assert.Equal(t, first.Score, evals[0].Score)
	assert.Empty(t, evals[1].CaseID)
	assert.Nil(t, evals[1].Passed)

	// Stored payloads decode back to the same result and context.
	res, err := evals[0].Result()
	require.NoError(t, err)
	assert.Equal(t, evals[0].Score, res.ScoreTotal)
	assert.Equal(t, res.ScoreTotal, res.Reconstruct())

	ctx, err := evals[0].Context()
	require.NoError(t, err)
	assert.Equal(t, persona.NeedRest, ctx.TopNeed)
	assert.Equal(t, persona.InteractionPet, ctx.LastInteraction)
	assert.True(t, ctx.Energy.Known)
	assert.Empty(t, ctx.Fallbacks)
}

func TestListRuns_Aggregates(t *testing.T) {
	s := tempDB(t)

	older, err := s.BeginRun("eval", "")
	require.NoError(t, err)
	newer, err := s.BeginRun("check", "suite")
	require.NoError(t, err)

	for _, ev := range []Evaluation{
		{RunID: newer.RunID, ContextJSON: "{}", Text: "x", Score: 40, ContributionsJSON: "{}", Passed: boolPtr(true)},
		{RunID: newer.RunID, ContextJSON: "{}", Text: "y", Score: 60, ContributionsJSON: "{}", Passed: boolPtr(false)},
	} {
		_, err := s.LogEvaluation(ev)
		require.NoError(t, err)
	}

	runs, err := s.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, newer.RunID, runs[0].RunID)
	assert.Equal(t, 2, runs[0].Evaluations)
	assert.InDelta(t, 50.0, runs[0].MeanScore, 1e-9)
	assert.Equal(t, 1, runs[0].Failed)
	assert.Equal(t, "suite", runs[0].Description)

	assert.Equal(t, older.RunID, runs[1].RunID)
	assert.Zero(t, runs[1].Evaluations)
	assert.Empty(t, runs[1].Description)

	limited, err := s.ListRuns(1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestGetRun(t *testing.T) {
	s := tempDB(t)
	run, err := s.BeginRun("http", "")
	require.NoError(t, err)

	got, err := s.GetRun(run.RunID)
	require.NoError(t, err)
	assert.Equal(t, "http", got.Source)
	assert.Equal(t, run.CreatedAt.UnixNano(), got.CreatedAt.UnixNano())

	_, err = s.GetRun("missing")
	assert.True(t, errors.Is(err, ErrRunNotFound))
}

func TestLogEvaluation_UnknownRunRejected(t *testing.T) {
	s := tempDB(t)
	_, err := s.LogEvaluation(Evaluation{RunID: "nope", ContextJSON: "{}", Text: "x", ContributionsJSON: "{}"})
	assert.Error(t, err)
}

func TestListEvaluations_EmptyRun(t *testing.T) {
	s := tempDB(t)
	evals, err := s.ListEvaluations("nothing")
	require.NoError(t, err)
	assert.Empty(t, evals)
}

func TestSession_Log(t *testing.T) {
	s := tempDB(t)
	sess, err := s.Session("grpc", "serve")
	require.NoError(t, err)

	ctx := persona.ScoringContext{TimeBlock: persona.TimeNight, TopNeed: persona.NeedNone, TrustTier: persona.TrustMid}
	ev, err := sess.Log("", ctx, "냥", scoring.Evaluate(ctx, "냥"), nil)
	require.NoError(t, err)
	assert.Equal(t, sess.RunID(), ev.RunID)

	run, err := s.GetRun(sess.RunID())
	require.NoError(t, err)
	assert.Equal(t, 1, run.Evaluations)
	assert.Equal(t, "serve", run.Description)
}
