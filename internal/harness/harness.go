package harness

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/danielpatrickdp/persona-score/internal/persona"
	"github.com/danielpatrickdp/persona-score/internal/scoring"
)

// #region types
// Case is a single line to score with optional bounds.
type Case struct {
	ID       string
	Context  persona.ScoringContext
	Text     string
	MinScore *int
	MaxScore *int
}

// CaseResult captures the outcome of scoring one case.
type CaseResult struct {
	ID      string
	Case    Case
	Result  scoring.Result
	Passed  bool
	Checked bool // false when the case carries no bounds
	Reason  string
}

// Summary provides aggregate stats from a run.
type Summary struct {
	Total     int
	Passed    int
	Failed    int
	Unchecked int
	MinScore  int
	MaxScore  int
	MeanScore float64
}

// Evaluator is the subset of *scoring.Scorer the harness needs.
type Evaluator interface {
	Evaluate(ctx persona.ScoringContext, text string) scoring.Result
}
// #endregion types

// #region run
// Run scores every case in order.
func Run(ev Evaluator, cases []Case) []CaseResult {
	results := make([]CaseResult, len(cases))
	for i, c := range cases {
		results[i] = runCase(ev, c)
	}
	return results
}

// RunParallel scores cases on up to workers goroutines. Results keep input order.
// workers <= 0 uses one per CPU.
func RunParallel(ev Evaluator, cases []Case, workers int) []CaseResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(cases) {
		workers = len(cases)
	}
	results := make([]CaseResult, len(cases))
	if workers <= 1 {
		return Run(ev, cases)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = runCase(ev, cases[i])
			}
		}()
	}
	for i := range cases {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return results
}

func runCase(ev Evaluator, c Case) CaseResult {
	res := ev.Evaluate(c.Context, c.Text)
	cr := CaseResult{
		ID:     c.ID,
		Case:   c,
		Result: res,
		Passed: true,
		Reason: "no bounds",
	}
	if c.MinScore == nil && c.MaxScore == nil {
		return cr
	}

	cr.Checked = true
	cr.Reason = "within bounds"
	// 1. Lower bound
	if c.MinScore != nil && res.ScoreTotal < *c.MinScore {
		cr.Passed = false
		cr.Reason = fmt.Sprintf("score %d below min %d", res.ScoreTotal, *c.MinScore)
	}
	// 2. Upper bound
	if c.MaxScore != nil && res.ScoreTotal > *c.MaxScore {
		cr.Passed = false
		cr.Reason = fmt.Sprintf("score %d above max %d", res.ScoreTotal, *c.MaxScore)
	}
	return cr
}

// Summarize computes aggregate stats from case results.
func Summarize(results []CaseResult) Summary {
	s := Summary{Total: len(results)}
	if len(results) == 0 {
		return s
	}
	s.MinScore = scoring.MaxScore
	s.MaxScore = scoring.MinScore
	sum := 0
	for _, r := range results {
		switch {
		case !r.Checked:
			s.Unchecked++
		case r.Passed:
			s.Passed++
		default:
			s.Failed++
		}
		score := r.Result.ScoreTotal
		sum += score
		if score < s.MinScore {
			s.MinScore = score
		}
		if score > s.MaxScore {
			s.MaxScore = score
		}
	}
	s.MeanScore = float64(sum) / float64(len(results))
	return s
}
// #endregion run
