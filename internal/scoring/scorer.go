package scoring

import (
	"errors"
	"fmt"
	"sync"

	"github.com/danielpatrickdp/persona-score/internal/lexicon"
	"github.com/danielpatrickdp/persona-score/internal/persona"
	"github.com/danielpatrickdp/persona-score/internal/rules"
)

// #region scorer
// ErrBaselineRange is returned by New when the baseline is outside [0,100].
var ErrBaselineRange = errors.New("baseline out of range")

// Scorer evaluates candidate lines against an ordered rubric.
// It holds only data built in New and is safe for concurrent use.
type Scorer struct {
	baseline int
	rules    []rules.Rule
	matcher  *lexicon.Matcher
}

// New builds a Scorer with the default rubric for cfg.
func New(cfg Config) (*Scorer, error) {
	if err := cfg.Weights.Validate(); err != nil {
		return nil, err
	}
	return NewWithRules(cfg, rules.Default(cfg.Weights))
}

// NewWithRules builds a Scorer over a custom ordered rule list.
func NewWithRules(cfg Config, rubric []rules.Rule) (*Scorer, error) {
	if cfg.Baseline < MinScore || cfg.Baseline > MaxScore {
		return nil, fmt.Errorf("%w: %d", ErrBaselineRange, cfg.Baseline)
	}
	matcher, err := lexicon.NewMatcher(cfg.Phrases)
	if err != nil {
		return nil, fmt.Errorf("compile phrases: %w", err)
	}
	return &Scorer{
		baseline: cfg.Baseline,
		rules:    append([]rules.Rule(nil), rubric...),
		matcher:  matcher,
	}, nil
}

// RuleNames returns the rubric in evaluation order.
func (s *Scorer) RuleNames() []string {
	names := make([]string, len(s.rules))
	for i, r := range s.rules {
		names[i] = r.Name()
	}
	return names
}
// #endregion scorer

// #region evaluate
// Evaluate scores text against ctx. It never fails: total is
// clamp(baseline + sum of deltas, 0, 100) and contributions keep rubric order.
func (s *Scorer) Evaluate(ctx persona.ScoringContext, text string) Result {
	in := rules.Input{
		Context: ctx,
		Text:    text,
		Hits:    s.match(text),
	}

	contributions := make([]rules.Contribution, 0, len(s.rules))
	sum := 0
	for _, r := range s.rules {
		c := evaluateRule(r, in)
		sum += c.Delta
		contributions = append(contributions, c)
	}

	return Result{
		ScoreTotal:    clamp(s.baseline + sum),
		Baseline:      s.baseline,
		Contributions: contributions,
		Fallbacks:     ctx.Fallbacks,
	}
}

// match degrades to no hits if the scanner faults, so every rule stays neutral.
func (s *Scorer) match(text string) (hits lexicon.Hits) {
	defer func() {
		if recover() != nil {
			hits = lexicon.Hits{}
		}
	}()
	return s.matcher.Match(text)
}

// evaluateRule isolates one rule: a panic becomes a zero, faulted contribution.
func evaluateRule(r rules.Rule, in rules.Input) (c rules.Contribution) {
	name := ruleName(r)
	defer func() {
		if p := recover(); p != nil {
			c = rules.Contribution{
				Rule:    name,
				Delta:   0,
				Reason:  fmt.Sprintf("rule fault: %v", p),
				Faulted: true,
			}
		}
	}()
	c = r.Evaluate(in)
	if c.Rule == "" {
		c.Rule = name
	}
	return c
}

func ruleName(r rules.Rule) (name string) {
	defer func() {
		if recover() != nil {
			name = fmt.Sprintf("%T", r)
		}
	}()
	return r.Name()
}

func clamp(v int) int {
	if v < MinScore {
		return MinScore
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}
// #endregion evaluate

// #region default-scorer
var (
	defaultOnce   sync.Once
	defaultScorer *Scorer
)

// Default returns the shared Scorer built from DefaultConfig.
func Default() *Scorer {
	defaultOnce.Do(func() {
		s, err := New(DefaultConfig())
		if err != nil {
			panic(fmt.Sprintf("default rubric: %v", err))
		}
		defaultScorer = s
	})
	return defaultScorer
}

// Evaluate scores text with the default rubric.
func Evaluate(ctx persona.ScoringContext, text string) Result {
	return Default().Evaluate(ctx, text)
}
// #endregion default-scorer
