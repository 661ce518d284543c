package scoring

import (
	"github.com/danielpatrickdp/persona-score/internal/lexicon"
	"github.com/danielpatrickdp/persona-score/internal/persona"
	"github.com/danielpatrickdp/persona-score/internal/rules"
)

// #region config
// Config holds the authored rubric: baseline, rule weights, and phrase sets.
type Config struct {
	Baseline int
	Weights  rules.Weights
	Phrases  lexicon.Sets
}

// DefaultConfig returns the shipped rubric.
func DefaultConfig() Config {
	return Config{
		Baseline: DefaultBaseline,
		Weights:  rules.DefaultWeights(),
		Phrases:  lexicon.Default(),
	}
}
// #endregion config

// #region bounds
const (
	MinScore        = 0
	MaxScore        = 100
	DefaultBaseline = 50
)
// #endregion bounds

// #region result
// Result is the bounded total plus everything needed to explain it.
type Result struct {
	ScoreTotal    int                  `json:"score_total"`
	Baseline      int                  `json:"baseline"`
	Contributions []rules.Contribution `json:"contributions"`
	Fallbacks     []persona.Fallback   `json:"fallbacks,omitempty"`
}
// #endregion result
