package rules

import (
	"fmt"

	"github.com/danielpatrickdp/persona-score/internal/lexicon"
	"github.com/danielpatrickdp/persona-score/internal/persona"
)

// #region contribution
// Contribution is one rule's signed adjustment to the baseline and why.
type Contribution struct {
	Rule    string   `json:"rule"`
	Delta   int      `json:"delta"`
	Reason  string   `json:"reason"`
	Matches []string `json:"matches,omitempty"`
	Faulted bool     `json:"faulted,omitempty"`
}
// #endregion contribution

// #region input
// Input is everything a rule may look at. Hits are derived from Text only.
type Input struct {
	Context persona.ScoringContext
	Text    string
	Hits    lexicon.Hits
}
// #endregion input

// #region rule
// Rule is a single independent check. Implementations must be deterministic,
// must not read other rules' output, and must return a zero delta on empty text.
type Rule interface {
	Name() string
	Evaluate(in Input) Contribution
}
// #endregion rule

// #region weights
// Weights holds the authored magnitudes of every rule.
type Weights struct {
	NeedAligned  int `yaml:"need_aligned" json:"need_aligned"`
	NeedOpposed  int `yaml:"need_opposed" json:"need_opposed"`
	IntimacyLow  int `yaml:"intimacy_low" json:"intimacy_low"`   // penalty per phrase at low trust
	IntimacyHigh int `yaml:"intimacy_high" json:"intimacy_high"` // reward per phrase at high trust
	Refusal      int `yaml:"refusal" json:"refusal"`
	Cheerful     int `yaml:"cheerful" json:"cheerful"` // penalty for accepting petting while exhausted
	VoiceMarker  int `yaml:"voice_marker" json:"voice_marker"`
	Professional int `yaml:"professional" json:"professional"`
	GreetMatch   int `yaml:"greet_match" json:"greet_match"`
	GreetWrong   int `yaml:"greet_wrong" json:"greet_wrong"`
	Echo         int `yaml:"echo" json:"echo"`
	Length       int `yaml:"length" json:"length"`

	// MaxHits caps how many distinct phrases of one set count toward a delta.
	MaxHits int `yaml:"max_hits" json:"max_hits"`
	// EnergyThreshold is the level below which a tired cat may refuse petting.
	EnergyThreshold float64 `yaml:"energy_threshold" json:"energy_threshold"`
	// MaxRunes is the longest line a speech bubble should carry.
	MaxRunes int `yaml:"max_runes" json:"max_runes"`
}

// DefaultWeights returns the authored rubric magnitudes.
func DefaultWeights() Weights {
	return Weights{
		NeedAligned:     8,
		NeedOpposed:     10,
		IntimacyLow:     12,
		IntimacyHigh:    4,
		Refusal:         8,
		Cheerful:        10,
		VoiceMarker:     6,
		Professional:    10,
		GreetMatch:      4,
		GreetWrong:      8,
		Echo:            4,
		Length:          6,
		MaxHits:         3,
		EnergyThreshold: 30,
		MaxRunes:        80,
	}
}

// MaxWeight bounds every rule magnitude and MaxHits so a rubric sum stays small.
const MaxWeight = 100

// Validate checks every magnitude lies in [0, MaxWeight]. MaxRunes is a length
// and only needs to be non-negative.
func (w Weights) Validate() error {
	named := []struct {
		name string
		v    int
	}{
		{"need_aligned", w.NeedAligned}, {"need_opposed", w.NeedOpposed},
		{"intimacy_low", w.IntimacyLow}, {"intimacy_high", w.IntimacyHigh},
		{"refusal", w.Refusal}, {"cheerful", w.Cheerful},
		{"voice_marker", w.VoiceMarker}, {"professional", w.Professional},
		{"greet_match", w.GreetMatch}, {"greet_wrong", w.GreetWrong},
		{"echo", w.Echo}, {"length", w.Length}, {"max_hits", w.MaxHits},
	}
	for _, n := range named {
		if n.v < 0 || n.v > MaxWeight {
			return fmt.Errorf("weight %s %d outside [0, %d]", n.name, n.v, MaxWeight)
		}
	}
	if w.MaxRunes < 0 {
		return fmt.Errorf("weight max_runes must be non-negative, got %d", w.MaxRunes)
	}
	if w.EnergyThreshold < 0 || w.EnergyThreshold > 100 {
		return fmt.Errorf("energy_threshold %.1f outside [0, 100]", w.EnergyThreshold)
	}
	return nil
}
// #endregion weights

// #region rubric
// Default builds the ordered rubric.
func Default(w Weights) []Rule {
	return []Rule{
		NeedConsistency{W: w},
		TrustAppropriateness{W: w},
		EnergyRejection{W: w},
		PersonaVoice{W: w},
		TimeGreeting{W: w},
		InteractionEcho{W: w},
		LineLength{W: w},
	}
}
// #endregion rubric
