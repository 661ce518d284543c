package persona

import "math"

// #region time-block
// TimeBlock is the coarse time-of-day bucket.
type TimeBlock string

const (
	TimeMorning   TimeBlock = "morning"
	TimeAfternoon TimeBlock = "afternoon"
	TimeEvening   TimeBlock = "evening"
	TimeNight     TimeBlock = "night"
	TimeUnknown   TimeBlock = "unknown"
)
// #endregion time-block

// #region need
// Need is the character's currently dominant need.
type Need string

const (
	NeedRest      Need = "rest"
	NeedHunger    Need = "hunger"
	NeedPlay      Need = "play"
	NeedAffection Need = "affection"
	NeedNone      Need = "none"
)
// #endregion need

// #region trust-tier
// TrustTier is the coarse bucket of the relationship metric.
type TrustTier string

const (
	TrustLow     TrustTier = "low"
	TrustMid     TrustTier = "mid"
	TrustHigh    TrustTier = "high"
	TrustUnknown TrustTier = "unknown"
)
// #endregion trust-tier

// #region interaction
// Interaction is the most recent player action preceding the line.
type Interaction string

const (
	InteractionFeed      Interaction = "Feed"
	InteractionPet       Interaction = "Pet"
	InteractionPlay      Interaction = "Play"
	InteractionTalk      Interaction = "Talk"
	InteractionMonologue Interaction = "Monologue"
	InteractionNone      Interaction = "none"
)
// #endregion interaction

// #region energy
// Energy is an optional level in [0,100]. The zero value is unknown.
type Energy struct {
	Value float64
	Known bool
}

// UnknownEnergy means energy was not reported.
var UnknownEnergy = Energy{}

// NewEnergy clamps v to [0,100]. NaN and infinities are treated as unknown.
func NewEnergy(v float64) Energy {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return UnknownEnergy
	}
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	return Energy{Value: v, Known: true}
}

// Below reports whether energy is known and strictly below threshold.
func (e Energy) Below(threshold float64) bool {
	return e.Known && e.Value < threshold
}
// #endregion energy

// #region fallback
// Fallback records a raw value that was replaced by a neutral member.
type Fallback struct {
	Field string `json:"field"`
	Raw   string `json:"raw"`
}
// #endregion fallback

// #region scoring-context
// ScoringContext is the normalized situation a line is judged against.
type ScoringContext struct {
	TimeBlock       TimeBlock
	TopNeed         Need
	TrustTier       TrustTier
	Energy          Energy
	LastInteraction Interaction

	// Extras carries upstream snapshot fields the scorer does not interpret.
	Extras map[string]any

	// Fallbacks lists raw inputs that were not recognized.
	Fallbacks []Fallback
}

// RawContext is the loosely-typed form upstream telemetry supplies.
type RawContext struct {
	TimeBlock       string         `json:"time_block" yaml:"time_block"`
	TopNeed         string         `json:"top_need" yaml:"top_need"`
	TrustTier       string         `json:"trust_tier" yaml:"trust_tier"`
	Energy          *float64       `json:"energy,omitempty" yaml:"energy,omitempty"`
	LastInteraction string         `json:"last_interaction,omitempty" yaml:"last_interaction,omitempty"`
	Extras          map[string]any `json:"extras,omitempty" yaml:"extras,omitempty"`
}
// #endregion scoring-context
