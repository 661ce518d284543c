package persona

import (
	"strings"
)

// #region aliases
var timeBlockAliases = map[string]TimeBlock{
	"morning":   TimeMorning,
	"아침":        TimeMorning,
	"afternoon": TimeAfternoon,
	"day":       TimeAfternoon,
	"낮":         TimeAfternoon,
	"오후":        TimeAfternoon,
	"evening":   TimeEvening,
	"저녁":        TimeEvening,
	"night":     TimeNight,
	"밤":         TimeNight,
	"unknown":   TimeUnknown,
}

var needAliases = map[string]Need{
	"rest":      NeedRest,
	"sleep":     NeedRest,
	"energy":    NeedRest,
	"hunger":    NeedHunger,
	"food":      NeedHunger,
	"play":      NeedPlay,
	"fun":       NeedPlay,
	"affection": NeedAffection,
	"social":    NeedAffection,
	"love":      NeedAffection,
	"none":      NeedNone,
}

var trustAliases = map[string]TrustTier{
	"low":     TrustLow,
	"mid":     TrustMid,
	"medium":  TrustMid,
	"high":    TrustHigh,
	"unknown": TrustUnknown,
}

var interactionAliases = map[string]Interaction{
	"feed":      InteractionFeed,
	"pet":       InteractionPet,
	"play":      InteractionPlay,
	"talk":      InteractionTalk,
	"monologue": InteractionMonologue,
	"none":      InteractionNone,
}
// #endregion aliases

// #region parse-enums
// ParseTimeBlock maps s to a TimeBlock. Unrecognized input yields TimeUnknown, false.
func ParseTimeBlock(s string) (TimeBlock, bool) {
	if v, ok := timeBlockAliases[key(s)]; ok {
		return v, true
	}
	return TimeUnknown, false
}

// ParseNeed maps s to a Need. Unrecognized input yields NeedNone, false.
func ParseNeed(s string) (Need, bool) {
	if v, ok := needAliases[key(s)]; ok {
		return v, true
	}
	return NeedNone, false
}

// ParseTrustTier maps s to a TrustTier. Unrecognized input yields TrustUnknown, false.
func ParseTrustTier(s string) (TrustTier, bool) {
	if v, ok := trustAliases[key(s)]; ok {
		return v, true
	}
	return TrustUnknown, false
}

// ParseInteraction maps s to an Interaction. Unrecognized input yields InteractionNone, false.
func ParseInteraction(s string) (Interaction, bool) {
	if v, ok := interactionAliases[key(s)]; ok {
		return v, true
	}
	return InteractionNone, false
}

func key(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
// #endregion parse-enums

// #region parse
// Parse normalizes raw telemetry into a ScoringContext. It never fails:
// anything unrecognized falls back to the neutral member and is listed in Fallbacks.
// An empty optional field is not a fallback.
func Parse(raw RawContext) ScoringContext {
	var fallbacks []Fallback
	note := func(field, value string, ok bool) {
		if !ok && strings.TrimSpace(value) != "" {
			fallbacks = append(fallbacks, Fallback{Field: field, Raw: value})
		}
	}

	tb, ok := ParseTimeBlock(raw.TimeBlock)
	note("time_block", raw.TimeBlock, ok)
	need, ok := ParseNeed(raw.TopNeed)
	note("top_need", raw.TopNeed, ok)
	trust, ok := ParseTrustTier(raw.TrustTier)
	note("trust_tier", raw.TrustTier, ok)
	last, ok := ParseInteraction(raw.LastInteraction)
	note("last_interaction", raw.LastInteraction, ok)

	energy := UnknownEnergy
	if raw.Energy != nil {
		energy = NewEnergy(*raw.Energy)
		if !energy.Known {
			fallbacks = append(fallbacks, Fallback{Field: "energy", Raw: "non-finite"})
		}
	}

	return ScoringContext{
		TimeBlock:       tb,
		TopNeed:         need,
		TrustTier:       trust,
		Energy:          energy,
		LastInteraction: last,
		Extras:          raw.Extras,
		Fallbacks:       fallbacks,
	}
}

// Raw converts c back to its loosely-typed form.
func (c ScoringContext) Raw() RawContext {
	raw := RawContext{
		TimeBlock:       string(c.TimeBlock),
		TopNeed:         string(c.TopNeed),
		TrustTier:       string(c.TrustTier),
		LastInteraction: string(c.LastInteraction),
		Extras:          c.Extras,
	}
	if c.Energy.Known {
		v := c.Energy.Value
		raw.Energy = &v
	}
	return raw
}
// #endregion parse

// #region buckets
// TrustTierFromScore buckets a 0-100 trust metric.
func TrustTierFromScore(score float64) TrustTier {
	switch {
	case score < 34:
		return TrustLow
	case score < 67:
		return TrustMid
	default:
		return TrustHigh
	}
}

// TimeBlockFromHour buckets an hour of day (0-23). Out-of-range hours wrap.
func TimeBlockFromHour(hour int) TimeBlock {
	hour = ((hour % 24) + 24) % 24
	switch {
	case hour >= 5 && hour < 12:
		return TimeMorning
	case hour >= 12 && hour < 17:
		return TimeAfternoon
	case hour >= 17 && hour < 21:
		return TimeEvening
	default:
		return TimeNight
	}
}
// #endregion buckets
