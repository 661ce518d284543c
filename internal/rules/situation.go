package rules

import (
	"fmt"
	"unicode/utf8"

	"github.com/danielpatrickdp/persona-score/internal/lexicon"
	"github.com/danielpatrickdp/persona-score/internal/persona"
)

// #region time-greeting
var greetingSets = map[persona.TimeBlock]string{
	persona.TimeMorning:   lexicon.SetGreetingMorning,
	persona.TimeAfternoon: lexicon.SetGreetingAfternoon,
	persona.TimeEvening:   lexicon.SetGreetingEvening,
	persona.TimeNight:     lexicon.SetGreetingNight,
}

// greetingOrder fixes iteration order so reasons are reproducible.
var greetingOrder = []persona.TimeBlock{
	persona.TimeMorning, persona.TimeAfternoon, persona.TimeEvening, persona.TimeNight,
}

// TimeGreeting checks time-of-day greetings against the time block.
// Saying good night in the morning is a contradiction.
type TimeGreeting struct {
	W Weights
}

func (TimeGreeting) Name() string { return "time_greeting" }

func (r TimeGreeting) Evaluate(in Input) Contribution {
	own, ok := greetingSets[in.Context.TimeBlock]
	if !ok {
		return neutral(r.Name(), "time of day unknown")
	}

	for _, tb := range greetingOrder {
		if tb == in.Context.TimeBlock {
			continue
		}
		if wrong := in.Hits.Phrases(greetingSets[tb]); len(wrong) > 0 {
			return Contribution{
				Rule:    r.Name(),
				Delta:   -r.W.GreetWrong,
				Reason:  fmt.Sprintf("%s greeting during %s", tb, in.Context.TimeBlock),
				Matches: wrong,
			}
		}
	}
	if right := in.Hits.Phrases(own); len(right) > 0 {
		return Contribution{
			Rule:    r.Name(),
			Delta:   r.W.GreetMatch,
			Reason:  fmt.Sprintf("greeting fits %s", in.Context.TimeBlock),
			Matches: right,
		}
	}
	return neutral(r.Name(), "no time-of-day greeting")
}
// #endregion time-greeting

// #region interaction-echo
// InteractionEcho rewards lines that react to what the player just did.
// Petting is only echoed when the cat is not exhausted; that case belongs to EnergyRejection.
type InteractionEcho struct {
	W Weights
}

func (InteractionEcho) Name() string { return "interaction_echo" }

func (r InteractionEcho) Evaluate(in Input) Contribution {
	var set string
	switch in.Context.LastInteraction {
	case persona.InteractionFeed:
		set = lexicon.SetFoodThanks
	case persona.InteractionPlay:
		set = lexicon.SetPlay
	case persona.InteractionPet:
		if in.Context.Energy.Below(r.W.EnergyThreshold) {
			return neutral(r.Name(), "petting while exhausted")
		}
		set = lexicon.SetAffection
	default:
		return neutral(r.Name(), fmt.Sprintf("nothing to echo after %s", in.Context.LastInteraction))
	}

	phrases := in.Hits.Phrases(set)
	if len(phrases) == 0 {
		return neutral(r.Name(), fmt.Sprintf("no reaction to %s", in.Context.LastInteraction))
	}
	return Contribution{
		Rule:    r.Name(),
		Delta:   r.W.Echo,
		Reason:  fmt.Sprintf("reacts to %s", in.Context.LastInteraction),
		Matches: phrases,
	}
}
// #endregion interaction-echo

// #region line-length
// LineLength penalizes lines too long for a speech bubble.
type LineLength struct {
	W Weights
}

func (LineLength) Name() string { return "line_length" }

func (r LineLength) Evaluate(in Input) Contribution {
	n := utf8.RuneCountInString(in.Text)
	if r.W.MaxRunes <= 0 || n <= r.W.MaxRunes {
		return neutral(r.Name(), fmt.Sprintf("%d runes", n))
	}
	return Contribution{
		Rule:   r.Name(),
		Delta:  -r.W.Length,
		Reason: fmt.Sprintf("%d runes exceeds %d", n, r.W.MaxRunes),
	}
}
// #endregion line-length

// #region helpers
func neutral(rule, reason string) Contribution {
	return Contribution{Rule: rule, Delta: 0, Reason: reason}
}

// capped limits n to limit when limit is positive.
func capped(n, limit int) int {
	if limit > 0 && n > limit {
		return limit
	}
	return n
}

func join(a, b []string) []string {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
// #endregion helpers
