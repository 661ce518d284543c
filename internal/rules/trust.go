package rules

import (
	"fmt"

	"github.com/danielpatrickdp/persona-score/internal/lexicon"
	"github.com/danielpatrickdp/persona-score/internal/persona"
)

// #region trust-appropriateness
// TrustAppropriateness gates declarations of love, exclusivity and permanence
// on the relationship tier. Strong phrasing is penalized at low trust, neutral
// at mid, and rewarded at high trust, twice as much when affection is the need.
type TrustAppropriateness struct {
	W Weights
}

func (TrustAppropriateness) Name() string { return "trust_appropriateness" }

func (r TrustAppropriateness) Evaluate(in Input) Contribution {
	phrases := in.Hits.Phrases(lexicon.SetIntimacy)
	if len(phrases) == 0 {
		return neutral(r.Name(), "no intimacy phrasing")
	}
	n := capped(len(phrases), r.W.MaxHits)

	switch in.Context.TrustTier {
	case persona.TrustLow:
		return Contribution{
			Rule:    r.Name(),
			Delta:   -n * r.W.IntimacyLow,
			Reason:  fmt.Sprintf("%d intimacy phrase(s) at low trust", len(phrases)),
			Matches: phrases,
		}
	case persona.TrustHigh:
		per := r.W.IntimacyHigh
		reason := fmt.Sprintf("%d intimacy phrase(s) earned by high trust", len(phrases))
		if in.Context.TopNeed == persona.NeedAffection {
			per *= 2
			reason += " and affection need"
		}
		return Contribution{
			Rule:    r.Name(),
			Delta:   n * per,
			Reason:  reason,
			Matches: phrases,
		}
	default:
		return Contribution{
			Rule:    r.Name(),
			Delta:   0,
			Reason:  fmt.Sprintf("intimacy phrasing tolerated at %s trust", in.Context.TrustTier),
			Matches: phrases,
		}
	}
}
// #endregion trust-appropriateness
