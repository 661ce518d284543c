package rules

import (
	"fmt"

	"github.com/danielpatrickdp/persona-score/internal/lexicon"
	"github.com/danielpatrickdp/persona-score/internal/persona"
)

// #region energy-rejection
// EnergyRejection applies only right after the player pets an exhausted cat.
// Fatigue-based refusal is in character; cheerful acceptance is not.
type EnergyRejection struct {
	W Weights
}

func (EnergyRejection) Name() string { return "energy_rejection" }

func (r EnergyRejection) Evaluate(in Input) Contribution {
	ctx := in.Context
	if !ctx.Energy.Known {
		return neutral(r.Name(), "energy unknown")
	}
	if !ctx.Energy.Below(r.W.EnergyThreshold) {
		return neutral(r.Name(), fmt.Sprintf("energy %.0f not below %.0f", ctx.Energy.Value, r.W.EnergyThreshold))
	}
	if ctx.LastInteraction != persona.InteractionPet {
		return neutral(r.Name(), fmt.Sprintf("last interaction %s is not Pet", ctx.LastInteraction))
	}

	refusals := in.Hits.Phrases(lexicon.SetRefusal)
	if len(refusals) > 0 {
		return Contribution{
			Rule:    r.Name(),
			Delta:   capped(len(refusals), r.W.MaxHits) * r.W.Refusal,
			Reason:  fmt.Sprintf("%d refusal phrase(s) while petted at energy %.0f", len(refusals), ctx.Energy.Value),
			Matches: refusals,
		}
	}

	cheerful := join(in.Hits.Phrases(lexicon.SetAffection), in.Hits.Phrases(lexicon.SetPlay))
	if len(cheerful) > 0 {
		return Contribution{
			Rule:    r.Name(),
			Delta:   -r.W.Cheerful,
			Reason:  fmt.Sprintf("welcomes petting at energy %.0f", ctx.Energy.Value),
			Matches: cheerful,
		}
	}
	return neutral(r.Name(), "no reaction to petting")
}
// #endregion energy-rejection
