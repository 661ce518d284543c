package rules

import (
	"fmt"
	"strings"

	"github.com/danielpatrickdp/persona-score/internal/lexicon"
	"github.com/danielpatrickdp/persona-score/internal/persona"
)

// #region need-sets
// needSets maps a need to the vocabulary that expresses it and the vocabulary
// of opposite valence.
var needSets = map[persona.Need]struct{ aligned, opposed string }{
	persona.NeedRest:      {lexicon.SetRest, lexicon.SetPlay},
	persona.NeedPlay:      {lexicon.SetPlay, lexicon.SetRest},
	persona.NeedHunger:    {lexicon.SetHunger, lexicon.SetSatiety},
	persona.NeedAffection: {lexicon.SetAffection, lexicon.SetAffectionRejection},
}
// #endregion need-sets

// #region need-consistency
// NeedConsistency rewards lines that talk about the dominant need and penalizes
// lines of the opposite valence. A line with no need vocabulary is neutral.
type NeedConsistency struct {
	W Weights
}

func (NeedConsistency) Name() string { return "need_consistency" }

func (r NeedConsistency) Evaluate(in Input) Contribution {
	sets, ok := needSets[in.Context.TopNeed]
	if !ok {
		return neutral(r.Name(), fmt.Sprintf("no dominant need (%s)", in.Context.TopNeed))
	}

	aligned := in.Hits.Phrases(sets.aligned)
	opposed := in.Hits.Phrases(sets.opposed)
	if len(aligned) == 0 && len(opposed) == 0 {
		return neutral(r.Name(), fmt.Sprintf("no %s-related vocabulary", in.Context.TopNeed))
	}

	delta := capped(len(aligned), r.W.MaxHits)*r.W.NeedAligned -
		capped(len(opposed), r.W.MaxHits)*r.W.NeedOpposed

	var parts []string
	if len(aligned) > 0 {
		parts = append(parts, fmt.Sprintf("%d %s phrase(s) fit need", len(aligned), sets.aligned))
	}
	if len(opposed) > 0 {
		parts = append(parts, fmt.Sprintf("%d %s phrase(s) contradict need %s", len(opposed), sets.opposed, in.Context.TopNeed))
	}

	return Contribution{
		Rule:    r.Name(),
		Delta:   delta,
		Reason:  strings.Join(parts, "; "),
		Matches: join(aligned, opposed),
	}
}
// #endregion need-consistency
