package rules

import (
	"fmt"
	"strings"

	"github.com/danielpatrickdp/persona-score/internal/lexicon"
)

// #region persona-voice
// PersonaVoice rewards the cat's speech markers and penalizes lines that slip
// into a counselor or assistant register.
type PersonaVoice struct {
	W Weights
}

func (PersonaVoice) Name() string { return "persona_voice" }

func (r PersonaVoice) Evaluate(in Input) Contribution {
	markers := in.Hits.Phrases(lexicon.SetPersonaMarker)
	formal := in.Hits.Phrases(lexicon.SetProfessional)
	if len(markers) == 0 && len(formal) == 0 {
		return neutral(r.Name(), "no voice markers")
	}

	delta := 0
	var parts []string
	if len(markers) > 0 {
		delta += r.W.VoiceMarker
		parts = append(parts, "persona speech marker present")
	}
	if len(formal) > 0 {
		delta -= capped(len(formal), r.W.MaxHits) * r.W.Professional
		parts = append(parts, fmt.Sprintf("%d professional-register phrase(s)", len(formal)))
	}

	return Contribution{
		Rule:    r.Name(),
		Delta:   delta,
		Reason:  strings.Join(parts, "; "),
		Matches: join(markers, formal),
	}
}
// #endregion persona-voice
