package persona

import (
	"math"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }

func TestParse_KnownValues(t *testing.T) {
	ctx := Parse(RawContext{
		TimeBlock:       "Afternoon",
		TopNeed:         " rest ",
		TrustTier:       "MID",
		Energy:          floatPtr(20),
		LastInteraction: "pet",
	})

	if ctx.TimeBlock != TimeAfternoon {
		t.Errorf("time block: got %q, want %q", ctx.TimeBlock, TimeAfternoon)
	}
	if ctx.TopNeed != NeedRest {
		t.Errorf("need: got %q, want %q", ctx.TopNeed, NeedRest)
	}
	if ctx.TrustTier != TrustMid {
		t.Errorf("trust: got %q, want %q", ctx.TrustTier, TrustMid)
	}
	if !ctx.Energy.Known || ctx.Energy.Value != 20 {
		t.Errorf("energy: got %+v, want known 20", ctx.Energy)
	}
	if ctx.LastInteraction != InteractionPet {
		t.Errorf("interaction: got %q, want %q", ctx.LastInteraction, InteractionPet)
	}
	if len(ctx.Fallbacks) != 0 {
		t.Errorf("expected no fallbacks, got %v", ctx.Fallbacks)
	}
}

func TestParse_UnknownValuesFallBack(t *testing.T) {
	ctx := Parse(RawContext{
		TimeBlock:       "dusk",
		TopNeed:         "thirst",
		TrustTier:       "bestie",
		LastInteraction: "Groom",
	})

	if ctx.TimeBlock != TimeUnknown {
		t.Errorf("time block: got %q, want unknown", ctx.TimeBlock)
	}
	if ctx.TopNeed != NeedNone {
		t.Errorf("need: got %q, want none", ctx.TopNeed)
	}
	if ctx.TrustTier != TrustUnknown {
		t.Errorf("trust: got %q, want unknown", ctx.TrustTier)
	}
	if ctx.LastInteraction != InteractionNone {
		t.Errorf("interaction: got %q, want none", ctx.LastInteraction)
	}
	if len(ctx.Fallbacks) != 4 {
		t.Fatalf("expected 4 fallbacks, got %d: %v", len(ctx.Fallbacks), ctx.Fallbacks)
	}
	if ctx.Fallbacks[0].Field != "time_block" || ctx.Fallbacks[0].Raw != "dusk" {
		t.Errorf("unexpected first fallback: %+v", ctx.Fallbacks[0])
	}
}

func TestParse_EmptyOptionalFieldsAreNotFallbacks(t *testing.T) {
	ctx := Parse(RawContext{TimeBlock: "night", TopNeed: "none", TrustTier: "low"})

	if ctx.Energy.Known {
		t.Error("expected unknown energy")
	}
	if ctx.LastInteraction != InteractionNone {
		t.Errorf("interaction: got %q, want none", ctx.LastInteraction)
	}
	if len(ctx.Fallbacks) != 0 {
		t.Errorf("expected no fallbacks, got %v", ctx.Fallbacks)
	}
}

func TestParse_ExtrasCarriedThrough(t *testing.T) {
	extras := map[string]any{"mood": "grumpy", "hp": 3.0}
	ctx := Parse(RawContext{TimeBlock: "morning", Extras: extras})

	if ctx.Extras["mood"] != "grumpy" || ctx.Extras["hp"] != 3.0 {
		t.Errorf("extras not preserved: %v", ctx.Extras)
	}
	if ctx.Raw().Extras["mood"] != "grumpy" {
		t.Error("extras lost in Raw()")
	}
}

func TestNewEnergy(t *testing.T) {
	tests := []struct {
		name      string
		in        float64
		wantKnown bool
		wantValue float64
	}{
		{"in-range", 42, true, 42},
		{"negative-clamped", -5, true, 0},
		{"over-clamped", 180, true, 100},
		{"nan", math.NaN(), false, 0},
		{"inf", math.Inf(1), false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEnergy(tt.in)
			if e.Known != tt.wantKnown || e.Value != tt.wantValue {
				t.Errorf("got %+v, want known=%v value=%v", e, tt.wantKnown, tt.wantValue)
			}
		})
	}
}

func TestParse_NonFiniteEnergyRecorded(t *testing.T) {
	ctx := Parse(RawContext{TimeBlock: "night", Energy: floatPtr(math.NaN())})
	if ctx.Energy.Known {
		t.Error("expected NaN energy to be unknown")
	}
	if len(ctx.Fallbacks) != 1 || ctx.Fallbacks[0].Field != "energy" {
		t.Errorf("expected energy fallback, got %v", ctx.Fallbacks)
	}
}

func TestEnergyBelow(t *testing.T) {
	if UnknownEnergy.Below(30) {
		t.Error("unknown energy must never be below a threshold")
	}
	if !NewEnergy(29.9).Below(30) {
		t.Error("29.9 should be below 30")
	}
	if NewEnergy(30).Below(30) {
		t.Error("30 should not be below 30")
	}
}

func TestTrustTierFromScore(t *testing.T) {
	tests := []struct {
		score float64
		want  TrustTier
	}{
		{0, TrustLow}, {33.9, TrustLow}, {34, TrustMid}, {66, TrustMid}, {67, TrustHigh}, {100, TrustHigh},
	}
	for _, tt := range tests {
		if got := TrustTierFromScore(tt.score); got != tt.want {
			t.Errorf("TrustTierFromScore(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestTimeBlockFromHour(t *testing.T) {
	tests := []struct {
		hour int
		want TimeBlock
	}{
		{0, TimeNight}, {4, TimeNight}, {5, TimeMorning}, {11, TimeMorning},
		{12, TimeAfternoon}, {16, TimeAfternoon}, {17, TimeEvening}, {20, TimeEvening},
		{21, TimeNight}, {23, TimeNight}, {-1, TimeNight}, {30, TimeMorning},
	}
	for _, tt := range tests {
		if got := TimeBlockFromHour(tt.hour); got != tt.want {
			t.Errorf("TimeBlockFromHour(%d) = %q, want %q", tt.hour, got, tt.want)
		}
	}
}
