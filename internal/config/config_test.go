package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielpatrickdp/persona-score/internal/lexicon"
	"github.com/danielpatrickdp/persona-score/internal/persona"
	"github.com/danielpatrickdp/persona-score/internal/scoring"
)

func TestParse_OverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
baseline: 40
weights:
  voice_marker: 9
phrases:
  persona_marker: ["미야우"]
`))
	require.NoError(t, err)

	assert.Equal(t, 40, cfg.Baseline)
	assert.Equal(t, 9, cfg.Weights.VoiceMarker)
	// untouched weights keep defaults
	assert.Equal(t, 10, cfg.Weights.Professional)
	assert.Equal(t, 30.0, cfg.Weights.EnergyThreshold)
	assert.Equal(t, "text", cfg.Logging.Format)

	sc := cfg.Scoring()
	assert.Contains(t, sc.Phrases[lexicon.SetPersonaMarker], "냥")
	assert.Contains(t, sc.Phrases[lexicon.SetPersonaMarker], "미야우")
}

func TestParse_EmptyIsDefault(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"baseline-high", "baseline: 120"},
		{"negative-weight", "weights:\n  refusal: -1"},
		{"huge-weight", "weights:\n  refusal: 9223372036854775807"},
		{"weight-over-cap", "weights:\n  echo: 101"},
		{"max-hits-over-cap", "weights:\n  max_hits: 1000"},
		{"negative-max-runes", "weights:\n  max_runes: -5"},
		{"threshold-range", "weights:\n  energy_threshold: 150"},
		{"bad-format", "logging:\n  format: xml"},
		{"malformed", "baseline: [1, 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rubric.yaml")
	require.NoError(t, os.WriteFile(path, []byte("baseline: 55\nserver:\n  http_addr: \":9090\"\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 55, cfg.Baseline)
	assert.Equal(t, ":9090", cfg.Server.HTTPAddr)
	assert.Equal(t, "localhost:50061", cfg.Server.GRPCAddr)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestScoring_BuildsWorkingScorer(t *testing.T) {
	cfg, err := Parse([]byte("phrases:\n  persona_marker: [\"미야우\"]\n"))
	require.NoError(t, err)

	s, err := scoring.New(cfg.Scoring())
	require.NoError(t, err)

	ctx := persona.ScoringContext{TimeBlock: persona.TimeNight, TopNeed: persona.NeedNone, TrustTier: persona.TrustMid}
	res := s.Evaluate(ctx, "미야우")
	assert.Equal(t, 56, res.ScoreTotal)
}
