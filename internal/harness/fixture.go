package harness

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/danielpatrickdp/persona-score/internal/persona"
)

// #region fixture-types
// Fixture is the top-level JSON structure for an acceptance suite.
type Fixture struct {
	Description string        `json:"description"`
	Cases       []FixtureCase `json:"cases"`
}

// FixtureCase is one literal (context, text) pair with optional score bounds.
type FixtureCase struct {
	ID       string             `json:"id"`
	Context  persona.RawContext `json:"context"`
	Text     string             `json:"text"`
	MinScore *int               `json:"min_score,omitempty"`
	MaxScore *int               `json:"max_score,omitempty"`
}
// #endregion fixture-types

// #region fixture-loader
//go:embed cases/acceptance.json
var acceptanceJSON []byte

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	f, err := ParseFixture(data)
	if err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return f, nil
}

// ParseFixture decodes fixture JSON and checks case ids are present and unique.
func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(f.Cases))
	for i, c := range f.Cases {
		if c.ID == "" {
			return nil, fmt.Errorf("case %d: missing id", i)
		}
		if _, dup := seen[c.ID]; dup {
			return nil, fmt.Errorf("case %d: duplicate id %q", i, c.ID)
		}
		seen[c.ID] = struct{}{}
	}
	return &f, nil
}

// Seed returns the built-in acceptance suite.
func Seed() *Fixture {
	f, err := ParseFixture(acceptanceJSON)
	if err != nil {
		panic(fmt.Sprintf("embedded acceptance fixture: %v", err))
	}
	return f
}

// Write saves f as indented JSON.
func (f *Fixture) Write(path string) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write fixture %s: %w", path, err)
	}
	return nil
}

// ToCase converts a FixtureCase to a domain Case.
func (fc *FixtureCase) ToCase() Case {
	return Case{
		ID:       fc.ID,
		Context:  persona.Parse(fc.Context),
		Text:     fc.Text,
		MinScore: fc.MinScore,
		MaxScore: fc.MaxScore,
	}
}

// ToCases converts every fixture case.
func (f *Fixture) ToCases() []Case {
	cases := make([]Case, len(f.Cases))
	for i := range f.Cases {
		cases[i] = f.Cases[i].ToCase()
	}
	return cases
}
// #endregion fixture-loader
