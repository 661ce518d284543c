package lexicon

import (
	"sort"

	"github.com/coregx/ahocorasick"
)

// #region types
// Sets maps a phrase-set name to its authored phrases.
type Sets map[string][]string

// Hits maps a phrase-set name to the distinct phrases found, in text order.
type Hits map[string][]string

// Count returns the number of distinct phrases of set that matched.
func (h Hits) Count(set string) int {
	return len(h[set])
}

// Has reports whether any phrase of set matched.
func (h Hits) Has(set string) bool {
	return len(h[set]) > 0
}

// Phrases returns the matched phrases of set.
func (h Hits) Phrases(set string) []string {
	return h[set]
}

// owner ties a compiled pattern back to the set and phrase that produced it.
type owner struct {
	set    string
	phrase string
}
// #endregion types

// #region matcher
// Matcher scans text for every phrase set at once with a single automaton.
// It is immutable after NewMatcher and safe for concurrent use.
type Matcher struct {
	ac       *ahocorasick.Automaton
	patterns []string
	owners   [][]owner
}

// NewMatcher compiles sets into one automaton. Phrases are canonicalized with
// the same function used on scanned text; phrases that canonicalize to "" are skipped.
func NewMatcher(sets Sets) (*Matcher, error) {
	m := &Matcher{}
	index := make(map[string]int)

	// Stable order keeps pattern ids reproducible across builds.
	names := make([]string, 0, len(sets))
	for name := range sets {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		for _, phrase := range sets[name] {
			key := Canonicalize(phrase)
			if key == "" {
				continue
			}
			o := owner{set: name, phrase: phrase}
			if idx, ok := index[key]; ok {
				m.owners[idx] = appendOwner(m.owners[idx], o)
				continue
			}
			index[key] = len(m.patterns)
			m.patterns = append(m.patterns, key)
			m.owners = append(m.owners, []owner{o})
		}
	}

	if len(m.patterns) == 0 {
		return m, nil
	}

	automaton, err := ahocorasick.NewBuilder().
		AddStrings(m.patterns).
		SetPrefilter(true).
		Build()
	if err != nil {
		return nil, err
	}
	m.ac = automaton
	return m, nil
}
// #endregion matcher

// #region match
// Match canonicalizes text and returns the distinct phrases found per set.
// A phrase matched several times is reported once, at its first position.
// An occurrence lying strictly inside a longer match is dropped, so
// "쓰다듬지마" counts as refusal and not as the affection stem "쓰다듬".
func (m *Matcher) Match(text string) Hits {
	hits := Hits{}
	if m == nil || m.ac == nil {
		return hits
	}
	canon := Canonicalize(text)
	if canon == "" {
		return hits
	}

	found := m.ac.FindAllOverlapping([]byte(canon))
	sort.SliceStable(found, func(i, j int) bool {
		if found[i].Start != found[j].Start {
			return found[i].Start < found[j].Start
		}
		return found[i].End < found[j].End
	})

	seen := make(map[owner]struct{})
	for i, f := range found {
		if f.PatternID < 0 || f.PatternID >= len(m.owners) {
			continue
		}
		if nested(found, i) {
			continue
		}
		for _, o := range m.owners[f.PatternID] {
			if _, dup := seen[o]; dup {
				continue
			}
			seen[o] = struct{}{}
			hits[o.set] = append(hits[o.set], o.phrase)
		}
	}
	return hits
}

// PatternCount returns the number of distinct compiled patterns.
func (m *Matcher) PatternCount() int {
	if m == nil {
		return 0
	}
	return len(m.patterns)
}
// #endregion match

// #region helpers
// nested reports whether found[i] lies strictly inside another match's span.
func nested(found []ahocorasick.Match, i int) bool {
	f := found[i]
	for j, o := range found {
		if j == i || o.Start > f.Start {
			continue
		}
		if f.End <= o.End && o.End-o.Start > f.End-f.Start {
			return true
		}
	}
	return false
}

func appendOwner(list []owner, o owner) []owner {
	for _, existing := range list {
		if existing == o {
			return list
		}
	}
	return append(list, o)
}

// Merge returns base with extra phrases appended per set. Neither input is modified.
func Merge(base, extra Sets) Sets {
	out := make(Sets, len(base)+len(extra))
	for name, phrases := range base {
		out[name] = append([]string(nil), phrases...)
	}
	for name, phrases := range extra {
		out[name] = append(out[name], phrases...)
	}
	return out
}
// #endregion helpers
