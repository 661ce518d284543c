package lexicon

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// #region canonicalize
// Canonicalize folds text into the form used for both phrase compilation and scanning:
// NFC composed, full-width folded, lowercase, letters and digits only.
// Dropping whitespace and punctuation makes matching spacing tolerant, so
// "너 밖에 없어!" and "너밖에없어" canonicalize identically.
func Canonicalize(s string) string {
	if s == "" {
		return ""
	}
	s = width.Fold.String(norm.NFC.String(s))

	var out strings.Builder
	out.Grow(len(s))
	for _, r := range s {
		if r == unicode.ReplacementChar {
			continue
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			out.WriteRune(unicode.ToLower(r))
		}
	}
	return out.String()
}
// #endregion canonicalize
