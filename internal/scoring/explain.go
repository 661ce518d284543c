package scoring

import (
	"fmt"
	"strings"
)

// #region explain
// Reconstruct recomputes the total from the breakdown alone.
func (r Result) Reconstruct() int {
	return clamp(r.Raw())
}

// Raw returns baseline plus deltas before clamping.
func (r Result) Raw() int {
	sum := r.Baseline
	for _, c := range r.Contributions {
		sum += c.Delta
	}
	return sum
}

// Explain renders the breakdown for human review.
func (r Result) Explain() string {
	var b strings.Builder
	fmt.Fprintf(&b, "score %d (baseline %d", r.ScoreTotal, r.Baseline)
	if raw := r.Raw(); raw != r.ScoreTotal {
		fmt.Fprintf(&b, ", raw %d clamped", raw)
	}
	b.WriteString(")\n")

	for _, c := range r.Contributions {
		fmt.Fprintf(&b, "  %-22s %+4d  %s", c.Rule, c.Delta, c.Reason)
		if len(c.Matches) > 0 {
			fmt.Fprintf(&b, " [%s]", strings.Join(c.Matches, ", "))
		}
		if c.Faulted {
			b.WriteString(" (faulted)")
		}
		b.WriteString("\n")
	}
	for _, f := range r.Fallbacks {
		fmt.Fprintf(&b, "  unrecognized %s %q\n", f.Field, f.Raw)
	}
	return b.String()
}
// #endregion explain
