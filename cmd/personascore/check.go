package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/persona-score/internal/harness"
)

var checkFlags struct {
	workers int
	verbose bool
}

var checkCmd = &cobra.Command{
	Use:   "check [fixture.json]",
	Short: "Run an acceptance fixture (default: built-in suite) and report bound violations",
	Long: `Run every case in a JSON fixture and compare each score to its min/max bounds.
Exits 1 if any bounded case falls outside its range. With --db every case is logged.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().IntVarP(&checkFlags.workers, "workers", "w", 0, "worker goroutines (default: number of CPU cores)")
	checkCmd.Flags().BoolVarP(&checkFlags.verbose, "verbose", "v", false, "print each case's breakdown")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}

	fx := harness.Seed()
	source := "built-in suite"
	if len(args) == 1 {
		fx, err = harness.LoadFixture(args[0])
		if err != nil {
			return err
		}
		source = args[0]
	}

	results := harness.RunParallel(e.scorer, fx.ToCases(), checkFlags.workers)
	summary := printResults(cmd.OutOrStdout(), results, checkFlags.verbose)

	st, err := openStore()
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close()
		sess, err := st.Session("check", source)
		if err != nil {
			return err
		}
		for _, r := range results {
			var passed *bool
			if r.Checked {
				p := r.Passed
				passed = &p
			}
			if _, err := sess.Log(r.ID, r.Case.Context, r.Case.Text, r.Result, passed); err != nil {
				return err
			}
		}
		e.logger.Info("check recorded", "run_id", sess.RunID(), "cases", len(results))
	}

	if summary.Failed > 0 {
		return errChecksFailed
	}
	return nil
}

// printResults outputs a result table and returns the summary.
func printResults(w io.Writer, results []harness.CaseResult, verbose bool) harness.Summary {
	fmt.Fprintf(w, "%-20s| %-6s| %-10s| %s\n", "Case", "Score", "Bounds", "Result")
	fmt.Fprintf(w, "%-20s+%-7s+%-11s+%s\n",
		"--------------------", "-------", "-----------", "------")

	for _, r := range results {
		verdict := "OK"
		switch {
		case !r.Checked:
			verdict = "-"
		case !r.Passed:
			verdict = "FAIL: " + r.Reason
		}
		fmt.Fprintf(w, "%-20s| %-6d| %-10s| %s\n", r.ID, r.Result.ScoreTotal, bounds(r.Case), verdict)
		if verbose {
			fmt.Fprintln(w, r.Result.Explain())
		}
	}

	s := harness.Summarize(results)
	fmt.Fprintf(w, "\nSummary: %d total, %d passed, %d failed, %d unchecked (scores %d-%d, mean %.1f)\n",
		s.Total, s.Passed, s.Failed, s.Unchecked, s.MinScore, s.MaxScore, s.MeanScore)
	return s
}

func bounds(c harness.Case) string {
	lo, hi := "", ""
	if c.MinScore != nil {
		lo = fmt.Sprint(*c.MinScore)
	}
	if c.MaxScore != nil {
		hi = fmt.Sprint(*c.MaxScore)
	}
	if lo == "" && hi == "" {
		return "-"
	}
	return "[" + lo + "," + hi + "]"
}
