package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/persona-score/internal/store"
)

var historyFlags struct {
	limit  int
	asJSON bool
}

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "List recorded runs, or one run's evaluations",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyFlags.limit, "limit", "n", 20, "number of runs to list")
	historyCmd.Flags().BoolVar(&historyFlags.asJSON, "json", false, "print JSON")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	st, err := requireStore()
	if err != nil {
		return err
	}
	defer st.Close()
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		runs, err := st.ListRuns(historyFlags.limit)
		if err != nil {
			return err
		}
		if historyFlags.asJSON {
			return writeJSON(out, runs)
		}
		printRuns(out, runs)
		return nil
	}

	run, err := st.GetRun(args[0])
	if err != nil {
		return err
	}
	evals, err := st.ListEvaluations(run.RunID)
	if err != nil {
		return err
	}
	if historyFlags.asJSON {
		return writeJSON(out, map[string]interface{}{"run": run, "evaluations": evals})
	}
	printEvaluations(out, run, evals)
	return nil
}

func printRuns(w io.Writer, runs []store.Run) {
	fmt.Fprintf(w, "%-36s  %-6s  %-20s  %5s  %6s  %s\n", "RUN", "SOURCE", "CREATED", "EVALS", "MEAN", "FAILED")
	for _, r := range runs {
		fmt.Fprintf(w, "%-36s  %-6s  %-20s  %5d  %6.1f  %d\n",
			r.RunID, r.Source, r.CreatedAt.Local().Format(time.DateTime), r.Evaluations, r.MeanScore, r.Failed)
	}
}

func printEvaluations(w io.Writer, run store.Run, evals []store.Evaluation) {
	fmt.Fprintf(w, "run %s (%s", run.RunID, run.Source)
	if run.Description != "" {
		fmt.Fprintf(w, ", %s", run.Description)
	}
	fmt.Fprintf(w, ") %d evaluations, mean %.1f\n\n", run.Evaluations, run.MeanScore)

	for _, ev := range evals {
		status := "-"
		if ev.Passed != nil {
			status = "OK"
			if !*ev.Passed {
				status = "FAIL"
			}
		}
		id := ev.CaseID
		if id == "" {
			id = fmt.Sprintf("#%d", ev.ID)
		}
		fmt.Fprintf(w, "%-20s %3d  %-4s  %s\n", id, ev.Score, status, ev.Text)
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
