package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/persona-score/internal/harness"
)

var exportFlags struct {
	seed bool
	pin  int
}

var exportCmd = &cobra.Command{
	Use:   "export [run-id] <out.json>",
	Short: "Write a recorded run (or the built-in suite) as a fixture",
	Long: `Write a recorded run's evaluations as a JSON fixture that check can replay.
--pin N bounds each case to its recorded score ± N. --seed writes the built-in suite instead.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().BoolVar(&exportFlags.seed, "seed", false, "export the built-in acceptance suite")
	exportCmd.Flags().IntVar(&exportFlags.pin, "pin", -1, "bound cases to recorded score ± N (negative: unbounded)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFlags.seed {
		if len(args) != 1 {
			return fmt.Errorf("usage: export --seed <out.json>")
		}
		if err := harness.Seed().Write(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote built-in suite to %s\n", args[0])
		return nil
	}
	if len(args) != 2 {
		return fmt.Errorf("usage: export <run-id> <out.json>")
	}
	runID, outPath := args[0], args[1]

	st, err := requireStore()
	if err != nil {
		return err
	}
	defer st.Close()

	run, err := st.GetRun(runID)
	if err != nil {
		return err
	}
	evals, err := st.ListEvaluations(run.RunID)
	if err != nil {
		return err
	}
	if len(evals) == 0 {
		return fmt.Errorf("run %s has no evaluations", runID)
	}

	desc := fmt.Sprintf("exported from %s run %s", run.Source, run.RunID)
	fx, err := harness.FromEvaluations(desc, evals, exportFlags.pin)
	if err != nil {
		return err
	}
	if err := fx.Write(outPath); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d cases to %s\n", len(fx.Cases), outPath)
	return nil
}
