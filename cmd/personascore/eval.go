package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/persona-score/internal/persona"
)

var evalFlags struct {
	timeBlock   string
	need        string
	trust       string
	energy      float64
	last        string
	contextJSON string
	asJSON      bool
}

var evalCmd = &cobra.Command{
	Use:   "eval [text...]",
	Short: "Score one line and print the breakdown",
	Long: `Score one line against a context given by flags or --context JSON.
With no text arguments the line is read from stdin.`,
	Example: `  personascore eval --time afternoon --need rest --trust mid "졸려… 그냥 누울래냥..."
  personascore eval --context '{"time_block":"evening","top_need":"affection","trust_tier":"high"}' 그르릉`,
	RunE: runEval,
}

func init() {
	f := evalCmd.Flags()
	f.StringVar(&evalFlags.timeBlock, "time", "", "time block: morning | afternoon | evening | night")
	f.StringVar(&evalFlags.need, "need", "", "top need: rest | hunger | play | affection | none")
	f.StringVar(&evalFlags.trust, "trust", "", "trust tier: low | mid | high")
	f.Float64Var(&evalFlags.energy, "energy", 0, "energy 0-100 (unset means unknown)")
	f.StringVar(&evalFlags.last, "last", "", "last interaction: Feed | Pet | Play | Talk | Monologue")
	f.StringVar(&evalFlags.contextJSON, "context", "", "context as JSON; flags override its fields")
	f.BoolVar(&evalFlags.asJSON, "json", false, "print the result as JSON")
	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}

	raw, err := evalContext(cmd)
	if err != nil {
		return err
	}
	text := strings.Join(args, " ")
	if len(args) == 0 {
		data, err := readAllStdin(cmd)
		if err != nil {
			return err
		}
		text = strings.TrimRight(data, "\r\n")
	}

	ctx := persona.Parse(raw)
	res := e.scorer.Evaluate(ctx, text)
	for _, fb := range res.Fallbacks {
		e.logger.Warn("unrecognized context value", "field", fb.Field, "raw", fb.Raw)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close()
		sess, err := st.Session("eval", "")
		if err != nil {
			return err
		}
		if _, err := sess.Log("", ctx, text, res, nil); err != nil {
			return err
		}
		e.logger.Info("evaluation recorded", "run_id", sess.RunID())
	}

	out := cmd.OutOrStdout()
	if evalFlags.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	fmt.Fprintln(out, res.Explain())
	return nil
}

// evalContext merges --context JSON with the individual flags.
func evalContext(cmd *cobra.Command) (persona.RawContext, error) {
	var raw persona.RawContext
	if evalFlags.contextJSON != "" {
		if err := json.Unmarshal([]byte(evalFlags.contextJSON), &raw); err != nil {
			return raw, fmt.Errorf("parse --context: %w", err)
		}
	}
	if evalFlags.timeBlock != "" {
		raw.TimeBlock = evalFlags.timeBlock
	}
	if evalFlags.need != "" {
		raw.TopNeed = evalFlags.need
	}
	if evalFlags.trust != "" {
		raw.TrustTier = evalFlags.trust
	}
	if evalFlags.last != "" {
		raw.LastInteraction = evalFlags.last
	}
	if cmd.Flags().Changed("energy") {
		v := evalFlags.energy
		raw.Energy = &v
	}
	return raw, nil
}

func readAllStdin(cmd *cobra.Command) (string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok {
		if fi, err := f.Stat(); err == nil && fi.Mode()&os.ModeCharDevice != 0 {
			return "", fmt.Errorf("no text given: pass it as arguments or pipe it on stdin")
		}
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}
