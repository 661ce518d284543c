package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/danielpatrickdp/persona-score/internal/config"
	"github.com/danielpatrickdp/persona-score/internal/scoring"
	"github.com/danielpatrickdp/persona-score/internal/store"
)

// errChecksFailed makes the process exit 1 without printing usage.
var errChecksFailed = errors.New("checks failed")

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "personascore",
	Short: "Score candidate cat-persona dialogue lines against game context",
	Long: `personascore rates how well a generated line fits the cat persona given the
current time block, top need, trust tier, energy and last interaction.

The rubric (baseline, rule weights, phrase sets) is read from --config YAML.
Flags may also be set through PERSONASCORE_* environment variables.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// #region main

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errChecksFailed) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initViper)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "rubric YAML file (default: built-in rubric)")
	pf.String("db", "", "sqlite evaluation log path (empty disables history)")
	pf.String("log-level", "", "debug | info | warn | error")
	pf.String("log-format", "", "text | json")
	for _, name := range []string{"db", "log-level", "log-format"} {
		cobra.CheckErr(viper.BindPFlag(name, pf.Lookup(name)))
	}
}

func initViper() {
	viper.SetEnvPrefix("personascore")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	if cfgFile == "" {
		cfgFile = viper.GetString("config")
	}
}

// #endregion main

// #region setup

// loadConfig reads the rubric and applies flag/env overrides.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if cfgFile != "" {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return nil, err
		}
	}
	if v := viper.GetString("log-level"); v != "" {
		cfg.Logging.Level = v
	}
	if v := viper.GetString("log-format"); v != "" {
		cfg.Logging.Format = v
	}
	if viper.IsSet("grpc-addr") {
		cfg.Server.GRPCAddr = viper.GetString("grpc-addr")
	}
	if viper.IsSet("http-addr") {
		cfg.Server.HTTPAddr = viper.GetString("http-addr")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(lc config.LoggingConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(lc.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if lc.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// env bundles what every subcommand needs.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	scorer *scoring.Scorer
}

func setup() (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg.Logging)
	slog.SetDefault(logger)

	scorer, err := scoring.New(cfg.Scoring())
	if err != nil {
		return nil, fmt.Errorf("build scorer: %w", err)
	}
	logger.Debug("scorer ready", "baseline", cfg.Baseline, "rules", scorer.RuleNames())
	return &env{cfg: cfg, logger: logger, scorer: scorer}, nil
}

// openStore opens the evaluation log if --db is set. It returns nil, nil otherwise.
func openStore() (*store.Store, error) {
	path := viper.GetString("db")
	if path == "" {
		return nil, nil
	}
	st, err := store.NewStore(path)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	return st, nil
}

// requireStore is openStore for commands that cannot run without history.
func requireStore() (*store.Store, error) {
	st, err := openStore()
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, errors.New("--db (or PERSONASCORE_DB) is required")
	}
	return st, nil
}

// #endregion setup
