package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/danielpatrickdp/persona-score/internal/lexicon"
	"github.com/danielpatrickdp/persona-score/internal/rules"
	"github.com/danielpatrickdp/persona-score/internal/scoring"
)

// #region config
// Config is the on-disk rubric. Fields left out of the file keep their defaults.
type Config struct {
	Baseline int           `yaml:"baseline"`
	Weights  rules.Weights `yaml:"weights"`
	// Phrases are added to the built-in sets, not substituted for them.
	Phrases lexicon.Sets  `yaml:"phrases"`
	Logging LoggingConfig `yaml:"logging"`
	Server  ServerConfig  `yaml:"server"`
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// ServerConfig holds listen addresses for the serve command. Empty disables a listener.
type ServerConfig struct {
	GRPCAddr string `yaml:"grpc_addr"`
	HTTPAddr string `yaml:"http_addr"`
}

// Default returns the built-in rubric.
func Default() *Config {
	sc := scoring.DefaultConfig()
	return &Config{
		Baseline: sc.Baseline,
		Weights:  sc.Weights,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			GRPCAddr: "localhost:50061",
			HTTPAddr: "localhost:8080",
		},
	}
}
// #endregion config

// #region load
// Load reads a YAML rubric from path on top of Default and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of Default and validates it.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
// #endregion load

// #region validate
// Validate checks ranges the scorer relies on.
func (c *Config) Validate() error {
	if c.Baseline < scoring.MinScore || c.Baseline > scoring.MaxScore {
		return fmt.Errorf("baseline %d outside [%d, %d]", c.Baseline, scoring.MinScore, scoring.MaxScore)
	}
	if err := c.Weights.Validate(); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging format %q must be text or json", c.Logging.Format)
	}
	return nil
}
// #endregion validate

// #region to-scoring
// Scoring converts the rubric into a scoring.Config with merged phrase sets.
func (c *Config) Scoring() scoring.Config {
	return scoring.Config{
		Baseline: c.Baseline,
		Weights:  c.Weights,
		Phrases:  lexicon.Merge(lexicon.Default(), c.Phrases),
	}
}
// #endregion to-scoring
