package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"lendsim/internal/logging"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Subgraph SubgraphConfig `yaml:"subgraph"`
	Sim      SimConfig      `yaml:"sim"`
	Server   ServerConfig   `yaml:"server"`
	Logging  logging.Config `yaml:"logging"`
}

type SubgraphConfig struct {
	Endpoint       string `yaml:"endpoint"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type SimConfig struct {
	// Runs is the number of monte-carlo replays per simulation. The policy
	// is deterministic, so every run produces the same ledger.
	Runs int `yaml:"runs"`

	// LimitMarkets truncates the fetched table to the first N rows (0 = all).
	LimitMarkets int `yaml:"limit_markets"`

	// StreamDelayMS paces the websocket ledger replay, one row per tick.
	StreamDelayMS int `yaml:"stream_delay_ms"`
}

type ServerConfig struct {
	Port      string `yaml:"port"`
	StaticDir string `yaml:"static_dir"`
}

// Default returns the configuration used when no file is provided.
func Default() *Config {
	return &Config{
		Subgraph: SubgraphConfig{
			TimeoutSeconds: 30,
		},
		Sim: SimConfig{
			Runs:          1,
			StreamDelayMS: 50,
		},
		Server: ServerConfig{
			Port:      "8080",
			StaticDir: "./web/static",
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load reads a YAML config over the defaults and validates it.
func Load(path string) (*Config, error) {
	c := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Sim.Runs < 1 {
		return fmt.Errorf("sim.runs must be >= 1, got %d", c.Sim.Runs)
	}
	if c.Sim.LimitMarkets < 0 {
		return fmt.Errorf("sim.limit_markets must be >= 0, got %d", c.Sim.LimitMarkets)
	}
	if c.Sim.StreamDelayMS < 0 {
		return fmt.Errorf("sim.stream_delay_ms must be >= 0, got %d", c.Sim.StreamDelayMS)
	}
	if c.Subgraph.TimeoutSeconds <= 0 {
		return fmt.Errorf("subgraph.timeout_seconds must be > 0, got %d", c.Subgraph.TimeoutSeconds)
	}
	if c.Subgraph.Endpoint != "" {
		u, err := url.Parse(c.Subgraph.Endpoint)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("subgraph.endpoint is not a valid URL: %q", c.Subgraph.Endpoint)
		}
	}
	return nil
}

// Timeout returns the subgraph request timeout as a duration.
func (c *SubgraphConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// StreamDelay returns the per-row stream delay as a duration.
func (c *SimConfig) StreamDelay() time.Duration {
	return time.Duration(c.StreamDelayMS) * time.Millisecond
}
