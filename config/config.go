// Package config loads the YAML-backed configuration for a LeaderState
// driver process, in the same load-then-validate shape used by
// Konstantsiy-casual-raft/raft-server/config.go: a typed struct tree,
// gopkg.in/yaml.v3 unmarshaling, and a Validate() pass before use.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// VoterConfig is one statically-configured voter endpoint.
type VoterConfig struct {
	ID   int32  `yaml:"id"`
	Host string `yaml:"host"`
	Port uint16 `yaml:"port"`
}

// Config is the top-level configuration for a LeaderState driver.
type Config struct {
	NodeID int32 `yaml:"node_id"`

	FetchTimeoutMs int64 `yaml:"fetch_timeout_ms"`

	// ObserverSessionTimeoutMs is parsed from the file but is not validated
	// and not read by the driver: observer eviction always uses
	// common.ObserverSessionTimeout, whatever value is set here.
	ObserverSessionTimeoutMs int64 `yaml:"observer_session_timeout_ms"`

	Voters []VoterConfig `yaml:"voters"`
}

// Load reads and validates a Config from a YAML file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration is internally consistent:
// the node has an id, a fetch timeout is set, and the local node appears
// among the configured voters.
func (c *Config) Validate() error {
	if c.FetchTimeoutMs <= 0 {
		return fmt.Errorf("fetch_timeout_ms must be greater than 0")
	}
	if len(c.Voters) == 0 {
		return fmt.Errorf("voters must contain at least one entry")
	}

	found := false
	seen := make(map[int32]bool, len(c.Voters))
	for _, v := range c.Voters {
		if seen[v.ID] {
			return fmt.Errorf("duplicate voter id: %d", v.ID)
		}
		seen[v.ID] = true
		if v.ID == c.NodeID {
			found = true
		}
	}
	if !found {
		return fmt.Errorf("node_id=%d not found among configured voters", c.NodeID)
	}

	return nil
}
