// Package config loads and validates the tsforge engine configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config represents the tsforge configuration.
type Config struct {
	// Resolution tunables.
	MaxDepth  int `json:"maxDepth,omitempty"`  // recursion limit (default 10)
	CacheSize int `json:"cacheSize,omitempty"` // LRU entry bound (default 1024)

	// UtilityPatterns extends the built-in utility transformation names the
	// expander recognizes (e.g. ["DeepPartial", "Mutable"]).
	UtilityPatterns []string `json:"utilityPatterns,omitempty"`

	// Diagnostics settings.
	Strict bool `json:"strict,omitempty"` // promote warnings to errors
	Quiet  bool `json:"quiet,omitempty"`  // suppress warnings
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxDepth:  10,
		CacheSize: 1024,
	}
}

// Load reads a config file, applying defaults for absent fields.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.MaxDepth == 0 {
		cfg.MaxDepth = 10
	}
	if cfg.CacheSize == 0 {
		cfg.CacheSize = 1024
	}
	return cfg, nil
}
