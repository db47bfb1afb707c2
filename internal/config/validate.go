package config

import (
	"fmt"
	"strings"
)

// ValidationResult holds config validation results.
type ValidationResult struct {
	Errors   []string
	Warnings []string
}

// ValidateDetailed performs thorough config validation with suggestions.
func (c *Config) ValidateDetailed() *ValidationResult {
	result := &ValidationResult{}

	if c.MaxDepth < 0 {
		result.Errors = append(result.Errors,
			fmt.Sprintf("maxDepth: %d is negative — use 0 to reject all nested resolution or omit for the default", c.MaxDepth))
	}
	if c.MaxDepth > 100 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("maxDepth: %d is unusually deep — pathological types will consume a lot of stack before failing", c.MaxDepth))
	}

	if c.CacheSize < 0 {
		result.Errors = append(result.Errors,
			fmt.Sprintf("cacheSize: %d is negative — the cache must be bounded by a positive entry count", c.CacheSize))
	}

	seen := make(map[string]bool)
	for _, pattern := range c.UtilityPatterns {
		if pattern == "" {
			result.Errors = append(result.Errors, "utilityPatterns: empty pattern name")
			continue
		}
		if strings.ContainsAny(pattern, "<>") {
			result.Errors = append(result.Errors,
				fmt.Sprintf("utilityPatterns: %q must be a bare name, not an application — did you mean %q?",
					pattern, strings.SplitN(pattern, "<", 2)[0]))
			continue
		}
		if seen[pattern] {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("utilityPatterns: %q listed more than once", pattern))
		}
		seen[pattern] = true
	}

	if c.Strict && c.Quiet {
		result.Warnings = append(result.Warnings,
			"strict and quiet are both set — quiet suppresses the warnings strict would promote")
	}

	return result
}

// IsValid returns true if there are no errors.
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}
