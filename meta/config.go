// Package meta implements the engine orchestrator that selects how a
// compiled pattern is executed.
//
// The meta-engine coordinates two components:
//   - Prefilter: literal-based rejection of texts that cannot match (optional)
//   - NFA (PikeVM): parallel simulation that decides the match
//
// Strategy selection is based on:
//   - Literal quality (an exact literal set answers queries on its own)
//   - Prefilter availability (any usable literal set enables rejection)
//   - Capture groups (patterns with groups always reach the PikeVM)
package meta

import "github.com/coregx/pyrex/nfa"

// Config controls meta-engine behavior.
//
// Example:
//
//	config := meta.DefaultConfig()
//	config.EnablePrefilter = false // Force NFA-only execution
//	engine, err := meta.CompileWithConfig(`(a|b)*c`, config)
type Config struct {
	// EnablePrefilter enables literal-based prefiltering.
	// When false, every query runs the PikeVM.
	// Default: true
	EnablePrefilter bool

	// MaxStates is the automaton state ceiling, excluding the start state.
	// Default: 100000
	MaxStates int

	// MaxLiterals limits the number of literals extracted for prefiltering.
	// Default: 64
	MaxLiterals int

	// MaxRecursionDepth limits pattern tree depth during NFA compilation.
	// Default: 1000
	MaxRecursionDepth int
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		EnablePrefilter:   true,
		MaxStates:         nfa.DefaultMaxStates,
		MaxLiterals:       64,
		MaxRecursionDepth: 1000,
	}
}

// Validate checks if the configuration is valid.
//
// Valid ranges:
//   - MaxStates: 1 to 10,000,000
//   - MaxLiterals: 1 to 1,000 (checked only when prefiltering is enabled)
//   - MaxRecursionDepth: 10 to 100,000
func (c Config) Validate() error {
	if c.MaxStates < 1 || c.MaxStates > 10_000_000 {
		return &ConfigError{
			Field:   "MaxStates",
			Message: "must be between 1 and 10,000,000",
		}
	}

	if c.EnablePrefilter {
		if c.MaxLiterals < 1 || c.MaxLiterals > 1_000 {
			return &ConfigError{
				Field:   "MaxLiterals",
				Message: "must be between 1 and 1,000",
			}
		}
	}

	if c.MaxRecursionDepth < 10 || c.MaxRecursionDepth > 100_000 {
		return &ConfigError{
			Field:   "MaxRecursionDepth",
			Message: "must be between 10 and 100,000",
		}
	}

	return nil
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "pyrex: invalid config: " + e.Field + ": " + e.Message
}
