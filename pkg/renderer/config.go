package renderer

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by render configuration failures
var ErrInvalidConfig = errors.New("invalid render config")

// RenderConfig contains configuration for a render
type RenderConfig struct {
	MaxDepth   int // Maximum recursion depth for reflection and refraction rays
	AASamples  int // Sub-pixel grid size per axis; 1 disables anti-aliasing
	NumWorkers int // Number of parallel row workers (0 = use CPU count)
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		MaxDepth:   5,
		AASamples:  2, // 2x2 grid
		NumWorkers: 0, // Auto-detect CPU count
	}
}

// MergeRenderConfig returns base with every non-zero field of override applied
func MergeRenderConfig(base, override RenderConfig) RenderConfig {
	result := base
	if override.MaxDepth != 0 {
		result.MaxDepth = override.MaxDepth
	}
	if override.AASamples != 0 {
		result.AASamples = override.AASamples
	}
	if override.NumWorkers != 0 {
		result.NumWorkers = override.NumWorkers
	}
	return result
}

// Validate checks every field against its allowed range
func (c RenderConfig) Validate() error {
	if c.MaxDepth < 1 {
		return fmt.Errorf("%w: max depth %d must be at least 1", ErrInvalidConfig, c.MaxDepth)
	}
	if c.AASamples < 1 {
		return fmt.Errorf("%w: aa samples %d must be at least 1", ErrInvalidConfig, c.AASamples)
	}
	if c.NumWorkers < 0 {
		return fmt.Errorf("%w: worker count %d must not be negative", ErrInvalidConfig, c.NumWorkers)
	}
	return nil
}
