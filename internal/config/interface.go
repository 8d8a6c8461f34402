package config

import (
	"context"

	"github.com/zclconf/go-cty/cty"
)

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads configuration from the given paths (files or directories),
	// translates it into the format-agnostic model, and returns a matching
	// Converter.
	Load(ctx context.Context, paths ...string) (*Model, Converter, error)
}

// Converter bridges engine values and plain Go values for the outer
// surfaces (reports, tests) that must not depend on cty.
type Converter interface {
	// ToNative converts a cty.Value into plain Go data: maps, slices,
	// strings, json numbers and booleans. Null converts to nil.
	ToNative(v cty.Value) (any, error)
}
