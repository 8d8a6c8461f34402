// Package nodestore defines the interface for storing the mutable property
// values of model nodes.
//
// Values are cty.Value so that a node's data keeps its declared type
// regardless of how it was written. Structure (which nodes exist) belongs to
// topologystore; a value store never checks membership.
package nodestore

import (
	"context"

	"github.com/specialistvlad/modelgrid/internal/nodeid"
	"github.com/zclconf/go-cty/cty"
)

// Store is the interface for managing property values per node.
//
// Implementations MUST be safe for concurrent writes to different nodes.
type Store interface {
	// SetProperty records the value of one property of a node.
	SetProperty(ctx context.Context, id nodeid.Address, name string, value cty.Value) error

	// GetProperty returns the value of one property, and false if it was
	// never set.
	GetProperty(ctx context.Context, id nodeid.Address, name string) (cty.Value, bool, error)

	// Properties returns a copy of every property set on a node.
	Properties(ctx context.Context, id nodeid.Address) (map[string]cty.Value, error)

	// DeleteNode drops every value recorded for a node.
	DeleteNode(ctx context.Context, id nodeid.Address) error
}
