package graph

import (
	"context"

	"github.com/specialistvlad/modelgrid/internal/node"
	"github.com/specialistvlad/modelgrid/internal/nodeid"
	"github.com/specialistvlad/modelgrid/internal/typedesc"
	"github.com/zclconf/go-cty/cty"
)

// Graph is a unified interface for interacting with the model graph.
//
// See internal/graph.Manager for the reference implementation that composes
// topologystore.Store and nodestore.Store.
type Graph interface {
	// Node retrieves a node by its address.
	Node(ctx context.Context, id nodeid.Address) (*node.Node, bool)

	// Children returns the children of a node in creation order.
	Children(ctx context.Context, id nodeid.Address) ([]*node.Node, error)

	// AllNodes returns every node sorted by address.
	AllNodes(ctx context.Context) []*node.Node

	// AddNode registers a node built by the caller.
	AddNode(ctx context.Context, n *node.Node) error

	// CreateChild creates and registers a child named name below host.
	CreateChild(ctx context.Context, host nodeid.Address, name string, typ typedesc.TypeRef, createdBy string) (*node.Node, error)

	// RemoveNode removes a node, its subtree, and all their values.
	RemoveNode(ctx context.Context, id nodeid.Address) error

	// Property returns the value of a property. A node that does not exist
	// is a *modelerr.NotFoundError; a property never set is a null value.
	Property(ctx context.Context, id nodeid.Address, name string) (cty.Value, error)

	// SetProperty records the value of a property of an existing node.
	SetProperty(ctx context.Context, id nodeid.Address, name string, value cty.Value) error

	// Properties returns a copy of every property value of a node.
	Properties(ctx context.Context, id nodeid.Address) (map[string]cty.Value, error)
}
