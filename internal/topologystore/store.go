// Package topologystore defines the interface for storing and retrieving the
// structure of the model graph.
//
// The topology store holds which nodes exist and how they nest; the values
// those nodes carry live in nodestore. Keeping the two apart lets structural
// queries (views enumerating children, the executor resolving rule targets)
// run under a read lock while property writes go to a separate store.
//
// Relations are stored as address keys. A parent owns the ordered list of
// its children's keys and a child records its parent's key, so no node
// holds a pointer to another.
package topologystore

import (
	"context"

	"github.com/specialistvlad/modelgrid/internal/node"
	"github.com/specialistvlad/modelgrid/internal/nodeid"
)

// Store is the interface for managing the structure of the model graph.
//
// Implementations MUST be safe for concurrent use: independent subtrees are
// populated by different workers at the same time.
type Store interface {
	// AddNode registers a node under its parent. The parent must already
	// exist unless the node sits directly below the root. Adding a node
	// whose address is taken is an error.
	AddNode(ctx context.Context, n *node.Node) error

	// GetNode retrieves a single node by its address.
	GetNode(ctx context.Context, id nodeid.Address) (*node.Node, bool)

	// ChildrenOf returns the children of a node in creation order. The root
	// address lists top-level nodes. An unknown node is an error.
	ChildrenOf(ctx context.Context, id nodeid.Address) ([]*node.Node, error)

	// RemoveNode removes a node and its whole subtree, returning the
	// addresses that were removed, deepest first.
	RemoveNode(ctx context.Context, id nodeid.Address) ([]nodeid.Address, error)

	// AllNodes returns every node sorted by address.
	AllNodes(ctx context.Context) []*node.Node
}
