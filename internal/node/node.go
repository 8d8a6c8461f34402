// Package node defines the vertex of the model graph.
package node

import (
	"github.com/specialistvlad/modelgrid/internal/nodeid"
	"github.com/specialistvlad/modelgrid/internal/typedesc"
)

// Node is a single vertex of the model graph. A node knows its parent only
// by address; the graph owns every node and resolves relations on demand.
type Node struct {
	// id is the structured path of the node, e.g. `build.components.0`.
	id nodeid.Address
	// parent is the address of the owning node. The root is its own parent.
	parent nodeid.Address

	// Type is the declared type of the value the node holds. Empty for
	// plain container nodes.
	Type typedesc.TypeRef
	// ElementType is set on collection hosts: every child of the node holds
	// a value of this type (or a subtype of it).
	ElementType typedesc.TypeRef
	// CreatedBy is the descriptor of the rule that created the node, or
	// empty for nodes declared in model files.
	CreatedBy string
}

// New creates a detached node for the given address.
func New(id nodeid.Address, typ typedesc.TypeRef) *Node {
	return &Node{id: id, parent: id.Parent(), Type: typ}
}

// NewCollection creates a detached collection host node.
func NewCollection(id nodeid.Address, elementType typedesc.TypeRef) *Node {
	return &Node{id: id, parent: id.Parent(), ElementType: elementType}
}

// ID returns the canonical string representation of the node's address.
func (n *Node) ID() string {
	return n.id.Key()
}

// Address returns the structured address of the node.
func (n *Node) Address() nodeid.Address {
	return n.id
}

// Parent returns the address of the node's parent.
func (n *Node) Parent() nodeid.Address {
	return n.parent
}

// IsCollection reports whether the node hosts a typed child collection.
func (n *Node) IsCollection() bool {
	return n.ElementType != ""
}
