// Package graph provides a unified facade over the model graph, combining
// structure (which nodes exist and how they nest) with the property values
// each node carries.
//
// # Architecture
//
// The Graph is a thin facade over two specialized stores:
//
//	┌─────────────────────────────────────┐
//	│           Graph Facade              │
//	│  (views, initializers, executor)    │
//	└──────────┬────────────┬─────────────┘
//	           │            │
//	           ▼            ▼
//	  ┌────────────┐  ┌────────────┐
//	  │  Topology  │  │   Value    │
//	  │   Store    │  │   Store    │
//	  │ (Structure)│  │(Properties)│
//	  └────────────┘  └────────────┘
//
// **Topology Store** (topologystore.Store) owns every node, keyed by
// address. A parent's children are an ordered list of keys; a child knows
// its parent by key. Nothing outside the store holds a node for longer than
// one call.
//
// **Value Store** (nodestore.Store) holds the cty.Value of each property,
// keyed by node address.
//
// # Usage
//
// Views never keep a *node.Node. They keep the address and resolve it here
// on every access:
//
//	n, ok := g.Node(ctx, addr)
//	if !ok {
//	    // the node was removed; the view reports NotFoundError
//	}
//	val, err := g.Property(ctx, addr, "name")
//
// Removing a node removes its subtree from both stores, so a stale address
// can never reach freed state.
//
// # Thread-Safety
//
// All Graph methods are safe for concurrent use. Serializing mutations of
// one subtree is the executor's job.
package graph
