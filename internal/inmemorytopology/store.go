package inmemorytopology

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/specialistvlad/modelgrid/internal/modelerr"
	"github.com/specialistvlad/modelgrid/internal/node"
	"github.com/specialistvlad/modelgrid/internal/nodeid"
	"github.com/specialistvlad/modelgrid/internal/topologystore"
)

// rootKey is the key children of the implicit graph root are listed under.
const rootKey = ""

// Store implements the topologystore.Store interface using maps and a mutex
// for thread-safe concurrent access.
type Store struct {
	mu       sync.RWMutex
	nodes    map[string]*node.Node
	children map[string][]string // Key: parent ID, Value: child IDs in creation order
}

// New creates a new, empty in-memory topology store.
func New() topologystore.Store {
	return &Store{
		nodes:    make(map[string]*node.Node),
		children: make(map[string][]string),
	}
}

// AddNode adds a new node below its parent.
func (s *Store) AddNode(ctx context.Context, n *node.Node) error {
	addr := n.Address()
	if addr.IsRoot() {
		return fmt.Errorf("cannot add a node at the graph root address")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := addr.Key()
	if _, exists := s.nodes[key]; exists {
		return fmt.Errorf("node '%s' already exists in topology", key)
	}
	parentKey := n.Parent().Key()
	if parentKey != rootKey {
		if _, exists := s.nodes[parentKey]; !exists {
			return &modelerr.NotFoundError{Kind: "parent node", Name: parentKey, Scope: "topology"}
		}
	}

	s.nodes[key] = n
	s.children[parentKey] = append(s.children[parentKey], key)
	return nil
}

// GetNode retrieves a single node by its address.
func (s *Store) GetNode(ctx context.Context, id nodeid.Address) (*node.Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.nodes[id.Key()]
	return n, ok
}

// ChildrenOf returns the direct children of a node in creation order.
func (s *Store) ChildrenOf(ctx context.Context, id nodeid.Address) ([]*node.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := id.Key()
	if key != rootKey {
		if _, exists := s.nodes[key]; !exists {
			return nil, &modelerr.NotFoundError{Kind: "node", Name: key, Scope: "topology"}
		}
	}

	keys := s.children[key]
	out := make([]*node.Node, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.nodes[k])
	}
	return out, nil
}

// RemoveNode removes a node and all of its descendants.
func (s *Store) RemoveNode(ctx context.Context, id nodeid.Address) ([]nodeid.Address, error) {
	if id.IsRoot() {
		return nil, fmt.Errorf("cannot remove the graph root")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := id.Key()
	n, exists := s.nodes[key]
	if !exists {
		return nil, &modelerr.NotFoundError{Kind: "node", Name: key, Scope: "topology"}
	}

	var removed []nodeid.Address
	var remove func(k string)
	remove = func(k string) {
		for _, child := range s.children[k] {
			remove(child)
		}
		removed = append(removed, s.nodes[k].Address())
		delete(s.children, k)
		delete(s.nodes, k)
	}
	remove(key)

	parentKey := n.Parent().Key()
	s.children[parentKey] = slices.DeleteFunc(s.children[parentKey], func(k string) bool { return k == key })
	return removed, nil
}

// AllNodes returns a snapshot of all nodes sorted by address.
func (s *Store) AllNodes(ctx context.Context) []*node.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()

	nodes := make([]*node.Node, 0, len(s.nodes))
	for _, n := range s.nodes {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID() < nodes[j].ID() })
	return nodes
}
