package inmemorystore

import (
	"context"
	"maps"
	"sync"

	"github.com/specialistvlad/modelgrid/internal/nodeid"
	"github.com/specialistvlad/modelgrid/internal/nodestore"
	"github.com/zclconf/go-cty/cty"
)

// Store is an in-memory implementation of nodestore.Store.
//
// The outer sync.Map is keyed by node ID so that workers writing different
// subtrees never contend; each node's properties sit behind their own mutex.
type Store struct {
	nodes sync.Map // Key: node ID string, Value: *values
}

type values struct {
	mu    sync.RWMutex
	props map[string]cty.Value
}

// New creates a new, empty in-memory value store.
func New() nodestore.Store {
	return &Store{}
}

// SetProperty records the value of one property of a node.
func (s *Store) SetProperty(ctx context.Context, id nodeid.Address, name string, value cty.Value) error {
	v, _ := s.nodes.LoadOrStore(id.Key(), &values{props: make(map[string]cty.Value)})
	vals := v.(*values)
	vals.mu.Lock()
	defer vals.mu.Unlock()
	vals.props[name] = value
	return nil
}

// GetProperty retrieves the value of one property of a node.
func (s *Store) GetProperty(ctx context.Context, id nodeid.Address, name string) (cty.Value, bool, error) {
	v, ok := s.nodes.Load(id.Key())
	if !ok {
		return cty.NilVal, false, nil
	}
	vals := v.(*values)
	vals.mu.RLock()
	defer vals.mu.RUnlock()
	val, ok := vals.props[name]
	return val, ok, nil
}

// Properties returns a copy of every property set on a node.
func (s *Store) Properties(ctx context.Context, id nodeid.Address) (map[string]cty.Value, error) {
	v, ok := s.nodes.Load(id.Key())
	if !ok {
		return map[string]cty.Value{}, nil
	}
	vals := v.(*values)
	vals.mu.RLock()
	defer vals.mu.RUnlock()
	return maps.Clone(vals.props), nil
}

// DeleteNode drops every value recorded for a node.
func (s *Store) DeleteNode(ctx context.Context, id nodeid.Address) error {
	s.nodes.Delete(id.Key())
	return nil
}
