package graph

import (
	"context"
	"fmt"

	"github.com/specialistvlad/modelgrid/internal/ctxlog"
	"github.com/specialistvlad/modelgrid/internal/modelerr"
	"github.com/specialistvlad/modelgrid/internal/node"
	"github.com/specialistvlad/modelgrid/internal/nodeid"
	"github.com/specialistvlad/modelgrid/internal/nodestore"
	"github.com/specialistvlad/modelgrid/internal/topologystore"
	"github.com/specialistvlad/modelgrid/internal/typedesc"
	"github.com/zclconf/go-cty/cty"
)

// Manager provides a high-level, thread-safe interface to the model graph
// by composing the topology and value stores.
type Manager struct {
	topology topologystore.Store
	values   nodestore.Store
}

// New creates a new graph manager.
func New(ts topologystore.Store, ns nodestore.Store) *Manager {
	return &Manager{topology: ts, values: ns}
}

func (m *Manager) Node(ctx context.Context, id nodeid.Address) (*node.Node, bool) {
	return m.topology.GetNode(ctx, id)
}

func (m *Manager) Children(ctx context.Context, id nodeid.Address) ([]*node.Node, error) {
	return m.topology.ChildrenOf(ctx, id)
}

func (m *Manager) AllNodes(ctx context.Context) []*node.Node {
	return m.topology.AllNodes(ctx)
}

func (m *Manager) AddNode(ctx context.Context, n *node.Node) error {
	if err := m.topology.AddNode(ctx, n); err != nil {
		return fmt.Errorf("adding node '%s': %w", n.ID(), err)
	}
	ctxlog.FromContext(ctx).Debug("Node added.", "node", n.ID(), "type", n.Type, "element_type", n.ElementType)
	return nil
}

func (m *Manager) CreateChild(ctx context.Context, host nodeid.Address, name string, typ typedesc.TypeRef, createdBy string) (*node.Node, error) {
	n := node.New(host.Child(name), typ)
	n.CreatedBy = createdBy
	if err := m.AddNode(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (m *Manager) RemoveNode(ctx context.Context, id nodeid.Address) error {
	removed, err := m.topology.RemoveNode(ctx, id)
	if err != nil {
		return fmt.Errorf("removing node '%s': %w", id.Key(), err)
	}
	for _, addr := range removed {
		if err := m.values.DeleteNode(ctx, addr); err != nil {
			return fmt.Errorf("dropping values of '%s': %w", addr.Key(), err)
		}
	}
	ctxlog.FromContext(ctx).Debug("Node removed.", "node", id.Key(), "subtree_size", len(removed))
	return nil
}

func (m *Manager) Property(ctx context.Context, id nodeid.Address, name string) (cty.Value, error) {
	if _, ok := m.topology.GetNode(ctx, id); !ok {
		return cty.NilVal, &modelerr.NotFoundError{Kind: "node", Name: id.Key()}
	}
	val, ok, err := m.values.GetProperty(ctx, id, name)
	if err != nil {
		return cty.NilVal, fmt.Errorf("reading '%s' of '%s': %w", name, id.Key(), err)
	}
	if !ok {
		return cty.NullVal(cty.DynamicPseudoType), nil
	}
	return val, nil
}

func (m *Manager) SetProperty(ctx context.Context, id nodeid.Address, name string, value cty.Value) error {
	if _, ok := m.topology.GetNode(ctx, id); !ok {
		return &modelerr.NotFoundError{Kind: "node", Name: id.Key()}
	}
	if err := m.values.SetProperty(ctx, id, name, value); err != nil {
		return fmt.Errorf("writing '%s' of '%s': %w", name, id.Key(), err)
	}
	return nil
}

func (m *Manager) Properties(ctx context.Context, id nodeid.Address) (map[string]cty.Value, error) {
	if _, ok := m.topology.GetNode(ctx, id); !ok {
		return nil, &modelerr.NotFoundError{Kind: "node", Name: id.Key()}
	}
	return m.values.Properties(ctx, id)
}
