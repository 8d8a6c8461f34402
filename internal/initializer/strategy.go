package initializer

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/specialistvlad/modelgrid/internal/ctxlog"
	"github.com/specialistvlad/modelgrid/internal/graph"
	"github.com/specialistvlad/modelgrid/internal/node"
	"github.com/specialistvlad/modelgrid/internal/nodeid"
	"github.com/specialistvlad/modelgrid/internal/schema"
	"github.com/specialistvlad/modelgrid/internal/typedesc"
	"github.com/zclconf/go-cty/cty"
)

// ChildNodeCreationStrategy creates the node backing a new collection
// element. ordinal is the element's position in the host's child list and
// rule is the descriptor of the rule that asked for it.
type ChildNodeCreationStrategy interface {
	CreateChild(ctx context.Context, g graph.Graph, host nodeid.Address, ordinal int, rule string) (*node.Node, error)
}

// StrategyFunc adapts a plain function to ChildNodeCreationStrategy.
type StrategyFunc func(ctx context.Context, g graph.Graph, host nodeid.Address, ordinal int, rule string) (*node.Node, error)

func (f StrategyFunc) CreateChild(ctx context.Context, g graph.Graph, host nodeid.Address, ordinal int, rule string) (*node.Node, error) {
	return f(ctx, g, host, ordinal, rule)
}

// Managed names each child after its ordinal and seeds every property of
// the element type's schema.
type Managed struct {
	ElementType typedesc.TypeRef
	Schema      *schema.PropertySchema
	// Defaults holds the initial value per property name. Properties
	// without a default start as a null of their value type.
	Defaults map[string]cty.Value
}

func (m *Managed) CreateChild(ctx context.Context, g graph.Graph, host nodeid.Address, ordinal int, rule string) (*node.Node, error) {
	child, err := g.CreateChild(ctx, host, strconv.Itoa(ordinal), m.ElementType, rule)
	if err != nil {
		return nil, err
	}

	if err := m.seed(ctx, g, child); err != nil {
		if rmErr := g.RemoveNode(ctx, child.Address()); rmErr != nil {
			return nil, errors.Join(err, fmt.Errorf("removing partially initialized '%s': %w", child.ID(), rmErr))
		}
		return nil, err
	}

	ctxlog.FromContext(ctx).Debug("Element node initialized.", "node", child.ID(), "type", m.ElementType, "properties", len(m.Defaults))
	return child, nil
}

func (m *Managed) seed(ctx context.Context, g graph.Graph, child *node.Node) error {
	for _, name := range m.Schema.PropertyNames() {
		val, ok := m.Defaults[name]
		if !ok {
			pd, err := m.Schema.Property(name)
			if err != nil {
				return err
			}
			ty, _ := pd.ValueType().CtyType()
			val = cty.NullVal(ty)
		}
		if err := g.SetProperty(ctx, child.Address(), name, val); err != nil {
			return fmt.Errorf("seeding property '%s' of '%s': %w", name, child.ID(), err)
		}
	}
	return nil
}
