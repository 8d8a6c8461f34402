package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/modelgrid/internal/config"
	"github.com/specialistvlad/modelgrid/internal/ctxlog"
	"github.com/specialistvlad/modelgrid/internal/executor"
	"github.com/specialistvlad/modelgrid/internal/node"
	"github.com/specialistvlad/modelgrid/internal/nodeid"
	"github.com/specialistvlad/modelgrid/internal/typedesc"
	"github.com/specialistvlad/modelgrid/internal/view"
)

// seedCollections adds a host node for every declared collection. Missing
// intermediate segments become plain container nodes.
func (a *App) seedCollections(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	for _, c := range a.model.Collections {
		addr, err := nodeid.Parse(c.Path)
		if err != nil {
			return fmt.Errorf("collection '%s': %w", c.Path, err)
		}
		elementType := typedesc.TypeRef(c.ElementType)
		if _, ok := a.universe.Lookup(c.ElementType); !ok {
			return fmt.Errorf("collection '%s': element type '%s' is not a declared type", c.Path, c.ElementType)
		}
		if err := a.ensureContainers(ctx, addr.Parent()); err != nil {
			return fmt.Errorf("collection '%s': %w", c.Path, err)
		}
		if err := a.graph.AddNode(ctx, node.NewCollection(*addr, elementType)); err != nil {
			return err
		}
		logger.Debug("Collection seeded.", "path", c.Path, "element_type", c.ElementType)
	}
	return nil
}

func (a *App) ensureContainers(ctx context.Context, addr nodeid.Address) error {
	if addr.IsRoot() {
		return nil
	}
	if _, ok := a.graph.Node(ctx, addr); ok {
		return nil
	}
	if err := a.ensureContainers(ctx, addr.Parent()); err != nil {
		return err
	}
	return a.graph.AddNode(ctx, node.New(addr, ""))
}

// buildRules turns rule declarations into executor rules. A rule without an
// explicit element type sees the host's declared one.
func (a *App) buildRules(ctx context.Context) ([]executor.Rule, error) {
	rules := make([]executor.Rule, 0, len(a.model.Rules))
	for _, def := range a.model.Rules {
		target, err := nodeid.Parse(def.Target)
		if err != nil {
			return nil, fmt.Errorf("rule '%s': invalid target: %w", def.Name, err)
		}
		elementType := typedesc.TypeRef(def.ElementType)
		if elementType == "" {
			host, ok := a.graph.Node(ctx, *target)
			if !ok {
				return nil, fmt.Errorf("rule '%s': target '%s' is not a declared collection", def.Name, def.Target)
			}
			elementType = host.ElementType
		}
		if def.ReadOnly && len(def.Appends) > 0 {
			return nil, fmt.Errorf("rule '%s': a read-only rule cannot append elements", def.Name)
		}
		rules = append(rules, executor.Rule{
			Descriptor:  def.Name,
			Target:      *target,
			ElementType: elementType,
			Writable:    !def.ReadOnly,
			Action:      appendAction(def),
		})
	}
	return rules, nil
}

// appendAction returns an action that appends one element per append block
// and assigns its attributes in name order.
func appendAction(def *config.RuleDefinition) executor.Action {
	return func(ctx context.Context, v *view.CollectionView) error {
		logger := ctxlog.FromContext(ctx)
		for i, attrs := range def.Appends {
			elem, err := v.Append(ctx, "")
			if err != nil {
				return fmt.Errorf("append #%d: %w", i, err)
			}
			for _, name := range sortedKeys(attrs) {
				val, diags := attrs[name].Value(nil)
				if diags.HasErrors() {
					return fmt.Errorf("append #%d: evaluating '%s': %w", i, name, diags)
				}
				if err := elem.Set(ctx, name, val); err != nil {
					return fmt.Errorf("append #%d: %w", i, err)
				}
			}
			logger.Debug("Element appended.", "element", elem.String())
		}
		return nil
	}
}

func sortedKeys(m map[string]hcl.Expression) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
