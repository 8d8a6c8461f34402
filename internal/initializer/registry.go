package initializer

import (
	"context"
	"fmt"
	"sync"

	"github.com/specialistvlad/modelgrid/internal/ctxlog"
	"github.com/specialistvlad/modelgrid/internal/modelerr"
	"github.com/specialistvlad/modelgrid/internal/schema"
	"github.com/specialistvlad/modelgrid/internal/typedesc"
	"github.com/zclconf/go-cty/cty"
)

// Registry resolves the ChildNodeCreationStrategy for an element type.
type Registry struct {
	schemas *schema.Store

	mu      sync.RWMutex
	custom  map[typedesc.TypeRef]ChildNodeCreationStrategy
	managed map[typedesc.TypeRef]*Managed
}

// NewRegistry creates a registry that builds managed strategies from the
// schemas in store.
func NewRegistry(store *schema.Store) *Registry {
	return &Registry{
		schemas: store,
		custom:  make(map[typedesc.TypeRef]ChildNodeCreationStrategy),
		managed: make(map[typedesc.TypeRef]*Managed),
	}
}

// Register installs a custom strategy for elementType. Registering the same
// type twice is a programming error and panics.
func (r *Registry) Register(elementType typedesc.TypeRef, s ChildNodeCreationStrategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.custom[elementType]; exists {
		panic(fmt.Sprintf("initializer for element type '%s' already registered", elementType))
	}
	r.custom[elementType] = s
}

// InitializerFor returns the registered strategy for elementType, or the
// managed strategy derived from its schema. An undeclared type is a
// *modelerr.NotFoundError.
func (r *Registry) InitializerFor(ctx context.Context, elementType typedesc.TypeRef) (ChildNodeCreationStrategy, error) {
	r.mu.RLock()
	if s, ok := r.custom[elementType]; ok {
		r.mu.RUnlock()
		return s, nil
	}
	if m, ok := r.managed[elementType]; ok {
		r.mu.RUnlock()
		return m, nil
	}
	r.mu.RUnlock()

	ps, err := r.schemas.SchemaFor(ctx, string(elementType))
	if err != nil {
		return nil, fmt.Errorf("no initializer for element type '%s': %w", elementType, err)
	}
	defaults, err := r.defaults(elementType)
	if err != nil {
		return nil, err
	}

	m := &Managed{ElementType: elementType, Schema: ps, Defaults: defaults}
	r.mu.Lock()
	if existing, ok := r.managed[elementType]; ok {
		m = existing
	} else {
		r.managed[elementType] = m
	}
	r.mu.Unlock()

	ctxlog.FromContext(ctx).Debug("Managed initializer created.", "element_type", elementType)
	return m, nil
}

// defaults merges property defaults along the ancestry; the most derived
// declaration wins.
func (r *Registry) defaults(elementType typedesc.TypeRef) (map[string]cty.Value, error) {
	ancestry, err := r.schemas.Universe().Ancestry(string(elementType))
	if err != nil {
		return nil, &modelerr.NotFoundError{Kind: "element type", Name: string(elementType)}
	}
	out := make(map[string]cty.Value)
	for i := len(ancestry) - 1; i >= 0; i-- {
		for name, val := range ancestry[i].Defaults {
			out[name] = val
		}
	}
	return out, nil
}
