package view

import (
	"context"
	"fmt"
	"strconv"

	"github.com/specialistvlad/modelgrid/internal/ctxlog"
	"github.com/specialistvlad/modelgrid/internal/graph"
	"github.com/specialistvlad/modelgrid/internal/initializer"
	"github.com/specialistvlad/modelgrid/internal/modelerr"
	"github.com/specialistvlad/modelgrid/internal/nodeid"
	"github.com/specialistvlad/modelgrid/internal/schema"
	"github.com/specialistvlad/modelgrid/internal/typedesc"
)

// Initializers resolves the creation strategy for an element type.
type Initializers interface {
	InitializerFor(ctx context.Context, elementType typedesc.TypeRef) (initializer.ChildNodeCreationStrategy, error)
}

// CollectionView is an append-only, live view of the children of a
// collection host node. It is meant for exclusive use by the rule it was
// given to.
type CollectionView struct {
	graph        graph.Graph
	schemas      *schema.Store
	initializers Initializers

	host        nodeid.Address
	elementType typedesc.TypeRef
	rule        string
	state       *State
}

// Options bundles the collaborators a CollectionView resolves against.
type Options struct {
	Graph        graph.Graph
	Schemas      *schema.Store
	Initializers Initializers
}

// NewCollectionView creates a view of the children of host typed as
// elementType. Compatibility of host and elementType is the caller's
// concern.
func NewCollectionView(opts Options, host nodeid.Address, elementType typedesc.TypeRef, rule string, writable bool) *CollectionView {
	v := &CollectionView{
		graph:        opts.Graph,
		schemas:      opts.Schemas,
		initializers: opts.Initializers,
		host:         host,
		elementType:  elementType,
		rule:         rule,
	}
	v.state = NewState(v.String(), rule, writable)
	return v
}

func (v *CollectionView) String() string {
	return fmt.Sprintf("Collection<%s> '%s'", v.elementType, v.host.Key())
}

// Host returns the address of the collection host node.
func (v *CollectionView) Host() nodeid.Address {
	return v.host
}

// ElementType returns the type elements are presented as.
func (v *CollectionView) ElementType() typedesc.TypeRef {
	return v.elementType
}

// State returns the view's mutability state.
func (v *CollectionView) State() *State {
	return v.state
}

// Append creates a new element at the end of the collection and returns a
// proxy bound to it. An empty elementType means the element type the host
// node declares; otherwise it must be that type or a subtype of it.
func (v *CollectionView) Append(ctx context.Context, elementType typedesc.TypeRef) (*Element, error) {
	if err := v.state.AssertWritable(); err != nil {
		return nil, err
	}
	host, ok := v.graph.Node(ctx, v.host)
	if !ok {
		return nil, &modelerr.NotFoundError{Kind: "collection host", Name: v.host.Key()}
	}
	if elementType == "" {
		elementType = host.ElementType
	}
	if !v.schemas.Universe().IsAssignable(elementType, host.ElementType) {
		return nil, &modelerr.TypeMismatchError{Node: v.host.Key(), Declared: string(host.ElementType), Requested: string(elementType)}
	}

	children, err := v.graph.Children(ctx, v.host)
	if err != nil {
		return nil, err
	}
	ordinal := len(children)
	for {
		if _, taken := v.graph.Node(ctx, v.host.Child(strconv.Itoa(ordinal))); !taken {
			break
		}
		ordinal++
	}

	strategy, err := v.initializers.InitializerFor(ctx, elementType)
	if err != nil {
		return nil, err
	}
	child, err := strategy.CreateChild(ctx, v.graph, v.host, ordinal, v.rule)
	if err != nil {
		return nil, fmt.Errorf("appending to %s: %w", v, err)
	}

	ctxlog.FromContext(ctx).Debug("Element appended.", "view", v.String(), "node", child.ID(), "type", elementType)
	return &Element{view: v, addr: child.Address()}, nil
}

// Iterate returns proxies for the current children in creation order. It
// is legal in every state, including after Close.
func (v *CollectionView) Iterate(ctx context.Context) ([]*Element, error) {
	children, err := v.graph.Children(ctx, v.host)
	if err != nil {
		return nil, err
	}
	out := make([]*Element, len(children))
	for i, c := range children {
		out[i] = &Element{view: v, addr: c.Address()}
	}
	return out, nil
}

// Len returns the current number of elements.
func (v *CollectionView) Len(ctx context.Context) (int, error) {
	children, err := v.graph.Children(ctx, v.host)
	if err != nil {
		return 0, err
	}
	return len(children), nil
}

// Close makes the view read-only. It is idempotent.
func (v *CollectionView) Close() {
	v.state.Close()
}
