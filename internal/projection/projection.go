package projection

import (
	"context"
	"fmt"

	"github.com/specialistvlad/modelgrid/internal/ctxlog"
	"github.com/specialistvlad/modelgrid/internal/modelerr"
	"github.com/specialistvlad/modelgrid/internal/nodeid"
	"github.com/specialistvlad/modelgrid/internal/typedesc"
	"github.com/specialistvlad/modelgrid/internal/view"
)

// Projection builds CollectionViews presenting elements as one type.
type Projection struct {
	elementType typedesc.TypeRef
	opts        view.Options
}

// ElementType returns the type the projection presents elements as.
func (p *Projection) ElementType() typedesc.TypeRef {
	return p.elementType
}

// Equal reports whether both projections present the same element type.
func (p *Projection) Equal(other *Projection) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.elementType == other.elementType
}

func (p *Projection) String() string {
	return fmt.Sprintf("Projection<%s>", p.elementType)
}

// ViewOf builds a fresh view of the children of host. The host must be a
// collection whose declared element type is the projection's type or a
// subtype of it.
func (p *Projection) ViewOf(ctx context.Context, host nodeid.Address, rule string, writable bool) (*view.CollectionView, error) {
	n, ok := p.opts.Graph.Node(ctx, host)
	if !ok {
		return nil, &modelerr.NotFoundError{Kind: "collection host", Name: host.Key()}
	}
	if !n.IsCollection() {
		return nil, &modelerr.TypeMismatchError{Node: host.Key(), Requested: string(p.elementType)}
	}
	if !p.opts.Schemas.Universe().IsAssignable(n.ElementType, p.elementType) {
		return nil, &modelerr.TypeMismatchError{Node: host.Key(), Declared: string(n.ElementType), Requested: string(p.elementType)}
	}
	if _, err := p.opts.Initializers.InitializerFor(ctx, n.ElementType); err != nil {
		return nil, fmt.Errorf("building view of '%s': %w", host.Key(), err)
	}

	v := view.NewCollectionView(p.opts, host, p.elementType, rule, writable)
	ctxlog.FromContext(ctx).Debug("View built.", "view", v.String(), "rule", rule, "writable", writable)
	return v, nil
}
