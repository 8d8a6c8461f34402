package projection

import (
	"context"
	"sync"

	"github.com/specialistvlad/modelgrid/internal/ctxlog"
	"github.com/specialistvlad/modelgrid/internal/modelerr"
	"github.com/specialistvlad/modelgrid/internal/nodeid"
	"github.com/specialistvlad/modelgrid/internal/typedesc"
	"github.com/specialistvlad/modelgrid/internal/view"
)

// Factory hands out one Projection per element type and is the entry point
// rule execution uses to obtain and release views.
type Factory struct {
	opts        view.Options
	projections sync.Map // typedesc.TypeRef -> *Projection
}

// NewFactory creates a projection factory over the given collaborators.
func NewFactory(opts view.Options) *Factory {
	return &Factory{opts: opts}
}

// ProjectionFor returns the projection for elementType. Repeated calls
// return the same instance. Only declared types can be projected.
func (f *Factory) ProjectionFor(ctx context.Context, elementType typedesc.TypeRef) (*Projection, error) {
	if p, ok := f.projections.Load(elementType); ok {
		return p.(*Projection), nil
	}
	if _, ok := f.opts.Schemas.Universe().Lookup(string(elementType)); !ok {
		return nil, &modelerr.NotFoundError{Kind: "element type", Name: string(elementType)}
	}
	p, loaded := f.projections.LoadOrStore(elementType, &Projection{elementType: elementType, opts: f.opts})
	if !loaded {
		ctxlog.FromContext(ctx).Debug("Projection created.", "element_type", elementType)
	}
	return p.(*Projection), nil
}

// BuildView is ProjectionFor followed by ViewOf.
func (f *Factory) BuildView(ctx context.Context, host nodeid.Address, elementType typedesc.TypeRef, rule string, writable bool) (*view.CollectionView, error) {
	p, err := f.ProjectionFor(ctx, elementType)
	if err != nil {
		return nil, err
	}
	return p.ViewOf(ctx, host, rule, writable)
}

// Close closes a view handed out by BuildView once its rule is done.
func (f *Factory) Close(ctx context.Context, v *view.CollectionView) {
	if v == nil || v.State().IsClosed() {
		return
	}
	v.Close()
	ctxlog.FromContext(ctx).Debug("View closed.", "view", v.String())
}
