package view

import (
	"context"
	"fmt"

	"github.com/specialistvlad/modelgrid/internal/modelerr"
	"github.com/specialistvlad/modelgrid/internal/nodeid"
	"github.com/specialistvlad/modelgrid/internal/schema"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Element is a live proxy for one collection element. Every read goes to
// the backing node, and writes are guarded by the owning view's state.
type Element struct {
	view *CollectionView
	addr nodeid.Address
}

// Address returns the address of the backing node.
func (e *Element) Address() nodeid.Address {
	return e.addr
}

func (e *Element) String() string {
	return e.addr.Key()
}

// Schema returns the property schema of the backing node's type, which may
// be a subtype of the view's element type.
func (e *Element) Schema(ctx context.Context) (*schema.PropertySchema, error) {
	n, ok := e.view.graph.Node(ctx, e.addr)
	if !ok {
		return nil, &modelerr.NotFoundError{Kind: "element", Name: e.addr.Key(), Scope: e.view.String()}
	}
	return e.view.schemas.SchemaFor(ctx, string(n.Type))
}

// Get reads a readable property from the backing node.
func (e *Element) Get(ctx context.Context, property string) (cty.Value, error) {
	ps, err := e.Schema(ctx)
	if err != nil {
		return cty.NilVal, err
	}
	pd, err := ps.Property(property)
	if err != nil {
		return cty.NilVal, err
	}
	if !pd.Readable() {
		return cty.NilVal, fmt.Errorf("property '%s' of type '%s' is write-only", property, ps.TypeName())
	}
	return e.view.graph.Property(ctx, e.addr, property)
}

// Set writes a property through one of its setters. The value is matched
// against the setter parameter types in declaration order, preferring an
// exact type match over a conversion.
func (e *Element) Set(ctx context.Context, property string, value cty.Value) error {
	if err := e.view.state.AssertWritable(); err != nil {
		return err
	}
	ps, err := e.Schema(ctx)
	if err != nil {
		return err
	}
	pd, err := ps.Property(property)
	if err != nil {
		return err
	}
	if !pd.Writable() {
		return &modelerr.InvalidStateError{View: e.view.String(), Reason: fmt.Sprintf("property '%s' of type '%s' is read-only", property, ps.TypeName())}
	}

	converted, err := coerce(pd, value)
	if err != nil {
		return fmt.Errorf("setting '%s' on %s: %w", property, e.addr.Key(), err)
	}
	return e.view.graph.SetProperty(ctx, e.addr, property, converted)
}

func coerce(pd *schema.PropertyDescriptor, value cty.Value) (cty.Value, error) {
	var targets []cty.Type
	for _, s := range pd.Setters {
		if ty, ok := s.Params[0].CtyType(); ok {
			if value.Type().Equals(ty) {
				return value, nil
			}
			targets = append(targets, ty)
		}
	}
	var firstErr error
	for _, ty := range targets {
		converted, err := convert.Convert(value, ty)
		if err == nil {
			return converted, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr == nil {
		return cty.NilVal, fmt.Errorf("no setter of '%s' accepts a value", pd.Name)
	}
	return cty.NilVal, firstErr
}

// Value returns an object holding every readable property of the element.
func (e *Element) Value(ctx context.Context) (cty.Value, error) {
	ps, err := e.Schema(ctx)
	if err != nil {
		return cty.NilVal, err
	}
	props, err := e.view.graph.Properties(ctx, e.addr)
	if err != nil {
		return cty.NilVal, err
	}

	attrs := make(map[string]cty.Value)
	for _, name := range ps.PropertyNames() {
		pd, _ := ps.Property(name)
		if !pd.Readable() {
			continue
		}
		val, ok := props[name]
		if !ok {
			ty, _ := pd.ValueType().CtyType()
			val = cty.NullVal(ty)
		}
		attrs[name] = val
	}
	return cty.ObjectVal(attrs), nil
}

// Decode reads the element into target, a pointer to a struct whose fields
// carry `cty:"name"` tags. The struct must name every readable property.
func (e *Element) Decode(ctx context.Context, target any) error {
	val, err := e.Value(ctx)
	if err != nil {
		return err
	}
	if err := gocty.FromCtyValue(val, target); err != nil {
		return fmt.Errorf("decoding %s: %w", e.addr.Key(), err)
	}
	return nil
}
