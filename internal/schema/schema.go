package schema

import (
	"slices"
	"sort"

	"github.com/specialistvlad/modelgrid/internal/modelerr"
	"github.com/specialistvlad/modelgrid/internal/typedesc"
)

// PropertyDescriptor groups the accessors of one property. Both slices are
// in declaration order, most derived type first.
type PropertyDescriptor struct {
	Name    string
	Getters []typedesc.Method
	Setters []typedesc.Method
}

// Readable reports whether the property has at least one getter.
func (pd *PropertyDescriptor) Readable() bool { return len(pd.Getters) > 0 }

// Writable reports whether the property has at least one setter.
func (pd *PropertyDescriptor) Writable() bool { return len(pd.Setters) > 0 }

// ValueType is the return type of the first getter, or the parameter type
// of the first setter for a write-only property.
func (pd *PropertyDescriptor) ValueType() typedesc.TypeRef {
	if len(pd.Getters) > 0 {
		return pd.Getters[0].Returns
	}
	if len(pd.Setters) > 0 {
		return pd.Setters[0].Params[0]
	}
	return typedesc.Any
}

// PropertySchema is the immutable result of Extract.
type PropertySchema struct {
	typeName   string
	properties map[string]*PropertyDescriptor
	methods    []typedesc.Method
}

func (ps *PropertySchema) TypeName() string {
	return ps.typeName
}

// PropertyNames returns the property names in sorted order.
func (ps *PropertySchema) PropertyNames() []string {
	names := make([]string, 0, len(ps.properties))
	for name := range ps.properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Property returns the descriptor for name, or a *modelerr.NotFoundError.
func (ps *PropertySchema) Property(name string) (*PropertyDescriptor, error) {
	pd, ok := ps.properties[name]
	if !ok {
		return nil, &modelerr.NotFoundError{Kind: "property", Name: name, Scope: "type '" + ps.typeName + "'"}
	}
	return pd, nil
}

// InstanceMethods returns the public instance methods that are not
// accessors, with overridden methods collapsed into the most derived one.
func (ps *PropertySchema) InstanceMethods() []typedesc.Method {
	return slices.Clone(ps.methods)
}

// Equal reports whether two schemas describe the same properties with the
// same accessors and the same ordinary methods.
func (ps *PropertySchema) Equal(other *PropertySchema) bool {
	if ps == nil || other == nil {
		return ps == other
	}
	if ps.typeName != other.typeName || len(ps.properties) != len(other.properties) {
		return false
	}
	for name, pd := range ps.properties {
		o, ok := other.properties[name]
		if !ok {
			return false
		}
		if !slices.EqualFunc(pd.Getters, o.Getters, methodEqual) || !slices.EqualFunc(pd.Setters, o.Setters, methodEqual) {
			return false
		}
	}
	return slices.EqualFunc(ps.methods, other.methods, methodEqual)
}

func methodEqual(a, b typedesc.Method) bool {
	return a.Name == b.Name &&
		a.DeclaringType == b.DeclaringType &&
		slices.Equal(a.Params, b.Params) &&
		a.Returns == b.Returns &&
		a.Visibility == b.Visibility &&
		a.Static == b.Static
}
