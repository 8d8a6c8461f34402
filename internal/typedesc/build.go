package typedesc

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/specialistvlad/modelgrid/internal/config"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// SynthesizeAccessors applies the field synthesis rule: a field `x` of type
// T declared on a type yields, in this order,
//
//   - a public instance getter `getX(): T`, or `isX(): bool` when T is bool;
//   - unless the field is read-only, a public instance setter `setX(T): void`.
//
// The methods are declared on the field's type like any explicit method and
// go through the same override and overload resolution.
func SynthesizeAccessors(declaringType string, field *config.FieldDefinition) []Method {
	suffix := capitalize(field.Name)
	typ := TypeRef(field.Type)

	getter := Method{
		Name:          "get" + suffix,
		DeclaringType: declaringType,
		Returns:       typ,
		Visibility:    Public,
	}
	if typ.IsBooleanLike() {
		getter.Name = "is" + suffix
	}
	methods := []Method{getter}

	if !field.ReadOnly {
		methods = append(methods, Method{
			Name:          "set" + suffix,
			DeclaringType: declaringType,
			Params:        []TypeRef{typ},
			Returns:       Void,
			Visibility:    Public,
		})
	}
	return methods
}

// NewUniverse builds and validates a Universe from type definitions. Fields
// are synthesized into accessors ahead of the explicitly declared methods.
func NewUniverse(defs []*config.TypeDefinition) (*Universe, error) {
	u := New()
	for _, def := range defs {
		t, err := typeFromDefinition(def)
		if err != nil {
			return nil, err
		}
		if err := u.Add(t); err != nil {
			if def.Source != "" {
				return nil, fmt.Errorf("%s: %w", def.Source, err)
			}
			return nil, err
		}
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

func typeFromDefinition(def *config.TypeDefinition) (*Type, error) {
	t := &Type{
		Name:       def.Name,
		Interface:  def.Interface,
		Super:      def.Extends,
		Interfaces: append([]string(nil), def.Implements...),
		Defaults:   make(map[string]cty.Value),
	}

	seen := make(map[string]string, len(def.Fields))
	for _, field := range def.Fields {
		if field.Name == "" {
			return nil, fmt.Errorf("%s '%s': field without a name", t.Kind(), def.Name)
		}
		prop, err := FieldProperty(field.Name)
		if err != nil {
			return nil, fmt.Errorf("%s '%s': %w", t.Kind(), def.Name, err)
		}
		if other, dup := seen[prop]; dup {
			return nil, fmt.Errorf("%s '%s': fields '%s' and '%s' both define property '%s'", t.Kind(), def.Name, other, field.Name, prop)
		}
		seen[prop] = field.Name
		t.Methods = append(t.Methods, SynthesizeAccessors(def.Name, field)...)
		if field.Default == nil {
			continue
		}
		val := *field.Default
		if ty, ok := TypeRef(field.Type).CtyType(); ok {
			converted, err := convert.Convert(val, ty)
			if err != nil {
				return nil, fmt.Errorf("%s '%s', field '%s': default does not match type %s: %w", t.Kind(), def.Name, field.Name, field.Type, err)
			}
			val = converted
		}
		t.Defaults[prop] = val
	}

	for _, md := range def.Methods {
		visibility, err := ParseVisibility(md.Visibility)
		if err != nil {
			return nil, fmt.Errorf("%s '%s', method '%s': %w", t.Kind(), def.Name, md.Name, err)
		}
		params := make([]TypeRef, len(md.Params))
		for i, p := range md.Params {
			params[i] = TypeRef(p)
		}
		returns := TypeRef(md.Returns)
		if returns == "" {
			returns = Void
		}
		t.Methods = append(t.Methods, Method{
			Name:          md.Name,
			DeclaringType: def.Name,
			Params:        params,
			Returns:       returns,
			Visibility:    visibility,
			Static:        md.Static,
		})
	}
	return t, nil
}

// FieldProperty returns the name of the property a field synthesizes, which
// is the accessor suffix with its first rune lower-cased: field `Size`
// yields property `size`. Fields whose first rune has no upper-case form,
// such as `_tag` or `9lives`, cannot be named by an accessor and are an
// error.
func FieldProperty(field string) (string, error) {
	r, size := utf8.DecodeRuneInString(field)
	if r == utf8.RuneError || !unicode.IsUpper(unicode.ToUpper(r)) {
		return "", fmt.Errorf("field '%s': name must start with a letter that has an upper-case form", field)
	}
	return string(unicode.ToLower(r)) + field[size:], nil
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
