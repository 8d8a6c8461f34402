package schema

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/specialistvlad/modelgrid/internal/typedesc"
)

type accessorKind int

const (
	notAccessor accessorKind = iota
	getter
	setter
)

// Extract builds the PropertySchema of ancestry[0] from the given ancestry,
// ordered most derived first as returned by typedesc.Universe.Ancestry.
// It never fails; an empty ancestry yields an empty schema.
func Extract(ancestry []*typedesc.Type) *PropertySchema {
	ps := &PropertySchema{properties: make(map[string]*PropertyDescriptor)}
	if len(ancestry) == 0 {
		return ps
	}
	ps.typeName = ancestry[0].Name

	// An ancestor's method is shadowed by any more derived method with the
	// same signature, so the first one seen wins.
	seen := make(map[string]struct{})
	for _, t := range ancestry {
		for _, m := range t.Methods {
			if !m.IsPublicInstance() {
				continue
			}
			sig := m.Signature()
			if _, shadowed := seen[sig]; shadowed {
				continue
			}
			seen[sig] = struct{}{}

			kind, name := classify(m)
			if kind == notAccessor {
				ps.methods = append(ps.methods, m)
				continue
			}
			pd, ok := ps.properties[name]
			if !ok {
				pd = &PropertyDescriptor{Name: name}
				ps.properties[name] = pd
			}
			if kind == getter {
				pd.Getters = append(pd.Getters, m)
			} else {
				pd.Setters = append(pd.Setters, m)
			}
		}
	}
	return ps
}

func classify(m typedesc.Method) (accessorKind, string) {
	switch {
	case len(m.Params) == 0 && !m.Returns.IsVoid():
		if name, ok := propertyName(m.Name, "get"); ok {
			return getter, name
		}
		if m.Returns.IsBooleanLike() {
			if name, ok := propertyName(m.Name, "is"); ok {
				return getter, name
			}
		}
	case len(m.Params) == 1 && m.Returns.IsVoid():
		if name, ok := propertyName(m.Name, "set"); ok {
			return setter, name
		}
	}
	return notAccessor, ""
}

// propertyName strips prefix from method and lower-cases the first rune of
// the remainder. `getURL` yields `uRL`; `getter` is not an accessor because
// the remainder does not start with an upper-case rune.
func propertyName(method, prefix string) (string, bool) {
	rest, ok := strings.CutPrefix(method, prefix)
	if !ok || rest == "" {
		return "", false
	}
	r, size := utf8.DecodeRuneInString(rest)
	if !unicode.IsUpper(r) {
		return "", false
	}
	return string(unicode.ToLower(r)) + rest[size:], true
}
