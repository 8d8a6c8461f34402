package typedesc

import (
	"fmt"
	"sort"
	"strings"

	"github.com/specialistvlad/modelgrid/internal/modelerr"
)

// reserved names cannot be used for declared types because they already
// mean something as a TypeRef.
var reserved = map[string]struct{}{
	"void": {}, "bool": {}, "string": {}, "number": {}, "any": {},
	"list": {}, "map": {}, "set": {}, "object": {}, "tuple": {},
}

// Universe is the arena of all declared types, keyed by name. Types never
// hold pointers to each other; every relation is resolved here.
type Universe struct {
	types map[string]*Type
}

// New creates an empty Universe.
func New() *Universe {
	return &Universe{types: make(map[string]*Type)}
}

// Add registers a type. Names must be unique and must not shadow a value type.
func (u *Universe) Add(t *Type) error {
	if t == nil || t.Name == "" {
		return fmt.Errorf("type must have a name")
	}
	if _, ok := reserved[t.Name]; ok {
		return fmt.Errorf("type name '%s' is reserved", t.Name)
	}
	if _, exists := u.types[t.Name]; exists {
		return fmt.Errorf("type '%s' is declared more than once", t.Name)
	}
	u.types[t.Name] = t
	return nil
}

// Lookup returns the type registered under name.
func (u *Universe) Lookup(name string) (*Type, bool) {
	t, ok := u.types[name]
	return t, ok
}

// Names returns all registered type names in sorted order.
func (u *Universe) Names() []string {
	names := make([]string, 0, len(u.types))
	for name := range u.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks that every reference resolves, that classes only extend
// classes, that only interfaces are implemented, and that no type is its
// own ancestor.
func (u *Universe) Validate() error {
	var errs []string
	for _, name := range u.Names() {
		t := u.types[name]
		if t.Super != "" {
			super, ok := u.types[t.Super]
			switch {
			case t.Interface:
				errs = append(errs, fmt.Sprintf("interface '%s' cannot extend a class, use implements", name))
			case !ok:
				errs = append(errs, fmt.Sprintf("type '%s' extends unknown type '%s'", name, t.Super))
			case super.Interface:
				errs = append(errs, fmt.Sprintf("type '%s' cannot extend interface '%s', use implements", name, t.Super))
			}
		}
		for _, iface := range t.Interfaces {
			it, ok := u.types[iface]
			switch {
			case !ok:
				errs = append(errs, fmt.Sprintf("%s '%s' implements unknown interface '%s'", t.Kind(), name, iface))
			case !it.Interface:
				errs = append(errs, fmt.Sprintf("%s '%s' implements '%s', which is not an interface", t.Kind(), name, iface))
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("type validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	// Reference errors are reported first so that cycle detection can
	// assume every name resolves.
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(u.types))
	var visit func(name string, trail []string) error
	visit = func(name string, trail []string) error {
		switch state[name] {
		case visiting:
			return fmt.Errorf("inheritance cycle: %s -> %s", strings.Join(trail, " -> "), name)
		case done:
			return nil
		}
		state[name] = visiting
		t := u.types[name]
		parents := append([]string{}, t.Interfaces...)
		if t.Super != "" {
			parents = append([]string{t.Super}, parents...)
		}
		for _, p := range parents {
			if err := visit(p, append(trail, name)); err != nil {
				return err
			}
		}
		state[name] = done
		return nil
	}
	for _, name := range u.Names() {
		if err := visit(name, nil); err != nil {
			return err
		}
	}
	return nil
}

// Ancestry returns the type named name followed by its ancestors, most
// derived first: the superclass chain in order, then every interface
// reachable from the type or its superclasses, breadth first. Each type
// appears once.
func (u *Universe) Ancestry(name string) ([]*Type, error) {
	t, ok := u.types[name]
	if !ok {
		return nil, &modelerr.NotFoundError{Kind: "type", Name: name}
	}

	seen := map[string]struct{}{name: {}}
	ancestry := []*Type{t}
	for s := t.Super; s != ""; {
		st, ok := u.types[s]
		if !ok {
			return nil, &modelerr.NotFoundError{Kind: "type", Name: s, Scope: "ancestry of " + name}
		}
		if _, dup := seen[s]; dup {
			return nil, fmt.Errorf("inheritance cycle through '%s'", s)
		}
		seen[s] = struct{}{}
		ancestry = append(ancestry, st)
		s = st.Super
	}

	var queue []string
	for _, c := range ancestry {
		queue = append(queue, c.Interfaces...)
	}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if _, dup := seen[next]; dup {
			continue
		}
		it, ok := u.types[next]
		if !ok {
			return nil, &modelerr.NotFoundError{Kind: "interface", Name: next, Scope: "ancestry of " + name}
		}
		seen[next] = struct{}{}
		ancestry = append(ancestry, it)
		queue = append(queue, it.Interfaces...)
	}
	return ancestry, nil
}

// IsAssignable reports whether a value of type sub can be used where super
// is expected: sub is super or super is one of sub's ancestors.
func (u *Universe) IsAssignable(sub, super TypeRef) bool {
	if sub == super {
		return true
	}
	ancestry, err := u.Ancestry(string(sub))
	if err != nil {
		return false
	}
	for _, t := range ancestry {
		if t.Name == string(super) {
			return true
		}
	}
	return false
}
