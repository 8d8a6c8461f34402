package typedesc

import (
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// Visibility is the access level of a method.
type Visibility string

const (
	Public    Visibility = "public"
	Protected Visibility = "protected"
	Package   Visibility = "package"
	Private   Visibility = "private"
)

// ParseVisibility maps a declared visibility to a Visibility; the empty
// string means public.
func ParseVisibility(s string) (Visibility, error) {
	switch Visibility(s) {
	case "", Public:
		return Public, nil
	case Protected, Package, Private:
		return Visibility(s), nil
	default:
		return "", fmt.Errorf("unknown visibility %q: must be one of public, protected, package, private", s)
	}
}

// Method is a single method declared by a type.
type Method struct {
	Name          string
	DeclaringType string
	Params        []TypeRef
	Returns       TypeRef
	Visibility    Visibility
	Static        bool
}

// Signature returns the name and parameter list, e.g. `setSize(number)`.
// Two methods override one another exactly when their signatures are equal.
func (m Method) Signature() string {
	params := make([]string, len(m.Params))
	for i, p := range m.Params {
		params[i] = string(p)
	}
	return m.Name + "(" + strings.Join(params, ",") + ")"
}

// IsPublicInstance reports whether m takes part in schema extraction.
func (m Method) IsPublicInstance() bool {
	return !m.Static && (m.Visibility == Public || m.Visibility == "")
}

func (m Method) String() string {
	returns := m.Returns
	if returns == "" {
		returns = Void
	}
	return fmt.Sprintf("%s.%s: %s", m.DeclaringType, m.Signature(), returns)
}

// Type is a class or interface descriptor. Super and Interfaces are names
// resolved through the owning Universe.
type Type struct {
	Name       string
	Interface  bool
	Super      string
	Interfaces []string
	// Methods are kept in declaration order.
	Methods []Method
	// Defaults holds initial property values, keyed by property name.
	Defaults map[string]cty.Value
}

// Kind returns "interface" or "type".
func (t *Type) Kind() string {
	if t.Interface {
		return "interface"
	}
	return "type"
}
