package typedesc

import (
	"sync"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/ext/typeexpr"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// TypeRef is the canonical, comparable reference to a type. Value types use
// the HCL type constraint syntax (`string`, `list(number)`, ...); any other
// identifier names a declared type.
type TypeRef string

const (
	Void   TypeRef = "void"
	Bool   TypeRef = "bool"
	String TypeRef = "string"
	Number TypeRef = "number"
	Any    TypeRef = "any"
)

// ctyTypes memoizes parsed value types; TypeRefs are immutable strings.
var ctyTypes sync.Map // TypeRef -> parsedRef

type parsedRef struct {
	ty cty.Type
	ok bool
}

func (r TypeRef) String() string {
	return string(r)
}

// IsVoid reports whether r marks the absence of a return value.
func (r TypeRef) IsVoid() bool {
	return r == Void || r == ""
}

// IsBooleanLike reports whether a getter returning r may use the `is` prefix.
func (r TypeRef) IsBooleanLike() bool {
	return r == Bool
}

// IsValueType reports whether r denotes a cty value type rather than a
// declared type.
func (r TypeRef) IsValueType() bool {
	_, ok := r.CtyType()
	return ok
}

// CtyType returns the cty type a value of r is stored as. Declared types and
// void report false and map to cty.DynamicPseudoType.
func (r TypeRef) CtyType() (cty.Type, bool) {
	if r.IsVoid() {
		return cty.DynamicPseudoType, false
	}
	if cached, ok := ctyTypes.Load(r); ok {
		p := cached.(parsedRef)
		return p.ty, p.ok
	}

	p := parsedRef{ty: cty.DynamicPseudoType}
	expr, diags := hclsyntax.ParseExpression([]byte(r), "<typeref>", hcl.InitialPos)
	if !diags.HasErrors() {
		if parsed, diags := typeexpr.TypeConstraint(expr); !diags.HasErrors() {
			p = parsedRef{ty: parsed, ok: true}
		}
	}
	ctyTypes.Store(r, p)
	return p.ty, p.ok
}

// RefFromExpr reads a type reference written as an HCL expression. A bare
// identifier is either a primitive keyword, `void`, or the name of a
// declared type; anything else must be a valid HCL type constraint.
func RefFromExpr(expr hcl.Expression) (TypeRef, hcl.Diagnostics) {
	if traversal, diags := hcl.AbsTraversalForExpr(expr); !diags.HasErrors() && len(traversal) == 1 {
		return TypeRef(traversal.RootName()), nil
	}

	ty, diags := typeexpr.TypeConstraint(expr)
	if diags.HasErrors() {
		return "", diags
	}
	return TypeRef(typeexpr.TypeString(ty)), nil
}
