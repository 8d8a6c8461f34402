package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/modelgrid/internal/config"
	"github.com/specialistvlad/modelgrid/internal/ctxlog"
	"github.com/specialistvlad/modelgrid/internal/typedesc"
)

// isExprDefined checks if an HCL expression was actually present in the
// source. The decoder populates omitted optional fields with zero-width
// placeholder expressions, so a nil check is insufficient.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	if expr == nil {
		return false
	}
	exprRange := expr.Range()
	isDefined := exprRange.End.Byte > exprRange.Start.Byte

	ctxlog.FromContext(ctx).Debug("Checking if HCL attribute was explicitly defined.",
		"attribute", attrName,
		"hcl_range", exprRange.String(),
		"is_defined", isDefined,
	)
	return isDefined
}

func typeRef(expr hcl.Expression, what string) (string, error) {
	ref, diags := typedesc.RefFromExpr(expr)
	if diags.HasErrors() {
		return "", fmt.Errorf("%s: %w", what, diags)
	}
	return string(ref), nil
}

func (l *Loader) translateType(ctx context.Context, b *TypeBlock, isInterface bool, file string) (*config.TypeDefinition, error) {
	kind := "type"
	if isInterface {
		kind = "interface"
	}
	def := &config.TypeDefinition{
		Name:       b.Name,
		Interface:  isInterface,
		Extends:    b.Extends,
		Implements: b.Implements,
		Source:     file,
	}

	for _, f := range b.Fields {
		owner := fmt.Sprintf("%s '%s', field '%s'", kind, b.Name, f.Name)
		ty, err := typeRef(f.Type, owner)
		if err != nil {
			return nil, err
		}
		field := &config.FieldDefinition{Name: f.Name, Type: ty, ReadOnly: f.ReadOnly}
		if isExprDefined(ctx, f.Default, "default") {
			val, diags := f.Default.Value(nil)
			if diags.HasErrors() {
				return nil, fmt.Errorf("invalid default value for %s: %w", owner, diags)
			}
			if !val.IsNull() {
				field.Default = &val
			}
		}
		def.Fields = append(def.Fields, field)
	}

	for _, m := range b.Methods {
		owner := fmt.Sprintf("%s '%s', method '%s'", kind, b.Name, m.Name)
		method := &config.MethodDefinition{Name: m.Name, Visibility: m.Visibility, Static: m.Static}
		if isExprDefined(ctx, m.Returns, "returns") {
			ret, err := typeRef(m.Returns, owner+" return type")
			if err != nil {
				return nil, err
			}
			method.Returns = ret
		}
		if isExprDefined(ctx, m.Params, "params") {
			exprs, diags := hcl.ExprList(m.Params)
			if diags.HasErrors() {
				return nil, fmt.Errorf("%s: params must be a list of types: %w", owner, diags)
			}
			for i, e := range exprs {
				p, err := typeRef(e, fmt.Sprintf("%s parameter %d", owner, i))
				if err != nil {
					return nil, err
				}
				method.Params = append(method.Params, p)
			}
		}
		def.Methods = append(def.Methods, method)
	}
	return def, nil
}

func (l *Loader) translateCollection(b *CollectionBlock, file string) (*config.CollectionDefinition, error) {
	el, err := typeRef(b.Element, fmt.Sprintf("%s: collection '%s' element", file, b.Path))
	if err != nil {
		return nil, err
	}
	return &config.CollectionDefinition{Path: b.Path, ElementType: el}, nil
}

func (l *Loader) translateRule(ctx context.Context, b *RuleBlock, file string) (*config.RuleDefinition, error) {
	def := &config.RuleDefinition{Name: b.Name, Target: b.Target, ReadOnly: b.ReadOnly}
	if isExprDefined(ctx, b.Element, "element") {
		el, err := typeRef(b.Element, fmt.Sprintf("%s: rule '%s' element", file, b.Name))
		if err != nil {
			return nil, err
		}
		def.ElementType = el
	}
	for i, a := range b.Appends {
		attrs, diags := a.Body.JustAttributes()
		if diags.HasErrors() {
			return nil, fmt.Errorf("%s: rule '%s', append #%d: %w", file, b.Name, i, diags)
		}
		exprs := make(map[string]hcl.Expression, len(attrs))
		for name, attr := range attrs {
			if err := checkConstant(attr.Expr); err != nil {
				return nil, fmt.Errorf("%s: rule '%s', append #%d, attribute '%s': %w", file, b.Name, i, name, err)
			}
			exprs[name] = attr.Expr
		}
		def.Appends = append(def.Appends, exprs)
	}
	return def, nil
}
