package hcl

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
)

// traversalKey renders a traversal as written, e.g. `var.foo[0].bar`.
func traversalKey(t hcl.Traversal) string {
	return strings.TrimSpace(string(hclwrite.TokensForTraversal(t).Bytes()))
}

// referencesAndFunctions returns the unique variable traversals and function
// names used by exprs, both sorted.
func referencesAndFunctions(exprs ...hcl.Expression) ([]string, []string) {
	refs := make(map[string]struct{})
	funcs := make(map[string]struct{})

	for _, expr := range exprs {
		if expr == nil {
			continue
		}
		for _, t := range expr.Variables() {
			refs[traversalKey(t)] = struct{}{}
		}
		if syntaxExpr, ok := expr.(hclsyntax.Expression); ok {
			hclsyntax.VisitAll(syntaxExpr, func(n hclsyntax.Node) hcl.Diagnostics {
				if call, ok := n.(*hclsyntax.FunctionCallExpr); ok {
					funcs[call.Name] = struct{}{}
				}
				return nil
			})
		}
	}
	return sortedSet(refs), sortedSet(funcs)
}

// checkConstant rejects expressions that need an evaluation context. Append
// attributes are evaluated without variables or functions.
func checkConstant(exprs ...hcl.Expression) error {
	refs, funcs := referencesAndFunctions(exprs...)
	switch {
	case len(refs) > 0:
		return fmt.Errorf("variables are not allowed here, found %s", strings.Join(refs, ", "))
	case len(funcs) > 0:
		return fmt.Errorf("function calls are not allowed here, found %s", strings.Join(funcs, ", "))
	}
	return nil
}

func sortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
