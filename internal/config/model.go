package config

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// Model is the unified, format-agnostic representation of a model graph
// definition.
type Model struct {
	Types       []*TypeDefinition
	Collections []*CollectionDefinition
	Rules       []*RuleDefinition
}

// TypeDefinition is the format-agnostic representation of a `type` or
// `interface` block. Type references are kept as canonical strings and are
// resolved by the typedesc package.
type TypeDefinition struct {
	Name       string
	Interface  bool
	Extends    string
	Implements []string
	Fields     []*FieldDefinition
	Methods    []*MethodDefinition
	// Source is the file the definition was read from, for diagnostics.
	Source string
}

// FieldDefinition declares a property through the field synthesis rule
// (see typedesc.SynthesizeAccessors).
type FieldDefinition struct {
	Name     string
	Type     string
	Default  *cty.Value
	ReadOnly bool
}

// MethodDefinition declares a method explicitly.
type MethodDefinition struct {
	Name       string
	Params     []string
	Returns    string
	Visibility string
	Static     bool
}

// CollectionDefinition seeds a collection node into the graph.
type CollectionDefinition struct {
	Path        string
	ElementType string
}

// RuleDefinition is a rule that obtains a collection view of Target and
// appends one element per Appends entry, assigning the given properties.
type RuleDefinition struct {
	Name        string
	Target      string
	ElementType string
	ReadOnly    bool
	Appends     []map[string]hcl.Expression
}
