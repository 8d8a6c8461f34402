package hcl

import (
	"github.com/hashicorp/hcl/v2"
)

// fileRoot is used to decode all possible top-level blocks from any file.
// Anything else in a file is reported as an error.
type fileRoot struct {
	Types       []*TypeBlock       `hcl:"type,block"`
	Interfaces  []*TypeBlock       `hcl:"interface,block"`
	Collections []*CollectionBlock `hcl:"collection,block"`
	Rules       []*RuleBlock       `hcl:"rule,block"`
}

// TypeBlock is a `type` or `interface` block.
type TypeBlock struct {
	Name       string         `hcl:"name,label"`
	Extends    string         `hcl:"extends,optional"`
	Implements []string       `hcl:"implements,optional"`
	Fields     []*FieldBlock  `hcl:"field,block"`
	Methods    []*MethodBlock `hcl:"method,block"`
}

// FieldBlock declares a property through accessor synthesis.
type FieldBlock struct {
	Name     string         `hcl:"name,label"`
	Type     hcl.Expression `hcl:"type"`
	Default  hcl.Expression `hcl:"default,optional"`
	ReadOnly bool           `hcl:"read_only,optional"`
}

// MethodBlock declares a method explicitly. Params is a tuple of type
// expressions, e.g. `[string, list(number)]`.
type MethodBlock struct {
	Name       string         `hcl:"name,label"`
	Params     hcl.Expression `hcl:"params,optional"`
	Returns    hcl.Expression `hcl:"returns,optional"`
	Visibility string         `hcl:"visibility,optional"`
	Static     bool           `hcl:"static,optional"`
}

// CollectionBlock seeds a collection host node.
type CollectionBlock struct {
	Path    string         `hcl:"path,label"`
	Element hcl.Expression `hcl:"element"`
}

// RuleBlock describes a rule appending elements to a collection.
type RuleBlock struct {
	Name     string         `hcl:"name,label"`
	Target   string         `hcl:"target"`
	Element  hcl.Expression `hcl:"element,optional"`
	ReadOnly bool           `hcl:"read_only,optional"`
	Appends  []*AppendBlock `hcl:"append,block"`
}

// AppendBlock holds the property assignments of one appended element.
type AppendBlock struct {
	Body hcl.Body `hcl:",remain"`
}
