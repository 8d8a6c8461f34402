// Package hcl provides the concrete HCL implementation of the configuration
// loading and value conversion interfaces defined in the `config` package.
// It is responsible for file discovery, parsing, and translating HCL blocks
// into the format-agnostic model.
//
// A model file may contain any of these top-level blocks:
//
//	interface "Named" {
//	  method "getName" { returns = string }
//	}
//
//	type "Component" {
//	  implements = ["Named"]
//	  field "name" { type = string }
//	  field "size" {
//	    type    = number
//	    default = 1
//	  }
//	  method "setSize" { params = [string] }
//	}
//
//	collection "components" {
//	  element = Component
//	}
//
//	rule "addCore" {
//	  target = "components"
//	  append {
//	    name = "core"
//	  }
//	}
package hcl
