// Package config defines the format-agnostic configuration model of a model
// graph definition: the declared types, the collection nodes seeded into the
// graph, and the rules that populate them. It also declares the Loader and
// Converter interfaces implemented by format-specific packages such as hcl.
//
// The config.Model is the single source of truth for the typedesc and app
// packages; nothing downstream knows which file format produced it.
package config
