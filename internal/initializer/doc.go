// Package initializer creates the graph nodes that back new collection
// elements.
//
// A ChildNodeCreationStrategy is resolved per element type through the
// Registry. Types without a registered strategy get the Managed strategy,
// which seeds every property of the element's schema with its declared
// default or a typed null.
package initializer
