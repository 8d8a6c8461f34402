// Package typedesc describes the types whose accessor methods define the
// shape of model nodes.
//
// A Type is a class or interface identity together with its declared
// methods, its superclass and the interfaces it implements. Types refer to
// each other by name only and live in a Universe, which resolves ancestry:
// the type itself, then its superclass chain, then its interfaces, most
// derived first.
//
// Types are normally declared in model files. Besides explicit `method`
// declarations a type may declare fields; each field is turned into
// accessor methods by SynthesizeAccessors, the one place where a field
// implies methods.
package typedesc
