// Package modelerr defines the error taxonomy shared by the schema
// extractor, the view layer and the projection factory.
//
// Every error type matches a sentinel through errors.Is, so callers can
// branch on the category without caring which layer produced it:
//
//	if errors.Is(err, modelerr.ErrInvalidState) { ... }
package modelerr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound matches every *NotFoundError.
	ErrNotFound = errors.New("not found")
	// ErrInvalidState matches every *InvalidStateError.
	ErrInvalidState = errors.New("invalid state")
	// ErrTypeMismatch matches every *TypeMismatchError.
	ErrTypeMismatch = errors.New("type mismatch")
)

// NotFoundError reports a lookup of something that does not exist, such as
// an unknown property of a schema or a node removed from the graph.
type NotFoundError struct {
	// Kind is what was looked up, e.g. "property", "type" or "node".
	Kind string
	// Name is the key that was looked up.
	Name string
	// Scope optionally names where the lookup happened, e.g. the type
	// whose schema was queried.
	Scope string
}

func (e *NotFoundError) Error() string {
	if e.Scope != "" {
		return fmt.Sprintf("%s '%s' not found in %s", e.Kind, e.Name, e.Scope)
	}
	return fmt.Sprintf("%s '%s' not found", e.Kind, e.Name)
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// InvalidStateError reports a mutation attempted through a view that is
// closed or was created read-only.
type InvalidStateError struct {
	View   string
	Reason string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("attempt to modify %s: %s", e.View, e.Reason)
}

// Is reports whether target is ErrInvalidState.
func (e *InvalidStateError) Is(target error) bool { return target == ErrInvalidState }

// TypeMismatchError reports a projection requested for an element type that
// the host node cannot provide.
type TypeMismatchError struct {
	Node      string
	Declared  string
	Requested string
}

func (e *TypeMismatchError) Error() string {
	if e.Declared == "" {
		return fmt.Sprintf("node '%s' is not a collection and cannot be viewed as a collection of %s", e.Node, e.Requested)
	}
	return fmt.Sprintf("node '%s' holds elements of type %s, which cannot be viewed as %s", e.Node, e.Declared, e.Requested)
}

// Is reports whether target is ErrTypeMismatch.
func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }
