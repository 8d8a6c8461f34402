package nodeid

import (
	"fmt"
	"slices"
	"strings"
)

// String serializes the Address into its canonical path string representation.
// The root address serializes to the empty string.
func (a *Address) String() string {
	if a == nil {
		return ""
	}

	var sb strings.Builder
	for i, segment := range a.Path {
		if i > 0 {
			sb.WriteRune('.')
		}
		sb.WriteString(segment.Name)
		if segment.HasIndex() {
			sb.WriteString(fmt.Sprintf("[%d]", segment.Index))
		}
	}

	return sb.String()
}

// Equal checks for deep equality between two Address pointers.
func (a *Address) Equal(other *Address) bool {
	if a == nil || other == nil {
		return a == other
	}
	return slices.Equal(a.Path, other.Path)
}

// IsRoot reports whether the address designates the graph root.
func (a Address) IsRoot() bool {
	return len(a.Path) == 0
}

// Name returns the last segment's name, or "" for the root.
func (a Address) Name() string {
	if a.IsRoot() {
		return ""
	}
	return a.Path[len(a.Path)-1].Name
}

// Child returns the address of the named child of a. The receiver is not
// modified.
func (a Address) Child(name string) Address {
	path := make([]PathSegment, len(a.Path), len(a.Path)+1)
	copy(path, a.Path)
	return Address{Path: append(path, NewPathSegment(name))}
}

// Parent returns the address of a's parent. The parent of the root is the root.
func (a Address) Parent() Address {
	if a.IsRoot() {
		return a
	}
	return Address{Path: slices.Clone(a.Path[:len(a.Path)-1])}
}

// Top returns the address made of a's first segment only. Rules that
// target nodes sharing a top segment operate on the same subtree.
func (a Address) Top() Address {
	if a.IsRoot() {
		return a
	}
	return Address{Path: []PathSegment{a.Path[0]}}
}

// IsDescendantOf reports whether a lies strictly below other.
func (a Address) IsDescendantOf(other Address) bool {
	if len(a.Path) <= len(other.Path) {
		return false
	}
	return slices.Equal(a.Path[:len(other.Path)], other.Path)
}

// Key returns the canonical string form of a, suitable as a map key. Unlike
// String it can be called on non-addressable values.
func (a Address) Key() string {
	return a.String()
}
