// Package projection turns collection host nodes into typed views.
//
// A Projection depends on nothing but its element type: two projections for
// the same type are equal and interchangeable, and the Factory hands out one
// memoized instance per type. Compatibility between a host node and the
// requested element type is checked when the view is built, never on first
// use.
package projection
