// Package executor runs model rules against the graph.
//
// Rules that target the same top-level subtree are serialized in declaration
// order; different subtrees run concurrently on a fixed pool of workers.
// That per-subtree exclusivity is what lets views skip their own locking:
// a view is only ever touched by the one rule it was built for.
//
// Each rule receives a view built by the projection factory. The view is
// closed as soon as the rule's action returns, whatever its result. When a
// rule fails, the rules queued behind it in the same subtree are skipped.
package executor
