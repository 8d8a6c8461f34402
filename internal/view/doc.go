// Package view implements live, mutability-aware views over model nodes.
//
// A CollectionView presents the children of a collection host node as an
// ordered sequence of Elements. Neither the view nor its elements hold a
// node: they hold addresses and resolve them through the graph on every
// access, so iteration always reflects the current children and their
// current values, and a removed node surfaces as NotFoundError instead of
// stale data.
//
// Every view owns a State. A writable view accepts appends and property
// writes until it is closed; closing is one-way and idempotent. A view
// built read-only starts out closed.
package view
