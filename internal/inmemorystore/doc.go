// Package inmemorystore provides a thread-safe, in-memory implementation
// of the nodestore.Store interface. It is suitable for development, testing,
// or any model whose values do not need to be persisted.
package inmemorystore
