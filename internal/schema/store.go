package schema

import (
	"context"
	"fmt"
	"sync"

	"github.com/specialistvlad/modelgrid/internal/ctxlog"
	"github.com/specialistvlad/modelgrid/internal/typedesc"
	"golang.org/x/sync/singleflight"
)

// Store memoizes schemas per type name. Concurrent first requests for the
// same type share one extraction. The cache lives as long as the Store and
// is only invalidated by Clear.
type Store struct {
	universe *typedesc.Universe
	cache    sync.Map // string -> *PropertySchema
	group    singleflight.Group
}

// NewStore creates a schema store over a validated universe.
func NewStore(universe *typedesc.Universe) *Store {
	return &Store{universe: universe}
}

// Universe returns the universe the store extracts from.
func (s *Store) Universe() *typedesc.Universe {
	return s.universe
}

// SchemaFor returns the schema of the named type. The only possible error
// is an unknown type (or a broken ancestry), reported as
// *modelerr.NotFoundError.
func (s *Store) SchemaFor(ctx context.Context, typeName string) (*PropertySchema, error) {
	if cached, ok := s.cache.Load(typeName); ok {
		return cached.(*PropertySchema), nil
	}

	v, err, shared := s.group.Do(typeName, func() (any, error) {
		ancestry, err := s.universe.Ancestry(typeName)
		if err != nil {
			return nil, fmt.Errorf("resolving schema of '%s': %w", typeName, err)
		}
		ps := Extract(ancestry)
		actual, _ := s.cache.LoadOrStore(typeName, ps)
		return actual, nil
	})
	if err != nil {
		return nil, err
	}

	ps := v.(*PropertySchema)
	ctxlog.FromContext(ctx).Debug("Schema extracted.", "type", typeName, "properties", len(ps.properties), "shared", shared)
	return ps, nil
}

// Clear drops every cached schema.
func (s *Store) Clear() {
	s.cache.Range(func(key, _ any) bool {
		s.cache.Delete(key)
		return true
	})
}
