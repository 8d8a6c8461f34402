package schema

import (
	"context"
	"sync"
	"testing"

	"github.com/specialistvlad/modelgrid/internal/modelerr"
	"github.com/specialistvlad/modelgrid/internal/typedesc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	u := typedesc.New()
	require.NoError(t, u.Add(baseType()))
	require.NoError(t, u.Add(&typedesc.Type{
		Name:    "Sub",
		Super:   "Base",
		Methods: []typedesc.Method{get("Sub", "getExtra", typedesc.Bool)},
	}))
	require.NoError(t, u.Validate())
	return NewStore(u)
}

func TestStore_SchemaForMemoizes(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.SchemaFor(ctx, "Sub")
	require.NoError(t, err)
	second, err := store.SchemaFor(ctx, "Sub")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, []string{"extra", "prop", "readOnly", "writeOnly"}, first.PropertyNames())
}

func TestStore_Clear(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.SchemaFor(ctx, "Base")
	require.NoError(t, err)
	store.Clear()
	second, err := store.SchemaFor(ctx, "Base")
	require.NoError(t, err)

	assert.NotSame(t, first, second, "cleared schemas are extracted again")
	assert.True(t, first.Equal(second))
}

func TestStore_UnknownType(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	_, err := store.SchemaFor(context.Background(), "Nope")

	assert.ErrorIs(t, err, modelerr.ErrNotFound)
}

func TestStore_ConcurrentFirstRequests(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()

	const workers = 16
	results := make([]*PropertySchema, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ps, err := store.SchemaFor(ctx, "Sub")
			assert.NoError(t, err)
			results[i] = ps
		}(i)
	}
	wg.Wait()

	for _, ps := range results[1:] {
		assert.Same(t, results[0], ps)
	}
}
