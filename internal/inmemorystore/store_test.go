package inmemorystore

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/specialistvlad/modelgrid/internal/nodeid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestStore_PropertyRoundTrip(t *testing.T) {
	t.Parallel()
	s := New()
	ctx := context.Background()
	id := nodeid.MustParse("components.0")

	_, ok, err := s.GetProperty(ctx, id, "name")
	require.NoError(t, err)
	assert.False(t, ok, "unset properties are reported as missing")

	require.NoError(t, s.SetProperty(ctx, id, "name", cty.StringVal("core")))
	val, ok, err := s.GetProperty(ctx, id, "name")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, val.RawEquals(cty.StringVal("core")))
}

func TestStore_PropertiesIsACopy(t *testing.T) {
	t.Parallel()
	s := New()
	ctx := context.Background()
	id := nodeid.MustParse("components.0")
	require.NoError(t, s.SetProperty(ctx, id, "size", cty.NumberIntVal(1)))

	props, err := s.Properties(ctx, id)
	require.NoError(t, err)
	props["size"] = cty.NumberIntVal(99)

	val, _, _ := s.GetProperty(ctx, id, "size")
	assert.True(t, val.RawEquals(cty.NumberIntVal(1)))
}

func TestStore_DeleteNode(t *testing.T) {
	t.Parallel()
	s := New()
	ctx := context.Background()
	id := nodeid.MustParse("components.0")
	require.NoError(t, s.SetProperty(ctx, id, "size", cty.NumberIntVal(1)))

	require.NoError(t, s.DeleteNode(ctx, id))

	props, err := s.Properties(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, props)
}

func TestStore_ConcurrentWrites(t *testing.T) {
	t.Parallel()
	s := New()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := nodeid.MustParse(fmt.Sprintf("components.%d", i%5))
			assert.NoError(t, s.SetProperty(ctx, id, fmt.Sprintf("p%d", i), cty.NumberIntVal(int64(i))))
		}(i)
	}
	wg.Wait()

	total := 0
	for i := range 5 {
		props, err := s.Properties(ctx, nodeid.MustParse(fmt.Sprintf("components.%d", i)))
		require.NoError(t, err)
		total += len(props)
	}
	assert.Equal(t, 50, total)
}
