package graph

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/specialistvlad/modelgrid/internal/inmemorystore"
	"github.com/specialistvlad/modelgrid/internal/inmemorytopology"
	"github.com/specialistvlad/modelgrid/internal/modelerr"
	"github.com/specialistvlad/modelgrid/internal/node"
	"github.com/specialistvlad/modelgrid/internal/nodeid"
	"github.com/specialistvlad/modelgrid/internal/typedesc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

// createTestGraph creates a graph manager with in-memory stores for testing.
func createTestGraph() *Manager {
	return New(inmemorytopology.New(), inmemorystore.New())
}

// addCollection is a helper that adds a collection host at id.
func addCollection(t *testing.T, g Graph, id string, elementType string) nodeid.Address {
	t.Helper()
	addr := nodeid.MustParse(id)
	require.NoError(t, g.AddNode(context.Background(), node.NewCollection(addr, typedesc.TypeRef(elementType))))
	return addr
}

func TestManager_CreateChild(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	g := createTestGraph()
	ctx := context.Background()
	host := addCollection(t, g, "components", "Component")

	// --- Act ---
	child, err := g.CreateChild(ctx, host, "0", "Component", "rule components")

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "components.0", child.ID())
	assert.Equal(t, host, child.Parent())
	assert.Equal(t, "rule components", child.CreatedBy)

	children, err := g.Children(ctx, host)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Same(t, child, children[0])

	_, err = g.CreateChild(ctx, host, "0", "Component", "")
	assert.ErrorContains(t, err, "already exists")
}

func TestManager_Properties(t *testing.T) {
	t.Parallel()

	g := createTestGraph()
	ctx := context.Background()
	host := addCollection(t, g, "components", "Component")
	child, err := g.CreateChild(ctx, host, "0", "Component", "")
	require.NoError(t, err)

	val, err := g.Property(ctx, child.Address(), "name")
	require.NoError(t, err)
	assert.True(t, val.IsNull(), "unset properties read as null")

	require.NoError(t, g.SetProperty(ctx, child.Address(), "name", cty.StringVal("core")))
	val, err = g.Property(ctx, child.Address(), "name")
	require.NoError(t, err)
	assert.Equal(t, "core", val.AsString())

	props, err := g.Properties(ctx, child.Address())
	require.NoError(t, err)
	assert.Len(t, props, 1)
}

func TestManager_MissingNode(t *testing.T) {
	t.Parallel()

	g := createTestGraph()
	ctx := context.Background()
	missing := nodeid.MustParse("nowhere.0")

	_, err := g.Property(ctx, missing, "name")
	assert.ErrorIs(t, err, modelerr.ErrNotFound)
	assert.ErrorIs(t, g.SetProperty(ctx, missing, "name", cty.StringVal("x")), modelerr.ErrNotFound)
	_, err = g.Properties(ctx, missing)
	assert.ErrorIs(t, err, modelerr.ErrNotFound)
	assert.ErrorIs(t, g.RemoveNode(ctx, missing), modelerr.ErrNotFound)
}

func TestManager_RemoveNodeDropsValues(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	g := createTestGraph()
	ctx := context.Background()
	host := addCollection(t, g, "components", "Component")
	child, err := g.CreateChild(ctx, host, "0", "Component", "")
	require.NoError(t, err)
	require.NoError(t, g.SetProperty(ctx, child.Address(), "name", cty.StringVal("core")))

	// --- Act ---
	require.NoError(t, g.RemoveNode(ctx, host))

	// --- Assert ---
	_, ok := g.Node(ctx, child.Address())
	assert.False(t, ok)
	assert.Empty(t, g.AllNodes(ctx))

	// Re-creating the same address starts from a clean slate.
	host = addCollection(t, g, "components", "Component")
	again, err := g.CreateChild(ctx, host, "0", "Component", "")
	require.NoError(t, err)
	val, err := g.Property(ctx, again.Address(), "name")
	require.NoError(t, err)
	assert.True(t, val.IsNull())
}

func TestManager_ConcurrentSubtrees(t *testing.T) {
	t.Parallel()

	g := createTestGraph()
	ctx := context.Background()
	hosts := []nodeid.Address{
		addCollection(t, g, "a", "Component"),
		addCollection(t, g, "b", "Component"),
		addCollection(t, g, "c", "Component"),
	}

	var wg sync.WaitGroup
	for _, host := range hosts {
		wg.Add(1)
		go func(host nodeid.Address) {
			defer wg.Done()
			for i := range 20 {
				child, err := g.CreateChild(ctx, host, strconv.Itoa(i), "Component", "")
				if !assert.NoError(t, err) {
					return
				}
				assert.NoError(t, g.SetProperty(ctx, child.Address(), "i", cty.NumberIntVal(int64(i))))
			}
		}(host)
	}
	wg.Wait()

	assert.Len(t, g.AllNodes(ctx), 3+3*20)
}
