package view

import (
	"context"
	"testing"

	"github.com/specialistvlad/modelgrid/internal/config"
	"github.com/specialistvlad/modelgrid/internal/graph"
	"github.com/specialistvlad/modelgrid/internal/initializer"
	"github.com/specialistvlad/modelgrid/internal/inmemorystore"
	"github.com/specialistvlad/modelgrid/internal/inmemorytopology"
	"github.com/specialistvlad/modelgrid/internal/modelerr"
	"github.com/specialistvlad/modelgrid/internal/node"
	"github.com/specialistvlad/modelgrid/internal/nodeid"
	"github.com/specialistvlad/modelgrid/internal/schema"
	"github.com/specialistvlad/modelgrid/internal/typedesc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

type fixture struct {
	opts Options
	host nodeid.Address
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	defaultSize := cty.NumberIntVal(1)
	u, err := typedesc.NewUniverse([]*config.TypeDefinition{
		{
			Name: "Component",
			Fields: []*config.FieldDefinition{
				{Name: "name", Type: "string"},
				{Name: "size", Type: "number", Default: &defaultSize},
				{Name: "id", Type: "string", ReadOnly: true},
			},
			Methods: []*config.MethodDefinition{
				{Name: "setSize", Params: []string{"string"}},
				{Name: "setSecret", Params: []string{"string"}},
			},
		},
		{Name: "Library", Extends: "Component", Fields: []*config.FieldDefinition{{Name: "shared", Type: "bool"}}},
		{Name: "Task"},
	})
	require.NoError(t, err)

	store := schema.NewStore(u)
	g := graph.New(inmemorytopology.New(), inmemorystore.New())
	host := nodeid.MustParse("components")
	require.NoError(t, g.AddNode(context.Background(), node.NewCollection(host, "Component")))

	return &fixture{
		opts: Options{Graph: g, Schemas: store, Initializers: initializer.NewRegistry(store)},
		host: host,
	}
}

func (f *fixture) view(writable bool) *CollectionView {
	return NewCollectionView(f.opts, f.host, "Component", "rule components", writable)
}

func TestCollectionView_AppendThenIterate(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	f := newFixture(t)
	ctx := context.Background()
	v := f.view(true)

	// --- Act ---
	first, err := v.Append(ctx, "")
	require.NoError(t, err)
	second, err := v.Append(ctx, "Library")
	require.NoError(t, err)

	// --- Assert ---
	elements, err := v.Iterate(ctx)
	require.NoError(t, err)
	require.Len(t, elements, 2)
	assert.Equal(t, first.Address(), elements[0].Address())
	assert.Equal(t, second.Address(), elements[1].Address())
	assert.Equal(t, "components.1", second.String())

	n, err := v.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	ps, err := second.Schema(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Library", ps.TypeName())
	assert.Equal(t, "Collection<Component> 'components'", v.String())
}

func TestCollectionView_AppendAfterClose(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	v := f.view(true)
	_, err := v.Append(ctx, "")
	require.NoError(t, err)

	v.Close()
	v.Close()

	_, err = v.Append(ctx, "")
	assert.ErrorIs(t, err, modelerr.ErrInvalidState)

	elements, err := v.Iterate(ctx)
	require.NoError(t, err, "iteration stays legal after close")
	assert.Len(t, elements, 1)
}

func TestCollectionView_ReadOnly(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	writer := f.view(true)
	el, err := writer.Append(ctx, "")
	require.NoError(t, err)

	reader := f.view(false)
	_, err = reader.Append(ctx, "")
	assert.ErrorContains(t, err, "view is read-only")

	elements, err := reader.Iterate(ctx)
	require.NoError(t, err)
	require.Len(t, elements, 1)
	assert.ErrorIs(t, elements[0].Set(ctx, "name", cty.StringVal("x")), modelerr.ErrInvalidState)

	// Writes made through another view are visible.
	require.NoError(t, el.Set(ctx, "name", cty.StringVal("core")))
	val, err := elements[0].Get(ctx, "name")
	require.NoError(t, err)
	assert.Equal(t, "core", val.AsString())
}

func TestCollectionView_AppendRejectsUnrelatedType(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	_, err := f.view(true).Append(context.Background(), "Task")

	assert.ErrorIs(t, err, modelerr.ErrTypeMismatch)
}

func TestCollectionView_OrdinalsSkipTakenNames(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	_, err := f.opts.Graph.CreateChild(ctx, f.host, "1", "Component", "")
	require.NoError(t, err)

	el, err := f.view(true).Append(ctx, "")

	require.NoError(t, err)
	assert.Equal(t, "components.2", el.String())
}

func TestElement_GetAndSet(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	f := newFixture(t)
	ctx := context.Background()
	el, err := f.view(true).Append(ctx, "")
	require.NoError(t, err)

	// --- Act & Assert ---
	size, err := el.Get(ctx, "size")
	require.NoError(t, err)
	assert.True(t, size.RawEquals(cty.NumberIntVal(1)), "declared default")

	require.NoError(t, el.Set(ctx, "size", cty.NumberIntVal(4)))
	size, _ = el.Get(ctx, "size")
	assert.True(t, size.RawEquals(cty.NumberIntVal(4)))

	// The string overload of setSize is an exact match.
	require.NoError(t, el.Set(ctx, "size", cty.StringVal("large")))
	size, _ = el.Get(ctx, "size")
	assert.True(t, size.RawEquals(cty.StringVal("large")))

	// A bool converts to the first convertible overload.
	require.NoError(t, el.Set(ctx, "name", cty.True))
	name, _ := el.Get(ctx, "name")
	assert.True(t, name.RawEquals(cty.StringVal("true")))

	assert.ErrorIs(t, el.Set(ctx, "id", cty.StringVal("x")), modelerr.ErrInvalidState, "read-only property")
	_, err = el.Get(ctx, "secret")
	assert.ErrorContains(t, err, "write-only")
	_, err = el.Get(ctx, "missing")
	assert.ErrorIs(t, err, modelerr.ErrNotFound)
	assert.Error(t, el.Set(ctx, "size", cty.ListValEmpty(cty.String)))
}

func TestElement_RemovedNode(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	el, err := f.view(true).Append(ctx, "")
	require.NoError(t, err)

	require.NoError(t, f.opts.Graph.RemoveNode(ctx, el.Address()))

	_, err = el.Get(ctx, "name")
	assert.ErrorIs(t, err, modelerr.ErrNotFound)
	_, err = el.Value(ctx)
	assert.ErrorIs(t, err, modelerr.ErrNotFound)
}

func TestElement_ValueAndDecode(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	el, err := f.view(true).Append(ctx, "")
	require.NoError(t, err)
	require.NoError(t, el.Set(ctx, "name", cty.StringVal("core")))
	require.NoError(t, f.opts.Graph.SetProperty(ctx, el.Address(), "id", cty.StringVal("c-1")))

	val, err := el.Value(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"id", "name", "size"}, attrNames(val), "write-only properties are not part of the value")

	var decoded struct {
		ID   string `cty:"id"`
		Name string `cty:"name"`
		Size int    `cty:"size"`
	}
	require.NoError(t, el.Decode(ctx, &decoded))
	assert.Equal(t, "c-1", decoded.ID)
	assert.Equal(t, "core", decoded.Name)
	assert.Equal(t, 1, decoded.Size)
}

func attrNames(v cty.Value) []string {
	var out []string
	for name := range v.Type().AttributeTypes() {
		out = append(out, name)
	}
	return out
}
