package typedesc

import (
	"testing"

	"github.com/specialistvlad/modelgrid/internal/modelerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(types []*Type) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = t.Name
	}
	return out
}

func mustUniverse(t *testing.T, types ...*Type) *Universe {
	t.Helper()
	u := New()
	for _, ty := range types {
		require.NoError(t, u.Add(ty))
	}
	require.NoError(t, u.Validate())
	return u
}

func TestUniverse_AncestryOrder(t *testing.T) {
	// --- Arrange ---
	// Buildable <- Named, Versioned <- Named; Base implements Versioned;
	// Library extends Base and implements Buildable.
	u := mustUniverse(t,
		&Type{Name: "Named", Interface: true},
		&Type{Name: "Versioned", Interface: true, Interfaces: []string{"Named"}},
		&Type{Name: "Buildable", Interface: true, Interfaces: []string{"Named"}},
		&Type{Name: "Base", Interfaces: []string{"Versioned"}},
		&Type{Name: "Library", Super: "Base", Interfaces: []string{"Buildable"}},
	)

	// --- Act ---
	ancestry, err := u.Ancestry("Library")

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, []string{"Library", "Base", "Buildable", "Versioned", "Named"}, names(ancestry))
}

func TestUniverse_AncestryOfInterface(t *testing.T) {
	u := mustUniverse(t,
		&Type{Name: "Named", Interface: true},
		&Type{Name: "Described", Interface: true, Interfaces: []string{"Named"}},
	)

	ancestry, err := u.Ancestry("Described")
	require.NoError(t, err)
	assert.Equal(t, []string{"Described", "Named"}, names(ancestry))
}

func TestUniverse_AncestryUnknownType(t *testing.T) {
	u := New()

	_, err := u.Ancestry("Missing")

	require.Error(t, err)
	assert.ErrorIs(t, err, modelerr.ErrNotFound)
}

func TestUniverse_Add(t *testing.T) {
	u := New()
	require.NoError(t, u.Add(&Type{Name: "Component"}))

	assert.ErrorContains(t, u.Add(&Type{Name: "Component"}), "declared more than once")
	assert.ErrorContains(t, u.Add(&Type{Name: "string"}), "reserved")
	assert.Error(t, u.Add(&Type{}))
	assert.Equal(t, []string{"Component"}, u.Names())
}

func TestUniverse_Validate(t *testing.T) {
	testCases := []struct {
		name        string
		types       []*Type
		errContains string
	}{
		{
			name:        "unknown superclass",
			types:       []*Type{{Name: "A", Super: "Missing"}},
			errContains: "extends unknown type 'Missing'",
		},
		{
			name:        "class extends interface",
			types:       []*Type{{Name: "I", Interface: true}, {Name: "A", Super: "I"}},
			errContains: "cannot extend interface 'I'",
		},
		{
			name:        "interface extends class",
			types:       []*Type{{Name: "A"}, {Name: "I", Interface: true, Super: "A"}},
			errContains: "interface 'I' cannot extend a class",
		},
		{
			name:        "implements a class",
			types:       []*Type{{Name: "A"}, {Name: "B", Interfaces: []string{"A"}}},
			errContains: "which is not an interface",
		},
		{
			name:        "implements unknown interface",
			types:       []*Type{{Name: "B", Interfaces: []string{"Nope"}}},
			errContains: "unknown interface 'Nope'",
		},
		{
			name:        "superclass cycle",
			types:       []*Type{{Name: "A", Super: "B"}, {Name: "B", Super: "A"}},
			errContains: "inheritance cycle",
		},
		{
			name: "interface cycle",
			types: []*Type{
				{Name: "I", Interface: true, Interfaces: []string{"J"}},
				{Name: "J", Interface: true, Interfaces: []string{"I"}},
			},
			errContains: "inheritance cycle",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			u := New()
			for _, ty := range tc.types {
				require.NoError(t, u.Add(ty))
			}
			assert.ErrorContains(t, u.Validate(), tc.errContains)
		})
	}
}

func TestUniverse_IsAssignable(t *testing.T) {
	u := mustUniverse(t,
		&Type{Name: "Named", Interface: true},
		&Type{Name: "Component", Interfaces: []string{"Named"}},
		&Type{Name: "Library", Super: "Component"},
		&Type{Name: "Task"},
	)

	assert.True(t, u.IsAssignable("Library", "Library"))
	assert.True(t, u.IsAssignable("Library", "Component"))
	assert.True(t, u.IsAssignable("Library", "Named"))
	assert.False(t, u.IsAssignable("Component", "Library"))
	assert.False(t, u.IsAssignable("Task", "Named"))
	assert.False(t, u.IsAssignable("Missing", "Named"))
}
