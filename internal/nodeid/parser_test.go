package nodeid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name         string
		rawID        string
		expectErr    bool
		expectedAddr *Address
	}{
		{
			name:  "simple path",
			rawID: "a.b.c",
			expectedAddr: &Address{
				Path: []PathSegment{NewPathSegment("a"), NewPathSegment("b"), NewPathSegment("c")},
			},
		},
		{
			name:  "ordinal child",
			rawID: "components.0",
			expectedAddr: &Address{
				Path: []PathSegment{NewPathSegment("components"), NewPathSegment("0")},
			},
		},
		{
			name:  "multi-level path with index",
			rawID: "db.users[0].posts[15]",
			expectedAddr: &Address{
				Path: []PathSegment{NewPathSegment("db"), NewPathSegmentWithIndex("users", 0), NewPathSegmentWithIndex("posts", 15)},
			},
		},
		{
			name:      "error - empty path segment",
			rawID:     "a..b",
			expectErr: true,
		},
		{
			name:      "error - invalid segment format",
			rawID:     "a.b[x]",
			expectErr: true,
		},
		{
			name:      "error - empty string",
			rawID:     "",
			expectErr: true,
		},
		{
			name:      "error - invalid segment name hyphen",
			rawID:     "a.b.-.c",
			expectErr: true,
		},
		{
			name:      "error - just dot",
			rawID:     ".",
			expectErr: true,
		},
		{
			name:      "error - just double dot",
			rawID:     "..",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			addr, err := Parse(tc.rawID)

			if tc.expectErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, addr)
			assert.True(t, tc.expectedAddr.Equal(addr), "Parsed address does not match expected address")
		})
	}
}

func TestMustParse_PanicsOnMalformedInput(t *testing.T) {
	assert.Panics(t, func() { MustParse("a..b") })
	assert.NotPanics(t, func() { MustParse("a.b") })
}
