package modelerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_MatchSentinels(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		err      error
		sentinel error
		message  string
	}{
		{
			name:     "not found with scope",
			err:      &NotFoundError{Kind: "property", Name: "size", Scope: "type Component"},
			sentinel: ErrNotFound,
			message:  "property 'size' not found in type Component",
		},
		{
			name:     "not found without scope",
			err:      &NotFoundError{Kind: "node", Name: "a.b"},
			sentinel: ErrNotFound,
			message:  "node 'a.b' not found",
		},
		{
			name:     "invalid state",
			err:      &InvalidStateError{View: "Collection<Component> 'components'", Reason: "view is closed"},
			sentinel: ErrInvalidState,
			message:  "attempt to modify Collection<Component> 'components': view is closed",
		},
		{
			name:     "type mismatch",
			err:      &TypeMismatchError{Node: "components", Declared: "Component", Requested: "Task"},
			sentinel: ErrTypeMismatch,
			message:  "node 'components' holds elements of type Component, which cannot be viewed as Task",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := fmt.Errorf("rule 'r1' failed: %w", tc.err)
			assert.ErrorIs(t, wrapped, tc.sentinel)
			assert.EqualError(t, tc.err, tc.message)
		})
	}

	assert.False(t, errors.Is(&NotFoundError{}, ErrInvalidState))
}
