package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_WrapsKind(t *testing.T) {
	errBatchNotFound := New(ErrNotFound, "batch not found")
	wrapped := fmt.Errorf("checkout: %w", errBatchNotFound)

	assert.True(t, errors.Is(wrapped, errBatchNotFound))
	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.False(t, errors.Is(wrapped, ErrConflict))
	assert.Equal(t, "batch not found", errBatchNotFound.Error())
}

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{New(ErrInvalidInput, "bad"), "invalid_input"},
		{New(ErrNotFound, "missing"), "not_found"},
		{New(ErrStaleReference, "stale"), "stale_reference"},
		{New(ErrInvalidState, "paused"), "invalid_state"},
		{New(ErrConflict, "twice"), "conflict"},
		{ErrOptimisticLock, "conflict"},
		{errors.New("boom"), "internal"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, KindOf(tc.err))
	}
}
