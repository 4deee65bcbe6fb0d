package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapError(t *testing.T) {
	base := errors.New("boom")
	wrapped := WrapError(base, "context")
	require.Error(t, wrapped)
	assert.Equal(t, "context: boom", wrapped.Error())
	assert.ErrorIs(t, wrapped, base)

	assert.Nil(t, WrapError(nil, "context"))
}

func TestWrapErrorf(t *testing.T) {
	base := errors.New("boom")
	wrapped := WrapErrorf(base, "fetching %s", "octo/widgets")
	assert.Equal(t, "fetching octo/widgets: boom", wrapped.Error())
	assert.ErrorIs(t, wrapped, base)
}

func TestNotFoundError(t *testing.T) {
	cause := errors.New("404")
	err := NotFoundError("repo lookup", cause)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, cause)

	err = NotFoundError("repo lookup", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTransientError(t *testing.T) {
	err := TransientError("store append", errors.New("timeout"))
	assert.ErrorIs(t, err, ErrTransient)
	assert.Contains(t, err.Error(), "store append")
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("concurrency", 500, "must be at most 64")
	assert.Contains(t, err.Error(), "concurrency")
	assert.Contains(t, err.Error(), "must be at most 64")
}
