package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	t.Run("matches outer code", func(t *testing.T) {
		err := New(CodeInvariantViolation, "credentials already registered")
		assert.True(t, HasCode(err, CodeInvariantViolation))
		assert.False(t, HasCode(err, CodeInternal))
	})

	t.Run("matches inner code through wrapping", func(t *testing.T) {
		inner := New(CodeInvalidInput, "bad document type")
		err := Wrap(inner, CodeValidation, "basic info rejected")
		assert.True(t, HasCode(err, CodeValidation))
		assert.True(t, HasCode(err, CodeInvalidInput))
	})

	t.Run("matches through fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("controller: %w", New(CodeConflict, "busy"))
		assert.True(t, Is(err, CodeConflict))
	})

	t.Run("plain errors carry no code", func(t *testing.T) {
		assert.False(t, HasCode(errors.New("boom"), CodeInternal))
		assert.False(t, HasCode(nil, CodeInternal))
	})
}

func TestWrap(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, CodeInternal, "unused"))
	})

	t.Run("message includes cause", func(t *testing.T) {
		cause := errors.New("graph rejected")
		err := Wrap(cause, CodeInternal, "failed to build screen graph")
		assert.Equal(t, "failed to build screen graph: graph rejected", err.Error())
		assert.ErrorIs(t, err, cause)
	})
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeNotFound, CodeOf(New(CodeNotFound, "missing")))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("uncoded")))
}
