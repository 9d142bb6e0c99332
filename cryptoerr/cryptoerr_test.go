package cryptoerr

import (
	"errors"
	"io"
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
)

func TestSentinels(t *testing.T) {
	err := Invalid("symm", "undersized key: %d bytes", 3)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.NotErrorIs(t, err, ErrPrimitive)

	oopsErr, ok := oops.AsOops(err)
	assert.True(t, ok)
	assert.Equal(t, "symm", oopsErr.Domain())
	assert.EqualValues(t, CodeInvalidInput, oopsErr.Code())
}

func TestPrimitiveKeepsCause(t *testing.T) {
	cause := errors.New("bad padding")
	err := Primitive("asymm", cause, "decrypt")
	assert.ErrorIs(t, err, ErrPrimitive)
	assert.ErrorIs(t, err, cause)
}

func TestTransient(t *testing.T) {
	entropy := Entropy("random", io.ErrUnexpectedEOF, "reseed")
	assert.True(t, IsTransient(entropy))
	assert.ErrorIs(t, entropy, io.ErrUnexpectedEOF)

	exhausted := Exhausted("asymm", 3, entropy)
	assert.ErrorIs(t, exhausted, ErrRetriesExhausted)
	assert.False(t, IsTransient(exhausted))

	assert.False(t, IsTransient(Primitive("sign", nil, "x")))
	assert.False(t, IsTransient(nil))
}
