package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCarriesTypeAndStack(t *testing.T) {
	err := New(ErrorTypeInvalidValue, "bad cell")

	assert.Equal(t, ErrorTypeInvalidValue, err.Type)
	assert.Contains(t, err.Error(), "invalid_value")
	assert.Contains(t, err.Error(), "bad cell")
	assert.NotEmpty(t, err.Stack)
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("parse failed")
	err := Wrap(cause, ErrorTypeInvalidValue, "cannot stage value")

	require.NotNil(t, err)
	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, stderrors.Is(err, cause))
	assert.Contains(t, err.Error(), "parse failed")
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrorTypeData, "no-op"))
}

func TestIsType(t *testing.T) {
	err := Newf(ErrorTypeDuplicateColumn, "column %q already declared", "id")

	assert.True(t, IsType(err, ErrorTypeDuplicateColumn))
	assert.False(t, IsType(err, ErrorTypeTooManyValues))
	assert.False(t, IsType(stderrors.New("plain"), ErrorTypeDuplicateColumn))
}

func TestIsTypeSeesThroughWrapping(t *testing.T) {
	inner := New(ErrorTypeCapability, "feature disabled")
	outer := Wrap(inner, ErrorTypeData, "staging row failed")

	// The outer type wins; the inner remains reachable via errors.As.
	assert.True(t, IsType(outer, ErrorTypeData))

	var e *Error
	require.True(t, stderrors.As(outer.Unwrap(), &e))
	assert.Equal(t, ErrorTypeCapability, e.Type)
}

func TestWithDetail(t *testing.T) {
	err := New(ErrorTypeTooManyValues, "row too wide").
		WithDetail("values", 3).
		WithDetail("columns", 2)

	assert.Equal(t, 3, err.Details["values"])
	assert.Equal(t, 2, err.Details["columns"])
}

func TestNothingIsRetryable(t *testing.T) {
	assert.False(t, IsRetryable(New(ErrorTypeInvalidValue, "x")))
	assert.False(t, IsRetryable(stderrors.New("plain")))
}
