package errors

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNilArgumentError(t *testing.T) {
	err := NewNilArgumentError("unitOfWork")
	require.EqualError(t, err, "argument 'unitOfWork' must not be nil")
}

func TestInvalidStateError(t *testing.T) {
	err := NewInvalidStateError("password hash is not set for user %s", "test@test.test")
	require.EqualError(t, err, "invalid state: password hash is not set for user test@test.test")
}
