package outcome

import (
	"context"
	"fmt"
	"passreset/internal/core/domain/user"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromError(t *testing.T) {
	cases := []struct {
		id       string
		err      error
		expected Outcome
	}{
		{id: "success", err: nil, expected: Outcome{OK: true}},
		{id: "unknown user", err: user.ErrUserDoesNotExist, expected: Outcome{Error: "Unknown user"}},
		{
			id:       "no request",
			err:      user.ErrPasswordResetNotRequested,
			expected: Outcome{Error: "No password reset request done"},
		},
		{id: "expired", err: user.ErrPasswordResetTokenExpired, expected: Outcome{Error: "Token has expired"}},
		{id: "invalid", err: user.ErrInvalidPasswordResetToken, expected: Outcome{Error: "Token is invalid"}},
		{
			id:       "wrapped",
			err:      fmt.Errorf("confirm: %w", user.ErrInvalidPasswordResetToken),
			expected: Outcome{Error: "Token is invalid"},
		},
	}
	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			actual, err := FromError(testcase.err)
			require.NoError(t, err)
			require.Equal(t, testcase.expected, actual)
		})
	}
}

func TestFromErrorPassesThroughFaults(t *testing.T) {
	faults := []error{fmt.Errorf("connection refused"), context.Canceled}
	for _, fault := range faults {
		actual, err := FromError(fault)
		require.ErrorIs(t, err, fault)
		require.Equal(t, Outcome{}, actual)
	}
}
