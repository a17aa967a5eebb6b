package user

import (
	"context"
	c "passreset/internal/core/domain/common"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestUserValidate(t *testing.T) {
	cases := []struct {
		id      string
		user    User
		isValid bool
	}{
		{
			id:      "valid without reset",
			user:    User{Email: "test@test.test", PasswordHash: "hash"},
			isValid: true,
		},
		{
			id: "valid with reset",
			user: User{
				Email:         "test@test.test",
				PasswordHash:  "hash",
				PasswordReset: c.Some(NewPasswordReset("token-hash", time.Now())),
			},
			isValid: true,
		},
		{
			id:      "no email",
			user:    User{PasswordHash: "hash"},
			isValid: false,
		},
		{
			id:      "no password hash",
			user:    User{Email: "test@test.test"},
			isValid: false,
		},
		{
			id: "empty reset token hash",
			user: User{
				Email:         "test@test.test",
				PasswordHash:  "hash",
				PasswordReset: c.Some(NewPasswordReset("", time.Now())),
			},
			isValid: false,
		},
	}
	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			err := testcase.user.Validate()
			if testcase.isValid {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}

func TestFakeUserRepositoryReplacesPasswordReset(t *testing.T) {
	ctx := context.Background()
	repo := NewFakeUserRepository()
	repo.Users = []User{{Email: "test@test.test", PasswordHash: "hash"}}

	first := NewPasswordReset("first", EXPIRES_AT)
	second := NewPasswordReset("second", EXPIRES_AT.Add(time.Hour))
	require.NoError(t, repo.SetPasswordReset(ctx, "test@test.test", first))
	require.NoError(t, repo.SetPasswordReset(ctx, "test@test.test", second))

	u, err := repo.GetByEmail(ctx, "test@test.test")
	require.NoError(t, err)
	require.True(t, u.HasPendingPasswordReset())
	require.Equal(t, second, u.PasswordReset.Value)

	require.NoError(t, repo.ClearPasswordReset(ctx, "test@test.test"))
	u, err = repo.GetByEmail(ctx, "test@test.test")
	require.NoError(t, err)
	require.False(t, u.HasPendingPasswordReset())

	require.ErrorIs(t, repo.ClearPasswordReset(ctx, "other@test.test"), ErrUserDoesNotExist)
}
