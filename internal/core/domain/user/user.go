package user

import (
	c "passreset/internal/core/domain/common"
	e "passreset/internal/core/domain/errors"
	"time"
)

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

// User is identified by its email. The pending password reset lives on the
// user record itself, there is no separate table of outstanding tokens.
type User struct {
	Email         c.Email
	Name          string
	PasswordHash  PasswordHash
	CreatedAt     time.Time
	PasswordReset c.Optional[PasswordReset]
}

func (u *User) Validate() error {
	if u.Email == "" {
		return e.NewInvalidStateError("email is not defined for user created at %v", u.CreatedAt)
	}
	if u.PasswordHash == "" {
		return e.NewInvalidStateError("password hash is not set for user %s", u.Email)
	}
	if u.PasswordReset.IsPresent && u.PasswordReset.Value.TokenHash == "" {
		return e.NewInvalidStateError("password reset token hash is empty for user %s", u.Email)
	}
	return nil
}

func (u *User) HasPendingPasswordReset() bool {
	return u.PasswordReset.IsPresent
}
