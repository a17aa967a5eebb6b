package user

import (
	"context"
	c "passreset/internal/core/domain/common"
)

// UserRepository is the user record store. Every method touches a single
// user record; read-modify-write sequences must run inside a unit of work
// and load the record with GetByEmailWithLock.
type UserRepository interface {
	GetByEmail(ctx context.Context, email c.Email) (User, error)
	GetByEmailWithLock(ctx context.Context, email c.Email) (User, error)
	SetPasswordReset(ctx context.Context, email c.Email, reset PasswordReset) error
	ClearPasswordReset(ctx context.Context, email c.Email) error
	SetPassword(ctx context.Context, email c.Email, password PasswordHash) error
}
