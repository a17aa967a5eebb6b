package user

import (
	"errors"
)

var (
	ErrUserDoesNotExist          = errors.New("user does not exist")
	ErrPasswordResetNotRequested = errors.New("password reset has not been requested")
	ErrPasswordResetTokenExpired = errors.New("password reset token has expired")
	ErrInvalidPasswordResetToken = errors.New("invalid password reset token")
)
