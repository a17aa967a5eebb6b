// Package outcome turns the results of the password reset services into the
// values callers branch on: either success or one of a fixed set of failure
// messages.
package outcome

import (
	"errors"
	"passreset/internal/core/domain/user"
)

const (
	MsgUnknownUser      = "Unknown user"
	MsgNoRequestPending = "No password reset request done"
	MsgTokenExpired     = "Token has expired"
	MsgTokenInvalid     = "Token is invalid"
)

type Outcome struct {
	OK    bool
	Error string
}

func Success() Outcome {
	return Outcome{OK: true}
}

func Failure(msg string) Outcome {
	return Outcome{OK: false, Error: msg}
}

// FromError maps err to an outcome. Errors that are not expected business
// failures are returned unchanged together with a zero Outcome.
func FromError(err error) (Outcome, error) {
	switch {
	case err == nil:
		return Success(), nil
	case errors.Is(err, user.ErrUserDoesNotExist):
		return Failure(MsgUnknownUser), nil
	case errors.Is(err, user.ErrPasswordResetNotRequested):
		return Failure(MsgNoRequestPending), nil
	case errors.Is(err, user.ErrPasswordResetTokenExpired):
		return Failure(MsgTokenExpired), nil
	case errors.Is(err, user.ErrInvalidPasswordResetToken):
		return Failure(MsgTokenInvalid), nil
	default:
		return Outcome{}, err
	}
}
