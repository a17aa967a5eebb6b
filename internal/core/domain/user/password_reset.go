package user

import (
	"context"
	"crypto/subtle"
	"time"
)

type PasswordResetToken string

func (t PasswordResetToken) String() string {
	return "***"
}

type PasswordResetTokenHash string

type PasswordReset struct {
	TokenHash PasswordResetTokenHash
	ExpiresAt time.Time
}

func NewPasswordReset(tokenHash PasswordResetTokenHash, expiresAt time.Time) PasswordReset {
	return PasswordReset{TokenHash: tokenHash, ExpiresAt: expiresAt}
}

// IsExpiredAt reports whether the reset is no longer usable at the given
// instant. The expiry instant itself is still valid.
func (r PasswordReset) IsExpiredAt(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

func (r PasswordReset) Matches(tokenHash PasswordResetTokenHash) bool {
	return subtle.ConstantTimeCompare([]byte(r.TokenHash), []byte(tokenHash)) == 1
}

type PasswordResetTokenMinter interface {
	GenerateToken() (PasswordResetToken, PasswordResetTokenHash)
	HashToken(token PasswordResetToken) PasswordResetTokenHash
}

type PasswordResetTokenSender interface {
	SendPasswordResetToken(ctx context.Context, u User, token PasswordResetToken, expiresAt time.Time) error
}
