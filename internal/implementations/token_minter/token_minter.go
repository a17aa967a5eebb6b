package tokenminter

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"passreset/internal/core/domain/user"
)

// TokenSize is the number of random bytes behind every password reset token.
const TokenSize = 32

// HMAC mints password reset tokens from crypto/rand and digests them with
// HMAC-SHA256, so a leaked digest can't be checked offline without the key.
type HMAC struct {
	secretKey []byte
	random    io.Reader
}

func NewHMAC(secretKey string) *HMAC {
	return &HMAC{secretKey: []byte(secretKey), random: rand.Reader}
}

// GenerateToken panics if the entropy source fails. There is no fallback to
// a weaker source.
func (h *HMAC) GenerateToken() (user.PasswordResetToken, user.PasswordResetTokenHash) {
	b := make([]byte, TokenSize)
	if _, err := io.ReadFull(h.random, b); err != nil {
		panic(fmt.Sprintf("could not read random bytes for password reset token: %v", err))
	}
	token := user.PasswordResetToken(base64.RawURLEncoding.EncodeToString(b))
	return token, h.HashToken(token)
}

func (h *HMAC) HashToken(token user.PasswordResetToken) user.PasswordResetTokenHash {
	hasher := hmac.New(sha256.New, h.secretKey)
	io.WriteString(hasher, string(token))
	return user.PasswordResetTokenHash(fmt.Sprintf("%x", hasher.Sum(nil)))
}
