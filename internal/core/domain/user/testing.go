package user

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	c "passreset/internal/core/domain/common"
	"sync"
	"time"
)

type FakePasswordHasher struct{}

func NewFakePasswordHasher() *FakePasswordHasher {
	return &FakePasswordHasher{}
}

func (h *FakePasswordHasher) HashPassword(password RawPassword) (PasswordHash, error) {
	hash := md5.New()
	io.WriteString(hash, string(password))
	return PasswordHash(fmt.Sprintf("%x", hash.Sum(nil))), nil
}

func (h *FakePasswordHasher) ValidatePassword(password RawPassword, hash PasswordHash) bool {
	actualHash, err := h.HashPassword(password)
	if err != nil {
		return false
	}
	return actualHash == hash
}

type FakeUserRepository struct {
	Users       []User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{Users: make([]User, 0, 10)}
}

func (r *FakeUserRepository) GetByEmail(ctx context.Context, email c.Email) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user %s", email)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) GetByEmailWithLock(ctx context.Context, email c.Email) (User, error) {
	return r.GetByEmail(ctx, email)
}

func (r *FakeUserRepository) SetPasswordReset(ctx context.Context, email c.Email, reset PasswordReset) error {
	return r.update(email, func(u *User) {
		u.PasswordReset = c.Some(reset)
	})
}

func (r *FakeUserRepository) ClearPasswordReset(ctx context.Context, email c.Email) error {
	return r.update(email, func(u *User) {
		u.PasswordReset = c.None[PasswordReset]()
	})
}

func (r *FakeUserRepository) SetPassword(ctx context.Context, email c.Email, password PasswordHash) error {
	return r.update(email, func(u *User) {
		u.PasswordHash = password
	})
}

func (r *FakeUserRepository) update(email c.Email, apply func(u *User)) error {
	if r.ReturnError {
		return fmt.Errorf("could not update user %s", email)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix := range r.Users {
		if r.Users[ix].Email == email {
			apply(&r.Users[ix])
			return nil
		}
	}
	return ErrUserDoesNotExist
}

// FakePasswordResetTokenMinter always issues the same token. Its hash is a
// plain md5 digest, so tests can compute the stored value independently.
type FakePasswordResetTokenMinter struct {
	Token PasswordResetToken
}

func NewFakePasswordResetTokenMinter(token string) *FakePasswordResetTokenMinter {
	return &FakePasswordResetTokenMinter{Token: PasswordResetToken(token)}
}

func (m *FakePasswordResetTokenMinter) GenerateToken() (PasswordResetToken, PasswordResetTokenHash) {
	return m.Token, m.HashToken(m.Token)
}

func (m *FakePasswordResetTokenMinter) HashToken(token PasswordResetToken) PasswordResetTokenHash {
	hash := md5.New()
	io.WriteString(hash, string(token))
	return PasswordResetTokenHash(fmt.Sprintf("%x", hash.Sum(nil)))
}

type FakePasswordResetTokenSender struct {
	Sent        []PasswordResetToken
	SentTo      []User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakePasswordResetTokenSender() *FakePasswordResetTokenSender {
	return &FakePasswordResetTokenSender{}
}

func (s *FakePasswordResetTokenSender) SendPasswordResetToken(
	ctx context.Context,
	u User,
	token PasswordResetToken,
	expiresAt time.Time,
) error {
	if s.ReturnError {
		return fmt.Errorf("could not send password reset token")
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, token)
	s.SentTo = append(s.SentTo, u)
	return nil
}

func (s *FakePasswordResetTokenSender) SentCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.Sent)
}

type FakePasswordChangedEventPublisher struct {
	Published   []PasswordChangedEvent
	ReturnError bool
	lock        sync.Mutex
}

func NewFakePasswordChangedEventPublisher() *FakePasswordChangedEventPublisher {
	return &FakePasswordChangedEventPublisher{}
}

func (p *FakePasswordChangedEventPublisher) PublishPasswordChanged(
	ctx context.Context,
	event PasswordChangedEvent,
) error {
	if p.ReturnError {
		return fmt.Errorf("could not publish event %v", event)
	}
	p.lock.Lock()
	defer p.lock.Unlock()
	p.Published = append(p.Published, event)
	return nil
}
