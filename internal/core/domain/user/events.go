package user

import (
	"context"
	c "passreset/internal/core/domain/common"
	"time"
)

type PasswordChangedEvent struct {
	Email     c.Email
	ChangedAt time.Time
}

type PasswordChangedEventPublisher interface {
	PublishPasswordChanged(ctx context.Context, event PasswordChangedEvent) error
}
