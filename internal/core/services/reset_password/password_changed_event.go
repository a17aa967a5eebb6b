package resetpassword

import (
	"context"
	e "passreset/internal/core/domain/errors"
	"passreset/internal/core/domain/logging"
	"passreset/internal/core/domain/user"
	"passreset/internal/core/services"
)

type serviceWithPasswordChangedEvent struct {
	log       logging.Logger
	publisher user.PasswordChangedEventPublisher
	inner     services.Service[Input, Result]
}

func NewWithPasswordChangedEvent(
	log logging.Logger,
	publisher user.PasswordChangedEventPublisher,
	inner services.Service[Input, Result],
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if publisher == nil {
		panic(e.NewNilArgumentError("publisher"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &serviceWithPasswordChangedEvent{
		log:       log,
		publisher: publisher,
		inner:     inner,
	}
}

func (s *serviceWithPasswordChangedEvent) Run(ctx context.Context, input Input) (result Result, err error) {
	result, err = s.inner.Run(ctx, input)
	if err != nil {
		return result, err
	}

	event := user.PasswordChangedEvent{Email: result.Email, ChangedAt: result.ChangedAt}
	if err := s.publisher.PublishPasswordChanged(ctx, event); err != nil {
		s.log.Error(
			ctx,
			"Could not publish password changed event.",
			logging.Entry("email", result.Email),
			logging.Entry("err", err),
		)
	}
	return result, nil
}
