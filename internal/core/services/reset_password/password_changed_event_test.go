package resetpassword

import (
	"context"
	"passreset/internal/core/domain/logging"
	"passreset/internal/core/domain/user"
	"passreset/internal/core/services"
	"testing"

	"github.com/stretchr/testify/require"
)

func stubService(err error) services.Service[Input, Result] {
	return services.Func[Input, Result](func(ctx context.Context, input Input) (Result, error) {
		if err != nil {
			return Result{}, err
		}
		return Result{Email: input.Email, ChangedAt: NOW}, nil
	})
}

func TestPasswordChangedEventPublished(t *testing.T) {
	log := logging.NewFakeLogger()
	publisher := user.NewFakePasswordChangedEventPublisher()
	service := NewWithPasswordChangedEvent(log, publisher, stubService(nil))

	_, err := service.Run(context.Background(), Input{Email: EMAIL})

	require.NoError(t, err)
	require.Equal(t, []user.PasswordChangedEvent{{Email: EMAIL, ChangedAt: NOW}}, publisher.Published)
}

func TestPasswordChangedEventNotPublishedOnFailure(t *testing.T) {
	log := logging.NewFakeLogger()
	publisher := user.NewFakePasswordChangedEventPublisher()
	service := NewWithPasswordChangedEvent(log, publisher, stubService(user.ErrInvalidPasswordResetToken))

	_, err := service.Run(context.Background(), Input{Email: EMAIL})

	require.ErrorIs(t, err, user.ErrInvalidPasswordResetToken)
	require.Empty(t, publisher.Published)
}

func TestPasswordChangedEventPublisherErrorIsLogged(t *testing.T) {
	log := logging.NewFakeLogger()
	publisher := user.NewFakePasswordChangedEventPublisher()
	publisher.ReturnError = true
	service := NewWithPasswordChangedEvent(log, publisher, stubService(nil))

	_, err := service.Run(context.Background(), Input{Email: EMAIL})

	require.NoError(t, err)
	require.Equal(t, 1, log.CountByLevel(logging.ERROR))
}
