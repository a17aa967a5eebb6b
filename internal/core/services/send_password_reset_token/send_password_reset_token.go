package sendpasswordresettoken

import (
	"context"
	"errors"
	c "passreset/internal/core/domain/common"
	e "passreset/internal/core/domain/errors"
	"passreset/internal/core/domain/logging"
	ratelimiter "passreset/internal/core/domain/rate_limiter"
	uow "passreset/internal/core/domain/unit_of_work"
	"passreset/internal/core/domain/user"
	"passreset/internal/core/services"
	"time"

	"github.com/golang-module/carbon/v2"
)

type Input struct {
	Email c.Email
}

func (i Input) GetRateLimitKey() string {
	return ratelimiter.Key("send_password_reset_token", string(i.Email))
}

// Result carries the plaintext token to the sending step. It is never stored.
type Result struct {
	User      user.User
	Token     user.PasswordResetToken
	ExpiresAt time.Time
}

type service struct {
	log                  logging.Logger
	unitOfWork           uow.UnitOfWork
	tokenMinter          user.PasswordResetTokenMinter
	validDurationInHours int
	now                  func() time.Time
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	tokenMinter user.PasswordResetTokenMinter,
	validDurationInHours int,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if tokenMinter == nil {
		panic(e.NewNilArgumentError("tokenMinter"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	if validDurationInHours <= 0 {
		panic("validDurationInHours must be positive")
	}
	return &service{
		log:                  log,
		unitOfWork:           unitOfWork,
		tokenMinter:          tokenMinter,
		validDurationInHours: validDurationInHours,
		now:                  now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	uow, err := s.unitOfWork.Begin(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("email", input.Email))
		return result, err
	}
	defer uow.Rollback(ctx)

	u, err := uow.Users().GetByEmailWithLock(ctx, input.Email)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(ctx, "User not found for password reset.", logging.Entry("email", input.Email))
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("email", input.Email))
		return result, err
	}

	token, tokenHash := s.tokenMinter.GenerateToken()
	expiresAt := carbon.Time2Carbon(s.now()).AddHours(s.validDurationInHours).Carbon2Time().UTC()
	reset := user.NewPasswordReset(tokenHash, expiresAt)

	if err := uow.Users().SetPasswordReset(ctx, u.Email, reset); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("email", input.Email))
		return result, err
	}
	if err := uow.Commit(ctx); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("email", input.Email))
		return result, err
	}

	replaced := u.HasPendingPasswordReset()
	u.PasswordReset = c.Some(reset)
	s.log.Info(
		ctx,
		"Password reset has been requested.",
		logging.Entry("email", u.Email),
		logging.Entry("expiresAt", expiresAt),
		logging.Entry("replacedPrevious", replaced),
	)
	return Result{User: u, Token: token, ExpiresAt: expiresAt}, nil
}
