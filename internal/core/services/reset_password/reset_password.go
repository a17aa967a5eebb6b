package resetpassword

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
)

type Input struct {
	Email       c.Email
	Token       user.PasswordResetToken
	NewPassword user.RawPassword
}

func (i Input) GetRateLimitKey() string {
	return ratelimiter.Key("reset_password", string(i.Email))
}

type Result struct {
	Email     c.Email
	ChangedAt time.Time
}

type service struct {
	log            logging.Logger
	unitOfWork     uow.UnitOfWork
	tokenMinter    user.PasswordResetTokenMinter
	passwordHasher user.PasswordHasher
	now            func() time.Time
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	tokenMinter user.PasswordResetTokenMinter,
	passwordHasher user.PasswordHasher,
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
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		unitOfWork:     unitOfWork,
		tokenMinter:    tokenMinter,
		passwordHasher: passwordHasher,
		now:            now,
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

	if err := s.check(ctx, u, input.Token); err != nil {
		return result, err
	}

	newPasswordHash, err := s.passwordHasher.HashPassword(input.NewPassword)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("email", input.Email))
		return result, err
	}
	if err := uow.Users().SetPassword(ctx, u.Email, newPasswordHash); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("email", input.Email))
		return result, err
	}
	if err := uow.Users().ClearPasswordReset(ctx, u.Email); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("email", input.Email))
		return result, err
	}
	if err := uow.Commit(ctx); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("email", input.Email))
		return result, err
	}

	s.log.Info(ctx, "New password has been successfully set.", logging.Entry("email", u.Email))
	return Result{Email: u.Email, ChangedAt: s.now()}, nil
}

// check validates the presented token against the pending reset. Expiry is
// checked before the token itself, so a stale token is always reported as
// expired whether it is correct or not.
func (s *service) check(ctx context.Context, u user.User, token user.PasswordResetToken) error {
	if !u.HasPendingPasswordReset() {
		s.log.Info(ctx, "Password reset has not been requested.", logging.Entry("email", u.Email))
		return user.ErrPasswordResetNotRequested
	}
	reset := u.PasswordReset.Value
	if reset.IsExpiredAt(s.now()) {
		s.log.Info(
			ctx,
			"Password reset token has expired.",
			logging.Entry("email", u.Email),
			logging.Entry("expiresAt", reset.ExpiresAt),
		)
		return user.ErrPasswordResetTokenExpired
	}
	if !reset.Matches(s.tokenMinter.HashToken(token)) {
		s.log.Info(ctx, "Password reset token is invalid.", logging.Entry("email", u.Email))
		return user.ErrInvalidPasswordResetToken
	}
	return nil
}
