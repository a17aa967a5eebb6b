package services

import (
	"passreset/internal/app/deps"
	drl "passreset/internal/core/domain/rate_limiter"
	"passreset/internal/core/services"
	ratelimiting "passreset/internal/core/services/rate_limiting"
	resetpassword "passreset/internal/core/services/reset_password"
	sendpasswordresettoken "passreset/internal/core/services/send_password_reset_token"
)

var (
	SendPasswordResetTokenLimit = drl.Limit{Value: 3, Interval: drl.Hour}
	ResetPasswordLimit          = drl.Limit{Value: 10, Interval: drl.Hour}
)

type Services struct {
	SendPasswordResetToken services.Service[sendpasswordresettoken.Input, sendpasswordresettoken.Result]
	ResetPassword          services.Service[resetpassword.Input, resetpassword.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.SendPasswordResetToken = ratelimiting.WithRateLimiting[sendpasswordresettoken.Input, sendpasswordresettoken.Result](
		deps.Logger,
		deps.RateLimiter,
		SendPasswordResetTokenLimit,
		sendpasswordresettoken.NewWithTokenSending(
			deps.Logger,
			deps.PasswordResetTokenSender,
			sendpasswordresettoken.New(
				deps.Logger,
				deps.UnitOfWork,
				deps.PasswordResetTokenMinter,
				deps.Config.PasswordResetValidDurationHours,
				deps.Now,
			),
		),
	)

	resetPassword := resetpassword.New(
		deps.Logger,
		deps.UnitOfWork,
		deps.PasswordResetTokenMinter,
		deps.PasswordHasher,
		deps.Now,
	)
	if deps.PasswordChangedEventPublisher != nil {
		resetPassword = resetpassword.NewWithPasswordChangedEvent(
			deps.Logger,
			deps.PasswordChangedEventPublisher,
			resetPassword,
		)
	}
	s.ResetPassword = ratelimiting.WithRateLimiting[resetpassword.Input, resetpassword.Result](
		deps.Logger,
		deps.RateLimiter,
		ResetPasswordLimit,
		resetPassword,
	)

	return s
}
