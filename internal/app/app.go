package app

import (
	"fmt"
	"net/http"
	"passreset/internal/app/deps"
	"passreset/internal/app/services"
	resetpassword "passreset/internal/http/handlers/auth/reset_password"
	sendpasswordresettoken "passreset/internal/http/handlers/auth/send_password_reset_token"
	"passreset/internal/http/handlers/health"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	return &http.Server{
		Handler: NewRouter(deps, s),
		Addr:    fmt.Sprintf("0.0.0.0:%d", deps.Config.Port),
	}
}

func NewRouter(deps *deps.Deps, s *services.Services) http.Handler {
	authRouter := chi.NewRouter()
	authRouter.Method(
		http.MethodPost,
		"/password_reset/token",
		sendpasswordresettoken.New(s.SendPasswordResetToken, deps.Config.IsTestMode),
	)
	authRouter.Method(http.MethodPut, "/password_reset", resetpassword.New(s.ResetPassword))

	router := chi.NewRouter()
	if sentry.CurrentHub().Client() != nil {
		router.Use(sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle)
	}
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{sendpasswordresettoken.TEST_TOKEN_HEADER},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Method(http.MethodGet, "/health", health.New(deps.Logger, deps.DB))
	router.Mount("/auth", authRouter)

	return router
}
