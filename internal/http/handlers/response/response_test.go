package response

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	ratelimiter "passreset/internal/core/domain/rate_limiter"
	"passreset/internal/core/domain/user"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderOutcome(t *testing.T) {
	cases := []struct {
		id             string
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{
			id:             "success",
			err:            nil,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"ok":true}`,
		},
		{
			id:             "unknown user",
			err:            user.ErrUserDoesNotExist,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"ok":false,"error":"Unknown user"}`,
		},
		{
			id:             "no request",
			err:            user.ErrPasswordResetNotRequested,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"ok":false,"error":"No password reset request done"}`,
		},
		{
			id:             "expired",
			err:            fmt.Errorf("wrapped: %w", user.ErrPasswordResetTokenExpired),
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"ok":false,"error":"Token has expired"}`,
		},
		{
			id:             "invalid",
			err:            user.ErrInvalidPasswordResetToken,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"ok":false,"error":"Token is invalid"}`,
		},
		{
			id:             "rate limit",
			err:            ratelimiter.ErrRateLimitExceeded,
			expectedStatus: http.StatusTooManyRequests,
			expectedBody:   `{"error":"rate limit exceeded"}`,
		},
		{
			id:             "cancelled",
			err:            context.Canceled,
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"internal error"}`,
		},
		{
			id:             "unexpected",
			err:            errors.New("connection refused"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"internal error"}`,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			rw := httptest.NewRecorder()

			RenderOutcome(rw, testcase.err)

			assert.Equal(t, testcase.expectedStatus, rw.Code)
			assert.Equal(t, "application/json", rw.Header().Get("Content-Type"))
			assert.JSONEq(t, testcase.expectedBody, rw.Body.String())
		})
	}
}
