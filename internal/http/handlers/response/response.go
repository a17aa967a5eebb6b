package response

import (
	"encoding/json"
	"errors"
	"net/http"
	ratelimiter "passreset/internal/core/domain/rate_limiter"
	"passreset/internal/core/services/outcome"
)

type errorResponse struct {
	Error string `json:"error"`
}

type outcomeResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func RenderInternalError(rw http.ResponseWriter) {
	RenderError(rw, "internal error", http.StatusInternalServerError)
}

func RenderRateLimitExceeded(rw http.ResponseWriter) {
	RenderError(rw, "rate limit exceeded", http.StatusTooManyRequests)
}

func RenderError(rw http.ResponseWriter, msg string, status int) {
	Render(rw, errorResponse{Error: msg}, status)
}

// RenderOutcome renders the result of a password reset service call.
// Business failures are rendered as an outcome with status 422, anything
// unexpected as an internal error.
func RenderOutcome(rw http.ResponseWriter, err error) {
	if errors.Is(err, ratelimiter.ErrRateLimitExceeded) {
		RenderRateLimitExceeded(rw)
		return
	}
	o, err := outcome.FromError(err)
	if err != nil {
		RenderInternalError(rw)
		return
	}

	status := http.StatusOK
	if !o.OK {
		status = http.StatusUnprocessableEntity
	}
	Render(rw, outcomeResponse{OK: o.OK, Error: o.Error}, status)
}

func Render(rw http.ResponseWriter, res interface{}, status int) {
	rw.Header().Set("Content-Type", "application/json")

	content, err := json.Marshal(res)
	if err != nil {
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}

	rw.WriteHeader(status)
	rw.Write(content)
}
