package health

import (
	"context"
	"net/http"
	e "passreset/internal/core/domain/errors"
	"passreset/internal/core/domain/logging"
	"passreset/internal/http/handlers/response"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	log logging.Logger
	db  Pinger
}

func New(log logging.Logger, db Pinger) *Handler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &Handler{log: log, db: db}
}

type status struct {
	Status string `json:"status"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		h.log.Warning(r.Context(), "Health check failed.", logging.Entry("err", err))
		response.Render(rw, status{Status: "unavailable"}, http.StatusServiceUnavailable)
		return
	}
	response.Render(rw, status{Status: "ok"}, http.StatusOK)
}
