package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"passreset/internal/core/domain/logging"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(ctx context.Context) error {
	return p.err
}

func TestHealthHandler(t *testing.T) {
	cases := []struct {
		id             string
		pingErr        error
		expectedStatus int
		expectedBody   string
		expectedWarns  int
	}{
		{
			id:             "ok",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"ok"}`,
		},
		{
			id:             "db is down",
			pingErr:        errors.New("connection refused"),
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `{"status":"unavailable"}`,
			expectedWarns:  1,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			log := logging.NewFakeLogger()
			handler := New(log, stubPinger{err: testcase.pingErr})
			rw := httptest.NewRecorder()

			handler.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, testcase.expectedStatus, rw.Code)
			assert.JSONEq(t, testcase.expectedBody, rw.Body.String())
			assert.Equal(t, testcase.expectedWarns, log.CountByLevel(logging.WARNING))
		})
	}
}
