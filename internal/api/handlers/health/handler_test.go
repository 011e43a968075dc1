package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type nopLogger struct{}

func (nopLogger) Warn(string, ...interface{}) {}

type pinger struct{ err error }

func (p pinger) PingContext(context.Context) error { return p.err }

func TestHandle(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(pinger{}, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok", "database": "up"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	NewHandler(pinger{err: errors.New("refused")}, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
