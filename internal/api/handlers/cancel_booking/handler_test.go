package cancel_booking

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	reason *string
	err    error
}

func (f *fakeService) Cancel(_ context.Context, id int64, _ domain.Actor, reason *string) (*models.BookingResponse, error) {
	f.reason = reason
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{ID: id, Status: "cancelled", CancellationReason: reason}, nil
}

func post(h *Handler, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/booking/cancel/9", body)
	req = mux.SetURLVars(req, map[string]string{"bookingId": "9"})
	req = req.WithContext(middleware.WithActor(req.Context(), domain.Actor{UserID: 1, Role: domain.RoleUser}))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_WithAndWithoutReason(t *testing.T) {
	svc := &fakeService{}
	rec := post(NewHandler(svc, nopLogger{}), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.reason)

	rec = post(NewHandler(svc, nopLogger{}), strings.NewReader(`{"cancellationReason": "changed plans"}`))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.reason)
	assert.Equal(t, "changed plans", *svc.reason)
}

func TestHandle_TerminalStateIsInvalidState(t *testing.T) {
	err := &bookings.TransitionError{BookingID: 9, Transition: domain.TransitionCancel, Current: domain.StatusCompleted}
	rec := post(NewHandler(&fakeService{err: err}, nopLogger{}), nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "invalid_state", body["error"])
}

func TestHandle_OtherErrors(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, post(NewHandler(&fakeService{err: bookings.ErrBookingNotFound}, nopLogger{}), nil).Code)
	assert.Equal(t, http.StatusForbidden, post(NewHandler(&fakeService{err: bookings.ErrAccessDenied}, nopLogger{}), nil).Code)
	assert.Equal(t, http.StatusBadRequest, post(NewHandler(&fakeService{}, nopLogger{}), strings.NewReader(`{"reason": 1}`)).Code)
}
