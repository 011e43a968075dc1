package booking_transition

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
	calls      []string
	paymentRef *string
	salonID    int64
	err        error
}

func (f *fakeService) GetByID(_ context.Context, id int64, _ domain.Actor) (*models.BookingResponse, error) {
	return &models.BookingResponse{ID: id, SalonID: f.salonID, Status: "pending"}, nil
}

func (f *fakeService) result(id int64, status string) (*models.BookingResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{ID: id, Status: status}, nil
}

func (f *fakeService) Confirm(_ context.Context, id int64, paymentRef *string) (*models.BookingResponse, error) {
	f.calls = append(f.calls, "confirm")
	f.paymentRef = paymentRef
	return f.result(id, "confirmed")
}

func (f *fakeService) CancelUnpaid(_ context.Context, id int64) (*models.BookingResponse, error) {
	f.calls = append(f.calls, "cancel-unpaid")
	return f.result(id, "cancelled")
}

func (f *fakeService) Complete(_ context.Context, id int64) (*models.BookingResponse, error) {
	f.calls = append(f.calls, "complete")
	return f.result(id, "completed")
}

var admin = domain.Actor{UserID: 1, Role: domain.RoleAdmin}

func post(t *testing.T, svc *fakeService, tr domain.Transition, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	return postAs(t, svc, tr, admin, body)
}

func postAs(t *testing.T, svc *fakeService, tr domain.Transition, actor domain.Actor, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	h, err := NewHandler(svc, tr, nopLogger{})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/booking/"+string(tr)+"/5", body)
	req = mux.SetURLVars(req, map[string]string{"bookingId": "5"})
	req = req.WithContext(middleware.WithActor(req.Context(), actor))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_DispatchesByTransition(t *testing.T) {
	tests := []struct {
		transition domain.Transition
		wantStatus string
	}{
		{domain.TransitionConfirm, "confirmed"},
		{domain.TransitionCancelUnpaid, "cancelled"},
		{domain.TransitionComplete, "completed"},
	}

	for _, tt := range tests {
		t.Run(string(tt.transition), func(t *testing.T) {
			svc := &fakeService{}
			rec := post(t, svc, tt.transition, nil)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, []string{string(tt.transition)}, svc.calls)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantStatus, body["status"])
		})
	}
}

func TestHandle_ConfirmPassesPaymentReference(t *testing.T) {
	svc := &fakeService{}
	rec := post(t, svc, domain.TransitionConfirm, strings.NewReader(`{"paymentReference": "pi_123"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.paymentRef)
	assert.Equal(t, "pi_123", *svc.paymentRef)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
		wantReason string
	}{
		{"not found", bookings.ErrBookingNotFound, http.StatusNotFound, "not_found", "booking"},
		{"terminal", &bookings.TransitionError{BookingID: 5, Transition: domain.TransitionComplete, Current: domain.StatusCancelled},
			http.StatusConflict, "invalid_state", ""},
		{"grace", bookings.ErrGracePeriodActive, http.StatusConflict, "invalid_state", "grace-period-active"},
		{"internal", bookings.ErrInternal, http.StatusInternalServerError, "internal_error", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, &fakeService{err: tt.err}, domain.TransitionComplete, nil)
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantKind, body["error"])
			assert.Equal(t, tt.wantReason, body["reason"])
		})
	}
}

func TestHandle_ShopOwnerLimitedToOwnSalon(t *testing.T) {
	svc := &fakeService{salonID: 2}

	rec := postAs(t, svc, domain.TransitionComplete, domain.Actor{UserID: 9, Role: domain.RoleShopOwner, SalonID: 1}, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, svc.calls)

	rec = postAs(t, svc, domain.TransitionComplete, domain.Actor{UserID: 9, Role: domain.RoleShopOwner, SalonID: 2}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"complete"}, svc.calls)
}

func TestNewHandler_RejectsCancel(t *testing.T) {
	_, err := NewHandler(&fakeService{}, domain.TransitionCancel, nopLogger{})
	assert.Error(t, err)
}
