package get_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

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
	err error
}

func (f fakeService) GetByID(_ context.Context, id int64, actor domain.Actor) (*models.BookingResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{ID: id, UserID: actor.UserID, Status: "pending"}, nil
}

func get(h *Handler, id string, actor *domain.Actor) int {
	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/booking/"+id, nil), map[string]string{"bookingId": id})
	if actor != nil {
		req = req.WithContext(middleware.WithActor(req.Context(), *actor))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec.Code
}

func TestHandle(t *testing.T) {
	user := &domain.Actor{UserID: 3, Role: domain.RoleUser}

	assert.Equal(t, http.StatusOK, get(NewHandler(fakeService{}, nopLogger{}), "1", user))
	assert.Equal(t, http.StatusBadRequest, get(NewHandler(fakeService{}, nopLogger{}), "abc", user))
	assert.Equal(t, http.StatusUnauthorized, get(NewHandler(fakeService{}, nopLogger{}), "1", nil))
	assert.Equal(t, http.StatusNotFound, get(NewHandler(fakeService{err: bookings.ErrBookingNotFound}, nopLogger{}), "1", user))
	assert.Equal(t, http.StatusForbidden, get(NewHandler(fakeService{err: bookings.ErrAccessDenied}, nopLogger{}), "1", user))
	assert.Equal(t, http.StatusInternalServerError, get(NewHandler(fakeService{err: bookings.ErrInternal}, nopLogger{}), "1", user))
}
