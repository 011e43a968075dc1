package add_schedule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	got *models.AddScheduleRequest
	err error
}

func (f *fakeService) Add(_ context.Context, req *models.AddScheduleRequest) (*models.ScheduleResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.ScheduleResponse{ID: 1, SalonID: req.SalonID, WeeklySchedule: req.WeeklySchedule}, nil
}

const body = `{"salonId": 3, "weeklySchedule": [{"day": "Monday", "timeSlots": ["10:00", "11:00"], "totalSeats": 2}]}`

var salonOwner = domain.Actor{UserID: 9, Role: domain.RoleShopOwner, SalonID: 3}

func post(h *Handler, payload string) *httptest.ResponseRecorder {
	return postAs(h, salonOwner, payload)
}

func postAs(h *Handler, actor domain.Actor, payload string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/schedule", strings.NewReader(payload))
	req = req.WithContext(middleware.WithActor(req.Context(), actor))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	svc := &fakeService{}
	rec := post(NewHandler(svc, nopLogger{}), body)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(3), svc.got.SalonID)
	require.Len(t, svc.got.WeeklySchedule, 1)
	assert.Equal(t, []string{"10:00", "11:00"}, svc.got.WeeklySchedule[0].TimeSlots)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantReason string
	}{
		{"invalid", fmt.Errorf("%w: weeklySchedule is empty", schedule.ErrInvalidInput), http.StatusBadRequest, ""},
		{"exists", schedule.ErrScheduleAlreadyExists, http.StatusBadRequest, "schedule-exists"},
		{"salon", schedule.ErrSalonNotFound, http.StatusNotFound, "salon"},
		{"internal", errors.New("db"), http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(NewHandler(&fakeService{err: tt.err}, nopLogger{}), body)
			assert.Equal(t, tt.wantStatus, rec.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantReason, resp["reason"])
		})
	}
}

func TestHandle_MalformedBody(t *testing.T) {
	svc := &fakeService{}
	rec := post(NewHandler(svc, nopLogger{}), `{"salonId": "three"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.got)
}

func TestHandle_ForeignSalonForbidden(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, nopLogger{})

	rec := postAs(h, domain.Actor{UserID: 9, Role: domain.RoleShopOwner, SalonID: 4}, body)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Nil(t, svc.got)

	rec = postAs(h, domain.Actor{UserID: 1, Role: domain.RoleAdmin}, body)
	assert.Equal(t, http.StatusCreated, rec.Code)
}
