package approve_salon

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/service/salons"
	"github.com/m04kA/SMC-SalonBooking/internal/service/salons/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct{ err error }

func (f fakeService) Approve(_ context.Context, id int64) (*models.SalonResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.SalonResponse{ID: id, Status: "approved", Photos: []string{}}, nil
}

func approve(err error) *httptest.ResponseRecorder {
	req := mux.SetURLVars(httptest.NewRequest(http.MethodPost, "/salon/3/approve", nil), map[string]string{"salonId": "3"})
	rec := httptest.NewRecorder()
	NewHandler(fakeService{err: err}, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	rec := approve(nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = approve(fmt.Errorf("%w: missing salonPhotos, location", salons.ErrNotReadyForApproval))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "salonPhotos")

	rec = approve(salons.ErrAlreadyApproved)
	assert.Equal(t, http.StatusConflict, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "invalid_state", body["error"])

	assert.Equal(t, http.StatusNotFound, approve(salons.ErrSalonNotFound).Code)
}
