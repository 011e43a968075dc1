package register_salon

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

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

func (f fakeService) Register(_ context.Context, req *models.RegisterSalonRequest) (*models.SalonResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.SalonResponse{ID: 1, SalonName: req.SalonName, Mobile: req.Mobile, Status: "pending", Photos: []string{}}, nil
}

const body = `{"ownerName": "Asha", "salonName": "Fade Street", "mobile": "+919845012345"}`

func register(err error, payload string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(fakeService{err: err}, nopLogger{}).Handle(rec,
		httptest.NewRequest(http.MethodPost, "/salon/register", strings.NewReader(payload)))
	return rec
}

func TestHandle(t *testing.T) {
	rec := register(nil, body)
	require.Equal(t, http.StatusCreated, rec.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "pending", resp["status"])
	assert.Equal(t, []interface{}{}, resp["salonPhotos"])

	rec = register(salons.ErrMobileTaken, body)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "mobile-taken")

	assert.Equal(t, http.StatusBadRequest, register(salons.ErrInvalidInput, body).Code)
	assert.Equal(t, http.StatusBadRequest, register(nil, `{"mobile": 1}`).Code)
}
