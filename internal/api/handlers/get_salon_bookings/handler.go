package get_salon_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
)

const (
	msgInvalidSalonID = "некорректный ID салона"
	msgInvalidFilter  = "некорректный фильтр, даты ожидаются в формате YYYY-MM-DD"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /booking/salon/{salonId}
// Query params: status, date, startDate, endDate (all optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, err := handlers.PathID(r, "salonId")
	if err != nil {
		h.logger.Warn("GET /booking/salon/{salonId} - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(salonID, query.Get("status"), query.Get("date"),
		query.Get("startDate"), query.Get("endDate"))
	if err != nil {
		h.logger.Warn("GET /booking/salon/{salonId} - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	result, err := h.service.GetSalonBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /booking/salon/{salonId} - Invalid filter: salon_id=%d, error=%v", salonID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /booking/salon/{salonId} - Failed to get bookings: salon_id=%d, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /booking/salon/{salonId} - Bookings retrieved successfully: salon_id=%d, count=%d",
		salonID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
