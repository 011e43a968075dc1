package get_salon

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/salons"
)

const (
	msgInvalidSalonID = "некорректный ID салона"
	msgNotFound       = "салон не найден"
)

type Handler struct {
	service SalonService
	logger  Logger
}

func NewHandler(service SalonService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /salon/{salonId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, err := handlers.PathID(r, "salonId")
	if err != nil {
		h.logger.Warn("GET /salon/{id} - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	salon, err := h.service.Get(r.Context(), salonID)
	if err != nil {
		if errors.Is(err, salons.ErrSalonNotFound) {
			h.logger.Warn("GET /salon/{id} - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, handlers.ReasonSalon, msgNotFound)
			return
		}
		h.logger.Error("GET /salon/{id} - Failed to get salon: salon_id=%d, error=%v", salonID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, salon)
}
