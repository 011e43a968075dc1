package approve_salon

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/salons"
)

const (
	msgInvalidSalonID  = "некорректный ID салона"
	msgNotFound        = "салон не найден"
	msgNotReady        = "заполните все данные перед одобрением"
	msgAlreadyApproved = "салон уже одобрен"
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

// Handle POST /salon/{salonId}/approve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, err := handlers.PathID(r, "salonId")
	if err != nil {
		h.logger.Warn("POST /salon/{id}/approve - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	salon, err := h.service.Approve(r.Context(), salonID)
	if err != nil {
		switch {
		case errors.Is(err, salons.ErrSalonNotFound):
			h.logger.Warn("POST /salon/{id}/approve - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, handlers.ReasonSalon, msgNotFound)

		case errors.Is(err, salons.ErrNotReadyForApproval):
			h.logger.Warn("POST /salon/{id}/approve - Not ready: salon_id=%d, error=%v", salonID, err)
			handlers.RespondBadRequest(w, msgNotReady+": "+err.Error())

		case errors.Is(err, salons.ErrAlreadyApproved):
			h.logger.Warn("POST /salon/{id}/approve - Already approved: salon_id=%d", salonID)
			handlers.RespondInvalidState(w, "", msgAlreadyApproved)

		default:
			h.logger.Error("POST /salon/{id}/approve - Failed to approve salon: salon_id=%d, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /salon/{id}/approve - Salon approved: salon_id=%d", salonID)
	handlers.RespondJSON(w, http.StatusOK, salon)
}
