package update_salon

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/salons"
	"github.com/m04kA/SMC-SalonBooking/internal/service/salons/models"
)

const (
	msgInvalidSalonID     = "некорректный ID салона"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDetails     = "некорректные данные салона"
	msgNotFound           = "салон не найден"
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

// Handle PUT /salon/{salonId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, err := handlers.PathID(r, "salonId")
	if err != nil {
		h.logger.Warn("PUT /salon/{id} - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	var req models.UpdateSalonRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /salon/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.SalonID = salonID

	salon, err := h.service.UpdateDetails(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, salons.ErrInvalidInput):
			h.logger.Warn("PUT /salon/{id} - Invalid details: salon_id=%d, error=%v", salonID, err)
			handlers.RespondBadRequest(w, msgInvalidDetails+": "+err.Error())

		case errors.Is(err, salons.ErrSalonNotFound):
			h.logger.Warn("PUT /salon/{id} - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, handlers.ReasonSalon, msgNotFound)

		default:
			h.logger.Error("PUT /salon/{id} - Failed to update salon: salon_id=%d, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /salon/{id} - Salon updated successfully: salon_id=%d", salonID)
	handlers.RespondJSON(w, http.StatusOK, salon)
}
