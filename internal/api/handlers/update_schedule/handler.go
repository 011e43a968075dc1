package update_schedule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule/models"
)

const (
	msgInvalidSalonID     = "некорректный ID салона"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSchedule    = "некорректное расписание"
	msgScheduleNotFound   = "расписание салона не найдено"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /schedule/{salonId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, err := handlers.PathID(r, "salonId")
	if err != nil {
		h.logger.Warn("PUT /schedule/{id} - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	var req models.UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /schedule/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.SalonID = salonID

	result, err := h.service.Update(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /schedule/{id} - Invalid schedule: salon_id=%d, error=%v", salonID, err)
			handlers.RespondBadRequest(w, msgInvalidSchedule+": "+err.Error())

		case errors.Is(err, schedule.ErrScheduleNotFound):
			h.logger.Warn("PUT /schedule/{id} - Schedule not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, handlers.ReasonSchedule, msgScheduleNotFound)

		default:
			h.logger.Error("PUT /schedule/{id} - Failed to update schedule: salon_id=%d, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /schedule/{id} - Schedule replaced successfully: salon_id=%d, days=%d",
		salonID, len(result.WeeklySchedule))
	handlers.RespondJSON(w, http.StatusOK, result)
}
