package add_schedule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSchedule    = "некорректное расписание"
	msgSalonNotFound      = "салон не найден"
	msgScheduleExists     = "расписание уже существует, используйте обновление"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbiddenSalon     = "нет доступа к этому салону"
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

// Handle POST /schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.AddScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /schedule - Missing actor in context")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	if !actor.CanManageSalon(req.SalonID) {
		h.logger.Warn("POST /schedule - Access denied: user=%d, salon_id=%d", actor.UserID, req.SalonID)
		handlers.RespondForbidden(w, msgForbiddenSalon)
		return
	}

	result, err := h.service.Add(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /schedule - Invalid schedule: salon_id=%d, error=%v", req.SalonID, err)
			handlers.RespondBadRequest(w, msgInvalidSchedule+": "+err.Error())

		case errors.Is(err, schedule.ErrSalonNotFound):
			h.logger.Warn("POST /schedule - Salon not found: salon_id=%d", req.SalonID)
			handlers.RespondNotFound(w, handlers.ReasonSalon, msgSalonNotFound)

		case errors.Is(err, schedule.ErrScheduleAlreadyExists):
			h.logger.Warn("POST /schedule - Schedule exists: salon_id=%d", req.SalonID)
			handlers.RespondBadRequestWithReason(w, handlers.ReasonScheduleExists, msgScheduleExists)

		default:
			h.logger.Error("POST /schedule - Failed to add schedule: salon_id=%d, error=%v", req.SalonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /schedule - Schedule created successfully: salon_id=%d, days=%d",
		result.SalonID, len(result.WeeklySchedule))
	handlers.RespondJSON(w, http.StatusCreated, result)
}
