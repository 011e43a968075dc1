package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
)

const (
	msgMissingSalonID   = "ID салона обязателен"
	msgInvalidSalonID   = "некорректный ID салона"
	msgMissingDate      = "дата обязательна"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgScheduleNotFound = "расписание салона не найдено"
	msgClosedOnDay      = "салон не работает в этот день"
)

type Handler struct {
	useCase  GetAvailableSlotsUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /schedule/available-slots
// Query params: salonId (required), date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	salonIDStr := query.Get("salonId")
	if salonIDStr == "" {
		h.logger.Warn("GET /schedule/available-slots - Missing salon ID")
		handlers.RespondBadRequest(w, msgMissingSalonID)
		return
	}

	salonID, err := strconv.ParseInt(salonIDStr, 10, 64)
	if err != nil || salonID <= 0 {
		h.logger.Warn("GET /schedule/available-slots - Invalid salon ID: %q", salonIDStr)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /schedule/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := domain.ParseCalendarDate(dateStr, h.location)
	if err != nil {
		h.logger.Warn("GET /schedule/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{SalonID: salonID, Date: date})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrScheduleNotFound):
			h.logger.Warn("GET /schedule/available-slots - Schedule not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, handlers.ReasonSchedule, msgScheduleNotFound)

		case errors.Is(err, getAvailableSlots.ErrClosedOnDay):
			h.logger.Warn("GET /schedule/available-slots - Closed on day: salon_id=%d, date=%s", salonID, dateStr)
			handlers.RespondNotFound(w, handlers.ReasonClosedOnDay, msgClosedOnDay)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /schedule/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSalonID)

		default:
			h.logger.Error("GET /schedule/available-slots - Failed to get slots: salon_id=%d, date=%s, error=%v",
				salonID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /schedule/available-slots - Slots retrieved successfully: salon_id=%d, date=%s, slots_count=%d",
		salonID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
