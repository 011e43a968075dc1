package create_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректная дата, ожидается YYYY-MM-DD"
	msgMissingUser        = "отсутствует пользователь в токене"
	msgForeignUser        = "нельзя бронировать от имени другого пользователя"
	msgScheduleNotFound   = "расписание салона не найдено"
	msgClosedOnDay        = "салон не работает в этот день"
	msgInvalidTimeSlot    = "слот отсутствует в расписании дня"
	msgInvalidSeat        = "номер места вне диапазона"
	msgSeatTaken          = "место в этом слоте уже занято"
	msgDateInPast         = "дата бронирования уже прошла"
	msgInvalidInput       = "некорректные данные бронирования"
)

type Handler struct {
	useCase  CreateBookingUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase CreateBookingUseCase, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /booking/create
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /booking/create - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking/create - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Пользователь бронирует для себя, админ может указать любого
	if req.UserID == 0 {
		req.UserID = actor.UserID
	}
	if req.UserID != actor.UserID && actor.Role != domain.RoleAdmin {
		h.logger.Warn("POST /booking/create - Foreign user: actor_id=%d, user_id=%d", actor.UserID, req.UserID)
		handlers.RespondForbidden(w, msgForeignUser)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(h.location)
	if err != nil {
		h.logger.Warn("POST /booking/create - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSeatTaken):
			h.logger.Warn("POST /booking/create - Seat taken: salon_id=%d, date=%s, slot=%s, seat=%d",
				req.SalonID, req.Date, req.TimeSlot, req.SeatNumber)
			handlers.RespondConflict(w, handlers.ReasonSeatTaken, msgSeatTaken)

		case errors.Is(err, createBooking.ErrScheduleNotFound):
			h.logger.Warn("POST /booking/create - Schedule not found: salon_id=%d", req.SalonID)
			handlers.RespondNotFound(w, handlers.ReasonSchedule, msgScheduleNotFound)

		case errors.Is(err, createBooking.ErrClosedOnDay):
			h.logger.Warn("POST /booking/create - Closed on day: salon_id=%d, date=%s", req.SalonID, req.Date)
			handlers.RespondBadRequestWithReason(w, handlers.ReasonClosedOnDay, msgClosedOnDay)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /booking/create - Invalid slot: salon_id=%d, slot=%s", req.SalonID, req.TimeSlot)
			handlers.RespondBadRequestWithReason(w, handlers.ReasonInvalidSlot, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrInvalidSeat):
			h.logger.Warn("POST /booking/create - Invalid seat: salon_id=%d, seat=%d", req.SalonID, req.SeatNumber)
			handlers.RespondBadRequestWithReason(w, handlers.ReasonInvalidSeat, msgInvalidSeat)

		case errors.Is(err, createBooking.ErrDateInPast):
			h.logger.Warn("POST /booking/create - Date in past: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /booking/create - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /booking/create - Failed to create booking: user_id=%d, salon_id=%d, error=%v",
				req.UserID, req.SalonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /booking/create - Booking created successfully: booking_id=%d, user_id=%d, salon_id=%d",
		result.Booking.ID, result.Booking.UserID, result.Booking.SalonID)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainBooking(result.Booking))
}
