// Package booking_transition serves the staff-only lifecycle endpoints
// confirm, cancel-unpaid and complete. One Handler is created per transition.
package booking_transition

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgInvalidState       = "операция недоступна в текущем статусе бронирования"
	msgGracePeriodActive  = "время на оплату еще не истекло"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbiddenSalon     = "нет доступа к бронированиям этого салона"
)

type Handler struct {
	service    BookingService
	transition domain.Transition
	route      string
	logger     Logger
}

// NewHandler создает handler для одного перехода. Переход должен быть
// confirm, cancel-unpaid или complete.
func NewHandler(service BookingService, transition domain.Transition, logger Logger) (*Handler, error) {
	switch transition {
	case domain.TransitionConfirm, domain.TransitionCancelUnpaid, domain.TransitionComplete:
	default:
		return nil, fmt.Errorf("booking_transition: unsupported transition %q", transition)
	}

	return &Handler{
		service:    service,
		transition: transition,
		route:      fmt.Sprintf("POST /booking/%s/{id}", transition),
		logger:     logger,
	}, nil
}

// Handle POST /booking/{confirm|cancel-unpaid|complete}/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("%s - Invalid booking ID: %v", h.route, err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing actor in context", h.route)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	booking, err := h.apply(r, bookingID, actor)
	if err != nil {
		var transitionErr *bookings.TransitionError
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("%s - Access denied: user=%d, salon_id=%d, booking_id=%d", h.route, actor.UserID, actor.SalonID, bookingID)
			handlers.RespondForbidden(w, msgForbiddenSalon)

		case errors.Is(err, errBadBody):
			h.logger.Warn("%s - Invalid request body: %v", h.route, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("%s - Booking not found: booking_id=%d", h.route, bookingID)
			handlers.RespondNotFound(w, handlers.ReasonBooking, msgNotFound)

		case errors.Is(err, bookings.ErrGracePeriodActive):
			h.logger.Warn("%s - Grace period active: booking_id=%d", h.route, bookingID)
			handlers.RespondInvalidState(w, handlers.ReasonGracePeriodActive, msgGracePeriodActive)

		case errors.As(err, &transitionErr):
			h.logger.Warn("%s - Invalid state: booking_id=%d, status=%s", h.route, bookingID, transitionErr.Current)
			handlers.RespondInvalidState(w, "", fmt.Sprintf("%s (%s)", msgInvalidState, transitionErr.Current))

		case errors.Is(err, bookings.ErrInvalidState):
			h.logger.Warn("%s - Invalid state: booking_id=%d, error=%v", h.route, bookingID, err)
			handlers.RespondInvalidState(w, "", msgInvalidState)

		default:
			h.logger.Error("%s - Failed to apply transition: booking_id=%d, error=%v", h.route, bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Transition applied: booking_id=%d, status=%s", h.route, bookingID, booking.Status)
	handlers.RespondJSON(w, http.StatusOK, booking)
}

var errBadBody = errors.New("bad request body")

func (h *Handler) apply(r *http.Request, id int64, actor domain.Actor) (*models.BookingResponse, error) {
	ctx := r.Context()

	if err := h.authorize(ctx, actor, id); err != nil {
		return nil, err
	}

	switch h.transition {
	case domain.TransitionConfirm:
		var req ConfirmRequest
		if err := handlers.DecodeOptionalJSON(r, &req); err != nil {
			return nil, fmt.Errorf("%w: %v", errBadBody, err)
		}
		return h.service.Confirm(ctx, id, req.PaymentReference)
	case domain.TransitionCancelUnpaid:
		return h.service.CancelUnpaid(ctx, id)
	default:
		return h.service.Complete(ctx, id)
	}
}

// authorize пропускает администратора и владельца салона, которому принадлежит бронирование
func (h *Handler) authorize(ctx context.Context, actor domain.Actor, id int64) error {
	if actor.Role == domain.RoleAdmin {
		return nil
	}

	booking, err := h.service.GetByID(ctx, id, actor)
	if err != nil {
		return err
	}
	if !actor.CanManageSalon(booking.SalonID) {
		return bookings.ErrAccessDenied
	}
	return nil
}
