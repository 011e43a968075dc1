package payment_webhook

import (
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/payments"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
)

// SignatureHeader заголовок с подписью Stripe
const SignatureHeader = "Stripe-Signature"

// CancelReason причина отмены бронирования при отмене платежа
const CancelReason = "payment-canceled"

const maxPayloadBytes = 65536

const (
	msgUnreadableBody   = "не удалось прочитать тело запроса"
	msgPayloadTooLarge  = "тело вебхука превышает допустимый размер"
	msgInvalidSignature = "некорректная подпись вебхука"
	msgMalformedEvent   = "некорректное событие"
)

// AckResponse тело ответа на принятое событие
type AckResponse struct {
	Received bool   `json:"received"`
	Result   string `json:"result"`
}

type Handler struct {
	parser  EventParser
	service BookingService
	logger  Logger
}

func NewHandler(parser EventParser, service BookingService, logger Logger) *Handler {
	return &Handler{
		parser:  parser,
		service: service,
		logger:  logger,
	}
}

// Handle POST /payment/webhook
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPayloadBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.logger.Warn("POST /payment/webhook - Payload exceeds %d bytes", tooLarge.Limit)
			handlers.RespondPayloadTooLarge(w, msgPayloadTooLarge)
			return
		}
		h.logger.Warn("POST /payment/webhook - Failed to read body: %v", err)
		handlers.RespondBadRequest(w, msgUnreadableBody)
		return
	}

	event, err := h.parser.Parse(payload, r.Header.Get(SignatureHeader))
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrInvalidSignature):
			h.logger.Warn("POST /payment/webhook - Invalid signature: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSignature)

		case errors.Is(err, payments.ErrMissingBookingID):
			// Платеж не относится к бронированию, повторять не нужно
			h.logger.Info("POST /payment/webhook - Event without booking: %v", err)
			handlers.RespondJSON(w, http.StatusOK, AckResponse{Received: true, Result: "ignored"})

		default:
			h.logger.Warn("POST /payment/webhook - Malformed event: %v", err)
			handlers.RespondBadRequest(w, msgMalformedEvent)
		}
		return
	}

	var result string
	switch event.Kind {
	case payments.EventPaymentSucceeded:
		ref := event.PaymentIntentID
		_, err = h.service.Confirm(r.Context(), event.BookingID, &ref)
		result = "confirmed"
	case payments.EventPaymentCanceled:
		reason := CancelReason
		_, err = h.service.Cancel(r.Context(), event.BookingID, domain.SystemActor, &reason)
		result = "cancelled"
	default:
		h.logger.Info("POST /payment/webhook - Ignored event: event_id=%s, type=%s", event.ID, event.Type)
		handlers.RespondJSON(w, http.StatusOK, AckResponse{Received: true, Result: "ignored"})
		return
	}

	if err != nil {
		switch {
		// Повтор не изменит исход, подтверждаем получение
		case errors.Is(err, bookings.ErrBookingNotFound), errors.Is(err, bookings.ErrInvalidState):
			h.logger.Warn("POST /payment/webhook - Event not applicable: event_id=%s, booking_id=%d, error=%v",
				event.ID, event.BookingID, err)
			handlers.RespondJSON(w, http.StatusOK, AckResponse{Received: true, Result: "skipped"})

		default:
			h.logger.Error("POST /payment/webhook - Failed to apply event: event_id=%s, booking_id=%d, error=%v",
				event.ID, event.BookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payment/webhook - Event applied: event_id=%s, booking_id=%d, result=%s",
		event.ID, event.BookingID, result)
	handlers.RespondJSON(w, http.StatusOK, AckResponse{Received: true, Result: result})
}
