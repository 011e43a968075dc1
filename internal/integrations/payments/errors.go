package payments

import "errors"

var (
	// ErrInvalidSignature возвращается, когда подпись вебхука не прошла проверку
	ErrInvalidSignature = errors.New("payments: invalid webhook signature")

	// ErrMalformedEvent возвращается, когда событие не удалось разобрать
	ErrMalformedEvent = errors.New("payments: malformed event")

	// ErrMissingBookingID возвращается, когда в метаданных платежа нет bookingId
	ErrMissingBookingID = errors.New("payments: bookingId metadata is missing")
)
