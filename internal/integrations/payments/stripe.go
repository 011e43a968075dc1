package payments

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
)

// BookingIDMetadataKey ключ метаданных PaymentIntent с ID бронирования
const BookingIDMetadataKey = "bookingId"

const (
	stripePaymentSucceeded = "payment_intent.succeeded"
	stripePaymentCanceled  = "payment_intent.canceled"
)

// EventKind тип платёжного события, значимый для бронирований
type EventKind string

const (
	EventPaymentSucceeded EventKind = "payment_succeeded"
	EventPaymentCanceled  EventKind = "payment_canceled"
	EventIgnored          EventKind = "ignored"
)

// Event разобранное платёжное событие
type Event struct {
	ID              string
	Kind            EventKind
	Type            string
	BookingID       int64
	PaymentIntentID string
}

// StripeVerifier проверяет подпись вебхуков Stripe и разбирает события PaymentIntent
type StripeVerifier struct {
	secret string
}

// NewStripeVerifier создает верификатор с секретом эндпоинта вебхука
func NewStripeVerifier(secret string) *StripeVerifier {
	return &StripeVerifier{secret: secret}
}

// Parse проверяет заголовок Stripe-Signature и возвращает событие.
// События кроме succeeded/canceled возвращаются с Kind=EventIgnored.
func (v *StripeVerifier) Parse(payload []byte, signatureHeader string) (*Event, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signatureHeader, v.secret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	result := &Event{ID: event.ID, Type: string(event.Type), Kind: EventIgnored}

	switch string(event.Type) {
	case stripePaymentSucceeded:
		result.Kind = EventPaymentSucceeded
	case stripePaymentCanceled:
		result.Kind = EventPaymentCanceled
	default:
		return result, nil
	}

	if event.Data == nil {
		return nil, fmt.Errorf("%w: event %s has no data", ErrMalformedEvent, event.ID)
	}

	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return nil, fmt.Errorf("%w: decode payment intent: %v", ErrMalformedEvent, err)
	}
	result.PaymentIntentID = intent.ID

	raw, ok := intent.Metadata[BookingIDMetadataKey]
	if !ok || raw == "" {
		return nil, fmt.Errorf("%w: payment intent %s", ErrMissingBookingID, intent.ID)
	}

	bookingID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || bookingID <= 0 {
		return nil, fmt.Errorf("%w: bad bookingId %q", ErrMalformedEvent, raw)
	}
	result.BookingID = bookingID

	return result, nil
}
