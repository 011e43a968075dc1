package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "whsec_test"

func sign(payload []byte, secret string) string {
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(fmt.Sprintf("%d.%s", ts, payload)))
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func eventPayload(eventType, metadata string) []byte {
	return []byte(fmt.Sprintf(`{
		"id": "evt_1",
		"object": "event",
		"api_version": "2023-10-16",
		"type": %q,
		"data": {"object": {"id": "pi_1", "object": "payment_intent", "metadata": %s}}
	}`, eventType, metadata))
}

func TestParse_PaymentSucceeded(t *testing.T) {
	payload := eventPayload("payment_intent.succeeded", `{"bookingId": "42"}`)

	event, err := NewStripeVerifier(secret).Parse(payload, sign(payload, secret))
	require.NoError(t, err)
	assert.Equal(t, EventPaymentSucceeded, event.Kind)
	assert.Equal(t, int64(42), event.BookingID)
	assert.Equal(t, "pi_1", event.PaymentIntentID)
}

func TestParse_PaymentCanceled(t *testing.T) {
	payload := eventPayload("payment_intent.canceled", `{"bookingId": "7"}`)

	event, err := NewStripeVerifier(secret).Parse(payload, sign(payload, secret))
	require.NoError(t, err)
	assert.Equal(t, EventPaymentCanceled, event.Kind)
	assert.Equal(t, int64(7), event.BookingID)
}

func TestParse_OtherEventsAreIgnored(t *testing.T) {
	payload := eventPayload("charge.refunded", `{}`)

	event, err := NewStripeVerifier(secret).Parse(payload, sign(payload, secret))
	require.NoError(t, err)
	assert.Equal(t, EventIgnored, event.Kind)
}

func TestParse_BadSignature(t *testing.T) {
	payload := eventPayload("payment_intent.succeeded", `{"bookingId": "42"}`)

	_, err := NewStripeVerifier(secret).Parse(payload, sign(payload, "whsec_other"))
	assert.ErrorIs(t, err, ErrInvalidSignature)

	_, err = NewStripeVerifier(secret).Parse(payload, "")
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestParse_MissingBookingID(t *testing.T) {
	payload := eventPayload("payment_intent.succeeded", `{}`)

	_, err := NewStripeVerifier(secret).Parse(payload, sign(payload, secret))
	assert.ErrorIs(t, err, ErrMissingBookingID)

	payload = eventPayload("payment_intent.succeeded", `{"bookingId": "abc"}`)
	_, err = NewStripeVerifier(secret).Parse(payload, sign(payload, secret))
	assert.ErrorIs(t, err, ErrMalformedEvent)
}
