package booking_transition

// ConfirmRequest необязательное тело запроса подтверждения
type ConfirmRequest struct {
	PaymentReference *string `json:"paymentReference,omitempty"`
}
