package cancel_booking

// CancelBookingRequest HTTP request model, тело запроса необязательно
type CancelBookingRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}
