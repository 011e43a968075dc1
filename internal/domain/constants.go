package domain

// Schedule limits
const (
	MinSeatsPerDay     = 1
	MaxSeatsPerDay     = 100
	MaxSlotLabelLength = 64
)

// Booking limits
const (
	MaxCancellationReasonLength = 500
	MaxServiceNameLength        = 255
)

// Salon limits
const (
	MaxSalonPhotos   = 10
	MaxMobileLength  = 32
	MaxNameLength    = 255
	MaxAddressLength = 1000
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Cancellation reasons written by the system
const (
	ReasonPaymentTimeout  = "payment-timeout"
	ReasonPaymentCanceled = "payment-canceled"
)

// ActiveStatuses are the statuses that hold a seat exclusively.
// The bookings_active_seat_uidx predicate lists the same set.
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
