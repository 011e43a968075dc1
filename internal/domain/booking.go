package domain

import (
	"fmt"
	"time"
)

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// ParseBookingStatus validates a raw status value
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch status := BookingStatus(s); status {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBookingStatus, s)
	}
}

// IsTerminal returns true for statuses that accept no further transitions
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// PaymentStatus represents whether the booking has been paid
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// Booking is a reservation of one seat in one slot on one date
type Booking struct {
	ID          int64
	UserID      int64
	SalonID     int64
	BookingDate time.Time // date only, midnight UTC
	TimeSlot    string
	SeatNumber  int
	Service     *string
	Status      BookingStatus

	PaymentStatus    PaymentStatus
	PaymentReference *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OccupiesGrid returns true if the booking is shown as booked in the availability grid
func (b *Booking) OccupiesGrid() bool {
	return b.Status != StatusCancelled
}

// BookingStatusChange is one persisted lifecycle transition
type BookingStatusChange struct {
	ID         int64
	BookingID  int64
	FromStatus *BookingStatus // nil on creation
	ToStatus   BookingStatus
	Reason     *string
	CreatedAt  time.Time
}

// BookingStatusUpdate describes a compare-and-swap status change
type BookingStatusUpdate struct {
	From       []BookingStatus // update applies only if the current status is one of these
	To         BookingStatus
	Reason     *string // stored as cancellation reason when To is cancelled
	PaymentRef *string // set together with paymentStatus=paid when MarkPaid is true
	MarkPaid   bool
}

// SalonBookingsFilter filters bookings of a salon
type SalonBookingsFilter struct {
	SalonID   int64          // обязательный параметр
	StartDate *time.Time     // начало периода (опционально)
	EndDate   *time.Time     // конец периода (опционально)
	Status    *BookingStatus // фильтр по статусу (опционально)
}
