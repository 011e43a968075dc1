package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	UserID     int64   `json:"userId"`
	SalonID    int64   `json:"salonId"`
	Date       string  `json:"date"`     // "2025-10-15" или RFC 3339
	TimeSlot   string  `json:"timeSlot"` // метка слота из расписания
	SeatNumber int     `json:"seatNumber"`
	Service    *string `json:"service,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Дата с временем приводится к календарному дню в часовом поясе салонов.
func (r *CreateBookingRequest) ToUseCaseRequest(loc *time.Location) (*createBooking.Request, error) {
	date, err := domain.ParseCalendarDate(r.Date, loc)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:     r.UserID,
		SalonID:    r.SalonID,
		Date:       date,
		TimeSlot:   r.TimeSlot,
		SeatNumber: r.SeatNumber,
		Service:    r.Service,
	}, nil
}
