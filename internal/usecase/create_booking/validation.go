package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userId must be positive", ErrInvalidInput)
	}

	if req.SalonID <= 0 {
		return fmt.Errorf("%w: salonId must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.TimeSlot) == "" {
		return fmt.Errorf("%w: timeSlot is required", ErrInvalidInput)
	}

	if req.SeatNumber <= 0 {
		return fmt.Errorf("%w: seatNumber must be positive", ErrInvalidInput)
	}

	if req.Service != nil && len(*req.Service) > domain.MaxServiceNameLength {
		return fmt.Errorf("%w: service name is too long", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата не раньше сегодняшнего дня в часовом поясе салона
func validateDate(bookingDate time.Time, now time.Time, loc *time.Location) error {
	today := domain.CalendarDay(now, loc)
	if bookingDate.Before(today) {
		return fmt.Errorf("%w: %s is before %s", ErrDateInPast,
			bookingDate.Format(domain.DateFormat), today.Format(domain.DateFormat))
	}
	return nil
}

// validatePlacement проверяет, что слот и место объявлены в расписании дня
func validatePlacement(day *domain.DaySchedule, timeSlot string, seat int) error {
	if !day.HasSlot(timeSlot) {
		return fmt.Errorf("%w: %q is not offered on %s", ErrInvalidTimeSlot, timeSlot, day.Day)
	}

	if !day.HasSeat(seat) {
		return fmt.Errorf("%w: seat %d is out of range 1..%d", ErrInvalidSeat, seat, day.TotalSeats)
	}

	return nil
}
