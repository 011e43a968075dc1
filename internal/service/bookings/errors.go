package bookings

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidState возвращается при недопустимом переходе статуса
	ErrInvalidState = errors.New("invalid booking state")

	// ErrGracePeriodActive возвращается, когда неоплаченную бронь ещё рано отменять
	ErrGracePeriodActive = fmt.Errorf("%w: grace period is still active", ErrInvalidState)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

// TransitionError недопустимый переход: операция не применима к текущему статусу
type TransitionError struct {
	BookingID  int64
	Transition domain.Transition
	Current    domain.BookingStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s booking id=%d in status %s",
		ErrInvalidState, e.Transition, e.BookingID, e.Current)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidState
}
