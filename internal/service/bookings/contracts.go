package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetBySalon(ctx context.Context, filter domain.SalonBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, update domain.BookingStatusUpdate) (*domain.Booking, error)
	AddStatusChange(ctx context.Context, change *domain.BookingStatusChange) error
	GetStatusHistory(ctx context.Context, bookingID int64) ([]*domain.BookingStatusChange, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TransitionRecorder считает переходы между статусами
type TransitionRecorder interface {
	Transition(from, to string)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
