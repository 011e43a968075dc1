package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	AddStatusChange(ctx context.Context, change *domain.BookingStatusChange) error
}

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetBySalonID(ctx context.Context, salonID int64) (*domain.WeeklySchedule, error)
}

// UnpaidScheduler планирует отмену неоплаченного бронирования по истечении окна оплаты
type UnpaidScheduler interface {
	ScheduleCancelUnpaid(ctx context.Context, bookingID int64) error
}

// CreationRecorder считает созданные бронирования и конфликты мест
type CreationRecorder interface {
	BookingCreated()
	SeatConflict()
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
