package tasks

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
)

// BookingCanceller отменяет неоплаченные бронирования
type BookingCanceller interface {
	CancelUnpaid(ctx context.Context, id int64) (*models.BookingResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
