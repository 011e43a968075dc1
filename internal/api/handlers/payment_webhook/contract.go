package payment_webhook

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/payments"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
)

type EventParser interface {
	Parse(payload []byte, signatureHeader string) (*payments.Event, error)
}

type BookingService interface {
	Confirm(ctx context.Context, id int64, paymentRef *string) (*models.BookingResponse, error)
	Cancel(ctx context.Context, id int64, actor domain.Actor, reason *string) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
