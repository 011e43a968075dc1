package list_salons

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/service/salons/models"
)

type SalonService interface {
	List(ctx context.Context, status *string) (*models.SalonListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
