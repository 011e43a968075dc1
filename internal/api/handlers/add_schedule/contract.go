package add_schedule

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule/models"
)

type ScheduleService interface {
	Add(ctx context.Context, req *models.AddScheduleRequest) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
