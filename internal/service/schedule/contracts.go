package schedule

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// ScheduleRepository интерфейс репозитория недельных расписаний
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *domain.WeeklySchedule) (*domain.WeeklySchedule, error)
	GetBySalonID(ctx context.Context, salonID int64) (*domain.WeeklySchedule, error)
	Replace(ctx context.Context, salonID int64, days []domain.DaySchedule) (*domain.WeeklySchedule, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
