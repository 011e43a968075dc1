package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/pgerr"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

const (
	salonUniqueConstraint = "schedules_salon_id_uidx"
	salonForeignKey       = "schedules_salon_id_fkey"
)

// Repository репозиторий недельных расписаний салонов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет расписание салона.
// Второе расписание для того же салона отклоняется уникальным индексом (ErrScheduleExists).
func (r *Repository) Create(ctx context.Context, schedule *domain.WeeklySchedule) (*domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	raw, err := encodeDays(schedule.Days)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Insert("schedules").
		Columns("salon_id", "weekly_schedule").
		Values(schedule.SalonID, string(raw)).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&schedule.ID,
		&schedule.CreatedAt,
		&schedule.UpdatedAt,
	)

	switch {
	case pgerr.IsUniqueViolation(err, salonUniqueConstraint):
		return nil, ErrScheduleExists
	case pgerr.IsForeignKeyViolation(err, salonForeignKey):
		return nil, ErrSalonNotFound
	case err != nil:
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return schedule, nil
}

// GetBySalonID получает расписание салона
func (r *Repository) GetBySalonID(ctx context.Context, salonID int64) (*domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "salon_id", "weekly_schedule", "created_at", "updated_at").
		From("schedules").
		Where(squirrel.Eq{"salon_id": salonID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalonID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		schedule domain.WeeklySchedule
		raw      []byte
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&schedule.ID,
		&schedule.SalonID,
		&raw,
		&schedule.CreatedAt,
		&schedule.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalonID - scan schedule: %v", ErrScanRow, err)
	}

	if schedule.Days, err = decodeDays(raw); err != nil {
		return nil, err
	}

	return &schedule, nil
}

// Replace полностью заменяет недельное расписание салона
func (r *Repository) Replace(ctx context.Context, salonID int64, days []domain.DaySchedule) (*domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	raw, err := encodeDays(days)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Update("schedules").
		Set("weekly_schedule", string(raw)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"salon_id": salonID}).
		Suffix("RETURNING id, salon_id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Replace - build update query: %v", ErrBuildQuery, err)
	}

	schedule := domain.WeeklySchedule{Days: days}
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&schedule.ID,
		&schedule.SalonID,
		&schedule.CreatedAt,
		&schedule.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Replace - execute update: %v", ErrExecQuery, err)
	}

	return &schedule, nil
}
