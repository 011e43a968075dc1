package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule/models"
)

// Service сервис для работы с недельным расписанием салонов
type Service struct {
	scheduleRepo ScheduleRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(scheduleRepo ScheduleRepository, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		logger:       logger,
	}
}

// Add создает расписание салона.
// У салона может быть только одно расписание: повторное создание отклоняется
// уникальным индексом БД (ErrScheduleAlreadyExists).
func (s *Service) Add(ctx context.Context, req *models.AddScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("Add: creating schedule for salon=%d with %d days", req.SalonID, len(req.WeeklySchedule))

	// 1. Валидируем входные данные
	schedule, err := s.buildSchedule(req.SalonID, req.WeeklySchedule)
	if err != nil {
		s.logger.Warn("Add: validation failed for salon=%d: %v", req.SalonID, err)
		return nil, err
	}

	// 2. Сохраняем
	created, err := s.scheduleRepo.Create(ctx, schedule)
	if err != nil {
		switch {
		case errors.Is(err, scheduleRepo.ErrScheduleExists):
			s.logger.Warn("Add: schedule for salon=%d already exists", req.SalonID)
			return nil, ErrScheduleAlreadyExists
		case errors.Is(err, scheduleRepo.ErrSalonNotFound):
			s.logger.Warn("Add: salon=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		default:
			s.logger.Error("Add: repository error for salon=%d: %v", req.SalonID, err)
			return nil, fmt.Errorf("%w: Add - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Add: successfully created schedule id=%d for salon=%d", created.ID, req.SalonID)
	return models.FromDomainSchedule(created), nil
}

// Get получает расписание салона
func (s *Service) Get(ctx context.Context, salonID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("Get: fetching schedule for salon=%d", salonID)

	if salonID <= 0 {
		return nil, fmt.Errorf("%w: salonId must be positive", ErrInvalidInput)
	}

	schedule, err := s.scheduleRepo.GetBySalonID(ctx, salonID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("Get: schedule for salon=%d not found", salonID)
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("Get: repository error for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSchedule(schedule), nil
}

// Update полностью заменяет расписание салона.
// Существующие бронирования не пересчитываются: они остаются в силе, а слоты,
// исчезнувшие из расписания, перестают отображаться в сетке доступности.
func (s *Service) Update(ctx context.Context, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("Update: replacing schedule for salon=%d with %d days", req.SalonID, len(req.WeeklySchedule))

	schedule, err := s.buildSchedule(req.SalonID, req.WeeklySchedule)
	if err != nil {
		s.logger.Warn("Update: validation failed for salon=%d: %v", req.SalonID, err)
		return nil, err
	}

	updated, err := s.scheduleRepo.Replace(ctx, req.SalonID, schedule.Days)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("Update: schedule for salon=%d not found", req.SalonID)
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("Update: repository error for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully replaced schedule for salon=%d", req.SalonID)
	return models.FromDomainSchedule(updated), nil
}

func (s *Service) buildSchedule(salonID int64, days []models.DaySchedule) (*domain.WeeklySchedule, error) {
	if salonID <= 0 {
		return nil, fmt.Errorf("%w: salonId must be positive", ErrInvalidInput)
	}

	domainDays, err := models.ToDomainDays(days)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	schedule := &domain.WeeklySchedule{SalonID: salonID, Days: domainDays}
	if err := schedule.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return schedule, nil
}
