package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	scheduleRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/schedule"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	scheduler    UnpaidScheduler
	recorder     CreationRecorder
	txManager    TransactionManager
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	scheduler UnpaidScheduler,
	recorder CreationRecorder,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *UseCase {
	return NewUseCaseWithTimeProvider(bookingRepo, scheduleRepo, scheduler, recorder, txManager, location, &RealTimeProvider{}, logger)
}

// NewUseCaseWithTimeProvider создает use case с кастомным провайдером времени (для тестов)
func NewUseCaseWithTimeProvider(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	scheduler UnpaidScheduler,
	recorder CreationRecorder,
	txManager TransactionManager,
	location *time.Location,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		scheduler:    scheduler,
		recorder:     recorder,
		txManager:    txManager,
		location:     location,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Эксклюзивность места обеспечивает уникальный индекс БД на
// (salon, date, slot, seat) для активных статусов: чтения перед вставкой нет.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	req.TimeSlot = strings.TrimSpace(req.TimeSlot)

	uc.logger.Info("CreateBooking: user=%d, salon=%d, date=%s, slot=%q, seat=%d",
		req.UserID, req.SalonID, req.Date.Format(domain.DateFormat), req.TimeSlot, req.SeatNumber)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата не может быть в прошлом
	if err := validateDate(req.Date, uc.timeProvider.Now(), uc.location); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем расписание салона
	schedule, err := uc.scheduleRepo.GetBySalonID(ctx, req.SalonID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Warn("CreateBooking: schedule for salon=%d not found", req.SalonID)
			return nil, ErrScheduleNotFound
		}
		uc.logger.Error("CreateBooking: failed to get schedule for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	// 4. Находим расписание дня недели
	weekday := domain.WeekdayOf(req.Date)
	day, ok := schedule.DayFor(weekday)
	if !ok {
		uc.logger.Warn("CreateBooking: salon=%d is closed on %s", req.SalonID, weekday)
		return nil, ErrClosedOnDay
	}

	// 5. Проверяем слот и место
	if err := validatePlacement(day, req.TimeSlot, req.SeatNumber); err != nil {
		uc.logger.Warn("CreateBooking: placement validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	// 6. Вставка и запись истории в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			UserID:        req.UserID,
			SalonID:       req.SalonID,
			BookingDate:   req.Date,
			TimeSlot:      req.TimeSlot,
			SeatNumber:    req.SeatNumber,
			Service:       req.Service,
			Status:        domain.StatusPending,
			PaymentStatus: domain.PaymentPending,
		})
		if err != nil {
			return err
		}

		if err := uc.bookingRepo.AddStatusChange(txCtx, &domain.BookingStatusChange{
			BookingID: created.ID,
			ToStatus:  domain.StatusPending,
		}); err != nil {
			return err
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, bookingRepo.ErrSeatTaken) {
			uc.recordSeatConflict()
			uc.logger.Warn("CreateBooking: seat taken: salon=%d, date=%s, slot=%q, seat=%d",
				req.SalonID, req.Date.Format(domain.DateFormat), req.TimeSlot, req.SeatNumber)
			return nil, ErrSeatTaken
		}
		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: booking id=%d status none -> %s", result.ID, result.Status)

	// 7. Планируем отмену при неоплате; ошибка не отменяет созданное бронирование
	if err := uc.scheduler.ScheduleCancelUnpaid(ctx, result.ID); err != nil {
		uc.logger.Error("CreateBooking: failed to schedule unpaid expiry for booking id=%d: %v", result.ID, err)
	}

	if uc.recorder != nil {
		uc.recorder.BookingCreated()
	}

	return &Response{Booking: result}, nil
}

func (uc *UseCase) recordSeatConflict() {
	if uc.recorder != nil {
		uc.recorder.SeatConflict()
	}
}
