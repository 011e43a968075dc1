package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/schedule"
)

// UseCase use case для расчёта занятости мест по слотам на дату
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		logger:       logger,
	}
}

// Execute строит сетку мест для каждого слота дня.
// Только чтение, результат отражает последние закоммиченные бронирования.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	weekday := domain.WeekdayOf(req.Date)
	uc.logger.Info("GetAvailableSlots: salon=%d, date=%s (%s)",
		req.SalonID, req.Date.Format(domain.DateFormat), weekday)

	// 2. Получаем расписание салона
	schedule, err := uc.scheduleRepo.GetBySalonID(ctx, req.SalonID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Warn("GetAvailableSlots: schedule for salon=%d not found", req.SalonID)
			return nil, ErrScheduleNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get schedule for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	// 3. Находим расписание дня недели
	day, ok := schedule.DayFor(weekday)
	if !ok {
		uc.logger.Warn("GetAvailableSlots: salon=%d is closed on %s", req.SalonID, weekday)
		return nil, ErrClosedOnDay
	}

	// 4. Получаем неотменённые бронирования на дату
	bookings, err := uc.bookingRepo.GetBySalonAndDate(ctx, req.SalonID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 5. Строим сетку; бронирования на несуществующие слоты/места пропускаются
	slots, stale := domain.BuildAvailability(day, bookings)
	for _, b := range stale {
		uc.logger.Warn("GetAvailableSlots: data integrity: booking id=%d has slot=%q seat=%d not in %s schedule of salon=%d",
			b.ID, b.TimeSlot, b.SeatNumber, weekday, req.SalonID)
	}

	uc.logger.Info("GetAvailableSlots: salon=%d, date=%s, slots=%d, seats_per_slot=%d, bookings=%d",
		req.SalonID, req.Date.Format(domain.DateFormat), len(slots), day.TotalSeats, len(bookings))

	return &Response{
		SalonID: req.SalonID,
		Date:    req.Date,
		Day:     weekday,
		Slots:   slots,
	}, nil
}
