package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
)

// RealTimeProvider реальная реализация TimeProvider
type RealTimeProvider struct{}

// Now возвращает текущее время
func (RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Service сервис жизненного цикла бронирований.
// Все изменения статуса проходят через него.
type Service struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	recorder     TransitionRecorder
	unpaidGrace  time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	recorder TransitionRecorder,
	unpaidGrace time.Duration,
	logger Logger,
) *Service {
	return NewServiceWithTimeProvider(bookingRepo, txManager, recorder, unpaidGrace, RealTimeProvider{}, logger)
}

// NewServiceWithTimeProvider создает сервис с кастомным провайдером времени (для тестов)
func NewServiceWithTimeProvider(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	recorder TransitionRecorder,
	unpaidGrace time.Duration,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		recorder:     recorder,
		unpaidGrace:  unpaidGrace,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID.
// Пользователь видит только своё бронирование, персонал салона видит любое.
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, actor.UserID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !actor.CanAccessBooking(booking) {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", actor.UserID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetHistory получает историю статусов бронирования, от старых к новым
func (s *Service) GetHistory(ctx context.Context, id int64, actor domain.Actor) (*models.HistoryResponse, error) {
	s.logger.Info("GetHistory: fetching history of booking id=%d for user=%d", id, actor.UserID)

	booking, err := s.getBooking(ctx, "GetHistory", id)
	if err != nil {
		return nil, err
	}

	if !actor.CanAccessBooking(booking) {
		s.logger.Warn("GetHistory: access denied for user=%d to booking id=%d", actor.UserID, id)
		return nil, ErrAccessDenied
	}

	changes, err := s.bookingRepo.GetStatusHistory(ctx, id)
	if err != nil {
		s.logger.Error("GetHistory: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetHistory - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainHistory(id, changes), nil
}

// GetUserBookings получает бронирования пользователя, сначала новые.
// Опционально фильтрует по статусу.
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userId must be positive", ErrInvalidInput)
	}

	if req.Actor.UserID != req.UserID && !req.Actor.IsStaff() {
		s.logger.Warn("GetUserBookings: access denied for user=%d to bookings of user=%d", req.Actor.UserID, req.UserID)
		return nil, ErrAccessDenied
	}

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := domain.ParseBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	// Владелец салона видит только бронирования своего салона
	if req.Actor.UserID != req.UserID {
		visible := make([]*domain.Booking, 0, len(bookings))
		for _, b := range bookings {
			if req.Actor.CanAccessBooking(b) {
				visible = append(visible, b)
			}
		}
		bookings = visible
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetSalonBookings получает бронирования салона, сначала новые.
// Поддерживает фильтрацию по периоду и статусу.
func (s *Service) GetSalonBookings(ctx context.Context, req *models.GetSalonBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetSalonBookings: fetching bookings for salon=%d", req.SalonID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	s.logger.Info("%s", logMsg)

	if req.SalonID <= 0 {
		return nil, fmt.Errorf("%w: salonId must be positive", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetSalonBookings: invalid filter for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetBySalon(ctx, filter)
	if err != nil {
		s.logger.Error("GetSalonBookings: repository error for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: GetSalonBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSalonBookings: successfully fetched %d bookings for salon=%d", len(bookings), req.SalonID)
	return models.FromDomainBookingList(bookings), nil
}

// Confirm подтверждает оплаченное бронирование: pending -> confirmed
func (s *Service) Confirm(ctx context.Context, id int64, paymentRef *string) (*models.BookingResponse, error) {
	return s.apply(ctx, id, transitionParams{
		transition: domain.TransitionConfirm,
		paymentRef: paymentRef,
		markPaid:   true,
	})
}

// Cancel отменяет бронирование: {pending, confirmed} -> cancelled.
// Пользователь может отменить только своё бронирование.
func (s *Service) Cancel(ctx context.Context, id int64, actor domain.Actor, reason *string) (*models.BookingResponse, error) {
	if reason != nil && len(*reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellation reason is too long", ErrInvalidInput)
	}

	return s.apply(ctx, id, transitionParams{
		transition: domain.TransitionCancel,
		reason:     reason,
		guard: func(b *domain.Booking) (bool, error) {
			if !actor.CanAccessBooking(b) {
				s.logger.Warn("Cancel: access denied for user=%d to booking id=%d", actor.UserID, b.ID)
				return false, ErrAccessDenied
			}
			return false, nil
		},
	})
}

// CancelUnpaid отменяет неоплаченное бронирование после истечения окна оплаты: pending -> cancelled.
// Уже отменённое бронирование возвращается без изменений. Подтверждённое
// или завершённое бронирование не отменяется (ErrInvalidState).
func (s *Service) CancelUnpaid(ctx context.Context, id int64) (*models.BookingResponse, error) {
	reason := domain.ReasonPaymentTimeout

	return s.apply(ctx, id, transitionParams{
		transition: domain.TransitionCancelUnpaid,
		reason:     &reason,
		guard: func(b *domain.Booking) (bool, error) {
			if b.Status == domain.StatusCancelled {
				s.logger.Info("CancelUnpaid: booking id=%d is already cancelled, nothing to do", b.ID)
				return true, nil
			}
			if b.Status != domain.StatusPending {
				return false, nil
			}
			if deadline := b.CreatedAt.Add(s.unpaidGrace); s.timeProvider.Now().Before(deadline) {
				s.logger.Warn("CancelUnpaid: booking id=%d is within grace period until %s",
					b.ID, deadline.Format(time.RFC3339))
				return false, ErrGracePeriodActive
			}
			return false, nil
		},
	})
}

// Complete завершает обслуживание: confirmed -> completed
func (s *Service) Complete(ctx context.Context, id int64) (*models.BookingResponse, error) {
	return s.apply(ctx, id, transitionParams{
		transition: domain.TransitionComplete,
	})
}

// transitionParams параметры перехода статуса
type transitionParams struct {
	transition domain.Transition
	reason     *string
	paymentRef *string
	markPaid   bool

	// guard вызывается для заблокированной строки до проверки перехода.
	// skip=true завершает операцию успешно без изменений.
	guard func(b *domain.Booking) (skip bool, err error)
}

// apply выполняет переход статуса в транзакции:
// блокировка строки, проверка перехода, CAS-обновление и запись истории
func (s *Service) apply(ctx context.Context, id int64, p transitionParams) (*models.BookingResponse, error) {
	op := string(p.transition)
	s.logger.Info("Transition %s: booking id=%d", op, id)

	var (
		before  domain.BookingStatus
		updated *domain.Booking
		skipped bool
	)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		// 1. Получаем бронирование (внутри транзакции строка блокируется)
		current, err := s.bookingRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		before = current.Status

		// 2. Дополнительные проверки операции
		if p.guard != nil {
			skip, err := p.guard(current)
			if err != nil {
				return err
			}
			if skip {
				skipped = true
				updated = current
				return nil
			}
		}

		// 3. Проверяем допустимость перехода
		if !p.transition.CanApply(current.Status) {
			return &TransitionError{BookingID: id, Transition: p.transition, Current: current.Status}
		}

		// 4. Атомарно меняем статус
		updated, err = s.bookingRepo.UpdateStatus(ctx, id, domain.BookingStatusUpdate{
			From:       p.transition.AllowedFrom(),
			To:         p.transition.Target(),
			Reason:     p.reason,
			PaymentRef: p.paymentRef,
			MarkPaid:   p.markPaid,
		})
		if errors.Is(err, bookingRepo.ErrStatusMismatch) && updated != nil {
			return &TransitionError{BookingID: id, Transition: p.transition, Current: updated.Status}
		}
		if err != nil {
			return err
		}

		// 5. Пишем историю статусов
		from := before
		return s.bookingRepo.AddStatusChange(ctx, &domain.BookingStatusChange{
			BookingID:  id,
			FromStatus: &from,
			ToStatus:   updated.Status,
			Reason:     p.reason,
		})
	})

	if err != nil {
		var transitionErr *TransitionError
		switch {
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			s.logger.Warn("Transition %s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		case errors.As(err, &transitionErr):
			s.logger.Warn("Transition %s: rejected for booking id=%d: status=%s", op, id, transitionErr.Current)
			return nil, err
		case errors.Is(err, ErrInvalidState), errors.Is(err, ErrAccessDenied):
			return nil, err
		default:
			s.logger.Error("Transition %s: failed for booking id=%d: %v", op, id, err)
			return nil, fmt.Errorf("%w: %s - transaction failed: %v", ErrInternal, op, err)
		}
	}

	if skipped {
		return models.FromDomainBooking(updated), nil
	}

	if s.recorder != nil {
		s.recorder.Transition(string(before), string(updated.Status))
	}
	s.logger.Info("Transition %s: booking id=%d status %s -> %s", op, id, before, updated.Status)

	return models.FromDomainBooking(updated), nil
}

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}
