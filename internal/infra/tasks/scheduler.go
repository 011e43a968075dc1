package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// Scheduler ставит отложенные задачи отмены в очередь Redis
type Scheduler struct {
	client *asynq.Client
	grace  time.Duration
	queue  string
	logger Logger
}

// NewScheduler создает клиента очереди
func NewScheduler(redisOpt asynq.RedisClientOpt, grace time.Duration, queue string, logger Logger) *Scheduler {
	return &Scheduler{
		client: asynq.NewClient(redisOpt),
		grace:  grace,
		queue:  queue,
		logger: logger,
	}
}

// ScheduleCancelUnpaid ставит задачу на момент окончания окна оплаты.
// Повторная постановка для того же бронирования игнорируется.
func (s *Scheduler) ScheduleCancelUnpaid(ctx context.Context, bookingID int64) error {
	task, err := NewCancelUnpaidTask(bookingID)
	if err != nil {
		return err
	}

	info, err := s.client.EnqueueContext(ctx, task,
		asynq.ProcessIn(s.grace),
		asynq.TaskID(cancelUnpaidTaskID(bookingID)),
		asynq.Queue(s.queue),
	)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		s.logger.Info("ScheduleCancelUnpaid: task for booking id=%d already queued", bookingID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("enqueue cancel-unpaid for booking id=%d: %w", bookingID, err)
	}

	s.logger.Info("ScheduleCancelUnpaid: booking id=%d will expire at %s (task %s)",
		bookingID, info.NextProcessAt.Format(time.RFC3339), info.ID)
	return nil
}

// Close закрывает соединение с Redis
func (s *Scheduler) Close() error {
	return s.client.Close()
}

// NoopScheduler используется, когда очередь отключена
type NoopScheduler struct {
	logger Logger
}

// NewNoopScheduler создает планировщик-заглушку
func NewNoopScheduler(logger Logger) *NoopScheduler {
	return &NoopScheduler{logger: logger}
}

// ScheduleCancelUnpaid только логирует: отмену придётся выполнить через API
func (s *NoopScheduler) ScheduleCancelUnpaid(_ context.Context, bookingID int64) error {
	s.logger.Warn("ScheduleCancelUnpaid: task queue is disabled, booking id=%d will not expire automatically", bookingID)
	return nil
}

// Close ничего не делает
func (s *NoopScheduler) Close() error {
	return nil
}
