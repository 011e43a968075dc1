package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
)

// CancelUnpaidHandler обрабатывает задачи TypeCancelUnpaid
type CancelUnpaidHandler struct {
	canceller BookingCanceller
	logger    Logger
}

// NewCancelUnpaidHandler создает обработчик
func NewCancelUnpaidHandler(canceller BookingCanceller, logger Logger) *CancelUnpaidHandler {
	return &CancelUnpaidHandler{canceller: canceller, logger: logger}
}

// ProcessTask реализует asynq.Handler.
// Активное окно оплаты повторяется очередью; отсутствующее бронирование
// и недопустимый статус завершают задачу без повторов.
func (h *CancelUnpaidHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var p CancelUnpaidPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		h.logger.Error("CancelUnpaidTask: invalid payload: %v", err)
		return fmt.Errorf("%w: invalid payload: %v", asynq.SkipRetry, err)
	}

	resp, err := h.canceller.CancelUnpaid(ctx, p.BookingID)
	switch {
	case err == nil:
		h.logger.Info("CancelUnpaidTask: booking id=%d is %s", p.BookingID, resp.Status)
		return nil
	case errors.Is(err, bookings.ErrGracePeriodActive):
		h.logger.Warn("CancelUnpaidTask: booking id=%d grace period still active, retrying", p.BookingID)
		return err
	case errors.Is(err, bookings.ErrBookingNotFound), errors.Is(err, bookings.ErrInvalidState):
		h.logger.Info("CancelUnpaidTask: booking id=%d left as is: %v", p.BookingID, err)
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	default:
		h.logger.Error("CancelUnpaidTask: booking id=%d failed: %v", p.BookingID, err)
		return err
	}
}

// Worker asynq-сервер, обрабатывающий отложенные задачи бронирований
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

// NewWorker создает сервер очереди и регистрирует обработчики
func NewWorker(
	redisOpt asynq.RedisClientOpt,
	concurrency int,
	queue string,
	canceller BookingCanceller,
	logger Logger,
	asynqLogger asynq.Logger,
) *Worker {
	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{queue: 1},
		Logger:      asynqLogger,
	})

	mux := asynq.NewServeMux()
	mux.Handle(TypeCancelUnpaid, NewCancelUnpaidHandler(canceller, logger))

	return &Worker{server: server, mux: mux}
}

// Start запускает обработку задач в фоне
func (w *Worker) Start() error {
	return w.server.Start(w.mux)
}

// Shutdown дожидается завершения текущих задач и останавливает сервер
func (w *Worker) Shutdown() {
	w.server.Shutdown()
}
