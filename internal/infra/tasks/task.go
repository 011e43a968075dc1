package tasks

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// TypeCancelUnpaid задача отмены бронирования, не оплаченного в течение окна оплаты
const TypeCancelUnpaid = "booking:cancel_unpaid"

// CancelUnpaidPayload полезная нагрузка задачи
type CancelUnpaidPayload struct {
	BookingID int64 `json:"bookingId"`
}

// NewCancelUnpaidTask создает задачу для бронирования
func NewCancelUnpaidTask(bookingID int64) (*asynq.Task, error) {
	payload, err := json.Marshal(CancelUnpaidPayload{BookingID: bookingID})
	if err != nil {
		return nil, fmt.Errorf("marshal cancel-unpaid payload: %w", err)
	}
	return asynq.NewTask(TypeCancelUnpaid, payload), nil
}

// cancelUnpaidTaskID делает постановку идемпотентной: одна задача на бронирование
func cancelUnpaidTaskID(bookingID int64) string {
	return fmt.Sprintf("cancel-unpaid:%d", bookingID)
}
