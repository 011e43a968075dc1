package get_available_slots

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда у салона нет расписания
	ErrScheduleNotFound = errors.New("get_available_slots: schedule not found")

	// ErrClosedOnDay возвращается, когда салон не работает в день недели указанной даты
	ErrClosedOnDay = errors.New("get_available_slots: salon is closed on this day")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
