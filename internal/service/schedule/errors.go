package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда у салона нет расписания
	ErrScheduleNotFound = errors.New("schedule not found")

	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("salon not found")

	// ErrScheduleAlreadyExists возвращается при попытке создать второе расписание салона
	ErrScheduleAlreadyExists = errors.New("schedule already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
