package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда у салона нет расписания
	ErrScheduleNotFound = errors.New("schedule.repository: schedule not found")

	// ErrScheduleExists возвращается при попытке создать второе расписание салона
	ErrScheduleExists = errors.New("schedule.repository: schedule already exists")

	// ErrSalonNotFound возвращается, когда салон из расписания не существует
	ErrSalonNotFound = errors.New("schedule.repository: salon not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")

	// ErrEncode возвращается при ошибке (де)сериализации JSONB
	ErrEncode = errors.New("schedule.repository: failed to encode weekly schedule")
)
