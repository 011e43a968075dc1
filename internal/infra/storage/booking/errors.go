package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSeatTaken возвращается, когда место в слоте уже занято активным бронированием
	ErrSeatTaken = errors.New("booking.repository: seat already taken")

	// ErrStatusMismatch возвращается, когда текущий статус не допускает обновления
	ErrStatusMismatch = errors.New("booking.repository: booking status does not match")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
