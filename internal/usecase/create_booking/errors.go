package create_booking

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда у салона нет расписания
	ErrScheduleNotFound = errors.New("create_booking: schedule not found")

	// ErrClosedOnDay возвращается, когда салон не работает в день недели указанной даты
	ErrClosedOnDay = errors.New("create_booking: salon is closed on this day")

	// ErrInvalidTimeSlot возвращается, когда слот не объявлен в расписании дня
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrInvalidSeat возвращается, когда номер места вне диапазона 1..totalSeats
	ErrInvalidSeat = errors.New("create_booking: invalid seat number")

	// ErrSeatTaken возвращается, когда место в слоте уже занято активным бронированием
	ErrSeatTaken = errors.New("create_booking: seat already taken")

	// ErrDateInPast возвращается, когда дата бронирования раньше сегодняшней
	ErrDateInPast = errors.New("create_booking: booking date is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
