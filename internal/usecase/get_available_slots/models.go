package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Request модель запроса сетки доступности
type Request struct {
	SalonID int64     // ID салона
	Date    time.Time // Календарная дата (полночь UTC)
}

// Response модель ответа с сеткой доступности
type Response struct {
	SalonID int64
	Date    time.Time
	Day     domain.Weekday
	Slots   []domain.SlotAvailability // в порядке объявления в расписании
}
