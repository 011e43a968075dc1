package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID     int64     // ID пользователя
	SalonID    int64     // ID салона
	Date       time.Time // Календарная дата (полночь UTC)
	TimeSlot   string    // Метка слота из расписания, например "10:00-10:30"
	SeatNumber int       // Номер места, 1..totalSeats
	Service    *string   // Название услуги (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *domain.Booking
}
