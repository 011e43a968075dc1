package get_salon_bookings

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// date задает один день и имеет приоритет над startDate/endDate.
func ToServiceRequest(salonID int64, statusStr, dateStr, startStr, endStr string) (*models.GetSalonBookingsRequest, error) {
	req := &models.GetSalonBookingsRequest{SalonID: salonID}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, fmt.Errorf("date: %w", err)
		}
		req.StartDate = &date
		req.EndDate = &date
		return req, nil
	}

	if startStr != "" {
		start, err := time.Parse(domain.DateFormat, startStr)
		if err != nil {
			return nil, fmt.Errorf("startDate: %w", err)
		}
		req.StartDate = &start
	}

	if endStr != "" {
		end, err := time.Parse(domain.DateFormat, endStr)
		if err != nil {
			return nil, fmt.Errorf("endDate: %w", err)
		}
		req.EndDate = &end
	}

	return req, nil
}
