package schedule

import (
	"encoding/json"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// dayRecord форма хранения DaySchedule в колонке weekly_schedule (JSONB)
type dayRecord struct {
	Day        string   `json:"day"`
	TimeSlots  []string `json:"timeSlots"`
	TotalSeats int      `json:"totalSeats"`
}

func encodeDays(days []domain.DaySchedule) ([]byte, error) {
	records := make([]dayRecord, len(days))
	for i, d := range days {
		records[i] = dayRecord{
			Day:        string(d.Day),
			TimeSlots:  d.TimeSlots,
			TotalSeats: d.TotalSeats,
		}
	}

	raw, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return raw, nil
}

func decodeDays(raw []byte) ([]domain.DaySchedule, error) {
	var records []dayRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}

	days := make([]domain.DaySchedule, len(records))
	for i, rec := range records {
		day, err := domain.ParseWeekday(rec.Day)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEncode, err)
		}
		days[i] = domain.DaySchedule{
			Day:        day,
			TimeSlots:  rec.TimeSlots,
			TotalSeats: rec.TotalSeats,
		}
	}
	return days, nil
}
