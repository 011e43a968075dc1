package get_available_slots

import (
	"bytes"
	"encoding/json"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	SalonID        int64     `json:"salonId"`
	Date           string    `json:"date"`
	Day            string    `json:"day"`
	AvailableSlots SlotTable `json:"availableSlots"`
}

// SeatResponse одна ячейка сетки
type SeatResponse struct {
	SeatNumber int    `json:"seatNumber"`
	Status     string `json:"status"`
}

// SlotTable is a JSON object keyed by slot label that keeps the declared slot order.
type SlotTable []SlotEntry

// SlotEntry is one key of SlotTable
type SlotEntry struct {
	TimeSlot string
	Seats    []SeatResponse
}

// MarshalJSON writes the entries as object members in slice order.
func (t SlotTable) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range t {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.TimeSlot)
		if err != nil {
			return nil, err
		}
		seats := entry.Seats
		if seats == nil {
			seats = []SeatResponse{}
		}
		value, err := json.Marshal(seats)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	table := make(SlotTable, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		seats := make([]SeatResponse, 0, len(slot.Seats))
		for _, s := range slot.Seats {
			seats = append(seats, SeatResponse{SeatNumber: s.SeatNumber, Status: string(s.Status)})
		}
		table = append(table, SlotEntry{TimeSlot: slot.TimeSlot, Seats: seats})
	}

	return &AvailableSlotsResponse{
		SalonID:        resp.SalonID,
		Date:           resp.Date.Format(domain.DateFormat),
		Day:            string(resp.Day),
		AvailableSlots: table,
	}
}
