package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Request модели

// DaySchedule расписание одного дня недели
type DaySchedule struct {
	Day        string   `json:"day"`        // "Monday".."Sunday", регистр не важен
	TimeSlots  []string `json:"timeSlots"`  // метки слотов в порядке отображения
	TotalSeats int      `json:"totalSeats"` // количество мест в каждом слоте
}

// AddScheduleRequest запрос на создание расписания салона
type AddScheduleRequest struct {
	SalonID        int64         `json:"salonId"`
	WeeklySchedule []DaySchedule `json:"weeklySchedule"`
}

// UpdateScheduleRequest запрос на полную замену расписания салона
type UpdateScheduleRequest struct {
	SalonID        int64         `json:"-"`
	WeeklySchedule []DaySchedule `json:"weeklySchedule"`
}

// ToDomainDays конвертирует дни в domain модель, нормализуя названия дней и метки слотов
func ToDomainDays(days []DaySchedule) ([]domain.DaySchedule, error) {
	out := make([]domain.DaySchedule, 0, len(days))
	for i, d := range days {
		weekday, err := domain.ParseWeekday(d.Day)
		if err != nil {
			return nil, fmt.Errorf("weeklySchedule[%d]: %w", i, err)
		}

		slots := make([]string, 0, len(d.TimeSlots))
		for _, slot := range d.TimeSlots {
			slots = append(slots, strings.TrimSpace(slot))
		}

		out = append(out, domain.DaySchedule{
			Day:        weekday,
			TimeSlots:  slots,
			TotalSeats: d.TotalSeats,
		})
	}
	return out, nil
}

// Response модели

// ScheduleResponse ответ с расписанием салона
type ScheduleResponse struct {
	ID             int64         `json:"id"`
	SalonID        int64         `json:"salonId"`
	WeeklySchedule []DaySchedule `json:"weeklySchedule"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

// FromDomainSchedule конвертирует domain модель в DTO
func FromDomainSchedule(s *domain.WeeklySchedule) *ScheduleResponse {
	if s == nil {
		return nil
	}

	days := make([]DaySchedule, 0, len(s.Days))
	for _, d := range s.Days {
		days = append(days, DaySchedule{
			Day:        string(d.Day),
			TimeSlots:  d.TimeSlots,
			TotalSeats: d.TotalSeats,
		})
	}

	return &ScheduleResponse{
		ID:             s.ID,
		SalonID:        s.SalonID,
		WeeklySchedule: days,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}
