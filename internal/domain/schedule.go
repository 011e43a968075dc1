package domain

import (
	"fmt"
	"strings"
	"time"
)

// Weekday is the canonical English weekday name used as a schedule key
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

var weekdayByName = map[string]Weekday{
	"monday":    Monday,
	"tuesday":   Tuesday,
	"wednesday": Wednesday,
	"thursday":  Thursday,
	"friday":    Friday,
	"saturday":  Saturday,
	"sunday":    Sunday,
}

// ParseWeekday normalizes a weekday name, case-insensitively
func ParseWeekday(s string) (Weekday, error) {
	if day, ok := weekdayByName[strings.ToLower(strings.TrimSpace(s))]; ok {
		return day, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownWeekday, s)
}

// WeekdayOf returns the weekday of a calendar date.
// time.Weekday.String is fixed English and does not depend on the process locale.
func WeekdayOf(date time.Time) Weekday {
	return Weekday(date.Weekday().String())
}

// DaySchedule is the configuration of one open weekday
type DaySchedule struct {
	Day        Weekday
	TimeSlots  []string
	TotalSeats int
}

// HasSlot returns true if label is one of the configured slots
func (d *DaySchedule) HasSlot(label string) bool {
	for _, s := range d.TimeSlots {
		if s == label {
			return true
		}
	}
	return false
}

// HasSeat returns true if seat is within 1..TotalSeats
func (d *DaySchedule) HasSeat(seat int) bool {
	return seat >= 1 && seat <= d.TotalSeats
}

// WeeklySchedule is a salon's recurring per-weekday configuration
type WeeklySchedule struct {
	ID        int64
	SalonID   int64
	Days      []DaySchedule
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DayFor returns the schedule of the given weekday, or false if the salon is closed that day
func (s *WeeklySchedule) DayFor(day Weekday) (*DaySchedule, bool) {
	for i := range s.Days {
		if s.Days[i].Day == day {
			return &s.Days[i], true
		}
	}
	return nil, false
}

// Validate checks the schedule invariants
func (s *WeeklySchedule) Validate() error {
	if len(s.Days) == 0 {
		return fmt.Errorf("%w: weeklySchedule must contain at least one day", ErrInvalidSchedule)
	}
	if len(s.Days) > 7 {
		return fmt.Errorf("%w: weeklySchedule has more than 7 days", ErrInvalidSchedule)
	}

	seenDays := make(map[Weekday]struct{}, len(s.Days))
	for _, day := range s.Days {
		if _, ok := seenDays[day.Day]; ok {
			return fmt.Errorf("%w: duplicate day %s", ErrInvalidSchedule, day.Day)
		}
		seenDays[day.Day] = struct{}{}

		if day.TotalSeats < MinSeatsPerDay || day.TotalSeats > MaxSeatsPerDay {
			return fmt.Errorf("%w: %s totalSeats must be between %d and %d",
				ErrInvalidSchedule, day.Day, MinSeatsPerDay, MaxSeatsPerDay)
		}
		if len(day.TimeSlots) == 0 {
			return fmt.Errorf("%w: %s has no time slots", ErrInvalidSchedule, day.Day)
		}

		seenSlots := make(map[string]struct{}, len(day.TimeSlots))
		for _, slot := range day.TimeSlots {
			if strings.TrimSpace(slot) == "" || len(slot) > MaxSlotLabelLength {
				return fmt.Errorf("%w: %s has an empty or too long slot label", ErrInvalidSchedule, day.Day)
			}
			if _, ok := seenSlots[slot]; ok {
				return fmt.Errorf("%w: %s has duplicate slot %q", ErrInvalidSchedule, day.Day, slot)
			}
			seenSlots[slot] = struct{}{}
		}
	}

	return nil
}
