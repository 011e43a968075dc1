package domain

import (
	"fmt"
	"time"
)

// ParseCalendarDate accepts "2006-01-02" or an RFC 3339 timestamp.
// A timestamp is first converted into loc, so the calendar day is the one
// observed in the salon's timezone. The result is midnight UTC of that day.
func ParseCalendarDate(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(DateFormat, s); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	if loc == nil {
		loc = time.UTC
	}
	return CalendarDay(t, loc), nil
}

// CalendarDay truncates t to the calendar day observed in loc, as midnight UTC
func CalendarDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
