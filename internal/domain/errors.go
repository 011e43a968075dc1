package domain

import "errors"

var (
	ErrUnknownBookingStatus = errors.New("domain: unknown booking status")
	ErrUnknownSalonStatus   = errors.New("domain: unknown salon status")
	ErrUnknownWeekday       = errors.New("domain: unknown weekday")
	ErrInvalidSchedule      = errors.New("domain: invalid weekly schedule")
	ErrInvalidDate          = errors.New("domain: invalid calendar date")
	ErrInvalidMapURL        = errors.New("domain: coordinates not found in map url")
)
