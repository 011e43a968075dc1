package domain

import (
	"fmt"
	"time"
)

// SalonStatus represents the onboarding status of a salon
type SalonStatus string

const (
	SalonPending  SalonStatus = "pending"
	SalonApproved SalonStatus = "approved"
)

// ParseSalonStatus validates a raw salon status value
func ParseSalonStatus(s string) (SalonStatus, error) {
	switch status := SalonStatus(s); status {
	case SalonPending, SalonApproved:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSalonStatus, s)
	}
}

// Salon is a registered shop
type Salon struct {
	ID        int64
	OwnerName string
	SalonName string
	Mobile    string
	Email     *string
	Address   *string
	Latitude  *float64
	Longitude *float64
	Photos    []string
	Agreement *string
	Status    SalonStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasLocation returns true if both coordinates are set
func (s *Salon) HasLocation() bool {
	return s.Latitude != nil && s.Longitude != nil
}

// MissingForApproval lists what must still be provided before approval
func (s *Salon) MissingForApproval() []string {
	var missing []string
	if len(s.Photos) == 0 {
		missing = append(missing, "salonPhotos")
	}
	if s.Agreement == nil || *s.Agreement == "" {
		missing = append(missing, "salonAgreement")
	}
	if !s.HasLocation() {
		missing = append(missing, "location")
	}
	return missing
}
