package pgerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pq.Error{Code: "23505", Constraint: "bookings_active_seat_uidx"})

	assert.True(t, IsUniqueViolation(err, "bookings_active_seat_uidx"))
	assert.True(t, IsUniqueViolation(err, ""))
	assert.False(t, IsUniqueViolation(err, "salons_mobile_uidx"))
	assert.False(t, IsForeignKeyViolation(err, ""))
	assert.False(t, IsUniqueViolation(errors.New("plain"), ""))
	assert.False(t, IsUniqueViolation(nil, ""))
}

func TestIsForeignKeyViolation(t *testing.T) {
	err := &pq.Error{Code: "23503", Constraint: "schedules_salon_id_fkey"}
	assert.True(t, IsForeignKeyViolation(err, "schedules_salon_id_fkey"))
}
