package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

func TestEncodeDecodeDays_PreservesOrder(t *testing.T) {
	days := []domain.DaySchedule{
		{Day: domain.Saturday, TimeSlots: []string{"12:00-12:30", "10:00-10:30"}, TotalSeats: 3},
		{Day: domain.Monday, TimeSlots: []string{"09:00"}, TotalSeats: 1},
	}

	raw, err := encodeDays(days)
	require.NoError(t, err)
	assert.JSONEq(t,
		`[{"day":"Saturday","timeSlots":["12:00-12:30","10:00-10:30"],"totalSeats":3},
		  {"day":"Monday","timeSlots":["09:00"],"totalSeats":1}]`,
		string(raw))

	decoded, err := decodeDays(raw)
	require.NoError(t, err)
	assert.Equal(t, days, decoded)
}

func TestDecodeDays_RejectsUnknownDay(t *testing.T) {
	_, err := decodeDays([]byte(`[{"day":"Funday","timeSlots":["10:00"],"totalSeats":1}]`))
	assert.ErrorIs(t, err, ErrEncode)
}
