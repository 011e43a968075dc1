package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mondaySchedule() *WeeklySchedule {
	return &WeeklySchedule{
		SalonID: 1,
		Days: []DaySchedule{
			{Day: Monday, TimeSlots: []string{"10:00", "11:00"}, TotalSeats: 2},
		},
	}
}

func TestWeekdayOf_IsLocaleIndependent(t *testing.T) {
	date := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, Monday, WeekdayOf(date))
	assert.Equal(t, Sunday, WeekdayOf(date.AddDate(0, 0, 6)))
}

func TestParseWeekday(t *testing.T) {
	day, err := ParseWeekday("  tuesday ")
	require.NoError(t, err)
	assert.Equal(t, Tuesday, day)

	_, err = ParseWeekday("Mon")
	assert.ErrorIs(t, err, ErrUnknownWeekday)
}

func TestParseCalendarDate(t *testing.T) {
	d, err := ParseCalendarDate("2024-01-01", nil)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), d)

	// 20:00 UTC on Sunday is already Monday in Kolkata
	kolkata := time.FixedZone("IST", 5*3600+1800)
	d, err = ParseCalendarDate("2023-12-31T20:00:00Z", kolkata)
	require.NoError(t, err)
	assert.Equal(t, Monday, WeekdayOf(d))

	d, err = ParseCalendarDate("2023-12-31T20:00:00Z", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, Sunday, WeekdayOf(d))

	_, err = ParseCalendarDate("01/01/2024", time.UTC)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestWeeklySchedule_Validate(t *testing.T) {
	require.NoError(t, mondaySchedule().Validate())

	cases := map[string]*WeeklySchedule{
		"no days": {Days: nil},
		"duplicate day": {Days: []DaySchedule{
			{Day: Monday, TimeSlots: []string{"10:00"}, TotalSeats: 1},
			{Day: Monday, TimeSlots: []string{"11:00"}, TotalSeats: 1},
		}},
		"zero seats": {Days: []DaySchedule{
			{Day: Monday, TimeSlots: []string{"10:00"}, TotalSeats: 0},
		}},
		"too many seats": {Days: []DaySchedule{
			{Day: Monday, TimeSlots: []string{"10:00"}, TotalSeats: MaxSeatsPerDay + 1},
		}},
		"no slots": {Days: []DaySchedule{
			{Day: Monday, TimeSlots: []string{}, TotalSeats: 1},
		}},
		"duplicate slot": {Days: []DaySchedule{
			{Day: Monday, TimeSlots: []string{"10:00", "10:00"}, TotalSeats: 1},
		}},
		"blank slot": {Days: []DaySchedule{
			{Day: Monday, TimeSlots: []string{" "}, TotalSeats: 1},
		}},
	}

	for name, s := range cases {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, s.Validate(), ErrInvalidSchedule)
		})
	}
}

func TestWeeklySchedule_DayFor(t *testing.T) {
	s := mondaySchedule()

	day, ok := s.DayFor(Monday)
	require.True(t, ok)
	assert.True(t, day.HasSlot("10:00"))
	assert.False(t, day.HasSlot("12:00"))
	assert.True(t, day.HasSeat(2))
	assert.False(t, day.HasSeat(3))
	assert.False(t, day.HasSeat(0))

	_, ok = s.DayFor(Tuesday)
	assert.False(t, ok)
}

func TestBuildAvailability_EmptyDay(t *testing.T) {
	day, _ := mondaySchedule().DayFor(Monday)

	grid, stale := BuildAvailability(day, nil)

	assert.Empty(t, stale)
	assert.Equal(t, []SlotAvailability{
		{TimeSlot: "10:00", Seats: []SeatAvailability{{1, SeatAvailable}, {2, SeatAvailable}}},
		{TimeSlot: "11:00", Seats: []SeatAvailability{{1, SeatAvailable}, {2, SeatAvailable}}},
	}, grid)
}

func TestBuildAvailability_MarksBookedSeats(t *testing.T) {
	day, _ := mondaySchedule().DayFor(Monday)
	bookings := []*Booking{
		{ID: 1, TimeSlot: "10:00", SeatNumber: 1, Status: StatusConfirmed},
		{ID: 2, TimeSlot: "10:00", SeatNumber: 2, Status: StatusCancelled},
		{ID: 3, TimeSlot: "11:00", SeatNumber: 2, Status: StatusCompleted},
		{ID: 4, TimeSlot: "12:00", SeatNumber: 1, Status: StatusPending},
		{ID: 5, TimeSlot: "11:00", SeatNumber: 9, Status: StatusPending},
	}

	grid, stale := BuildAvailability(day, bookings)

	require.Len(t, grid, 2)
	assert.Equal(t, []SeatAvailability{{1, SeatBooked}, {2, SeatAvailable}}, grid[0].Seats)
	assert.Equal(t, []SeatAvailability{{1, SeatAvailable}, {2, SeatBooked}}, grid[1].Seats)

	require.Len(t, stale, 2)
	assert.Equal(t, int64(4), stale[0].ID)
	assert.Equal(t, int64(5), stale[1].ID)
}

func TestBuildAvailability_ZeroSeats(t *testing.T) {
	day := &DaySchedule{Day: Monday, TimeSlots: []string{"10:00"}, TotalSeats: 0}

	grid, _ := BuildAvailability(day, nil)

	require.Len(t, grid, 1)
	assert.Empty(t, grid[0].Seats)
}

func TestTransitions(t *testing.T) {
	assert.True(t, TransitionConfirm.CanApply(StatusPending))
	assert.False(t, TransitionConfirm.CanApply(StatusCompleted))
	assert.True(t, TransitionCancel.CanApply(StatusConfirmed))
	assert.False(t, TransitionCancelUnpaid.CanApply(StatusConfirmed))
	assert.False(t, TransitionComplete.CanApply(StatusPending))
	assert.True(t, TransitionComplete.CanApply(StatusConfirmed))

	assert.Equal(t, StatusCancelled, TransitionCancelUnpaid.Target())
	assert.Equal(t, StatusCompleted, TransitionComplete.Target())
	assert.False(t, Transition("archive").Valid())

	for _, s := range []BookingStatus{StatusCancelled, StatusCompleted} {
		assert.True(t, s.IsTerminal())
		for _, tr := range []Transition{TransitionConfirm, TransitionCancel, TransitionCancelUnpaid, TransitionComplete} {
			assert.False(t, tr.CanApply(s), "%s from %s", tr, s)
		}
	}
}

func TestParseBookingStatus(t *testing.T) {
	s, err := ParseBookingStatus("confirmed")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, s)

	_, err = ParseBookingStatus("CONFIRMED")
	assert.ErrorIs(t, err, ErrUnknownBookingStatus)
}

func TestExtractCoordinates(t *testing.T) {
	cases := []struct {
		url      string
		lat, lng float64
	}{
		{"https://www.google.com/maps/place/Salon/@12.9716,77.5946,17z", 12.9716, 77.5946},
		{"https://www.google.com/maps/place/Salon/@1,2,17z/data=!3d12.5!4d-77.25", 12.5, -77.25},
		{"https://maps.google.com/?q=19.0760,72.8777", 19.076, 72.8777},
		{"https://maps.google.com/?ll=-33.86,151.2", -33.86, 151.2},
	}
	for _, c := range cases {
		lat, lng, err := ExtractCoordinates(c.url)
		require.NoError(t, err, c.url)
		assert.InDelta(t, c.lat, lat, 1e-9)
		assert.InDelta(t, c.lng, lng, 1e-9)
	}

	_, _, err := ExtractCoordinates("https://maps.google.com/?q=somewhere")
	assert.ErrorIs(t, err, ErrInvalidMapURL)

	_, _, err = ExtractCoordinates("https://maps.google.com/?q=123,456")
	assert.ErrorIs(t, err, ErrInvalidMapURL)
}

func TestSalon_MissingForApproval(t *testing.T) {
	s := &Salon{}
	assert.Equal(t, []string{"salonPhotos", "salonAgreement", "location"}, s.MissingForApproval())

	lat, lng, agreement := 1.0, 2.0, "/uploads/a.pdf"
	s.Photos = []string{"/uploads/p.jpg"}
	s.Latitude, s.Longitude, s.Agreement = &lat, &lng, &agreement
	assert.Empty(t, s.MissingForApproval())
}

func TestActor_SalonScope(t *testing.T) {
	b := &Booking{UserID: 7, SalonID: 3}

	tests := []struct {
		name         string
		actor        Actor
		manageSalon  bool
		accessBooked bool
	}{
		{"admin", Actor{UserID: 1, Role: RoleAdmin}, true, true},
		{"owner of the salon", Actor{UserID: 2, Role: RoleShopOwner, SalonID: 3}, true, true},
		{"owner of another salon", Actor{UserID: 2, Role: RoleShopOwner, SalonID: 4}, false, false},
		{"owner without salon", Actor{UserID: 2, Role: RoleShopOwner}, false, false},
		{"booking author", Actor{UserID: 7, Role: RoleUser}, false, true},
		{"other user", Actor{UserID: 8, Role: RoleUser, SalonID: 3}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.manageSalon, tt.actor.CanManageSalon(3))
			assert.Equal(t, tt.accessBooked, tt.actor.CanAccessBooking(b))
		})
	}
}
