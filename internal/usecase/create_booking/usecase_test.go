package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	scheduleRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/schedule"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type passTx struct{}

func (passTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

// memBookings воспроизводит частичный уникальный индекс по активным бронированиям
type memBookings struct {
	mu      sync.Mutex
	nextID  int64
	active  map[string]int64
	created []*domain.Booking
	history []*domain.BookingStatusChange
}

func newMemBookings() *memBookings {
	return &memBookings{active: make(map[string]int64)}
}

func seatKey(b *domain.Booking) string {
	return fmt.Sprintf("%d|%s|%s|%d", b.SalonID, b.BookingDate.Format(domain.DateFormat), b.TimeSlot, b.SeatNumber)
}

func (m *memBookings) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := seatKey(b)
	if _, taken := m.active[key]; taken {
		return nil, bookingRepo.ErrSeatTaken
	}
	m.nextID++
	b.ID = m.nextID
	m.active[key] = b.ID
	m.created = append(m.created, b)
	return b, nil
}

func (m *memBookings) AddStatusChange(_ context.Context, change *domain.BookingStatusChange) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = append(m.history, change)
	return nil
}

type memSchedules struct {
	schedule *domain.WeeklySchedule
}

func (m memSchedules) GetBySalonID(_ context.Context, salonID int64) (*domain.WeeklySchedule, error) {
	if m.schedule == nil || m.schedule.SalonID != salonID {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	return m.schedule, nil
}

type recordingScheduler struct {
	mu  sync.Mutex
	ids []int64
	err error
}

func (s *recordingScheduler) ScheduleCancelUnpaid(_ context.Context, bookingID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = append(s.ids, bookingID)
	return s.err
}

type counters struct {
	mu        sync.Mutex
	created   int
	conflicts int
}

func (c *counters) BookingCreated() { c.mu.Lock(); c.created++; c.mu.Unlock() }
func (c *counters) SeatConflict()   { c.mu.Lock(); c.conflicts++; c.mu.Unlock() }

var (
	now    = time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)
	monday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
)

func mondaySchedule() *domain.WeeklySchedule {
	return &domain.WeeklySchedule{
		SalonID: 1,
		Days: []domain.DaySchedule{
			{Day: domain.Monday, TimeSlots: []string{"10:00", "11:00"}, TotalSeats: 2},
		},
	}
}

type fixture struct {
	uc        *UseCase
	bookings  *memBookings
	scheduler *recordingScheduler
	counters  *counters
}

func newFixture(schedule *domain.WeeklySchedule) *fixture {
	f := &fixture{
		bookings:  newMemBookings(),
		scheduler: &recordingScheduler{},
		counters:  &counters{},
	}
	f.uc = NewUseCaseWithTimeProvider(
		f.bookings,
		memSchedules{schedule: schedule},
		f.scheduler,
		f.counters,
		passTx{},
		time.UTC,
		fixedClock{now: now},
		nopLogger{},
	)
	return f
}

func validRequest() *Request {
	return &Request{UserID: 7, SalonID: 1, Date: monday, TimeSlot: "10:00", SeatNumber: 1}
}

func TestExecute_CreatesPendingBooking(t *testing.T) {
	f := newFixture(mondaySchedule())

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	b := resp.Booking
	assert.Equal(t, int64(1), b.ID)
	assert.Equal(t, domain.StatusPending, b.Status)
	assert.Equal(t, domain.PaymentPending, b.PaymentStatus)
	assert.Equal(t, "10:00", b.TimeSlot)

	require.Len(t, f.bookings.history, 1)
	assert.Nil(t, f.bookings.history[0].FromStatus)
	assert.Equal(t, domain.StatusPending, f.bookings.history[0].ToStatus)

	assert.Equal(t, []int64{1}, f.scheduler.ids)
	assert.Equal(t, 1, f.counters.created)
}

func TestExecute_RepeatCreateConflicts(t *testing.T) {
	f := newFixture(mondaySchedule())
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, validRequest())
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, validRequest())
	assert.ErrorIs(t, err, ErrSeatTaken)
	assert.Equal(t, 1, f.counters.conflicts)

	other := validRequest()
	other.SeatNumber = 2
	_, err = f.uc.Execute(ctx, other)
	assert.NoError(t, err)
}

func TestExecute_ConcurrentCreatesOnSameSeat(t *testing.T) {
	for _, n := range []int{2, 8, 32} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			f := newFixture(mondaySchedule())

			var (
				wg        sync.WaitGroup
				mu        sync.Mutex
				successes int
				conflicts int
				others    []error
			)

			start := make(chan struct{})
			for i := 0; i < n; i++ {
				wg.Add(1)
				go func(userID int64) {
					defer wg.Done()
					<-start
					req := validRequest()
					req.UserID = userID
					_, err := f.uc.Execute(context.Background(), req)

					mu.Lock()
					defer mu.Unlock()
					switch {
					case err == nil:
						successes++
					case errors.Is(err, ErrSeatTaken):
						conflicts++
					default:
						others = append(others, err)
					}
				}(int64(i + 1))
			}
			close(start)
			wg.Wait()

			assert.Empty(t, others)
			assert.Equal(t, 1, successes)
			assert.Equal(t, n-1, conflicts)
			assert.Len(t, f.bookings.created, 1)
		})
	}
}

func TestExecute_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		schedule *domain.WeeklySchedule
		mutate   func(r *Request)
		wantErr  error
	}{
		{"missing schedule", nil, func(r *Request) {}, ErrScheduleNotFound},
		{"closed on tuesday", mondaySchedule(), func(r *Request) { r.Date = monday.AddDate(0, 0, 1) }, ErrClosedOnDay},
		{"unknown slot", mondaySchedule(), func(r *Request) { r.TimeSlot = "12:00" }, ErrInvalidTimeSlot},
		{"seat above total", mondaySchedule(), func(r *Request) { r.SeatNumber = 3 }, ErrInvalidSeat},
		{"zero seat", mondaySchedule(), func(r *Request) { r.SeatNumber = 0 }, ErrInvalidInput},
		{"blank slot", mondaySchedule(), func(r *Request) { r.TimeSlot = "  " }, ErrInvalidInput},
		{"missing user", mondaySchedule(), func(r *Request) { r.UserID = 0 }, ErrInvalidInput},
		{"missing date", mondaySchedule(), func(r *Request) { r.Date = time.Time{} }, ErrInvalidInput},
		{"date in past", mondaySchedule(), func(r *Request) { r.Date = monday.AddDate(0, 0, -14) }, ErrDateInPast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(tt.schedule)
			req := validRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.bookings.created)
			assert.Empty(t, f.scheduler.ids)
		})
	}
}

func TestExecute_SchedulerFailureKeepsBooking(t *testing.T) {
	f := newFixture(mondaySchedule())
	f.scheduler.err = errors.New("redis unavailable")

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, resp.Booking.Status)
	assert.Len(t, f.bookings.created, 1)
}

func TestExecute_TodayIsAllowed(t *testing.T) {
	schedule := &domain.WeeklySchedule{
		SalonID: 1,
		Days:    []domain.DaySchedule{{Day: domain.Monday, TimeSlots: []string{"18:00"}, TotalSeats: 1}},
	}
	f := newFixture(schedule)

	req := validRequest()
	req.Date = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	req.TimeSlot = "18:00"

	_, err := f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}
