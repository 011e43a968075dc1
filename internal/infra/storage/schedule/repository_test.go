package schedule

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var createdAt = time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewRepository(db), mock
}

func weekly() *domain.WeeklySchedule {
	return &domain.WeeklySchedule{
		SalonID: 3,
		Days: []domain.DaySchedule{
			{Day: domain.Monday, TimeSlots: []string{"10:00-11:00", "11:00-12:00"}, TotalSeats: 4},
		},
	}
}

const mondayJSON = `[{"day":"Monday","timeSlots":["10:00-11:00","11:00-12:00"],"totalSeats":4}]`

func TestCreate_StoresDaysAsJSON(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO schedules (salon_id,weekly_schedule) VALUES ($1,$2) RETURNING id")).
		WithArgs(int64(3), mondayJSON).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(9), createdAt, createdAt))

	created, err := repo.Create(context.Background(), weekly())
	require.NoError(t, err)
	assert.Equal(t, int64(9), created.ID)
}

func TestCreate_MapsConstraintViolations(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{"second schedule for salon", &pq.Error{Code: "23505", Constraint: salonUniqueConstraint}, ErrScheduleExists},
		{"unknown salon", &pq.Error{Code: "23503", Constraint: salonForeignKey}, ErrSalonNotFound},
		{"other unique index", &pq.Error{Code: "23505", Constraint: "schedules_pkey"}, ErrExecQuery},
		{"connection error", sql.ErrConnDone, ErrExecQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)
			mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO schedules")).WillReturnError(tt.err)

			_, err := repo.Create(context.Background(), weekly())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGetBySalonID_DecodesDays(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM schedules WHERE salon_id = $1")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "salon_id", "weekly_schedule", "created_at", "updated_at"}).
			AddRow(int64(9), int64(3), []byte(mondayJSON), createdAt, createdAt))

	got, err := repo.GetBySalonID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, weekly().Days, got.Days)

	mock.ExpectQuery(regexp.QuoteMeta("FROM schedules WHERE salon_id = $1")).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "salon_id", "weekly_schedule", "created_at", "updated_at"}))

	_, err = repo.GetBySalonID(context.Background(), 4)
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}
