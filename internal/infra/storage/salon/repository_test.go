package salon

import (
	"context"
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

func salonRow(id int64, photos string) *sqlmock.Rows {
	return sqlmock.NewRows(salonColumns).AddRow(
		id, "Asha", "Fade Street", "+919845012345", nil, nil, nil, nil,
		photos, nil, string(domain.SalonPending), createdAt, createdAt,
	)
}

const addPhotosQuery = "UPDATE salons SET photos = array_cat(photos, $1), updated_at = NOW() " +
	"WHERE id = $2 AND cardinality(photos) + $3 <= $4 RETURNING id"

func TestAddPhotos_AppendsWithinLimit(t *testing.T) {
	repo, mock := newMockRepo(t)
	paths := []string{"/uploads/a.png", "/uploads/b.png"}

	mock.ExpectQuery(regexp.QuoteMeta(addPhotosQuery)).
		WithArgs(pq.Array(paths), int64(3), len(paths), domain.MaxSalonPhotos).
		WillReturnRows(salonRow(3, "{/uploads/a.png,/uploads/b.png}"))

	updated, err := repo.AddPhotos(context.Background(), 3, paths)
	require.NoError(t, err)
	assert.Equal(t, paths, updated.Photos)
}

func TestAddPhotos_LimitCheckedInUpdate(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(addPhotosQuery)).
		WillReturnRows(sqlmock.NewRows(salonColumns))
	mock.ExpectQuery(regexp.QuoteMeta("FROM salons WHERE id = $1")).
		WithArgs(int64(3)).
		WillReturnRows(salonRow(3, "{1,2,3,4,5,6,7,8,9,10}"))

	_, err := repo.AddPhotos(context.Background(), 3, []string{"/uploads/c.png"})
	assert.ErrorIs(t, err, ErrPhotoLimit)
}

func TestAddPhotos_MissingSalon(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(addPhotosQuery)).
		WillReturnRows(sqlmock.NewRows(salonColumns))
	mock.ExpectQuery(regexp.QuoteMeta("FROM salons WHERE id = $1")).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(salonColumns))

	_, err := repo.AddPhotos(context.Background(), 404, []string{"/uploads/c.png"})
	assert.ErrorIs(t, err, ErrSalonNotFound)
}

func TestCreate_MapsMobileUniqueViolation(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO salons")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: mobileUniqueConstraint})

	_, err := repo.Create(context.Background(), &domain.Salon{
		OwnerName: "Asha", SalonName: "Fade Street", Mobile: "+919845012345", Status: domain.SalonPending,
	})
	assert.ErrorIs(t, err, ErrMobileTaken)
}
