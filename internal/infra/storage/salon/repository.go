package salon

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/pgerr"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

const mobileUniqueConstraint = "salons_mobile_uidx"

var salonColumns = []string{
	"id",
	"owner_name",
	"salon_name",
	"mobile",
	"email",
	"address",
	"latitude",
	"longitude",
	"photos",
	"agreement",
	"status",
	"created_at",
	"updated_at",
}

// Details изменяемые поля карточки салона; nil означает "не менять"
type Details struct {
	OwnerName *string
	SalonName *string
	Email     *string
	Address   *string
	Latitude  *float64
	Longitude *float64
}

// Repository репозиторий салонов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория салонов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create регистрирует салон в статусе pending
func (r *Repository) Create(ctx context.Context, salon *domain.Salon) (*domain.Salon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("salons").
		Columns("owner_name", "salon_name", "mobile", "email", "address", "status").
		Values(salon.OwnerName, salon.SalonName, salon.Mobile, salon.Email, salon.Address, salon.Status).
		Suffix("RETURNING " + strings.Join(salonColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	created, err := scanSalon(executor.QueryRowContext(ctx, query, args...))
	if pgerr.IsUniqueViolation(err, mobileUniqueConstraint) {
		return nil, ErrMobileTaken
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return created, nil
}

// GetByID получает салон по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Salon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(salonColumns...).
		From("salons").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	salon, err := scanSalon(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSalonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan salon: %v", ErrScanRow, err)
	}

	return salon, nil
}

// List получает салоны, сначала новые. Опционально фильтрует по статусу
func (r *Repository) List(ctx context.Context, status *domain.SalonStatus) ([]*domain.Salon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(salonColumns...).
		From("salons").
		OrderBy("created_at DESC", "id DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	salons := make([]*domain.Salon, 0)
	for rows.Next() {
		salon, err := scanSalon(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		salons = append(salons, salon)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return salons, nil
}

// UpdateDetails обновляет заданные поля карточки салона
func (r *Repository) UpdateDetails(ctx context.Context, id int64, details Details) (*domain.Salon, error) {
	updateBuilder := psqlbuilder.Update("salons").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if details.OwnerName != nil {
		updateBuilder = updateBuilder.Set("owner_name", *details.OwnerName)
	}
	if details.SalonName != nil {
		updateBuilder = updateBuilder.Set("salon_name", *details.SalonName)
	}
	if details.Email != nil {
		updateBuilder = updateBuilder.Set("email", *details.Email)
	}
	if details.Address != nil {
		updateBuilder = updateBuilder.Set("address", *details.Address)
	}
	if details.Latitude != nil && details.Longitude != nil {
		updateBuilder = updateBuilder.
			Set("latitude", *details.Latitude).
			Set("longitude", *details.Longitude)
	}

	return r.updateReturning(ctx, "UpdateDetails", updateBuilder)
}

// AddPhotos дописывает пути фотографий в конец списка.
// Лимит domain.MaxSalonPhotos проверяется в том же UPDATE; при превышении возвращает ErrPhotoLimit.
func (r *Repository) AddPhotos(ctx context.Context, id int64, paths []string) (*domain.Salon, error) {
	updateBuilder := psqlbuilder.Update("salons").
		Set("photos", squirrel.Expr("array_cat(photos, ?)", pq.Array(paths))).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Expr("cardinality(photos) + ? <= ?", len(paths), domain.MaxSalonPhotos))

	salon, err := r.updateReturning(ctx, "AddPhotos", updateBuilder)
	if !errors.Is(err, ErrSalonNotFound) {
		return salon, err
	}

	// Различаем отсутствующий салон и превышение лимита
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, ErrPhotoLimit
}

// SetAgreement сохраняет путь подписанного договора
func (r *Repository) SetAgreement(ctx context.Context, id int64, path string) (*domain.Salon, error) {
	updateBuilder := psqlbuilder.Update("salons").
		Set("agreement", path).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	return r.updateReturning(ctx, "SetAgreement", updateBuilder)
}

// Approve переводит салон pending -> approved.
// Возвращает ErrStatusMismatch, если салон уже одобрен.
func (r *Repository) Approve(ctx context.Context, id int64) (*domain.Salon, error) {
	updateBuilder := psqlbuilder.Update("salons").
		Set("status", domain.SalonApproved).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.SalonPending})

	salon, err := r.updateReturning(ctx, "Approve", updateBuilder)
	if !errors.Is(err, ErrSalonNotFound) {
		return salon, err
	}

	// Различаем отсутствующий салон и уже одобренный
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, ErrStatusMismatch
}

func (r *Repository) updateReturning(ctx context.Context, op string, updateBuilder squirrel.UpdateBuilder) (*domain.Salon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := updateBuilder.
		Suffix("RETURNING " + strings.Join(salonColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	salon, err := scanSalon(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSalonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	return salon, nil
}

func scanSalon(row rowScanner) (*domain.Salon, error) {
	var salon domain.Salon
	var photos pq.StringArray

	err := row.Scan(
		&salon.ID,
		&salon.OwnerName,
		&salon.SalonName,
		&salon.Mobile,
		&salon.Email,
		&salon.Address,
		&salon.Latitude,
		&salon.Longitude,
		&photos,
		&salon.Agreement,
		&salon.Status,
		&salon.CreatedAt,
		&salon.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	salon.Photos = []string(photos)
	return &salon, nil
}
