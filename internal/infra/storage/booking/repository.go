package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/pgerr"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

// activeSeatConstraint частичный уникальный индекс (salon_id, booking_date, time_slot, seat_number)
// для статусов pending и confirmed
const activeSeatConstraint = "bookings_active_seat_uidx"

var bookingColumns = []string{
	"id",
	"user_id",
	"salon_id",
	"booking_date",
	"time_slot",
	"seat_number",
	"service",
	"status",
	"payment_status",
	"payment_reference",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование в статусе pending.
// Эксклюзивность места обеспечивает частичный уникальный индекс: конкурентная
// вставка на тот же ключ получает ErrSeatTaken, предварительное чтение не нужно.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"user_id",
			"salon_id",
			"booking_date",
			"time_slot",
			"seat_number",
			"service",
			"status",
			"payment_status",
		).
		Values(
			booking.UserID,
			booking.SalonID,
			booking.BookingDate.Format(domain.DateFormat),
			booking.TimeSlot,
			booking.SeatNumber,
			booking.Service,
			booking.Status,
			booking.PaymentStatus,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if pgerr.IsUniqueViolation(err, activeSeatConstraint) {
		return nil, ErrSeatTaken
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
// Внутри транзакции строка блокируется (FOR UPDATE) до конца транзакции
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetBySalonAndDate получает все неотменённые бронирования салона на дату.
// Используется для построения сетки доступности.
// Даты передаются строкой YYYY-MM-DD, чтобы не зависеть от TimeZone сессии.
func (r *Repository) GetBySalonAndDate(ctx context.Context, salonID int64, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"salon_id": salonID, "booking_date": date.Format(domain.DateFormat)}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		OrderBy("time_slot ASC", "seat_number ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalonAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalonAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByUserID получает список бронирований пользователя, сначала новые
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetBySalon получает бронирования салона с фильтрацией, сначала новые
func (r *Repository) GetBySalon(ctx context.Context, filter domain.SalonBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"salon_id": filter.SalonID})

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": filter.StartDate.Format(domain.DateFormat)})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": filter.EndDate.Format(domain.DateFormat)})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.OrderBy("created_at DESC", "id DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalon - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalon - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus атомарно меняет статус бронирования (compare-and-swap).
// Обновление применяется только если текущий статус входит в update.From.
// Если строка не обновлена, возвращает ErrBookingNotFound либо ErrStatusMismatch
// вместе с текущим состоянием бронирования.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, update domain.BookingStatusUpdate) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", update.To).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": update.From})

	if update.To == domain.StatusCancelled {
		updateBuilder = updateBuilder.
			Set("cancelled_at", squirrel.Expr("NOW()")).
			Set("cancellation_reason", update.Reason)
	}
	if update.MarkPaid {
		updateBuilder = updateBuilder.
			Set("payment_status", domain.PaymentPaid).
			Set("payment_reference", update.PaymentRef)
	}

	query, args, err := updateBuilder.
		Suffix("RETURNING " + strings.Join(bookingColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == nil {
		return booking, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	// Строка не обновлена: отличаем отсутствие бронирования от неподходящего статуса
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return current, ErrStatusMismatch
}

// AddStatusChange сохраняет запись истории статусов
func (r *Repository) AddStatusChange(ctx context.Context, change *domain.BookingStatusChange) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_status_history").
		Columns("booking_id", "from_status", "to_status", "reason").
		Values(change.BookingID, change.FromStatus, change.ToStatus, change.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AddStatusChange - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&change.ID, &change.CreatedAt); err != nil {
		return fmt.Errorf("%w: AddStatusChange - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetStatusHistory получает историю статусов бронирования в хронологическом порядке
func (r *Repository) GetStatusHistory(ctx context.Context, bookingID int64) ([]*domain.BookingStatusChange, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "booking_id", "from_status", "to_status", "reason", "created_at").
		From("booking_status_history").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetStatusHistory - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetStatusHistory - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	history := make([]*domain.BookingStatusChange, 0)
	for rows.Next() {
		var change domain.BookingStatusChange
		if err := rows.Scan(
			&change.ID,
			&change.BookingID,
			&change.FromStatus,
			&change.ToStatus,
			&change.Reason,
			&change.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: GetStatusHistory - scan row: %v", ErrScanRow, err)
		}
		history = append(history, &change)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetStatusHistory - rows error: %v", ErrScanRow, err)
	}

	return history, nil
}

// scanBooking сканирует одну строку в порядке bookingColumns
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.SalonID,
		&booking.BookingDate,
		&booking.TimeSlot,
		&booking.SeatNumber,
		&booking.Service,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.PaymentReference,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
