package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TherapyBooking/internal/domain"
	"github.com/m04kA/SMC-TherapyBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-TherapyBooking/pkg/psqlbuilder"
)

const table = "bookings"

var columns = []string{
	"id",
	"requester_id",
	"provider_id",
	"start_at",
	"end_at",
	"calendar_date",
	"slot_label",
	"duration_minutes",
	"mode",
	"reason",
	"status",
	"provider_note",
	"created_at",
	"updated_at",
}

// Repository журнал бронирований.
// Записи никогда не удаляются: отклоненные остаются в истории со статусом rejected.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новое бронирование.
// Если в контексте передана транзакция, запрос выполняется в ней.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"requester_id",
			"provider_id",
			"start_at",
			"end_at",
			"calendar_date",
			"slot_label",
			"duration_minutes",
			"mode",
			"reason",
			"status",
			"provider_note",
		).
		Values(
			booking.RequesterID,
			booking.ProviderID,
			booking.Start,
			booking.End,
			booking.CalendarDate,
			booking.SlotLabel,
			booking.DurationMinutes,
			booking.Mode,
			booking.Reason,
			booking.Status,
			booking.ProviderNote,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID.
// Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// ListByParty возвращает бронирования участника (как заказчика или как провайдера).
// Сортировка: сначала самые поздние по времени начала.
func (r *Repository) ListByParty(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := partyQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByParty - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByParty - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListOccupying возвращает бронирования провайдера в статусах, отличных от rejected,
// пересекающиеся с интервалом (existing.start < end AND existing.end > start).
// Внутри транзакции найденные строки блокируются (FOR UPDATE).
func (r *Repository) ListOccupying(ctx context.Context, providerID int64, interval domain.Interval, excludeID *int64) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := occupyingQuery(providerID, interval, excludeID, dbmetrics.IsInTransaction(ctx)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOccupying - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOccupying - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// Update сохраняет изменяемые поля бронирования: статус, заметку провайдера и интервал
func (r *Repository) Update(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", booking.Status).
		Set("provider_note", booking.ProviderNote).
		Set("start_at", booking.Start).
		Set("end_at", booking.End).
		Set("calendar_date", booking.CalendarDate).
		Set("slot_label", booking.SlotLabel).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrBookingNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	booking.UpdatedAt = updatedAt.Time
	return nil
}

func partyQuery(filter domain.BookingsFilter) squirrel.SelectBuilder {
	partyColumn := "requester_id"
	if filter.Role == domain.RoleProvider {
		partyColumn = "provider_id"
	}

	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{partyColumn: filter.PartyID})

	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": *filter.Status})
	}

	return builder.OrderBy("start_at DESC", "id DESC")
}

func occupyingQuery(providerID int64, interval domain.Interval, excludeID *int64, forUpdate bool) squirrel.SelectBuilder {
	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"provider_id": providerID}).
		Where(squirrel.NotEq{"status": domain.StatusRejected}).
		Where(squirrel.Lt{"start_at": interval.End}).
		Where(squirrel.Gt{"end_at": interval.Start})

	if excludeID != nil {
		builder = builder.Where(squirrel.NotEq{"id": *excludeID})
	}

	builder = builder.OrderBy("start_at ASC")

	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	return builder
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.RequesterID,
		&booking.ProviderID,
		&booking.Start,
		&booking.End,
		&booking.CalendarDate,
		&booking.SlotLabel,
		&booking.DurationMinutes,
		&booking.Mode,
		&booking.Reason,
		&booking.Status,
		&booking.ProviderNote,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}
