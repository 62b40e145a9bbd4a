package availability

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

const table = "provider_availability"

// Repository хранилище недельных шаблонов и флагов приема записей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает расписание провайдера
func (r *Repository) Get(ctx context.Context, providerID int64) (*domain.Availability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("provider_id", "accepting_bookings", "template", "updated_at").
		From(table).
		Where(squirrel.Eq{"provider_id": providerID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var availability domain.Availability
	var template jsonTemplate
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&availability.ProviderID,
		&availability.AcceptingBookings,
		&template,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAvailabilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan availability: %w", ErrScanRow, err)
	}

	availability.Template = domain.WeeklyTemplate(template)
	availability.UpdatedAt = updatedAt.Time

	return &availability, nil
}

// Set заменяет шаблон целиком и включает прием записей.
// Шаблон должен быть нормализован вызывающей стороной.
func (r *Repository) Set(ctx context.Context, providerID int64, template domain.WeeklyTemplate) (*domain.Availability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := setTemplateQuery(providerID, template).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Set - build upsert query: %v", ErrBuildQuery, err)
	}

	availability := &domain.Availability{
		ProviderID:        providerID,
		AcceptingBookings: true,
		Template:          template,
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Set - execute upsert: %w", ErrExecQuery, err)
	}
	availability.UpdatedAt = updatedAt.Time

	return availability, nil
}

// SetAcceptingBookings переключает прием записей, шаблон не меняется.
// Для провайдера без записи создается пустой шаблон.
func (r *Repository) SetAcceptingBookings(ctx context.Context, providerID int64, accepting bool) (*domain.Availability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := setAcceptingQuery(providerID, accepting).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: SetAcceptingBookings - build upsert query: %v", ErrBuildQuery, err)
	}

	availability := &domain.Availability{
		ProviderID:        providerID,
		AcceptingBookings: accepting,
	}

	var template jsonTemplate
	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&template, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: SetAcceptingBookings - execute upsert: %w", ErrExecQuery, err)
	}
	availability.Template = domain.WeeklyTemplate(template)
	availability.UpdatedAt = updatedAt.Time

	return availability, nil
}

func setTemplateQuery(providerID int64, template domain.WeeklyTemplate) squirrel.InsertBuilder {
	return psqlbuilder.Insert(table).
		Columns("provider_id", "accepting_bookings", "template").
		Values(providerID, true, jsonTemplate(template)).
		Suffix("ON CONFLICT (provider_id) DO UPDATE SET " +
			"template = EXCLUDED.template, accepting_bookings = TRUE, updated_at = NOW() " +
			"RETURNING updated_at")
}

func setAcceptingQuery(providerID int64, accepting bool) squirrel.InsertBuilder {
	return psqlbuilder.Insert(table).
		Columns("provider_id", "accepting_bookings", "template").
		Values(providerID, accepting, jsonTemplate(domain.WeeklyTemplate{})).
		Suffix("ON CONFLICT (provider_id) DO UPDATE SET " +
			"accepting_bookings = EXCLUDED.accepting_bookings, updated_at = NOW() " +
			"RETURNING template, updated_at")
}
