package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBookingService/pkg/psqlbuilder"
)

const tableBusinessHours = "business_hours"

var hoursColumns = []string{
	"id",
	"weekday",
	"is_open",
	"open_time",
	"close_time",
	"slot_granularity_minutes",
	"min_booking_notice_minutes",
	"advance_booking_days",
	"created_at",
	"updated_at",
}

// Repository репозиторий рабочих часов салона
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория рабочих часов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByWeekday получает строку для дня недели (weekday = nil - строка по умолчанию)
func (r *Repository) GetByWeekday(ctx context.Context, weekday *int) (*domain.BusinessHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(hoursColumns...).From(tableBusinessHours)

	// Фильтрация по weekday (NULL или конкретное значение)
	if weekday == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"weekday": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"weekday": *weekday})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByWeekday - build select query: %v", ErrBuildQuery, err)
	}

	hours, err := scanHours(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHoursNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByWeekday - scan hours: %v", ErrScanRow, err)
	}

	return hours, nil
}

// GetWithHierarchy получает рабочие часы с учетом иерархии приоритетов
// 1. Строка для конкретного дня недели
// 2. Строка по умолчанию (weekday IS NULL)
//
// Если не найдено ни на одном уровне, возвращает ErrHoursNotFound
func (r *Repository) GetWithHierarchy(ctx context.Context, weekday int) (*domain.BusinessHours, error) {
	// 1. Пробуем получить строку для дня недели
	hours, err := r.GetByWeekday(ctx, &weekday)
	if err == nil {
		return hours, nil
	}
	if !errors.Is(err, ErrHoursNotFound) {
		return nil, fmt.Errorf("%w: GetWithHierarchy - level 1 (weekday): %v", ErrExecQuery, err)
	}

	// 2. Пробуем получить строку по умолчанию
	hours, err = r.GetByWeekday(ctx, nil)
	if err == nil {
		return hours, nil
	}
	if !errors.Is(err, ErrHoursNotFound) {
		return nil, fmt.Errorf("%w: GetWithHierarchy - level 2 (default): %v", ErrExecQuery, err)
	}

	return nil, ErrHoursNotFound
}

// GetAll получает все строки рабочих часов (по умолчанию первой)
func (r *Repository) GetAll(ctx context.Context) ([]*domain.BusinessHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(hoursColumns...).
		From(tableBusinessHours).
		OrderBy("weekday ASC NULLS FIRST").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.BusinessHours, 0)
	for rows.Next() {
		hours, err := scanHours(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAll - scan row: %v", ErrScanRow, err)
		}
		result = append(result, hours)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAll - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// Upsert создает или обновляет строку для дня недели (или строку по умолчанию)
func (r *Repository) Upsert(ctx context.Context, hours *domain.BusinessHours) (*domain.BusinessHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableBusinessHours).
		Columns(
			"weekday",
			"is_open",
			"open_time",
			"close_time",
			"slot_granularity_minutes",
			"min_booking_notice_minutes",
			"advance_booking_days",
		).
		Values(
			hours.Weekday,
			hours.IsOpen,
			hours.OpenTime,
			hours.CloseTime,
			hours.SlotGranularityMinutes,
			hours.MinBookingNoticeMinutes,
			hours.AdvanceBookingDays,
		).
		Suffix(`ON CONFLICT ((COALESCE(weekday, -1))) DO UPDATE SET
			is_open = EXCLUDED.is_open,
			open_time = EXCLUDED.open_time,
			close_time = EXCLUDED.close_time,
			slot_granularity_minutes = EXCLUDED.slot_granularity_minutes,
			min_booking_notice_minutes = EXCLUDED.min_booking_notice_minutes,
			advance_booking_days = EXCLUDED.advance_booking_days,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&hours.ID, &hours.CreatedAt, &hours.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return hours, nil
}

// DeleteByWeekday удаляет строку дня недели, после чего действует строка по умолчанию
func (r *Repository) DeleteByWeekday(ctx context.Context, weekday int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableBusinessHours).
		Where(squirrel.Eq{"weekday": weekday}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteByWeekday - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteByWeekday - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteByWeekday - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrHoursNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHours(row rowScanner) (*domain.BusinessHours, error) {
	var (
		hours     domain.BusinessHours
		weekday   sql.NullInt16
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)

	err := row.Scan(
		&hours.ID,
		&weekday,
		&hours.IsOpen,
		&hours.OpenTime,
		&hours.CloseTime,
		&hours.SlotGranularityMinutes,
		&hours.MinBookingNoticeMinutes,
		&hours.AdvanceBookingDays,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if weekday.Valid {
		wd := int(weekday.Int16)
		hours.Weekday = &wd
	}
	hours.CreatedAt = createdAt.Time
	hours.UpdatedAt = updatedAt.Time

	return &hours, nil
}
