package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBookingService/pkg/psqlbuilder"
)

const (
	tableAppointments = "appointments"
	tableLineItems    = "appointment_line_items"

	// exclusion_violation
	sqlStateExclusionViolation = "23P01"
)

var appointmentColumns = []string{
	"id",
	"customer_id",
	"staff_id",
	"start_time",
	"end_time",
	"status",
	"notes",
	"deposit_paid",
	"cancellation_reason",
	"cancelled_at",
	"deleted_at",
	"created_at",
	"updated_at",
}

var lineItemColumns = []string{
	"id",
	"appointment_id",
	"service_id",
	"combo_id",
	"service_name",
	"duration_minutes",
	"list_price",
	"price_at_booking",
	"staff_id",
}

// Repository репозиторий записей и их позиций
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись вместе с позициями.
// Должен вызываться внутри транзакции: запись и позиции сохраняются атомарно.
// Пересечение интервала мастера с активной записью отсекается exclusion constraint
// и возвращается как ErrOverlap.
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableAppointments).
		Columns(
			"customer_id",
			"staff_id",
			"start_time",
			"end_time",
			"status",
			"notes",
			"deposit_paid",
		).
		Values(
			a.CustomerID,
			a.StaffID,
			a.StartTime,
			a.EndTime,
			a.Status,
			a.Notes,
			a.DepositPaid,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if isExclusionViolation(err) {
			return nil, fmt.Errorf("%w: staff_id=%v %s..%s", ErrOverlap,
				derefID(a.StaffID), a.StartTime.Format(time.RFC3339), a.EndTime.Format(time.RFC3339))
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	if len(a.LineItems) == 0 {
		return a, nil
	}

	if err := r.insertLineItems(ctx, executor, a); err != nil {
		return nil, err
	}

	return a, nil
}

func (r *Repository) insertLineItems(ctx context.Context, executor DBExecutor, a *domain.Appointment) error {
	builder := psqlbuilder.Insert(tableLineItems).
		Columns(
			"appointment_id",
			"service_id",
			"combo_id",
			"service_name",
			"duration_minutes",
			"list_price",
			"price_at_booking",
			"staff_id",
		)

	for i := range a.LineItems {
		item := &a.LineItems[i]
		item.AppointmentID = a.ID
		builder = builder.Values(
			a.ID,
			item.ServiceID,
			item.ComboID,
			item.ServiceName,
			item.DurationMinutes,
			item.ListPrice,
			item.PriceAtBooking,
			item.StaffID,
		)
	}

	query, args, err := builder.Suffix("RETURNING id").ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertLineItems - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: insertLineItems - execute insert: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		if i >= len(a.LineItems) {
			return fmt.Errorf("%w: insertLineItems - more ids than items", ErrScanRow)
		}
		if err := rows.Scan(&a.LineItems[i].ID); err != nil {
			return fmt.Errorf("%w: insertLineItems - scan id: %w", ErrScanRow, err)
		}
		i++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: insertLineItems - rows error: %w", ErrScanRow, err)
	}

	return nil
}

// GetByID получает запись по ID вместе с позициями.
// Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From(tableAppointments).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %w", ErrScanRow, err)
	}

	items, err := r.lineItemsFor(ctx, executor, []int64{a.ID})
	if err != nil {
		return nil, err
	}
	a.LineItems = items[a.ID]

	return a, nil
}

// List получает записи по фильтру (с позициями), сортировка по времени начала
func (r *Repository) List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From(tableAppointments).
		OrderBy("start_time ASC", "id ASC")

	if filter.CustomerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}
	if len(filter.StaffIDs) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"staff_id": filter.StaffIDs})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_time": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_time": *filter.To})
	}
	if !filter.IncludeDeleted {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"deleted_at": nil})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*filter.Status)})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": statusStrings(domain.InactiveStatuses)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	appointments, err := r.query(ctx, executor, query, args)
	if err != nil {
		return nil, err
	}

	if len(appointments) == 0 {
		return appointments, nil
	}

	ids := make([]int64, len(appointments))
	for i, a := range appointments {
		ids[i] = a.ID
	}

	items, err := r.lineItemsFor(ctx, executor, ids)
	if err != nil {
		return nil, err
	}
	for _, a := range appointments {
		a.LineItems = items[a.ID]
	}

	return appointments, nil
}

// ListBusy возвращает активные (не отменённые, не удалённые) записи мастеров,
// пересекающиеся с [from, to). Позиции не загружаются.
// Внутри транзакции строки блокируются (FOR UPDATE).
func (r *Repository) ListBusy(ctx context.Context, staffIDs []int64, from, to time.Time) ([]*domain.Appointment, error) {
	if len(staffIDs) == 0 {
		return []*domain.Appointment{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From(tableAppointments).
		Where(squirrel.Eq{"staff_id": staffIDs}).
		Where(squirrel.Lt{"start_time": to}).
		Where(squirrel.Gt{"end_time": from}).
		Where(squirrel.NotEq{"status": statusStrings(domain.InactiveStatuses)}).
		Where(squirrel.Eq{"deleted_at": nil}).
		OrderBy("staff_id ASC", "start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBusy - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, query, args)
}

// ListStalePending возвращает записи в статусе pending, начало которых раньше before
func (r *Repository) ListStalePending(ctx context.Context, before time.Time, limit int) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From(tableAppointments).
		Where(squirrel.Eq{"status": string(domain.StatusPending)}).
		Where(squirrel.Lt{"start_time": before}).
		Where(squirrel.Eq{"deleted_at": nil}).
		OrderBy("start_time ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListStalePending - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, query, args)
}

// UpdateStatus переводит запись из статуса from в статус to.
// Обновление защищено условием status = from: если статус уже изменился,
// возвращается ErrStatusConflict.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.AppointmentStatus, at time.Time) error {
	update := psqlbuilder.Update(tableAppointments).
		Set("status", string(to)).
		Set("updated_at", at)

	return r.guardedUpdate(ctx, "UpdateStatus", update, id, from)
}

// Confirm подтверждает запись, опционально фиксируя оплату депозита
func (r *Repository) Confirm(ctx context.Context, id int64, depositPaid bool, at time.Time) error {
	update := psqlbuilder.Update(tableAppointments).
		Set("status", string(domain.StatusConfirmed)).
		Set("updated_at", at)

	if depositPaid {
		update = update.Set("deposit_paid", true)
	}

	return r.guardedUpdate(ctx, "Confirm", update, id, domain.StatusPending)
}

// Cancel отменяет запись с указанием причины; защищено условием status = from
func (r *Repository) Cancel(ctx context.Context, id int64, from domain.AppointmentStatus, reason string, at time.Time) error {
	update := psqlbuilder.Update(tableAppointments).
		Set("status", string(domain.StatusCancelled)).
		Set("cancellation_reason", reason).
		Set("cancelled_at", at).
		Set("updated_at", at)

	return r.guardedUpdate(ctx, "Cancel", update, id, from)
}

// SoftDelete помечает запись удалённой. Физическое удаление не выполняется.
func (r *Repository) SoftDelete(ctx context.Context, id int64, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableAppointments).
		Set("deleted_at", at).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"deleted_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SoftDelete - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SoftDelete - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SoftDelete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

func (r *Repository) guardedUpdate(ctx context.Context, op string, update squirrel.UpdateBuilder, id int64, from domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := update.
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": string(from)}).
		Where(squirrel.Eq{"deleted_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: id=%d expected status=%s", ErrStatusConflict, id, from)
	}

	return nil
}

func (r *Repository) query(ctx context.Context, executor DBExecutor, query string, args []interface{}) ([]*domain.Appointment, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan row: %w", ErrScanRow, err)
		}
		appointments = append(appointments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %w", ErrScanRow, err)
	}

	return appointments, nil
}

// lineItemsFor загружает позиции для набора записей, сгруппированные по appointment_id
func (r *Repository) lineItemsFor(ctx context.Context, executor DBExecutor, appointmentIDs []int64) (map[int64][]domain.LineItem, error) {
	query, args, err := psqlbuilder.Select(lineItemColumns...).
		From(tableLineItems).
		Where(squirrel.Eq{"appointment_id": appointmentIDs}).
		OrderBy("appointment_id ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: lineItemsFor - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: lineItemsFor - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make(map[int64][]domain.LineItem, len(appointmentIDs))
	for rows.Next() {
		var item domain.LineItem
		err := rows.Scan(
			&item.ID,
			&item.AppointmentID,
			&item.ServiceID,
			&item.ComboID,
			&item.ServiceName,
			&item.DurationMinutes,
			&item.ListPrice,
			&item.PriceAtBooking,
			&item.StaffID,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: lineItemsFor - scan row: %w", ErrScanRow, err)
		}
		result[item.AppointmentID] = append(result[item.AppointmentID], item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: lineItemsFor - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var (
		a      domain.Appointment
		status string
	)

	err := row.Scan(
		&a.ID,
		&a.CustomerID,
		&a.StaffID,
		&a.StartTime,
		&a.EndTime,
		&status,
		&a.Notes,
		&a.DepositPaid,
		&a.CancellationReason,
		&a.CancelledAt,
		&a.DeletedAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.Status = domain.AppointmentStatus(status)
	return &a, nil
}

func statusStrings(statuses []domain.AppointmentStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}

func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == sqlStateExclusionViolation
}

func derefID(id *int64) interface{} {
	if id == nil {
		return "nil"
	}
	return *id
}
