package invoice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBookingService/pkg/psqlbuilder"
)

var invoiceColumns = []string{
	"id",
	"appointment_id",
	"total_amount",
	"deposit_amount",
	"final_amount",
	"payment_status",
	"created_at",
	"updated_at",
}

// Repository репозиторий счетов (один счёт на запись)
type Repository struct {
	db dbmetrics.DBExecutor
}

func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("invoices").
		Columns("appointment_id", "total_amount", "deposit_amount", "final_amount", "payment_status").
		Values(inv.AppointmentID, inv.TotalAmount, inv.DepositAmount, inv.FinalAmount, string(inv.PaymentStatus)).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return inv, nil
}

func (r *Repository) GetByAppointmentID(ctx context.Context, appointmentID int64) (*domain.Invoice, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(invoiceColumns...).
		From("invoices").
		Where(squirrel.Eq{"appointment_id": appointmentID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAppointmentID - build select query: %v", ErrBuildQuery, err)
	}

	inv, err := scanInvoice(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvoiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAppointmentID - scan invoice: %w", ErrExecQuery, err)
	}

	return inv, nil
}

// ListByAppointmentIDs возвращает счета, сгруппированные по appointment_id
func (r *Repository) ListByAppointmentIDs(ctx context.Context, appointmentIDs []int64) (map[int64]*domain.Invoice, error) {
	result := make(map[int64]*domain.Invoice, len(appointmentIDs))
	if len(appointmentIDs) == 0 {
		return result, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(invoiceColumns...).
		From("invoices").
		Where(squirrel.Eq{"appointment_id": appointmentIDs}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByAppointmentIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByAppointmentIDs - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByAppointmentIDs - scan row: %w", ErrExecQuery, err)
		}
		result[inv.AppointmentID] = inv
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByAppointmentIDs - rows error: %w", ErrExecQuery, err)
	}

	return result, nil
}

// UpdatePayment меняет статус оплаты и итоговую сумму к оплате
func (r *Repository) UpdatePayment(ctx context.Context, appointmentID int64, status domain.PaymentStatus, finalAmount float64, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("invoices").
		Set("payment_status", string(status)).
		Set("final_amount", finalAmount).
		Set("updated_at", at).
		Where(squirrel.Eq{"appointment_id": appointmentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdatePayment - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdatePayment - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdatePayment - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrInvoiceNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanInvoice(row rowScanner) (*domain.Invoice, error) {
	var (
		inv    domain.Invoice
		status string
	)

	err := row.Scan(
		&inv.ID,
		&inv.AppointmentID,
		&inv.TotalAmount,
		&inv.DepositAmount,
		&inv.FinalAmount,
		&status,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	inv.PaymentStatus = domain.PaymentStatus(status)
	return &inv, nil
}
