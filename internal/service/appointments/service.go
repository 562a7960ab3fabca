package appointments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/appointment"
	customerRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/customer"
	invoiceRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/invoice"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/appointments/models"
)

// Service сервис жизненного цикла записей
type Service struct {
	appointmentRepo AppointmentRepository
	invoiceRepo     InvoiceRepository
	customerRepo    CustomerRepository
	outboxRepo      OutboxRepository
	txManager       TransactionManager
	policy          domain.TransitionPolicy
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	invoiceRepo InvoiceRepository,
	customerRepo CustomerRepository,
	outboxRepo OutboxRepository,
	txManager TransactionManager,
	policy domain.TransitionPolicy,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		invoiceRepo:     invoiceRepo,
		customerRepo:    customerRepo,
		outboxRepo:      outboxRepo,
		txManager:       txManager,
		policy:          policy,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает запись по ID вместе с позициями и счетом
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d", id)

	a, err := s.load(ctx, id)
	if err != nil {
		return nil, s.mapLoadError("GetByID", id, err)
	}

	return models.FromDomainAppointment(a), nil
}

// ListByCustomerPhone получает записи клиента по телефону, опционально по статусу
func (s *Service) ListByCustomerPhone(ctx context.Context, phone string, status *string) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListByCustomerPhone: phone=%s, status=%v", phone, status)

	normalized, err := domain.NormalizePhone(phone)
	if err != nil {
		s.logger.Warn("ListByCustomerPhone: invalid phone=%s", phone)
		return nil, fmt.Errorf("%w: invalid phone", ErrInvalidInput)
	}

	filter := domain.AppointmentFilter{IncludeInactive: true}
	if status != nil {
		st, err := models.ToDomainStatus(*status)
		if err != nil {
			s.logger.Warn("ListByCustomerPhone: invalid status=%s", *status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &st
	}

	customer, err := s.customerRepo.GetByPhone(ctx, normalized)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			s.logger.Warn("ListByCustomerPhone: customer phone=%s not found", phone)
			return nil, ErrCustomerNotFound
		}
		s.logger.Error("ListByCustomerPhone: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListByCustomerPhone - repository error: %v", ErrInternal, err)
	}
	filter.CustomerID = &customer.ID

	return s.list(ctx, "ListByCustomerPhone", filter)
}

// List получает записи по периоду, мастеру и статусу (для отчетности)
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("List: user=%d, from=%v, to=%v, staff=%v, status=%v",
		req.UserID, req.From, req.To, req.StaffID, req.Status)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	return s.list(ctx, "List", filter)
}

// Confirm переводит запись pending -> confirmed.
// Если оплачен ненулевой депозит, счет переходит в deposit_paid, к оплате остается total - deposit.
func (s *Service) Confirm(ctx context.Context, id int64, req *models.ConfirmRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Confirm: appointment id=%d by user=%d, depositPaid=%t", id, req.UserID, req.DepositPaid)

	return s.transition(ctx, id, domain.StatusConfirmed, func(txCtx context.Context, a *domain.Appointment, now time.Time) error {
		if err := s.appointmentRepo.Confirm(txCtx, a.ID, req.DepositPaid, now); err != nil {
			return err
		}
		a.DepositPaid = a.DepositPaid || req.DepositPaid

		// Без депозита счет остается unpaid до завершения
		if !req.DepositPaid || a.Invoice == nil || a.Invoice.DepositAmount <= 0 {
			return nil
		}

		final := a.Invoice.TotalAmount - a.Invoice.DepositAmount
		if err := s.invoiceRepo.UpdatePayment(txCtx, a.ID, domain.PaymentDepositPaid, final, now); err != nil {
			return err
		}
		a.Invoice.PaymentStatus = domain.PaymentDepositPaid
		a.Invoice.FinalAmount = final
		return nil
	})
}

// Complete переводит запись в completed; счет считается оплаченным
func (s *Service) Complete(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("Complete: appointment id=%d by user=%d", id, userID)

	return s.transition(ctx, id, domain.StatusCompleted, func(txCtx context.Context, a *domain.Appointment, now time.Time) error {
		if err := s.appointmentRepo.UpdateStatus(txCtx, a.ID, a.Status, domain.StatusCompleted, now); err != nil {
			return err
		}

		if a.Invoice == nil {
			return nil
		}
		if err := s.invoiceRepo.UpdatePayment(txCtx, a.ID, domain.PaymentPaid, a.Invoice.FinalAmount, now); err != nil {
			return err
		}
		a.Invoice.PaymentStatus = domain.PaymentPaid
		return nil
	})
}

// Cancel отменяет запись с указанием причины; интервал мастера освобождается
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: appointment id=%d by user=%d", id, req.UserID)

	reason := strings.TrimSpace(req.CancellationReason)
	if utf8.RuneCountInString(reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellation reason must be at most %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	return s.transition(ctx, id, domain.StatusCancelled, s.cancelFn(reason))
}

// Delete помечает запись удалённой (soft delete)
func (s *Service) Delete(ctx context.Context, id int64, userID int64) error {
	s.logger.Info("Delete: appointment id=%d by user=%d", id, userID)

	if err := s.appointmentRepo.SoftDelete(ctx, id, s.timeProvider.Now()); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Delete: appointment id=%d not found or already deleted", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Delete: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: appointment id=%d soft deleted", id)
	return nil
}

// SweepStalePending отменяет записи, оставшиеся в pending после времени начала
// больше чем на grace, с причиной "no-show". Возвращает количество отменённых.
func (s *Service) SweepStalePending(ctx context.Context, grace time.Duration, limit int) (int, error) {
	before := s.timeProvider.Now().Add(-grace)

	stale, err := s.appointmentRepo.ListStalePending(ctx, before, limit)
	if err != nil {
		s.logger.Error("SweepStalePending: repository error: %v", err)
		return 0, fmt.Errorf("%w: SweepStalePending - repository error: %v", ErrInternal, err)
	}

	noShow := s.cancelFn(domain.CancellationReasonNoShow)
	onlyPending := func(txCtx context.Context, a *domain.Appointment, now time.Time) error {
		if a.Status != domain.StatusPending {
			return fmt.Errorf("%w: appointment is %s, not pending", ErrInvalidTransition, a.Status)
		}
		return noShow(txCtx, a, now)
	}

	cancelled := 0
	for _, a := range stale {
		_, err := s.transition(ctx, a.ID, domain.StatusCancelled, onlyPending)
		if err != nil {
			// Запись могли подтвердить параллельно
			if errors.Is(err, ErrInvalidTransition) || errors.Is(err, ErrAppointmentNotFound) {
				continue
			}
			return cancelled, err
		}
		cancelled++
	}

	if cancelled > 0 {
		s.logger.Info("SweepStalePending: cancelled %d stale pending appointments", cancelled)
	}
	return cancelled, nil
}

func (s *Service) cancelFn(reason string) func(context.Context, *domain.Appointment, time.Time) error {
	return func(txCtx context.Context, a *domain.Appointment, now time.Time) error {
		if err := s.appointmentRepo.Cancel(txCtx, a.ID, a.Status, reason, now); err != nil {
			return err
		}
		a.CancellationReason = &reason
		a.CancelledAt = &now
		return nil
	}
}

// transition выполняет переход статуса в транзакции:
// блокирует запись, проверяет таблицу переходов, применяет изменения и пишет событие в outbox
func (s *Service) transition(
	ctx context.Context,
	id int64,
	to domain.AppointmentStatus,
	apply func(txCtx context.Context, a *domain.Appointment, now time.Time) error,
) (*models.AppointmentResponse, error) {
	var (
		result *domain.Appointment
		from   domain.AppointmentStatus
	)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		now := s.timeProvider.Now()

		a, err := s.load(txCtx, id)
		if err != nil {
			return err
		}

		from = a.Status
		if !s.policy.CanTransition(a, to) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.Status, to)
		}

		if err := apply(txCtx, a, now); err != nil {
			return err
		}
		a.Status = to
		a.UpdatedAt = now

		if eventType, ok := eventFor(to); ok {
			payload, err := json.Marshal(domain.NewAppointmentEvent(a, now))
			if err != nil {
				return fmt.Errorf("%w: encode %s event: %v", ErrInternal, eventType, err)
			}
			event := &domain.OutboxEvent{
				EventType:   eventType,
				AggregateID: a.ID,
				Payload:     payload,
				CreatedAt:   now,
			}
			if err := s.outboxRepo.Add(txCtx, event); err != nil {
				return err
			}
		}

		result = a
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidTransition), errors.Is(err, appointmentRepo.ErrStatusConflict):
			s.logger.Error("transition: appointment id=%d cannot move %s -> %s: %v", id, from, to, err)
			if errors.Is(err, ErrInvalidTransition) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: status changed concurrently", ErrInvalidTransition)
		case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
			s.logger.Warn("transition: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("transition: appointment id=%d %s -> %s failed: %v", id, from, to, err)
		return nil, fmt.Errorf("%w: transition - repository error: %v", ErrInternal, err)
	}

	s.metrics.IncTransition(string(from), string(to))
	s.logger.Info("transition: appointment id=%d %s -> %s", id, from, to)
	return models.FromDomainAppointment(result), nil
}

// load читает запись и ее счет; внутри транзакции запись блокируется
func (s *Service) load(ctx context.Context, id int64) (*domain.Appointment, error) {
	a, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	invoice, err := s.invoiceRepo.GetByAppointmentID(ctx, id)
	if err != nil && !errors.Is(err, invoiceRepo.ErrInvoiceNotFound) {
		return nil, err
	}
	a.Invoice = invoice

	return a, nil
}

func (s *Service) list(ctx context.Context, op string, filter domain.AppointmentFilter) (*models.AppointmentListResponse, error) {
	appointments, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if len(appointments) > 0 {
		ids := make([]int64, len(appointments))
		for i, a := range appointments {
			ids[i] = a.ID
		}

		invoices, err := s.invoiceRepo.ListByAppointmentIDs(ctx, ids)
		if err != nil {
			s.logger.Error("%s: invoice repository error: %v", op, err)
			return nil, fmt.Errorf("%w: %s - invoice repository error: %v", ErrInternal, op, err)
		}
		for _, a := range appointments {
			a.Invoice = invoices[a.ID]
		}
	}

	s.logger.Info("%s: fetched %d appointments", op, len(appointments))
	return models.FromDomainAppointmentList(appointments), nil
}

func (s *Service) mapLoadError(op string, id int64, err error) error {
	if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
		s.logger.Warn("%s: appointment id=%d not found", op, id)
		return ErrAppointmentNotFound
	}
	s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func eventFor(status domain.AppointmentStatus) (string, bool) {
	switch status {
	case domain.StatusConfirmed:
		return domain.EventAppointmentConfirmed, true
	case domain.StatusCancelled:
		return domain.EventAppointmentCancelled, true
	case domain.StatusCompleted:
		return domain.EventAppointmentCompleted, true
	}
	return "", false
}
