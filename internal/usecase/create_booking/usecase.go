package create_booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/availability"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/cart"
	"github.com/m04kA/SMC-SalonBookingService/pkg/txmanager"
)

// Исходы бронирования для метрик
const (
	outcomeCreated     = "created"
	outcomeRejected    = "rejected"
	outcomeUnavailable = "slot_unavailable"
	outcomeConflict    = "conflict"
	outcomeError       = "error"
)

// UseCase use case для создания записи из корзины
type UseCase struct {
	cart            CartAggregator
	calculator      AvailabilityCalculator
	customerRepo    CustomerRepository
	appointmentRepo AppointmentRepository
	invoiceRepo     InvoiceRepository
	outboxRepo      OutboxRepository
	drafts          DraftCleaner
	txManager       TransactionManager
	metrics         Metrics
	depositPercent  float64
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	cartAggregator CartAggregator,
	calculator AvailabilityCalculator,
	customerRepo CustomerRepository,
	appointmentRepo AppointmentRepository,
	invoiceRepo InvoiceRepository,
	outboxRepo OutboxRepository,
	drafts DraftCleaner,
	txManager TransactionManager,
	metrics Metrics,
	depositPercent float64,
	logger Logger,
) *UseCase {
	return &UseCase{
		cart:            cartAggregator,
		calculator:      calculator,
		customerRepo:    customerRepo,
		appointmentRepo: appointmentRepo,
		invoiceRepo:     invoiceRepo,
		outboxRepo:      outboxRepo,
		drafts:          drafts,
		txManager:       txManager,
		metrics:         metrics,
		depositPercent:  depositPercent,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи.
// Проверка свободного времени и вставка выполняются в одной сериализуемой транзакции;
// пересечение интервалов дополнительно отсекается exclusion constraint в БД.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, staff=%v, items=%d, start=%s",
		req.UserID, req.StaffID, len(req.Items), req.StartTime.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.metrics.IncBooking(outcomeRejected)
		return nil, err
	}

	// 2. Рассчитываем корзину
	summary, err := uc.cart.Aggregate(ctx, req.Items)
	if err != nil {
		uc.metrics.IncBooking(outcomeRejected)
		return nil, mapCartError(err)
	}

	// Клиент должен получить ровно ту корзину, которую подтвердил
	if summary.HasRejected() {
		uc.logger.Warn("CreateBooking: %d cart items rejected", len(summary.Rejected))
		uc.metrics.IncBooking(outcomeRejected)
		return nil, fmt.Errorf("%w: %d items are unavailable", ErrOfferingUnavailable, len(summary.Rejected))
	}

	// 3. Кандидаты-мастера (внешний справочник, вне транзакции)
	candidates, err := uc.calculator.Candidates(ctx, req.StaffID)
	if err != nil {
		uc.metrics.IncBooking(outcomeRejected)
		if errors.Is(err, availability.ErrStaffNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("%w: failed to get staff candidates: %v", ErrInternal, err)
	}

	duration := summary.TotalDurationMinutes

	var (
		created  *domain.Appointment
		customer *domain.Customer
	)

	// 4. Проверка и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		now := uc.timeProvider.Now()

		// 4.1. Клиент по телефону
		c, err := uc.customerRepo.Upsert(txCtx, &domain.Customer{
			Phone: req.CustomerPhone,
			Name:  req.CustomerName,
			Email: req.CustomerEmail,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to upsert customer: %w", ErrInternal, err)
		}

		// 4.2. Свежее расписание на дату с блокировкой занятости
		schedule, err := uc.calculator.LoadSchedule(txCtx, req.StartTime, candidates)
		if err != nil {
			return fmt.Errorf("%w: failed to load schedule: %w", ErrInternal, err)
		}

		switch schedule.Reason {
		case availability.ReasonBeyondHorizon:
			return ErrDateTooFarInFuture
		case availability.ReasonClosed:
			return ErrSalonClosed
		}

		// 4.3. Время должно быть среди свободных слотов
		if !schedule.Contains(req.StartTime, duration) {
			return ErrSlotNoLongerAvailable
		}

		staffID, ok := schedule.StaffFor(req.StartTime, duration)
		if !ok {
			return ErrSlotNoLongerAvailable
		}

		// 4.4. Запись с позициями; конец фиксируется здесь и больше не пересчитывается
		appointment := buildAppointment(req, c.ID, staffID, summary)

		saved, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		// 4.5. Счет
		invoice, err := uc.invoiceRepo.Create(txCtx, buildInvoice(saved.ID, summary.TotalPrice, uc.depositPercent))
		if err != nil {
			return fmt.Errorf("%w: failed to create invoice: %w", ErrInternal, err)
		}
		saved.Invoice = invoice

		// 4.6. Событие для внешних потребителей
		event, err := newOutboxEvent(domain.EventAppointmentCreated, saved, now)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}
		if err := uc.outboxRepo.Add(txCtx, event); err != nil {
			return fmt.Errorf("%w: failed to add outbox event: %w", ErrInternal, err)
		}

		created = saved
		customer = c
		return nil
	})

	if err != nil {
		return nil, uc.mapTxError(err, req)
	}

	uc.logger.Info("CreateBooking: created appointment id=%d, staff=%d, %s - %s",
		created.ID, *created.StaffID, created.StartTime.Format(time.RFC3339), created.EndTime.Format(time.RFC3339))
	uc.metrics.IncBooking(outcomeCreated)

	// 5. Черновик больше не нужен
	if req.DraftKey != nil && *req.DraftKey != "" {
		if err := uc.drafts.Clear(ctx, *req.DraftKey); err != nil {
			uc.logger.Warn("CreateBooking: failed to clear draft %s: %v", *req.DraftKey, err)
		}
	}

	return &Response{
		ID:          created.ID,
		Appointment: created,
		Customer:    customer,
		Cart:        summary,
	}, nil
}

// mapTxError приводит ошибку транзакции к ошибкам usecase
func (uc *UseCase) mapTxError(err error, req *Request) error {
	switch {
	case errors.Is(err, appointmentRepo.ErrOverlap):
		uc.logger.Warn("CreateBooking: interval taken concurrently at %s", req.StartTime.Format(time.RFC3339))
		uc.metrics.IncBooking(outcomeConflict)
		return fmt.Errorf("%w: staff interval is already taken", ErrPersistenceConflict)
	case txmanager.IsSerializationFailure(err):
		uc.logger.Warn("CreateBooking: serialization retries exhausted: %v", err)
		uc.metrics.IncBooking(outcomeConflict)
		return fmt.Errorf("%w: concurrent update, retry the request", ErrPersistenceConflict)
	case errors.Is(err, ErrSlotNoLongerAvailable):
		uc.logger.Warn("CreateBooking: slot %s is no longer available", req.StartTime.Format(time.RFC3339))
		uc.metrics.IncBooking(outcomeUnavailable)
		return err
	case errors.Is(err, ErrSalonClosed), errors.Is(err, ErrDateTooFarInFuture):
		uc.logger.Warn("CreateBooking: %v", err)
		uc.metrics.IncBooking(outcomeRejected)
		return err
	}

	uc.logger.Error("CreateBooking: transaction failed: %v", err)
	uc.metrics.IncBooking(outcomeError)
	if errors.Is(err, ErrInternal) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrInternal, err)
}

func mapCartError(err error) error {
	switch {
	case errors.Is(err, cart.ErrEmptyCart):
		return ErrEmptyCart
	case errors.Is(err, cart.ErrOfferingUnavailable):
		return fmt.Errorf("%w: %v", ErrOfferingUnavailable, err)
	case errors.Is(err, cart.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return fmt.Errorf("%w: failed to aggregate cart: %v", ErrInternal, err)
}

func buildAppointment(req *Request, customerID, staffID int64, summary *domain.CartSummary) *domain.Appointment {
	lines := make([]domain.LineItem, len(summary.Lines))
	for i, line := range summary.Lines {
		lines[i] = domain.LineItem{
			ServiceID:       line.ServiceID,
			ComboID:         line.ComboID,
			ServiceName:     line.Name,
			DurationMinutes: line.DurationMinutes,
			ListPrice:       line.ListPrice,
			PriceAtBooking:  line.Price,
			StaffID:         &staffID,
		}
	}

	return &domain.Appointment{
		CustomerID: customerID,
		StaffID:    &staffID,
		StartTime:  req.StartTime,
		EndTime:    req.StartTime.Add(time.Duration(summary.TotalDurationMinutes) * time.Minute),
		Status:     domain.StatusPending,
		Notes:      req.Notes,
		LineItems:  lines,
	}
}

// buildInvoice рассчитывает депозит как процент от суммы с округлением до цента
func buildInvoice(appointmentID int64, total, depositPercent float64) *domain.Invoice {
	return &domain.Invoice{
		AppointmentID: appointmentID,
		TotalAmount:   total,
		DepositAmount: domain.DepositFor(total, depositPercent),
		FinalAmount:   total,
		PaymentStatus: domain.PaymentUnpaid,
	}
}

func newOutboxEvent(eventType string, a *domain.Appointment, now time.Time) (*domain.OutboxEvent, error) {
	payload, err := json.Marshal(domain.NewAppointmentEvent(a, now))
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s event: %v", eventType, err)
	}
	return &domain.OutboxEvent{
		EventType:   eventType,
		AggregateID: a.ID,
		Payload:     payload,
		CreatedAt:   now,
	}, nil
}
