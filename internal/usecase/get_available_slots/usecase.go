package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/availability"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/cart"
)

// UseCase use case для получения доступных слотов для записи
type UseCase struct {
	calculator SlotsCalculator
	cart       CartAggregator
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(calculator SlotsCalculator, cartAggregator CartAggregator, logger Logger) *UseCase {
	return &UseCase{
		calculator: calculator,
		cart:       cartAggregator,
		logger:     logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%d, staff=%v, duration=%d, items=%d, date=%s",
		req.UserID, req.StaffID, req.DurationMinutes, len(req.Items), req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Длительность по корзине
	duration := req.DurationMinutes
	if duration == 0 {
		summary, err := uc.cart.Aggregate(ctx, req.Items)
		if err != nil {
			return nil, mapCartError(err)
		}
		if summary.HasRejected() {
			uc.logger.Warn("GetAvailableSlots: %d items rejected", len(summary.Rejected))
			return nil, fmt.Errorf("%w: %d items are unavailable", ErrOfferingUnavailable, len(summary.Rejected))
		}
		duration = summary.TotalDurationMinutes
	}

	// 3. Свободные слоты
	seq, err := uc.calculator.GetAvailableSlots(ctx, availability.Query{
		Date:            req.Date,
		StaffID:         req.StaffID,
		DurationMinutes: duration,
	})
	if err != nil {
		return nil, mapAvailabilityError(err)
	}

	slots := slices.Collect(seq)
	loc := uc.calculator.Location()
	for i := range slots {
		slots[i] = slots[i].In(loc)
	}

	uc.logger.Info("GetAvailableSlots: found %d slots for date=%s, duration=%d",
		len(slots), req.Date.Format(domain.DateFormat), duration)

	return &Response{
		Date:            domain.StartOfDay(req.Date, loc),
		StaffID:         req.StaffID,
		DurationMinutes: duration,
		Slots:           slots,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StaffID != nil && *req.StaffID <= 0 {
		return fmt.Errorf("%w: staffId must be positive", ErrInvalidInput)
	}

	if req.DurationMinutes < 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}

	if req.DurationMinutes == 0 && len(req.Items) == 0 {
		return fmt.Errorf("%w: duration or services/combos are required", ErrInvalidInput)
	}

	return nil
}

func mapCartError(err error) error {
	switch {
	case errors.Is(err, cart.ErrEmptyCart), errors.Is(err, cart.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	case errors.Is(err, cart.ErrOfferingUnavailable):
		return fmt.Errorf("%w: %v", ErrOfferingUnavailable, err)
	}
	return fmt.Errorf("%w: failed to aggregate cart: %v", ErrInternal, err)
}

func mapAvailabilityError(err error) error {
	switch {
	case errors.Is(err, availability.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	case errors.Is(err, availability.ErrStaffNotFound):
		return ErrStaffNotFound
	}
	return fmt.Errorf("%w: %v", ErrInternal, err)
}

// Location часовой пояс салона, в котором трактуются даты запроса
func (uc *UseCase) Location() *time.Location {
	return uc.calculator.Location()
}
