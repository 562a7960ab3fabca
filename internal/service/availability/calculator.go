package availability

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// Query параметры расчета свободных слотов
type Query struct {
	Date            time.Time // любая точка календарного дня
	StaffID         *int64    // nil - любой свободный мастер
	DurationMinutes int
}

// Calculator калькулятор доступности мастеров
type Calculator struct {
	hours        HoursProvider
	appointments AppointmentReader
	staff        StaffDirectory
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// Option настройка калькулятора
type Option func(*Calculator)

// WithTimeProvider подменяет источник текущего времени
func WithTimeProvider(tp TimeProvider) Option {
	return func(c *Calculator) {
		c.timeProvider = tp
	}
}

// NewCalculator создает новый калькулятор доступности
func NewCalculator(
	hours HoursProvider,
	appointments AppointmentReader,
	staff StaffDirectory,
	location *time.Location,
	logger Logger,
	opts ...Option,
) *Calculator {
	if location == nil {
		location = time.UTC
	}
	c := &Calculator{
		hours:        hours,
		appointments: appointments,
		staff:        staff,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Location часовой пояс, в котором считаются календарные даты
func (c *Calculator) Location() *time.Location {
	return c.location
}

// GetAvailableSlots возвращает свободные времена начала на дату.
// Занятость читается заново при каждом вызове; результат ленивый и его можно обходить повторно.
// Отсутствие слотов не является ошибкой.
func (c *Calculator) GetAvailableSlots(ctx context.Context, q Query) (iter.Seq[time.Time], error) {
	if err := validateQuery(q); err != nil {
		c.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	candidates, err := c.Candidates(ctx, q.StaffID)
	if err != nil {
		return nil, err
	}

	schedule, err := c.LoadSchedule(ctx, q.Date, candidates)
	if err != nil {
		return nil, err
	}

	if !schedule.IsOpen() {
		c.logger.Info("GetAvailableSlots: no slots on %s: %s", schedule.Date.Format(domain.DateFormat), schedule.Reason)
	}

	return schedule.Slots(q.DurationMinutes), nil
}

// Candidates возвращает мастеров, среди которых ищется свободный.
// Для конкретного мастера проверяется, что он активен.
func (c *Calculator) Candidates(ctx context.Context, staffID *int64) ([]int64, error) {
	staff, err := c.staff.GetActiveStaff(ctx)
	if err != nil {
		c.logger.Error("Candidates: failed to get active staff: %v", err)
		return nil, fmt.Errorf("%w: failed to get active staff: %v", ErrInternal, err)
	}

	ids := make([]int64, 0, len(staff))
	for _, s := range staff {
		if s.IsActive {
			ids = append(ids, s.ID)
		}
	}

	if staffID == nil {
		slices.Sort(ids)
		return ids, nil
	}

	if !slices.Contains(ids, *staffID) {
		c.logger.Warn("Candidates: staff id=%d is not active", *staffID)
		return nil, fmt.Errorf("%w: id=%d", ErrStaffNotFound, *staffID)
	}

	return []int64{*staffID}, nil
}

// LoadSchedule читает рабочие часы и занятость кандидатов на дату.
// Внутри транзакции строки занятости блокируются репозиторием.
func (c *Calculator) LoadSchedule(ctx context.Context, date time.Time, candidates []int64) (*Schedule, error) {
	now := c.timeProvider.Now()
	day := domain.StartOfDay(date, c.location)

	schedule := &Schedule{
		Date:  day,
		Staff: slices.Clone(candidates),
		Busy:  make(map[int64][]domain.Interval, len(candidates)),
	}

	// 1. Прошедшие даты не дают слотов
	if day.Before(domain.StartOfDay(now, c.location)) {
		schedule.Reason = ReasonPast
		return schedule, nil
	}

	// 2. Рабочие часы с учетом иерархии
	hours, err := c.hours.GetHours(ctx, day)
	if err != nil {
		c.logger.Error("LoadSchedule: failed to get business hours for %s: %v", day.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to get business hours: %w", ErrInternal, err)
	}

	if hours.IsBeyondHorizon(day, now, c.location) {
		schedule.Reason = ReasonBeyondHorizon
		return schedule, nil
	}

	if !hours.IsOpen {
		schedule.Reason = ReasonClosed
		return schedule, nil
	}

	// 3. Рабочее окно
	openAt, closeAt, err := hours.Window(day, c.location)
	if err != nil {
		c.logger.Error("LoadSchedule: invalid business hours id=%d: %v", hours.ID, err)
		return nil, fmt.Errorf("%w: invalid business hours: %v", ErrInternal, err)
	}

	schedule.Open = openAt
	schedule.Close = closeAt
	schedule.Granularity = hours.Granularity()
	schedule.NotBefore = now.Add(hours.MinNotice())

	if len(candidates) == 0 {
		return schedule, nil
	}

	// 4. Занятость кандидатов в пределах окна
	busy, err := c.appointments.ListBusy(ctx, schedule.Staff, openAt, closeAt)
	if err != nil {
		c.logger.Error("LoadSchedule: failed to list busy intervals: %v", err)
		return nil, fmt.Errorf("%w: failed to list busy intervals: %w", ErrInternal, err)
	}

	for _, a := range busy {
		if a.StaffID == nil || !a.IsActive() {
			continue
		}
		schedule.Busy[*a.StaffID] = append(schedule.Busy[*a.StaffID], a.Interval())
	}

	return schedule, nil
}

func validateQuery(q Query) error {
	if q.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if q.DurationMinutes <= 0 || q.DurationMinutes > domain.MaxAppointmentMinutes {
		return fmt.Errorf("%w: duration must be between 1 and %d minutes", ErrInvalidInput, domain.MaxAppointmentMinutes)
	}

	if q.StaffID != nil && *q.StaffID <= 0 {
		return fmt.Errorf("%w: staffId must be positive", ErrInvalidInput)
	}

	return nil
}
