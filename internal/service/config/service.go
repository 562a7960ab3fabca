package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	hoursRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/config"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/config/models"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// Service сервис рабочих часов салона
type Service struct {
	repo     HoursRepository
	defaults domain.BusinessHours
	location *time.Location
	logger   Logger
}

// NewService создает новый экземпляр сервиса рабочих часов.
// defaults применяются, если в БД нет ни строки дня недели, ни строки по умолчанию.
func NewService(repo HoursRepository, defaults domain.BusinessHours, location *time.Location, logger Logger) *Service {
	if location == nil {
		location = time.UTC
	}
	defaults.ID = 0
	defaults.Weekday = nil
	return &Service{
		repo:     repo,
		defaults: defaults,
		location: location,
		logger:   logger,
	}
}

// GetHours возвращает рабочие часы для календарной даты с учетом иерархии:
// строка дня недели -> строка по умолчанию -> значения из конфигурации сервиса
func (s *Service) GetHours(ctx context.Context, date time.Time) (*domain.BusinessHours, error) {
	weekday := int(date.In(s.location).Weekday())

	hours, err := s.repo.GetWithHierarchy(ctx, weekday)
	if err == nil {
		return hours, nil
	}
	if !errors.Is(err, hoursRepo.ErrHoursNotFound) {
		s.logger.Error("GetHours: repository error for weekday=%d: %v", weekday, err)
		return nil, fmt.Errorf("%w: GetHours - repository error: %w", ErrInternal, err)
	}

	fallback := s.defaults
	return &fallback, nil
}

// Location часовой пояс салона
func (s *Service) Location() *time.Location {
	return s.location
}

// GetAll возвращает все сохранённые строки и значения по умолчанию
func (s *Service) GetAll(ctx context.Context) (*models.HoursListResponse, error) {
	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("GetAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAll - repository error: %v", ErrInternal, err)
	}

	resp := &models.HoursListResponse{
		Defaults: models.FromDomainHours(&s.defaults),
		Rows:     make([]models.HoursResponse, 0, len(rows)),
	}
	for _, h := range rows {
		resp.Rows = append(resp.Rows, models.FromDomainHours(h))
	}

	return resp, nil
}

// Upsert создает или обновляет строку рабочих часов
func (s *Service) Upsert(ctx context.Context, req *models.UpsertHoursRequest) (*models.HoursResponse, error) {
	s.logger.Info("Upsert: business hours weekday=%v by user=%d", req.Weekday, req.UserID)

	if err := validateHours(req); err != nil {
		s.logger.Warn("Upsert: validation failed: %v", err)
		return nil, err
	}

	saved, err := s.repo.Upsert(ctx, req.ToDomainHours())
	if err != nil {
		s.logger.Error("Upsert: repository error: %v", err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: saved business hours id=%d", saved.ID)
	resp := models.FromDomainHours(saved)
	return &resp, nil
}

// DeleteWeekday удаляет строку дня недели; дальше для него действует строка по умолчанию
func (s *Service) DeleteWeekday(ctx context.Context, weekday int, userID int64) error {
	s.logger.Info("DeleteWeekday: weekday=%d by user=%d", weekday, userID)

	if weekday < 0 || weekday > 6 {
		return fmt.Errorf("%w: weekday must be within [0, 6]", ErrInvalidInput)
	}

	if err := s.repo.DeleteByWeekday(ctx, weekday); err != nil {
		if errors.Is(err, hoursRepo.ErrHoursNotFound) {
			return ErrHoursNotFound
		}
		s.logger.Error("DeleteWeekday: repository error: %v", err)
		return fmt.Errorf("%w: DeleteWeekday - repository error: %v", ErrInternal, err)
	}

	return nil
}

func validateHours(req *models.UpsertHoursRequest) error {
	if req.Weekday != nil && (*req.Weekday < 0 || *req.Weekday > 6) {
		return fmt.Errorf("%w: weekday must be within [0, 6]", ErrInvalidInput)
	}

	if req.SlotGranularityMinutes < domain.MinSlotGranularityMinutes ||
		req.SlotGranularityMinutes > domain.MaxSlotGranularityMinutes {
		return fmt.Errorf("%w: slot granularity must be between %d and %d minutes",
			ErrInvalidInput, domain.MinSlotGranularityMinutes, domain.MaxSlotGranularityMinutes)
	}

	if req.MinBookingNoticeMinutes < domain.MinBookingNoticeMinutes ||
		req.MinBookingNoticeMinutes > domain.MaxBookingNoticeMinutes {
		return fmt.Errorf("%w: min booking notice must be between %d and %d minutes",
			ErrInvalidInput, domain.MinBookingNoticeMinutes, domain.MaxBookingNoticeMinutes)
	}

	if req.AdvanceBookingDays < domain.MinAdvanceBookingDays ||
		req.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advance booking days must be between %d and %d",
			ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}

	// Для выходного дня время не требуется
	if !req.IsOpen {
		return nil
	}

	openTime, err := types.NewTimeStringFromString(req.OpenTime)
	if err != nil {
		return fmt.Errorf("%w: open time: %v", ErrInvalidInput, err)
	}
	closeTime, err := types.NewTimeStringFromString(req.CloseTime)
	if err != nil {
		return fmt.Errorf("%w: close time: %v", ErrInvalidInput, err)
	}
	if !openTime.IsBefore(closeTime) {
		return fmt.Errorf("%w: open time must be before close time", ErrInvalidInput)
	}

	req.OpenTime = openTime.String()
	req.CloseTime = closeTime.String()
	return nil
}
