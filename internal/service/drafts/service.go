package drafts

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	draftStore "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/draft"
)

// Ключ сессии приходит из URL, поэтому набор символов ограничен
var sessionKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// Service сервис черновиков бронирования.
// Черновик не занимает время мастера и не влияет на доступные слоты.
type Service struct {
	store        DraftStore
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса черновиков
func NewService(store DraftStore, logger Logger) *Service {
	return &Service{
		store:        store,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Save сохраняет черновик и продлевает его TTL.
// Если ключ не передан, генерируется новый UUID.
func (s *Service) Save(ctx context.Context, d *domain.BookingDraft) (*domain.BookingDraft, error) {
	if d == nil {
		return nil, fmt.Errorf("%w: draft is required", ErrInvalidInput)
	}

	if d.SessionKey == "" {
		d.SessionKey = uuid.NewString()
	}

	if err := validateDraft(d); err != nil {
		s.logger.Warn("SaveDraft: validation failed for key=%s: %v", d.SessionKey, err)
		return nil, err
	}

	d.UpdatedAt = s.timeProvider.Now()

	if err := s.store.Save(ctx, d); err != nil {
		s.logger.Error("SaveDraft: store error for key=%s: %v", d.SessionKey, err)
		return nil, fmt.Errorf("%w: SaveDraft - store error: %v", ErrInternal, err)
	}

	s.logger.Info("SaveDraft: saved key=%s, items=%d, ttl=%s", d.SessionKey, len(d.Items), s.store.TTL())
	return d, nil
}

// Load возвращает черновик по ключу сессии
func (s *Service) Load(ctx context.Context, sessionKey string) (*domain.BookingDraft, error) {
	if !sessionKeyPattern.MatchString(sessionKey) {
		return nil, fmt.Errorf("%w: invalid session key", ErrInvalidInput)
	}

	d, err := s.store.Load(ctx, sessionKey)
	if err != nil {
		if errors.Is(err, draftStore.ErrDraftNotFound) {
			s.logger.Warn("LoadDraft: key=%s not found", sessionKey)
			return nil, ErrDraftNotFound
		}
		s.logger.Error("LoadDraft: store error for key=%s: %v", sessionKey, err)
		return nil, fmt.Errorf("%w: LoadDraft - store error: %v", ErrInternal, err)
	}

	return d, nil
}

// Clear удаляет черновик; отсутствующий черновик ошибкой не считается
func (s *Service) Clear(ctx context.Context, sessionKey string) error {
	if !sessionKeyPattern.MatchString(sessionKey) {
		return fmt.Errorf("%w: invalid session key", ErrInvalidInput)
	}

	if err := s.store.Delete(ctx, sessionKey); err != nil {
		s.logger.Error("ClearDraft: store error for key=%s: %v", sessionKey, err)
		return fmt.Errorf("%w: ClearDraft - store error: %v", ErrInternal, err)
	}

	s.logger.Info("ClearDraft: cleared key=%s", sessionKey)
	return nil
}

// TTL время жизни черновика
func (s *Service) TTL() time.Duration {
	return s.store.TTL()
}

func validateDraft(d *domain.BookingDraft) error {
	if !sessionKeyPattern.MatchString(d.SessionKey) {
		return fmt.Errorf("%w: invalid session key", ErrInvalidInput)
	}

	if len(d.Items) > domain.MaxCartItems {
		return fmt.Errorf("%w: at most %d items allowed", ErrInvalidInput, domain.MaxCartItems)
	}

	for i, item := range d.Items {
		if item.OfferingID <= 0 {
			return fmt.Errorf("%w: items[%d].offeringId must be positive", ErrInvalidInput, i)
		}
		if !item.Kind.IsValid() {
			return fmt.Errorf("%w: items[%d].kind must be service or combo", ErrInvalidInput, i)
		}
	}

	if d.StaffID != nil && *d.StaffID <= 0 {
		return fmt.Errorf("%w: staffId must be positive", ErrInvalidInput)
	}

	if d.Notes != nil && utf8.RuneCountInString(*d.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
