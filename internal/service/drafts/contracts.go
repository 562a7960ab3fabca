package drafts

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// DraftStore интерфейс хранилища черновиков
type DraftStore interface {
	Save(ctx context.Context, d *domain.BookingDraft) error
	Load(ctx context.Context, sessionKey string) (*domain.BookingDraft, error)
	Delete(ctx context.Context, sessionKey string) error
	TTL() time.Duration
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
