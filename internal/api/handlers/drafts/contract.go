package drafts

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

type DraftService interface {
	Save(ctx context.Context, d *domain.BookingDraft) (*domain.BookingDraft, error)
	Load(ctx context.Context, sessionKey string) (*domain.BookingDraft, error)
	Clear(ctx context.Context, sessionKey string) error
	TTL() time.Duration
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
