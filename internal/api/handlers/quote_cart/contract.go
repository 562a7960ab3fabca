package quote_cart

import (
	"context"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

type CartAggregator interface {
	Aggregate(ctx context.Context, items []domain.CartItem) (*domain.CartSummary, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
