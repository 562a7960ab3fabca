package get_available_slots

import (
	"context"
	"iter"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/availability"
)

// SlotsCalculator интерфейс калькулятора доступности
type SlotsCalculator interface {
	GetAvailableSlots(ctx context.Context, q availability.Query) (iter.Seq[time.Time], error)
	Location() *time.Location
}

// CartAggregator интерфейс агрегатора корзины (длительность по услугам и комбо)
type CartAggregator interface {
	Aggregate(ctx context.Context, items []domain.CartItem) (*domain.CartSummary, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
