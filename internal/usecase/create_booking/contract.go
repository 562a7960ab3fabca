package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/availability"
)

// CartAggregator интерфейс агрегатора корзины
type CartAggregator interface {
	Aggregate(ctx context.Context, items []domain.CartItem) (*domain.CartSummary, error)
}

// AvailabilityCalculator интерфейс калькулятора доступности
type AvailabilityCalculator interface {
	Candidates(ctx context.Context, staffID *int64) ([]int64, error)
	LoadSchedule(ctx context.Context, date time.Time, candidates []int64) (*availability.Schedule, error)
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	Upsert(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
}

// InvoiceRepository интерфейс репозитория счетов
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error)
}

// OutboxRepository интерфейс очереди исходящих событий
type OutboxRepository interface {
	Add(ctx context.Context, event *domain.OutboxEvent) error
}

// DraftCleaner удаляет черновик после успешной записи
type DraftCleaner interface {
	Clear(ctx context.Context, sessionKey string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчики исходов бронирования
type Metrics interface {
	IncBooking(outcome string)
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
