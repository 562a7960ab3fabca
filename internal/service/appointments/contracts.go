package appointments

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error)
	ListStalePending(ctx context.Context, before time.Time, limit int) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.AppointmentStatus, at time.Time) error
	Confirm(ctx context.Context, id int64, depositPaid bool, at time.Time) error
	Cancel(ctx context.Context, id int64, from domain.AppointmentStatus, reason string, at time.Time) error
	SoftDelete(ctx context.Context, id int64, at time.Time) error
}

// InvoiceRepository интерфейс репозитория счетов
type InvoiceRepository interface {
	GetByAppointmentID(ctx context.Context, appointmentID int64) (*domain.Invoice, error)
	ListByAppointmentIDs(ctx context.Context, appointmentIDs []int64) (map[int64]*domain.Invoice, error)
	UpdatePayment(ctx context.Context, appointmentID int64, status domain.PaymentStatus, finalAmount float64, at time.Time) error
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	GetByPhone(ctx context.Context, phone string) (*domain.Customer, error)
}

// OutboxRepository интерфейс очереди исходящих событий
type OutboxRepository interface {
	Add(ctx context.Context, event *domain.OutboxEvent) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчики переходов статусов
type Metrics interface {
	IncTransition(from, to string)
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
