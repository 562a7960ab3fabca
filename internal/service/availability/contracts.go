package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// HoursProvider источник рабочих часов на дату (с учетом иерархии и значений по умолчанию)
type HoursProvider interface {
	GetHours(ctx context.Context, date time.Time) (*domain.BusinessHours, error)
}

// AppointmentReader интерфейс чтения занятости мастеров
type AppointmentReader interface {
	// ListBusy возвращает записи мастеров, пересекающиеся с [from, to)
	ListBusy(ctx context.Context, staffIDs []int64, from, to time.Time) ([]*domain.Appointment, error)
}

// StaffDirectory интерфейс справочника мастеров
type StaffDirectory interface {
	GetActiveStaff(ctx context.Context) ([]domain.Staff, error)
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
