package config

import (
	"context"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// HoursRepository интерфейс репозитория рабочих часов
type HoursRepository interface {
	GetByWeekday(ctx context.Context, weekday *int) (*domain.BusinessHours, error)
	GetWithHierarchy(ctx context.Context, weekday int) (*domain.BusinessHours, error)
	GetAll(ctx context.Context) ([]*domain.BusinessHours, error)
	Upsert(ctx context.Context, hours *domain.BusinessHours) (*domain.BusinessHours, error)
	DeleteByWeekday(ctx context.Context, weekday int) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
