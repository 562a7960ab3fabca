package cart

import (
	"context"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// CatalogReader интерфейс снимка каталога услуг
type CatalogReader interface {
	GetActiveServices(ctx context.Context) ([]domain.ServiceOffering, error)
	GetActiveCombos(ctx context.Context) ([]domain.ComboOffering, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
