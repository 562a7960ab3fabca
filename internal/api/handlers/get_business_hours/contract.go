package get_business_hours

import (
	"context"

	"github.com/m04kA/SMC-SalonBookingService/internal/service/config/models"
)

type ConfigService interface {
	GetAll(ctx context.Context) (*models.HoursListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
