package update_business_hours

import (
	"context"

	"github.com/m04kA/SMC-SalonBookingService/internal/service/config/models"
)

type ConfigService interface {
	Upsert(ctx context.Context, req *models.UpsertHoursRequest) (*models.HoursResponse, error)
	DeleteWeekday(ctx context.Context, weekday int, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
