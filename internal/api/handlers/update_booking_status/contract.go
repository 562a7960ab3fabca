package update_booking_status

import (
	"context"

	"github.com/m04kA/SMC-SalonBookingService/internal/service/appointments/models"
)

type BookingService interface {
	Confirm(ctx context.Context, id int64, req *models.ConfirmRequest) (*models.AppointmentResponse, error)
	Complete(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
