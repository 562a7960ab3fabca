package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/appointments/models"
	createBooking "github.com/m04kA/SMC-SalonBookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CustomerPhone string            `json:"customerPhone"`
	CustomerName  string            `json:"customerName"`
	CustomerEmail *string           `json:"customerEmail,omitempty"`
	StaffID       *int64            `json:"staffId,omitempty"` // null - любой свободный мастер
	Items         []domain.CartItem `json:"items"`
	StartTime     string            `json:"startTime"` // RFC3339: "2025-03-11T10:00:00+03:00"
	Notes         *string           `json:"notes,omitempty"`
	DraftKey      *string           `json:"draftKey,omitempty"`
}

// CustomerResponse клиент записи
type CustomerResponse struct {
	ID    int64   `json:"id"`
	Phone string  `json:"phone"`
	Name  string  `json:"name"`
	Email *string `json:"email,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	*models.AppointmentResponse
	Customer CustomerResponse `json:"customer"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:        userID,
		CustomerPhone: r.CustomerPhone,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		StaffID:       r.StaffID,
		Items:         r.Items,
		StartTime:     startTime,
		Notes:         r.Notes,
		DraftKey:      r.DraftKey,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	out := &BookingResponse{
		AppointmentResponse: models.FromDomainAppointment(resp.Appointment),
	}
	if resp.Customer != nil {
		out.Customer = CustomerResponse{
			ID:    resp.Customer.ID,
			Phone: resp.Customer.Phone,
			Name:  resp.Customer.Name,
			Email: resp.Customer.Email,
		}
	}
	return out
}
