package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// ConfirmRequest запрос на подтверждение записи
type ConfirmRequest struct {
	UserID      int64 `json:"-"`
	DepositPaid bool  `json:"depositPaid"` // Клиент оплатил депозит
}

// CancelRequest запрос на отмену записи
type CancelRequest struct {
	UserID             int64  `json:"-"`
	CancellationReason string `json:"cancellationReason"`
}

// ListRequest запрос на выборку записей (отчетность, расписание мастеров)
type ListRequest struct {
	UserID          int64
	From            *time.Time // start_time >= From
	To              *time.Time // start_time < To
	StaffID         *int64
	Status          *string
	IncludeInactive bool // Включить отменённые
	IncludeDeleted  bool // Включить удалённые
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListRequest) ToDomainFilter() (domain.AppointmentFilter, error) {
	filter := domain.AppointmentFilter{
		From:            r.From,
		To:              r.To,
		IncludeInactive: r.IncludeInactive,
		IncludeDeleted:  r.IncludeDeleted,
	}

	if r.StaffID != nil {
		filter.StaffIDs = []int64{*r.StaffID}
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// LineItemResponse позиция записи
type LineItemResponse struct {
	ID              int64   `json:"id"`
	ServiceID       int64   `json:"serviceId"`
	ComboID         *int64  `json:"comboId,omitempty"`
	ServiceName     string  `json:"serviceName"`
	DurationMinutes int     `json:"durationMinutes"`
	ListPrice       float64 `json:"listPrice"`
	PriceAtBooking  float64 `json:"priceAtBooking"`
}

// InvoiceResponse счет записи
type InvoiceResponse struct {
	TotalAmount   float64 `json:"totalAmount"`
	DepositAmount float64 `json:"depositAmount"`
	FinalAmount   float64 `json:"finalAmount"`
	PaymentStatus string  `json:"paymentStatus"`
}

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              int64     `json:"id"`
	CustomerID      int64     `json:"customerId"`
	StaffID         *int64    `json:"staffId,omitempty"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`
	Notes           *string   `json:"notes,omitempty"`
	DepositPaid     bool      `json:"depositPaid"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format
	DeletedAt          *string `json:"deletedAt,omitempty"`

	LineItems []LineItemResponse `json:"lineItems"`
	Invoice   *InvoiceResponse   `json:"invoice,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Bookings []AppointmentResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:                 a.ID,
		CustomerID:         a.CustomerID,
		StaffID:            a.StaffID,
		StartTime:          a.StartTime,
		EndTime:            a.EndTime,
		DurationMinutes:    a.DurationMinutes(),
		Status:             string(a.Status),
		Notes:              a.Notes,
		DepositPaid:        a.DepositPaid,
		CancellationReason: a.CancellationReason,
		LineItems:          make([]LineItemResponse, len(a.LineItems)),
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}

	for i, item := range a.LineItems {
		resp.LineItems[i] = LineItemResponse{
			ID:              item.ID,
			ServiceID:       item.ServiceID,
			ComboID:         item.ComboID,
			ServiceName:     item.ServiceName,
			DurationMinutes: item.DurationMinutes,
			ListPrice:       item.ListPrice,
			PriceAtBooking:  item.PriceAtBooking,
		}
	}

	if a.Invoice != nil {
		resp.Invoice = &InvoiceResponse{
			TotalAmount:   a.Invoice.TotalAmount,
			DepositAmount: a.Invoice.DepositAmount,
			FinalAmount:   a.Invoice.FinalAmount,
			PaymentStatus: string(a.Invoice.PaymentStatus),
		}
	}

	resp.CancelledAt = formatTime(a.CancelledAt)
	resp.DeletedAt = formatTime(a.DeletedAt)

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Bookings: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, a := range appointments {
		if r := FromDomainAppointment(a); r != nil {
			resp.Bookings = append(resp.Bookings, *r)
		}
	}

	return resp
}

// ToDomainStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
