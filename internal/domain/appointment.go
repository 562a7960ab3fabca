package domain

import (
	"math"
	"time"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// IsValid reports whether s is one of the known statuses
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are possible from s
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Appointment is a reservation of one staff member's time for a customer.
// EndTime is frozen at creation and never recomputed from the catalog.
type Appointment struct {
	ID         int64
	CustomerID int64
	StaffID    *int64 // resolved by the builder; nullable only at the storage level
	StartTime  time.Time
	EndTime    time.Time
	Status     AppointmentStatus
	Notes      *string

	DepositPaid bool

	CancellationReason *string
	CancelledAt        *time.Time
	DeletedAt          *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	LineItems []LineItem
	Invoice   *Invoice
}

// Interval returns the half-open time range the appointment occupies
func (a *Appointment) Interval() Interval {
	return Interval{Start: a.StartTime, End: a.EndTime}
}

// DurationMinutes returns the frozen length of the appointment
func (a *Appointment) DurationMinutes() int {
	return int(a.EndTime.Sub(a.StartTime) / time.Minute)
}

// IsActive returns true if the appointment still blocks staff time
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled && a.DeletedAt == nil
}

// IsDeleted returns true if the appointment was soft deleted
func (a *Appointment) IsDeleted() bool {
	return a.DeletedAt != nil
}

// DepositAmount returns the deposit recorded on the invoice, zero without one
func (a *Appointment) DepositAmount() float64 {
	if a.Invoice == nil {
		return 0
	}
	return a.Invoice.DepositAmount
}

// LineItem is one performed service inside an appointment.
// PriceAtBooking is frozen and never rewritten after creation.
type LineItem struct {
	ID              int64
	AppointmentID   int64
	ServiceID       int64
	ComboID         *int64 // set when the line came from a combo expansion
	ServiceName     string
	DurationMinutes int
	ListPrice       float64
	PriceAtBooking  float64
	StaffID         *int64
}

// PaymentStatus of an invoice
type PaymentStatus string

const (
	PaymentUnpaid      PaymentStatus = "unpaid"
	PaymentDepositPaid PaymentStatus = "deposit_paid"
	PaymentPaid        PaymentStatus = "paid"
)

// Invoice holds the money side of an appointment
type Invoice struct {
	ID            int64
	AppointmentID int64
	TotalAmount   float64
	DepositAmount float64
	FinalAmount   float64
	PaymentStatus PaymentStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DepositFor returns percent of total rounded to the cent
func DepositFor(total, percent float64) float64 {
	return math.Round(total*percent) / 100
}

// AppointmentFilter фильтр для выборки записей
type AppointmentFilter struct {
	CustomerID      *int64             // Записи клиента
	StaffIDs        []int64            // Записи мастеров (пусто - все)
	From            *time.Time         // start_time >= From
	To              *time.Time         // start_time < To
	Status          *AppointmentStatus // Конкретный статус
	IncludeInactive bool               // Включать отменённые
	IncludeDeleted  bool               // Включать удалённые (soft delete)
}
