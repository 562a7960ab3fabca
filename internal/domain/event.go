package domain

import "time"

// Event types published for downstream consumers
const (
	EventAppointmentCreated   = "appointment.created"
	EventAppointmentConfirmed = "appointment.confirmed"
	EventAppointmentCancelled = "appointment.cancelled"
	EventAppointmentCompleted = "appointment.completed"
)

// OutboxEvent is a notification stored in the same transaction as the change it describes
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   string
	AggregateID int64
	Payload     []byte
	CreatedAt   time.Time
	PublishedAt *time.Time
}

// AppointmentEvent is the payload of appointment.* events
type AppointmentEvent struct {
	AppointmentID      int64             `json:"appointmentId"`
	CustomerID         int64             `json:"customerId"`
	StaffID            *int64            `json:"staffId,omitempty"`
	Status             AppointmentStatus `json:"status"`
	StartTime          time.Time         `json:"startTime"`
	EndTime            time.Time         `json:"endTime"`
	TotalAmount        float64           `json:"totalAmount"`
	CancellationReason *string           `json:"cancellationReason,omitempty"`
	OccurredAt         time.Time         `json:"occurredAt"`
}

// NewAppointmentEvent builds the payload from the current state of a
func NewAppointmentEvent(a *Appointment, occurredAt time.Time) AppointmentEvent {
	ev := AppointmentEvent{
		AppointmentID:      a.ID,
		CustomerID:         a.CustomerID,
		StaffID:            a.StaffID,
		Status:             a.Status,
		StartTime:          a.StartTime,
		EndTime:            a.EndTime,
		CancellationReason: a.CancellationReason,
		OccurredAt:         occurredAt,
	}
	if a.Invoice != nil {
		ev.TotalAmount = a.Invoice.TotalAmount
	}
	return ev
}
