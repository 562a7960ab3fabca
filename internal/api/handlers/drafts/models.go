package drafts

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// DraftRequest HTTP request model
type DraftRequest struct {
	CustomerPhone string            `json:"customerPhone,omitempty"`
	CustomerName  string            `json:"customerName,omitempty"`
	CustomerEmail *string           `json:"customerEmail,omitempty"`
	StaffID       *int64            `json:"staffId,omitempty"`
	Items         []domain.CartItem `json:"items"`
	StartTime     *time.Time        `json:"startTime,omitempty"`
	Notes         *string           `json:"notes,omitempty"`
}

// DraftResponse HTTP response model
type DraftResponse struct {
	*domain.BookingDraft
	ExpiresInSeconds int `json:"expiresInSeconds"`
}

// ToDomainDraft конвертирует HTTP запрос в черновик
func (r *DraftRequest) ToDomainDraft(sessionKey string) *domain.BookingDraft {
	return &domain.BookingDraft{
		SessionKey:    sessionKey,
		CustomerPhone: r.CustomerPhone,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		StaffID:       r.StaffID,
		Items:         r.Items,
		StartTime:     r.StartTime,
		Notes:         r.Notes,
	}
}

func toResponse(d *domain.BookingDraft, ttl time.Duration) *DraftResponse {
	return &DraftResponse{
		BookingDraft:     d,
		ExpiresInSeconds: int(ttl / time.Second),
	}
}
