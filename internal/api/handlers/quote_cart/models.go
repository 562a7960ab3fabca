package quote_cart

import (
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// QuoteRequest HTTP request model
type QuoteRequest struct {
	Items []domain.CartItem `json:"items"`
}

// QuoteLine позиция рассчитанной корзины
type QuoteLine struct {
	Kind            string  `json:"kind"`
	OfferingID      int64   `json:"offeringId"`
	ServiceID       int64   `json:"serviceId"`
	ComboID         *int64  `json:"comboId,omitempty"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	ListPrice       float64 `json:"listPrice"`
	Price           float64 `json:"price"`
}

// RejectedItem позиция, не вошедшая в расчет
type RejectedItem struct {
	OfferingID int64  `json:"offeringId"`
	Kind       string `json:"kind"`
	Reason     string `json:"reason"`
}

// QuoteResponse HTTP response model
type QuoteResponse struct {
	Lines                []QuoteLine    `json:"lines"`
	TotalPrice           float64        `json:"totalPrice"`
	TotalDurationMinutes int            `json:"totalDurationMinutes"`
	DepositAmount        float64        `json:"depositAmount"`
	Rejected             []RejectedItem `json:"rejected"`
}

// FromCartSummary конвертирует корзину в HTTP response
func FromCartSummary(s *domain.CartSummary, depositPercent float64) *QuoteResponse {
	resp := &QuoteResponse{
		Lines:                make([]QuoteLine, len(s.Lines)),
		TotalPrice:           s.TotalPrice,
		TotalDurationMinutes: s.TotalDurationMinutes,
		DepositAmount:        domain.DepositFor(s.TotalPrice, depositPercent),
		Rejected:             make([]RejectedItem, len(s.Rejected)),
	}

	for i, l := range s.Lines {
		resp.Lines[i] = QuoteLine{
			Kind:            string(l.Kind),
			OfferingID:      l.OfferingID,
			ServiceID:       l.ServiceID,
			ComboID:         l.ComboID,
			Name:            l.Name,
			DurationMinutes: l.DurationMinutes,
			ListPrice:       l.ListPrice,
			Price:           l.Price,
		}
	}

	for i, r := range s.Rejected {
		resp.Rejected[i] = RejectedItem{
			OfferingID: r.Item.OfferingID,
			Kind:       string(r.Item.Kind),
			Reason:     r.Reason,
		}
	}

	return resp
}
