package get_available_slots

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SalonBookingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string   `json:"date"`
	StaffID         *int64   `json:"staffId,omitempty"`
	DurationMinutes int      `json:"durationMinutes"`
	Slots           []string `json:"slots"` // RFC3339 в часовом поясе салона
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = slot.Format(time.RFC3339)
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		StaffID:         resp.StaffID,
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров.
// Дата разбирается в часовом поясе салона.
func ToUseCaseRequest(userID int64, query url.Values, loc *time.Location) (*getAvailableSlots.Request, error) {
	date, err := time.ParseInLocation(domain.DateFormat, query.Get("date"), loc)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}

	req := &getAvailableSlots.Request{
		UserID: userID,
		Date:   date,
	}

	if s := query.Get("staffId"); s != "" {
		staffID, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid staffId: %w", err)
		}
		req.StaffID = &staffID
	}

	if s := query.Get("duration"); s != "" {
		duration, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid duration: %w", err)
		}
		req.DurationMinutes = duration
	}

	services, err := parseIDs(query.Get("services"))
	if err != nil {
		return nil, fmt.Errorf("invalid services: %w", err)
	}
	combos, err := parseIDs(query.Get("combos"))
	if err != nil {
		return nil, fmt.Errorf("invalid combos: %w", err)
	}

	for _, id := range services {
		req.Items = append(req.Items, domain.CartItem{OfferingID: id, Kind: domain.OfferingService})
	}
	for _, id := range combos {
		req.Items = append(req.Items, domain.CartItem{OfferingID: id, Kind: domain.OfferingCombo})
	}

	return req, nil
}

// parseIDs разбирает "1,2,3"
func parseIDs(s string) ([]int64, error) {
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
