package list_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/appointments/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// from/to принимают RFC3339 или дату YYYY-MM-DD в часовом поясе салона;
// дата в to включается целиком.
func ToServiceRequest(userID int64, query url.Values, loc *time.Location) (*models.ListRequest, error) {
	req := &models.ListRequest{UserID: userID}

	if s := query.Get("from"); s != "" {
		from, err := parseBound(s, loc, false)
		if err != nil {
			return nil, fmt.Errorf("invalid from: %w", err)
		}
		req.From = &from
	}

	if s := query.Get("to"); s != "" {
		to, err := parseBound(s, loc, true)
		if err != nil {
			return nil, fmt.Errorf("invalid to: %w", err)
		}
		req.To = &to
	}

	if s := query.Get("staffId"); s != "" {
		staffID, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid staffId: %w", err)
		}
		req.StaffID = &staffID
	}

	if s := query.Get("status"); s != "" {
		req.Status = &s
		// Явно запрошенный статус cancelled не должен отфильтровываться
		req.IncludeInactive = true
	}

	if s := query.Get("includeInactive"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = req.IncludeInactive || v
	}

	if s := query.Get("includeDeleted"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("invalid includeDeleted value: %w", err)
		}
		req.IncludeDeleted = v
	}

	return req, nil
}

func parseBound(s string, loc *time.Location, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	date, err := time.ParseInLocation(domain.DateFormat, s, loc)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		return date.AddDate(0, 0, 1), nil
	}
	return date, nil
}
