package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// BusinessHours represents the salon's working window and booking rules.
// Supports hierarchical configuration:
// 1. Weekday-specific row (weekday = 0..6, Sunday = 0)
// 2. Default row (weekday = NULL)
// 3. Defaults from the service configuration file
type BusinessHours struct {
	ID                      int64
	Weekday                 *int // NULL = default for all days
	IsOpen                  bool
	OpenTime                types.TimeString
	CloseTime               types.TimeString
	SlotGranularityMinutes  int
	MinBookingNoticeMinutes int
	AdvanceBookingDays      int // 0 = unlimited
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// IsDefault returns true if the row applies to every weekday without its own row
func (h *BusinessHours) IsDefault() bool {
	return h.Weekday == nil
}

// IsWeekdaySpecific returns true if this configuration is for a single weekday
func (h *BusinessHours) IsWeekdaySpecific() bool {
	return h.Weekday != nil
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (h *BusinessHours) HasAdvanceBookingLimit() bool {
	return h.AdvanceBookingDays > 0
}

// Window returns the open and close instants for the calendar date of date in loc
func (h *BusinessHours) Window(date time.Time, loc *time.Location) (time.Time, time.Time, error) {
	day := StartOfDay(date, loc)
	openAt, err := h.OpenTime.OnDate(day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	closeAt, err := h.CloseTime.OnDate(day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return openAt, closeAt, nil
}

// Granularity returns the slot step as a duration
func (h *BusinessHours) Granularity() time.Duration {
	return time.Duration(h.SlotGranularityMinutes) * time.Minute
}

// MinNotice returns the minimum booking notice as a duration
func (h *BusinessHours) MinNotice() time.Duration {
	return time.Duration(h.MinBookingNoticeMinutes) * time.Minute
}

// IsBeyondHorizon reports whether date lies past the advance booking limit counted from today
func (h *BusinessHours) IsBeyondHorizon(date, now time.Time, loc *time.Location) bool {
	if !h.HasAdvanceBookingLimit() {
		return false
	}
	today := StartOfDay(now, loc)
	last := today.AddDate(0, 0, h.AdvanceBookingDays)
	return StartOfDay(date, loc).After(last)
}

// StartOfDay returns midnight of t's calendar date in loc
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
