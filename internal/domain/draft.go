package domain

import "time"

// BookingDraft is an unfinished booking kept between visits.
// Drafts never occupy staff time.
type BookingDraft struct {
	SessionKey    string     `json:"sessionKey"`
	CustomerPhone string     `json:"customerPhone,omitempty"`
	CustomerName  string     `json:"customerName,omitempty"`
	CustomerEmail *string    `json:"customerEmail,omitempty"`
	StaffID       *int64     `json:"staffId,omitempty"`
	Items         []CartItem `json:"items"`
	StartTime     *time.Time `json:"startTime,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}
