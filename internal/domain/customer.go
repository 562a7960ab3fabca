package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// ErrInvalidPhone is returned when a phone number cannot be normalized.
var ErrInvalidPhone = errors.New("domain: invalid phone number")

var (
	phonePattern  = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
	phoneReplacer = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")
)

// Customer is identified externally by phone number
type Customer struct {
	ID        int64
	Phone     string
	Name      string
	Email     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizePhone strips spaces, dashes and brackets so that every spelling
// of a number maps to the same stored customer.
func NormalizePhone(raw string) (string, error) {
	phone := phoneReplacer.Replace(strings.TrimSpace(raw))
	if phone == "" || !phonePattern.MatchString(phone) {
		return "", ErrInvalidPhone
	}
	return phone, nil
}
