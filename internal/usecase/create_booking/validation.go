package create_booking

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса и нормализует данные клиента
func validateRequest(req *Request) error {
	phone, err := normalizePhone(req.CustomerPhone)
	if err != nil {
		return err
	}
	req.CustomerPhone = phone

	req.CustomerName = strings.TrimSpace(req.CustomerName)
	if req.CustomerName == "" {
		return fmt.Errorf("%w: name is required", ErrCustomerDataInvalid)
	}
	if utf8.RuneCountInString(req.CustomerName) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: name must be at most %d characters", ErrCustomerDataInvalid, domain.MaxCustomerNameLength)
	}

	if req.CustomerEmail != nil {
		email := strings.TrimSpace(*req.CustomerEmail)
		if email == "" {
			req.CustomerEmail = nil
		} else {
			if _, err := mail.ParseAddress(email); err != nil {
				return fmt.Errorf("%w: invalid email: %v", ErrCustomerDataInvalid, err)
			}
			req.CustomerEmail = &email
		}
	}

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if req.StaffID != nil && *req.StaffID <= 0 {
		return fmt.Errorf("%w: staffId must be positive", ErrInvalidInput)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// normalizePhone приводит номер к виду, в котором он хранится у клиента
func normalizePhone(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", fmt.Errorf("%w: phone is required", ErrCustomerDataInvalid)
	}
	phone, err := domain.NormalizePhone(raw)
	if err != nil {
		return "", fmt.Errorf("%w: invalid phone %q", ErrCustomerDataInvalid, raw)
	}
	return phone, nil
}
