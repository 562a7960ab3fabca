package get_available_slots

import "errors"

var (
	// ErrStaffNotFound возвращается, когда мастер не найден среди активных
	ErrStaffNotFound = errors.New("get_available_slots: staff not found")

	// ErrOfferingUnavailable возвращается, когда услуга или комбо недоступны
	ErrOfferingUnavailable = errors.New("get_available_slots: offering is unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
