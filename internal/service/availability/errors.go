package availability

import "errors"

var (
	// ErrStaffNotFound возвращается, когда мастер не найден среди активных
	ErrStaffNotFound = errors.New("availability: staff not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability: internal error")
)
