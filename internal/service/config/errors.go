package config

import "errors"

var (
	// ErrHoursNotFound возвращается, когда строка рабочих часов не найдена
	ErrHoursNotFound = errors.New("business hours not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
