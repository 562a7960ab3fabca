package create_booking

import "errors"

var (
	// ErrCustomerDataInvalid возвращается при отсутствующих или некорректных данных клиента
	ErrCustomerDataInvalid = errors.New("create_booking: customer data is invalid")

	// ErrEmptyCart возвращается, когда корзина пуста
	ErrEmptyCart = errors.New("create_booking: cart is empty")

	// ErrOfferingUnavailable возвращается, когда позиция корзины недоступна для записи
	ErrOfferingUnavailable = errors.New("create_booking: offering is unavailable")

	// ErrStaffNotFound возвращается, когда выбранный мастер не найден среди активных
	ErrStaffNotFound = errors.New("create_booking: staff not found")

	// ErrSalonClosed возвращается, когда салон закрыт в указанную дату
	ErrSalonClosed = errors.New("create_booking: salon is closed on this date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrSlotNoLongerAvailable возвращается, когда выбранное время больше не свободно
	ErrSlotNoLongerAvailable = errors.New("create_booking: slot is no longer available")

	// ErrPersistenceConflict возвращается при конфликте записи в БД (пересечение интервалов
	// или исчерпанные повторы сериализуемой транзакции); запрос можно повторить
	ErrPersistenceConflict = errors.New("create_booking: persistence conflict")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
