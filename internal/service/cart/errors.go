package cart

import "errors"

var (
	// ErrEmptyCart возвращается, когда корзина пуста
	ErrEmptyCart = errors.New("cart: cart is empty")

	// ErrOfferingUnavailable возвращается, когда в корзине не осталось ни одной доступной позиции
	ErrOfferingUnavailable = errors.New("cart: no offering in the cart is available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cart: invalid input data")

	// ErrInternal возвращается при ошибке получения каталога
	ErrInternal = errors.New("cart: internal error")
)
