package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-SalonBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidStartTime    = "некорректное время начала, ожидается RFC3339"
	msgCustomerInvalid     = "некорректные данные клиента"
	msgInvalidInput        = "некорректные данные записи"
	msgEmptyCart           = "корзина пуста"
	msgOfferingUnavailable = "часть услуг недоступна, обновите корзину"
	msgStaffNotFound       = "мастер не найден"
	msgSalonClosed         = "салон закрыт в выбранную дату"
	msgDateTooFar          = "дата записи слишком далеко в будущем"
	msgSlotNotAvailable    = "выбранное время уже занято"
	msgConflict            = "время было занято параллельно, повторите запрос"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid start time %q: %v", req.StartTime, err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrCustomerDataInvalid):
			h.logger.Warn("POST /bookings - Invalid customer data: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgCustomerInvalid)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrEmptyCart):
			h.logger.Warn("POST /bookings - Empty cart: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgEmptyCart)

		case errors.Is(err, createBooking.ErrOfferingUnavailable):
			h.logger.Warn("POST /bookings - Offering unavailable: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgOfferingUnavailable)

		case errors.Is(err, createBooking.ErrSalonClosed):
			h.logger.Warn("POST /bookings - Salon closed: user_id=%d, start=%s", userID, req.StartTime)
			handlers.RespondBadRequest(w, msgSalonClosed)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings - Date too far in future: user_id=%d, start=%s", userID, req.StartTime)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrStaffNotFound):
			h.logger.Warn("POST /bookings - Staff not found: user_id=%d, staff_id=%v", userID, req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, createBooking.ErrSlotNoLongerAvailable):
			h.logger.Warn("POST /bookings - Slot not available: user_id=%d, start=%s", userID, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrPersistenceConflict):
			h.logger.Warn("POST /bookings - Persistence conflict: user_id=%d, start=%s, error=%v", userID, req.StartTime, err)
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, customer_id=%d",
		result.ID, userID, result.Appointment.CustomerID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
