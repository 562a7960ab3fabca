package get_customer_bookings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/appointments"
)

const (
	msgInvalidParams    = "некорректные параметры запроса"
	msgCustomerNotFound = "клиент не найден"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/customers/{phone}/bookings
// Query params: status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	phone := mux.Vars(r)["phone"]

	var status *string
	if s := r.URL.Query().Get("status"); s != "" {
		status = &s
	}

	result, err := h.service.ListByCustomerPhone(r.Context(), phone, status)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrCustomerNotFound):
			h.logger.Warn("GET /customers/{phone}/bookings - Customer not found: phone=%s", phone)
			handlers.RespondNotFound(w, msgCustomerNotFound)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /customers/{phone}/bookings - Invalid parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /customers/{phone}/bookings - Failed to get bookings: phone=%s, error=%v", phone, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /customers/{phone}/bookings - Bookings retrieved successfully: phone=%s, count=%d",
		phone, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
