package update_booking_status

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/appointments"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/appointments/models"
)

const (
	msgInvalidBookingID   = "некорректный ID записи"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "запись не найдена"
	msgCannotConfirm      = "запись не может быть подтверждена в текущем статусе"
	msgCannotComplete     = "запись не может быть завершена в текущем статусе"
)

// ConfirmBookingRequest HTTP request model
type ConfirmBookingRequest struct {
	DepositPaid bool `json:"depositPaid"`
}

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

// HandleConfirm PATCH /api/v1/bookings/{id}/confirm
func (h *Handler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := h.bookingID(w, r, "confirm")
	if !ok {
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	var req ConfirmBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /bookings/{id}/confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Confirm(r.Context(), bookingID, &models.ConfirmRequest{
		UserID:      userID,
		DepositPaid: req.DepositPaid,
	})
	if err != nil {
		h.respondError(w, err, "confirm", bookingID, msgCannotConfirm)
		return
	}

	h.logger.Info("PATCH /bookings/{id}/confirm - Booking confirmed: booking_id=%d, user_id=%d, deposit_paid=%t",
		bookingID, userID, req.DepositPaid)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleComplete PATCH /api/v1/bookings/{id}/complete
func (h *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := h.bookingID(w, r, "complete")
	if !ok {
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	result, err := h.service.Complete(r.Context(), bookingID, userID)
	if err != nil {
		h.respondError(w, err, "complete", bookingID, msgCannotComplete)
		return
	}

	h.logger.Info("PATCH /bookings/{id}/complete - Booking completed: booking_id=%d, user_id=%d", bookingID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) bookingID(w http.ResponseWriter, r *http.Request, action string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/%s - Invalid booking ID: %v", action, err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return 0, false
	}
	return id, true
}

func (h *Handler) respondError(w http.ResponseWriter, err error, action string, bookingID int64, msgTransition string) {
	switch {
	case errors.Is(err, appointments.ErrAppointmentNotFound):
		h.logger.Warn("PATCH /bookings/{id}/%s - Booking not found: booking_id=%d", action, bookingID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, appointments.ErrInvalidTransition):
		h.logger.Error("PATCH /bookings/{id}/%s - Invalid transition: booking_id=%d, error=%v", action, bookingID, err)
		handlers.RespondConflict(w, msgTransition)

	default:
		h.logger.Error("PATCH /bookings/{id}/%s - Failed to update booking: booking_id=%d, error=%v",
			action, bookingID, err)
		handlers.RespondInternalError(w)
	}
}
