package update_business_hours

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/config"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/config/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidWeekday     = "некорректный день недели, ожидается 0-6"
	msgNotFound           = "рабочие часы для дня не найдены"
	msgInvalidData        = "некорректные данные рабочих часов"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/business-hours
// weekday не указан - обновляется строка по умолчанию
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	var req models.UpsertHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /business-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.Upsert(r.Context(), &req)
	if err != nil {
		if errors.Is(err, config.ErrInvalidInput) {
			h.logger.Warn("PUT /business-hours - Invalid data: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidData)
			return
		}

		h.logger.Error("PUT /business-hours - Failed to update business hours: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /business-hours - Business hours updated successfully: id=%d, weekday=%v, user_id=%d",
		result.ID, result.Weekday, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDelete DELETE /api/v1/business-hours/{weekday}
// Для дня снова действует строка по умолчанию
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	weekday, err := strconv.Atoi(mux.Vars(r)["weekday"])
	if err != nil {
		h.logger.Warn("DELETE /business-hours/{weekday} - Invalid weekday: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWeekday)
		return
	}

	if err := h.service.DeleteWeekday(r.Context(), weekday, userID); err != nil {
		switch {
		case errors.Is(err, config.ErrInvalidInput):
			h.logger.Warn("DELETE /business-hours/{weekday} - Invalid weekday: %d", weekday)
			handlers.RespondBadRequest(w, msgInvalidWeekday)

		case errors.Is(err, config.ErrHoursNotFound):
			h.logger.Warn("DELETE /business-hours/{weekday} - Not found: weekday=%d", weekday)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /business-hours/{weekday} - Failed to delete: weekday=%d, error=%v", weekday, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /business-hours/{weekday} - Deleted: weekday=%d, user_id=%d", weekday, userID)
	w.WriteHeader(http.StatusNoContent)
}
