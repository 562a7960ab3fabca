package drafts

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	draftsService "github.com/m04kA/SMC-SalonBookingService/internal/service/drafts"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDraft       = "некорректные данные черновика"
	msgNotFound           = "черновик не найден или истёк"
)

// Handler черновики бронирования: клиент может вернуться к незавершенной записи
type Handler struct {
	service DraftService
	logger  Logger
}

func NewHandler(service DraftService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleCreate POST /api/v1/drafts
// Ключ сессии генерируется сервером
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, "", "POST /drafts", http.StatusCreated)
}

// HandleUpdate PUT /api/v1/drafts/{sessionKey}
// Перезаписывает черновик и продлевает TTL
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, mux.Vars(r)["sessionKey"], "PUT /drafts/{sessionKey}", http.StatusOK)
}

// HandleGet GET /api/v1/drafts/{sessionKey}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["sessionKey"]

	d, err := h.service.Load(r.Context(), key)
	if err != nil {
		h.respondError(w, err, "GET /drafts/{sessionKey}", key)
		return
	}

	h.logger.Info("GET /drafts/{sessionKey} - Draft loaded: key=%s", key)
	handlers.RespondJSON(w, http.StatusOK, toResponse(d, h.service.TTL()))
}

// HandleDelete DELETE /api/v1/drafts/{sessionKey}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["sessionKey"]

	if err := h.service.Clear(r.Context(), key); err != nil {
		h.respondError(w, err, "DELETE /drafts/{sessionKey}", key)
		return
	}

	h.logger.Info("DELETE /drafts/{sessionKey} - Draft cleared: key=%s", key)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request, key, route string, status int) {
	var req DraftRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	d, err := h.service.Save(r.Context(), req.ToDomainDraft(key))
	if err != nil {
		h.respondError(w, err, route, key)
		return
	}

	h.logger.Info("%s - Draft saved: key=%s, items=%d", route, d.SessionKey, len(d.Items))
	handlers.RespondJSON(w, status, toResponse(d, h.service.TTL()))
}

func (h *Handler) respondError(w http.ResponseWriter, err error, route, key string) {
	switch {
	case errors.Is(err, draftsService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid draft: key=%s, error=%v", route, key, err)
		handlers.RespondBadRequest(w, msgInvalidDraft)

	case errors.Is(err, draftsService.ErrDraftNotFound):
		h.logger.Warn("%s - Draft not found: key=%s", route, key)
		handlers.RespondNotFound(w, msgNotFound)

	default:
		h.logger.Error("%s - Draft store failure: key=%s, error=%v", route, key, err)
		handlers.RespondInternalError(w)
	}
}
