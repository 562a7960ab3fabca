package quote_cart

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/cart"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgEmptyCart           = "корзина пуста"
	msgInvalidCart         = "некорректный состав корзины"
	msgOfferingUnavailable = "ни одна услуга из корзины недоступна"
)

type Handler struct {
	aggregator     CartAggregator
	depositPercent float64
	logger         Logger
}

func NewHandler(aggregator CartAggregator, depositPercent float64, logger Logger) *Handler {
	return &Handler{
		aggregator:     aggregator,
		depositPercent: depositPercent,
		logger:         logger,
	}
}

// Handle POST /api/v1/cart/quote
// Считает стоимость, длительность и депозит корзины без записи
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /cart/quote - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	summary, err := h.aggregator.Aggregate(r.Context(), req.Items)
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrEmptyCart):
			h.logger.Warn("POST /cart/quote - Empty cart")
			handlers.RespondBadRequest(w, msgEmptyCart)

		case errors.Is(err, cart.ErrInvalidInput):
			h.logger.Warn("POST /cart/quote - Invalid cart: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCart)

		case errors.Is(err, cart.ErrOfferingUnavailable):
			h.logger.Warn("POST /cart/quote - No available items: %v", err)
			handlers.RespondBadRequest(w, msgOfferingUnavailable)

		default:
			h.logger.Error("POST /cart/quote - Failed to aggregate cart: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /cart/quote - Cart quoted: lines=%d, rejected=%d, total=%.2f, duration=%d",
		len(summary.Lines), len(summary.Rejected), summary.TotalPrice, summary.TotalDurationMinutes)
	handlers.RespondJSON(w, http.StatusOK, FromCartSummary(summary, h.depositPercent))
}
