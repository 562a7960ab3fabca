package cart

import (
	"context"
	"fmt"
	"math"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// Aggregator собирает корзину услуг и комбо в одну запись:
// строки с ценами, суммарную длительность и стоимость
type Aggregator struct {
	catalog CatalogReader
	logger  Logger
}

// NewAggregator создает новый агрегатор корзины
func NewAggregator(catalog CatalogReader, logger Logger) *Aggregator {
	return &Aggregator{
		catalog: catalog,
		logger:  logger,
	}
}

// Aggregate рассчитывает корзину по текущему снимку каталога.
// Недоступные позиции не оцениваются в ноль, а попадают в Rejected.
func (a *Aggregator) Aggregate(ctx context.Context, items []domain.CartItem) (*domain.CartSummary, error) {
	// 1. Валидация входных данных
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	if len(items) > domain.MaxCartItems {
		return nil, fmt.Errorf("%w: cart may contain at most %d items", ErrInvalidInput, domain.MaxCartItems)
	}

	// 2. Снимок каталога
	services, err := a.catalog.GetActiveServices(ctx)
	if err != nil {
		a.logger.Error("Aggregate: failed to get services: %v", err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	servicesByID := make(map[int64]domain.ServiceOffering, len(services))
	for _, s := range services {
		servicesByID[s.ID] = s
	}

	var combosByID map[int64]domain.ComboOffering
	if hasCombos(items) {
		combos, err := a.catalog.GetActiveCombos(ctx)
		if err != nil {
			a.logger.Error("Aggregate: failed to get combos: %v", err)
			return nil, fmt.Errorf("%w: failed to get combos: %v", ErrInternal, err)
		}
		combosByID = make(map[int64]domain.ComboOffering, len(combos))
		for _, c := range combos {
			combosByID[c.ID] = c
		}
	}

	// 3. Разворачиваем позиции в строки
	summary := &domain.CartSummary{
		Lines:    make([]domain.CartLine, 0, len(items)),
		Rejected: make([]domain.RejectedItem, 0),
	}

	for _, item := range items {
		var (
			lines  []domain.CartLine
			reason string
		)

		switch item.Kind {
		case domain.OfferingService:
			lines, reason = serviceLines(item, servicesByID)
		case domain.OfferingCombo:
			lines, reason = comboLines(item, combosByID, servicesByID)
		default:
			reason = domain.RejectUnknownKind
		}

		if reason != "" {
			a.logger.Warn("Aggregate: %s id=%d rejected: %s", item.Kind, item.OfferingID, reason)
			summary.Rejected = append(summary.Rejected, domain.RejectedItem{Item: item, Reason: reason})
			continue
		}

		summary.Lines = append(summary.Lines, lines...)
	}

	if len(summary.Lines) == 0 {
		return nil, fmt.Errorf("%w: all %d items rejected", ErrOfferingUnavailable, len(items))
	}

	// 4. Итоги
	var totalCents int64
	for _, line := range summary.Lines {
		totalCents += toCents(line.Price)
		summary.TotalDurationMinutes += line.DurationMinutes
	}
	summary.TotalPrice = fromCents(totalCents)

	if summary.TotalDurationMinutes > domain.MaxAppointmentMinutes {
		return nil, fmt.Errorf("%w: total duration %d exceeds %d minutes",
			ErrInvalidInput, summary.TotalDurationMinutes, domain.MaxAppointmentMinutes)
	}

	return summary, nil
}

func hasCombos(items []domain.CartItem) bool {
	for _, item := range items {
		if item.Kind == domain.OfferingCombo {
			return true
		}
	}
	return false
}

func serviceLines(item domain.CartItem, services map[int64]domain.ServiceOffering) ([]domain.CartLine, string) {
	s, ok := services[item.OfferingID]
	if !ok {
		return nil, domain.RejectNotFound
	}
	if !s.IsBookable() {
		return nil, domain.RejectInactive
	}

	return []domain.CartLine{{
		Kind:            domain.OfferingService,
		OfferingID:      s.ID,
		ServiceID:       s.ID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
		ListPrice:       s.Price,
		Price:           s.Price,
	}}, ""
}

// comboLines разворачивает комбо в строки по составным услугам.
// Цена комбо распределяется пропорционально текущим ценам услуг.
func comboLines(
	item domain.CartItem,
	combos map[int64]domain.ComboOffering,
	services map[int64]domain.ServiceOffering,
) ([]domain.CartLine, string) {
	c, ok := combos[item.OfferingID]
	if !ok {
		return nil, domain.RejectNotFound
	}
	if !c.IsBookable() {
		return nil, domain.RejectInactive
	}

	constituents := make([]domain.ServiceOffering, 0, len(c.ServiceIDs))
	for _, serviceID := range c.ServiceIDs {
		s, ok := services[serviceID]
		if !ok || !s.IsBookable() {
			return nil, domain.RejectConstituentUnavailable
		}
		constituents = append(constituents, s)
	}

	listPrices := make([]float64, len(constituents))
	for i, s := range constituents {
		listPrices[i] = s.Price
	}
	prices := allocate(c.Price, listPrices)

	comboID := c.ID
	lines := make([]domain.CartLine, len(constituents))
	for i, s := range constituents {
		lines[i] = domain.CartLine{
			Kind:            domain.OfferingCombo,
			OfferingID:      c.ID,
			ServiceID:       s.ID,
			ComboID:         &comboID,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			ListPrice:       s.Price,
			Price:           prices[i],
		}
	}

	return lines, ""
}

// allocate делит total на доли, пропорциональные weights, с точностью до цента.
// Остаток от округления уходит в последнюю долю, сумма долей равна total.
func allocate(total float64, weights []float64) []float64 {
	n := len(weights)
	out := make([]float64, n)
	if n == 0 {
		return out
	}

	totalCents := toCents(total)
	weightCents := make([]int64, n)
	var sumWeights int64
	for i, w := range weights {
		weightCents[i] = toCents(w)
		sumWeights += weightCents[i]
	}

	var allocated int64
	for i := 0; i < n-1; i++ {
		var share int64
		if sumWeights > 0 {
			share = totalCents * weightCents[i] / sumWeights
		} else {
			share = totalCents / int64(n)
		}
		out[i] = fromCents(share)
		allocated += share
	}
	out[n-1] = fromCents(totalCents - allocated)

	return out
}

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func fromCents(cents int64) float64 {
	return float64(cents) / 100
}
