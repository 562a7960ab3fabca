package catalogservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// Client клиент каталога услуг
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента каталога
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetActiveServices получает активные услуги каталога
func (c *Client) GetActiveServices(ctx context.Context) ([]domain.ServiceOffering, error) {
	var services []Service
	if err := c.get(ctx, "/internal/catalog/services?active=true", &services); err != nil {
		return nil, err
	}

	result := make([]domain.ServiceOffering, 0, len(services))
	for _, s := range services {
		result = append(result, s.ToDomain())
	}
	return result, nil
}

// GetActiveCombos получает активные комбо-предложения каталога
func (c *Client) GetActiveCombos(ctx context.Context) ([]domain.ComboOffering, error) {
	var combos []Combo
	if err := c.get(ctx, "/internal/catalog/combos?active=true", &combos); err != nil {
		return nil, err
	}

	result := make([]domain.ComboOffering, 0, len(combos))
	for _, cb := range combos {
		result = append(result, cb.ToDomain())
	}
	return result, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("CatalogService request %s failed: %v", path, err)
		return fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch {
	case resp.StatusCode == http.StatusOK:
		// Продолжаем обработку
	case resp.StatusCode >= http.StatusInternalServerError:
		body, _ := io.ReadAll(resp.Body)
		c.log.Error("CatalogService %s responded %d: %s", path, resp.StatusCode, string(body))
		return fmt.Errorf("%w: status code %d", ErrUnavailable, resp.StatusCode)
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
