package catalogservice

import "github.com/m04kA/SMC-SalonBookingService/internal/domain"

// Service модель услуги из каталога
type Service struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
	IsActive        bool    `json:"is_active"`
	IsDeleted       bool    `json:"is_deleted"`
}

// Combo модель комбо-предложения из каталога
type Combo struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	ServiceIDs []int64 `json:"service_ids"`
	IsActive   bool    `json:"is_active"`
	IsDeleted  bool    `json:"is_deleted"`
}

// ErrorResponse модель ошибки от каталога
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (s Service) ToDomain() domain.ServiceOffering {
	return domain.ServiceOffering{
		ID:              s.ID,
		Name:            s.Name,
		Price:           s.Price,
		DurationMinutes: s.DurationMinutes,
		IsActive:        s.IsActive,
		IsDeleted:       s.IsDeleted,
	}
}

func (c Combo) ToDomain() domain.ComboOffering {
	return domain.ComboOffering{
		ID:         c.ID,
		Name:       c.Name,
		Price:      c.Price,
		ServiceIDs: c.ServiceIDs,
		IsActive:   c.IsActive,
		IsDeleted:  c.IsDeleted,
	}
}
