package staffservice

import "github.com/m04kA/SMC-SalonBookingService/internal/domain"

// Staff модель мастера из справочника
type Staff struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

func (s Staff) ToDomain() domain.Staff {
	return domain.Staff{ID: s.ID, Name: s.Name, IsActive: s.IsActive}
}
