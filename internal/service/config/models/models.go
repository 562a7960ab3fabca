package models

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// Request модели

// UpsertHoursRequest запрос на создание/обновление рабочих часов
// Weekday = nil - строка по умолчанию для всех дней
type UpsertHoursRequest struct {
	UserID                  int64  `json:"-"`
	Weekday                 *int   `json:"weekday,omitempty"` // 0 = воскресенье ... 6 = суббота
	IsOpen                  bool   `json:"isOpen"`
	OpenTime                string `json:"openTime,omitempty"`  // "09:00"
	CloseTime               string `json:"closeTime,omitempty"` // "20:00"
	SlotGranularityMinutes  int    `json:"slotGranularityMinutes"`
	MinBookingNoticeMinutes int    `json:"minBookingNoticeMinutes"`
	AdvanceBookingDays      int    `json:"advanceBookingDays"` // 0 = без ограничений
}

// ToDomainHours конвертирует request в domain модель (время уже провалидировано)
func (r *UpsertHoursRequest) ToDomainHours() *domain.BusinessHours {
	return &domain.BusinessHours{
		Weekday:                 r.Weekday,
		IsOpen:                  r.IsOpen,
		OpenTime:                types.TimeString(r.OpenTime),
		CloseTime:               types.TimeString(r.CloseTime),
		SlotGranularityMinutes:  r.SlotGranularityMinutes,
		MinBookingNoticeMinutes: r.MinBookingNoticeMinutes,
		AdvanceBookingDays:      r.AdvanceBookingDays,
	}
}

// Response модели

// HoursResponse ответ с данными рабочих часов
type HoursResponse struct {
	ID                      int64  `json:"id,omitempty"`
	Weekday                 *int   `json:"weekday,omitempty"`
	IsOpen                  bool   `json:"isOpen"`
	OpenTime                string `json:"openTime,omitempty"`
	CloseTime               string `json:"closeTime,omitempty"`
	SlotGranularityMinutes  int    `json:"slotGranularityMinutes"`
	MinBookingNoticeMinutes int    `json:"minBookingNoticeMinutes"`
	AdvanceBookingDays      int    `json:"advanceBookingDays"`
	UpdatedAt               string `json:"updatedAt,omitempty"`
}

// HoursListResponse все строки рабочих часов и значения из конфигурации сервиса
type HoursListResponse struct {
	Defaults HoursResponse   `json:"defaults"`
	Rows     []HoursResponse `json:"rows"`
}

// FromDomainHours конвертирует domain модель в response
func FromDomainHours(h *domain.BusinessHours) HoursResponse {
	resp := HoursResponse{
		ID:                      h.ID,
		Weekday:                 h.Weekday,
		IsOpen:                  h.IsOpen,
		OpenTime:                h.OpenTime.String(),
		CloseTime:               h.CloseTime.String(),
		SlotGranularityMinutes:  h.SlotGranularityMinutes,
		MinBookingNoticeMinutes: h.MinBookingNoticeMinutes,
		AdvanceBookingDays:      h.AdvanceBookingDays,
	}
	if !h.UpdatedAt.IsZero() {
		resp.UpdatedAt = h.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}
