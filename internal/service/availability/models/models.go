package models

import (
	"time"

	"github.com/m04kA/SMC-TherapyBooking/internal/domain"
	"github.com/m04kA/SMC-TherapyBooking/pkg/types"
)

// Request модели

// DayTemplate слоты одного дня недели (0 = воскресенье)
type DayTemplate struct {
	Day   int      `json:"day"`
	Slots []string `json:"slots"`
}

// ReplaceTemplateRequest полная замена недельного шаблона
type ReplaceTemplateRequest struct {
	ActorID        int64         `json:"-"`
	ProviderID     int64         `json:"-"`
	WeeklyTemplate []DayTemplate `json:"weeklyTemplate"`
}

// SetAcceptingRequest включение/выключение приема записей
type SetAcceptingRequest struct {
	ActorID           int64 `json:"-"`
	ProviderID        int64 `json:"-"`
	AcceptingBookings bool  `json:"acceptingBookings"`
}

// ToDomainTemplate конвертирует DTO в domain шаблон (без нормализации)
func (r *ReplaceTemplateRequest) ToDomainTemplate() domain.WeeklyTemplate {
	template := make(domain.WeeklyTemplate, 0, len(r.WeeklyTemplate))
	for _, day := range r.WeeklyTemplate {
		slots := make([]types.TimeString, 0, len(day.Slots))
		for _, s := range day.Slots {
			slots = append(slots, types.TimeString(s))
		}
		template = append(template, domain.DayTemplate{Weekday: day.Day, Slots: slots})
	}
	return template
}

// Response модели

// AvailabilityResponse расписание провайдера
type AvailabilityResponse struct {
	ProviderID        int64         `json:"providerId"`
	AcceptingBookings bool          `json:"acceptingBookings"`
	WeeklyTemplate    []DayTemplate `json:"weeklyTemplate"`
	UpdatedAt         *time.Time    `json:"updatedAt,omitempty"`
}

// FromDomainAvailability конвертирует запись хранилища в DTO
func FromDomainAvailability(a *domain.Availability) *AvailabilityResponse {
	resp := &AvailabilityResponse{
		ProviderID:        a.ProviderID,
		AcceptingBookings: a.AcceptingBookings,
		WeeklyTemplate:    fromDomainTemplate(a.Template),
	}
	if !a.UpdatedAt.IsZero() {
		updatedAt := a.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}

// FromDomainProvider конвертирует провайдера в DTO
func FromDomainProvider(p *domain.Provider) *AvailabilityResponse {
	return &AvailabilityResponse{
		ProviderID:        p.ID,
		AcceptingBookings: p.AcceptingBookings,
		WeeklyTemplate:    fromDomainTemplate(p.WeeklyTemplate),
	}
}

func fromDomainTemplate(template domain.WeeklyTemplate) []DayTemplate {
	result := make([]DayTemplate, 0, len(template))
	for _, day := range template {
		slots := make([]string, 0, len(day.Slots))
		for _, s := range day.Slots {
			slots = append(slots, s.String())
		}
		result = append(result, DayTemplate{Day: day.Weekday, Slots: slots})
	}
	return result
}
