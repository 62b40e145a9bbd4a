package replace_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TherapyBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TherapyBooking/internal/api/middleware"
	"github.com/m04kA/SMC-TherapyBooking/internal/service/availability"
	"github.com/m04kA/SMC-TherapyBooking/internal/service/availability/models"
)

const (
	msgInvalidProviderID  = "некорректный ID провайдера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidTemplate    = "некорректный шаблон: day в диапазоне 0..6, слоты в формате HH:MM"
	msgProviderNotFound   = "провайдер не найден"
	msgRoleMismatch       = "изменять расписание может только сам провайдер"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/providers/{providerId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := strconv.ParseInt(mux.Vars(r)["providerId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /providers/{id}/availability - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /providers/{id}/availability - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.ReplaceTemplateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /providers/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.ActorID = userID
	req.ProviderID = providerID

	result, err := h.service.ReplaceTemplate(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("PUT /providers/{id}/availability - Invalid template: provider_id=%d, error=%v", providerID, err)
			handlers.RespondBadRequest(w, msgInvalidTemplate)

		case errors.Is(err, availability.ErrProviderNotFound):
			h.logger.Warn("PUT /providers/{id}/availability - Provider not found: provider_id=%d", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, availability.ErrRoleMismatch):
			h.logger.Warn("PUT /providers/{id}/availability - Role mismatch: provider_id=%d, user_id=%d", providerID, userID)
			handlers.RespondForbidden(w, msgRoleMismatch)

		default:
			h.logger.Error("PUT /providers/{id}/availability - Failed to replace template: provider_id=%d, error=%v",
				providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /providers/{id}/availability - Template replaced: provider_id=%d, days=%d",
		providerID, len(result.WeeklyTemplate))
	handlers.RespondJSON(w, http.StatusOK, result)
}
