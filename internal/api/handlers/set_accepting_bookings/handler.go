package set_accepting_bookings

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
	msgInvalidRequestBody = "некорректное тело запроса, ожидается {\"acceptingBookings\": true|false}"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgProviderNotFound   = "провайдер не найден"
	msgRoleMismatch       = "управлять приемом записей может только сам провайдер"
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

// Handle PATCH /api/v1/providers/{providerId}/availability/accepting
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := strconv.ParseInt(mux.Vars(r)["providerId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /providers/{id}/availability/accepting - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /providers/{id}/availability/accepting - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SetAcceptingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil || req.AcceptingBookings == nil {
		h.logger.Warn("PATCH /providers/{id}/availability/accepting - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.SetAcceptingBookings(r.Context(), &models.SetAcceptingRequest{
		ActorID:           userID,
		ProviderID:        providerID,
		AcceptingBookings: *req.AcceptingBookings,
	})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("PATCH /providers/{id}/availability/accepting - Invalid input: provider_id=%d, error=%v", providerID, err)
			handlers.RespondBadRequest(w, msgInvalidProviderID)

		case errors.Is(err, availability.ErrProviderNotFound):
			h.logger.Warn("PATCH /providers/{id}/availability/accepting - Provider not found: provider_id=%d", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, availability.ErrRoleMismatch):
			h.logger.Warn("PATCH /providers/{id}/availability/accepting - Role mismatch: provider_id=%d, user_id=%d",
				providerID, userID)
			handlers.RespondForbidden(w, msgRoleMismatch)

		default:
			h.logger.Error("PATCH /providers/{id}/availability/accepting - Failed to set flag: provider_id=%d, error=%v",
				providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /providers/{id}/availability/accepting - Flag set: provider_id=%d, accepting=%t",
		providerID, result.AcceptingBookings)
	handlers.RespondJSON(w, http.StatusOK, result)
}
