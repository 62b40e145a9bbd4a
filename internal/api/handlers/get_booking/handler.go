package get_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TherapyBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TherapyBooking/internal/api/middleware"
	"github.com/m04kA/SMC-TherapyBooking/internal/service/bookings"
)

const (
	msgInvalidSessionID = "ID сессии должен быть положительным числом"
	msgSessionNotFound  = "сессия не найдена"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgNotParticipant   = "сессию могут просматривать только клиент и специалист"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}
// Сессию видят только её участники: заказчик и провайдер.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil || sessionID <= 0 {
		h.logger.Warn("GET /bookings/{id} - Bad session id %q", mux.Vars(r)["bookingId"])
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	viewerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	session, err := h.service.GetByID(r.Context(), sessionID, viewerID)
	if err != nil {
		h.respondError(w, err, sessionID, viewerID)
		return
	}

	resp := newSessionResponse(session, viewerID)
	h.logger.Info("GET /bookings/{id} - Session %d (%s, %s) shown to %s %d",
		session.ID, session.Date, session.Status, resp.ViewerRole, viewerID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}

func (h *Handler) respondError(w http.ResponseWriter, err error, sessionID, viewerID int64) {
	switch {
	case errors.Is(err, bookings.ErrBookingNotFound):
		handlers.RespondNotFound(w, msgSessionNotFound)
	case errors.Is(err, bookings.ErrAccessDenied):
		h.logger.Warn("GET /bookings/{id} - User %d is not a participant of session %d", viewerID, sessionID)
		handlers.RespondForbidden(w, msgNotParticipant)
	case errors.Is(err, bookings.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidSessionID)
	default:
		h.logger.Error("GET /bookings/{id} - Session %d lookup failed: %v", sessionID, err)
		handlers.RespondInternalError(w)
	}
}
