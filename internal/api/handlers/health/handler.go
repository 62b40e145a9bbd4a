package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-TherapyBooking/internal/api/handlers"
)

const pingTimeout = time.Second

// Pinger зависимость, доступность которой проверяется в readiness
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PingerFunc адаптер функции к Pinger
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) PingContext(ctx context.Context) error {
	return f(ctx)
}

type Handler struct {
	required map[string]Pinger
	optional map[string]Pinger
}

// NewHandler required - без них сервис не готов (postgres), optional - деградация (redis)
func NewHandler(required, optional map[string]Pinger) *Handler {
	return &Handler{required: required, optional: optional}
}

type LivenessResponse struct {
	Status string `json:"status"`
}

type ReadinessResponse struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies"`
}

// Liveness GET /health/live
func (h *Handler) Liveness(w http.ResponseWriter, _ *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, LivenessResponse{Status: "ok"})
}

// Readiness GET /health/ready
func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string, len(h.required)+len(h.optional))
	status := "ok"

	for name, p := range h.required {
		if !ping(r.Context(), p) {
			deps[name] = "down"
			status = "error"
			continue
		}
		deps[name] = "ok"
	}

	for name, p := range h.optional {
		if !ping(r.Context(), p) {
			deps[name] = "down"
			if status == "ok" {
				status = "degraded"
			}
			continue
		}
		deps[name] = "ok"
	}

	code := http.StatusOK
	if status == "error" {
		code = http.StatusServiceUnavailable
	}
	handlers.RespondJSON(w, code, ReadinessResponse{Status: status, Dependencies: deps})
}

func ping(ctx context.Context, p Pinger) bool {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return p.PingContext(ctx) == nil
}
