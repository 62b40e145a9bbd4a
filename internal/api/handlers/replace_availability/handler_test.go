package replace_availability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TherapyBooking/internal/api/middleware"
	"github.com/m04kA/SMC-TherapyBooking/internal/service/availability"
	"github.com/m04kA/SMC-TherapyBooking/internal/service/availability/models"
	"github.com/m04kA/SMC-TherapyBooking/pkg/logger"
)

type serviceFunc func(ctx context.Context, req *models.ReplaceTemplateRequest) (*models.AvailabilityResponse, error)

func (f serviceFunc) ReplaceTemplate(ctx context.Context, req *models.ReplaceTemplateRequest) (*models.AvailabilityResponse, error) {
	return f(ctx, req)
}

const validBody = `{"weeklyTemplate":[{"day":1,"slots":["09:00","10:00"]}]}`

func newRequest(providerID string, userID int64, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPut, "/api/v1/providers/"+providerID+"/availability", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"providerId": providerID})
	if userID != 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	return req
}

func TestHandle_ReplacesTemplate(t *testing.T) {
	var got *models.ReplaceTemplateRequest
	h := NewHandler(serviceFunc(func(_ context.Context, req *models.ReplaceTemplateRequest) (*models.AvailabilityResponse, error) {
		got = req
		return &models.AvailabilityResponse{
			ProviderID:        req.ProviderID,
			AcceptingBookings: true,
			WeeklyTemplate:    req.WeeklyTemplate,
		}, nil
	}), logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest("10", 10, validBody))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, int64(10), got.ActorID)
	assert.Equal(t, int64(10), got.ProviderID)
	require.Len(t, got.WeeklyTemplate, 1)
	assert.Equal(t, []string{"09:00", "10:00"}, got.WeeklyTemplate[0].Slots)
	assert.Contains(t, rec.Body.String(), `"acceptingBookings":true`)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		userID   int64
		body     string
		err      error
		wantCode int
	}{
		{"bad provider id", "abc", 10, validBody, nil, http.StatusBadRequest},
		{"no user", "10", 0, validBody, nil, http.StatusUnauthorized},
		{"malformed body", "10", 10, `{"weeklyTemplate":`, nil, http.StatusBadRequest},
		{"unknown field", "10", 10, `{"template":[]}`, nil, http.StatusBadRequest},
		{"invalid template", "10", 10, validBody, availability.ErrInvalidInput, http.StatusBadRequest},
		{"provider not found", "10", 10, validBody, availability.ErrProviderNotFound, http.StatusNotFound},
		{"someone else's schedule", "10", 11, validBody, availability.ErrRoleMismatch, http.StatusForbidden},
		{"internal", "10", 10, validBody, availability.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(serviceFunc(func(context.Context, *models.ReplaceTemplateRequest) (*models.AvailabilityResponse, error) {
				return nil, tt.err
			}), logger.NewNop())

			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest(tt.id, tt.userID, tt.body))
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
