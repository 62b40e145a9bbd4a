package update_booking_status

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TherapyBooking/internal/api/middleware"
	updateStatus "github.com/m04kA/SMC-TherapyBooking/internal/usecase/update_booking_status"
	"github.com/m04kA/SMC-TherapyBooking/pkg/logger"
)

type useCaseFunc func(ctx context.Context, req *updateStatus.Request) (*updateStatus.Response, error)

func (f useCaseFunc) Execute(ctx context.Context, req *updateStatus.Request) (*updateStatus.Response, error) {
	return f(ctx, req)
}

func newRequest(bookingID string, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/"+bookingID+"/status", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"bookingId": bookingID})
	return req.WithContext(middleware.WithUserID(req.Context(), 10))
}

func TestHandle_Reschedule(t *testing.T) {
	var got *updateStatus.Request
	h := NewHandler(useCaseFunc(func(_ context.Context, req *updateStatus.Request) (*updateStatus.Response, error) {
		got = req
		return &updateStatus.Response{ID: req.BookingID, Status: req.Status}, nil
	}), logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest("5", `{"status":"reschedule_requested","newDate":"2025-01-07","newSlotLabel":"15:00"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, int64(10), got.ActorID)
	assert.Equal(t, int64(5), got.BookingID)
	require.NotNil(t, got.NewDate)
	assert.Equal(t, time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC), *got.NewDate)
	require.NotNil(t, got.NewSlotLabel)
	assert.Equal(t, "15:00", got.NewSlotLabel.String())
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		body     string
		err      error
		wantCode int
	}{
		{"bad id", "abc", `{"status":"approved"}`, nil, http.StatusBadRequest},
		{"bad date", "5", `{"status":"reschedule_requested","newDate":"tomorrow","newSlotLabel":"15:00"}`, nil, http.StatusBadRequest},
		{"invalid input", "5", `{"status":"cancelled"}`, updateStatus.ErrInvalidInput, http.StatusBadRequest},
		{"not found", "5", `{"status":"approved"}`, updateStatus.ErrBookingNotFound, http.StatusNotFound},
		{"role mismatch", "5", `{"status":"approved"}`, updateStatus.ErrRoleMismatch, http.StatusForbidden},
		{"invalid transition", "5", `{"status":"approved"}`, updateStatus.ErrInvalidTransition, http.StatusConflict},
		{"not offered", "5", `{"status":"approved"}`, updateStatus.ErrSlotNotOffered, http.StatusUnprocessableEntity},
		{"conflict", "5", `{"status":"approved"}`, updateStatus.ErrSlotConflict, http.StatusConflict},
		{"busy", "5", `{"status":"approved"}`, updateStatus.ErrBusy, http.StatusServiceUnavailable},
		{"internal", "5", `{"status":"approved"}`, updateStatus.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(useCaseFunc(func(context.Context, *updateStatus.Request) (*updateStatus.Response, error) {
				return nil, tt.err
			}), logger.NewNop())

			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest(tt.id, tt.body))
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
