package create_booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TherapyBooking/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-TherapyBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-TherapyBooking/pkg/logger"
)

type useCaseFunc func(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)

func (f useCaseFunc) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	return f(ctx, req)
}

func newRequest(userID int64, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if userID > 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	return req
}

const validBody = `{"providerId":10,"date":"2025-01-06","slotLabel":"9:00","mode":"video","reason":"stress"}`

func TestHandle_Created(t *testing.T) {
	var got *createBooking.Request
	h := NewHandler(useCaseFunc(func(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
		got = req
		return &createBooking.Response{
			ID:              1,
			RequesterID:     req.RequesterID,
			ProviderID:      req.ProviderID,
			Start:           time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC),
			End:             time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC),
			CalendarDate:    req.Date,
			SlotLabel:       req.SlotLabel,
			DurationMinutes: 60,
			Mode:            req.Mode,
			Status:          "pending",
		}, nil
	}), logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(20, validBody))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, int64(20), got.RequesterID)
	assert.Equal(t, "09:00", got.SlotLabel.String())

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2025-01-06T09:00", resp.Start)
	assert.Equal(t, "2025-01-06T10:00", resp.End)
	assert.Equal(t, "2025-01-06", resp.Date)
	assert.Equal(t, "pending", resp.Status)
}

func TestHandle_RequestErrors(t *testing.T) {
	h := NewHandler(useCaseFunc(func(context.Context, *createBooking.Request) (*createBooking.Response, error) {
		t.Fatal("use case must not be called")
		return nil, nil
	}), logger.NewNop())

	tests := []struct {
		name     string
		userID   int64
		body     string
		wantCode int
	}{
		{"no user", 0, validBody, http.StatusUnauthorized},
		{"broken json", 20, `{"providerId":`, http.StatusBadRequest},
		{"bad date", 20, `{"providerId":10,"date":"06.01.2025","slotLabel":"09:00","mode":"video"}`, http.StatusBadRequest},
		{"bad slot", 20, `{"providerId":10,"date":"2025-01-06","slotLabel":"nine","mode":"video"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest(tt.userID, tt.body))
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err      error
		wantCode int
	}{
		{createBooking.ErrInvalidInput, http.StatusBadRequest},
		{createBooking.ErrProviderNotFound, http.StatusNotFound},
		{createBooking.ErrNotAvailable, http.StatusConflict},
		{createBooking.ErrSlotNotOffered, http.StatusUnprocessableEntity},
		{createBooking.ErrSlotConflict, http.StatusConflict},
		{fmt.Errorf("%w: lock timeout", createBooking.ErrBusy), http.StatusServiceUnavailable},
		{fmt.Errorf("%w: db", createBooking.ErrInternal), http.StatusInternalServerError},
		{errors.New("unexpected"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			h := NewHandler(useCaseFunc(func(context.Context, *createBooking.Request) (*createBooking.Response, error) {
				return nil, tt.err
			}), logger.NewNop())

			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest(20, validBody))
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
