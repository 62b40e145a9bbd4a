package create_booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TherapyBooking/internal/domain"
	"github.com/m04kA/SMC-TherapyBooking/internal/infra/lock"
	"github.com/m04kA/SMC-TherapyBooking/internal/integrations/notifier"
	"github.com/m04kA/SMC-TherapyBooking/internal/scheduling"
	"github.com/m04kA/SMC-TherapyBooking/internal/testutil"
	"github.com/m04kA/SMC-TherapyBooking/pkg/logger"
	"github.com/m04kA/SMC-TherapyBooking/pkg/types"
)

const (
	providerID  int64 = 10
	requesterID int64 = 20
)

// 2025-01-06 - понедельник
var monday = time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

type env struct {
	ledger    *testutil.Ledger
	providers *testutil.Providers
	notifier  *testutil.Notifier
	txManager *testutil.TxManager
	uc        *UseCase
}

func newEnv(t *testing.T, locker Locker) *env {
	t.Helper()

	e := &env{
		ledger: testutil.NewLedger(),
		providers: testutil.NewProviders(&domain.Provider{
			ID:                providerID,
			Role:              domain.RoleProvider,
			AcceptingBookings: true,
			WeeklyTemplate: domain.WeeklyTemplate{
				{Weekday: 1, Slots: []types.TimeString{"09:00", "09:30", "10:00", "11:00"}},
			},
		}),
		notifier:  &testutil.Notifier{},
		txManager: &testutil.TxManager{},
	}
	if locker == nil {
		locker = lock.NewLocal(0)
	}

	e.uc = NewUseCase(e.ledger, e.providers, scheduling.NewDetector(e.ledger), locker, e.txManager, e.notifier, nil, logger.NewNop())
	e.uc.timeProvider = testutil.FixedClock{At: monday.Add(-24 * time.Hour)}
	return e
}

func request(label string) *Request {
	return &Request{
		RequesterID: requesterID,
		ProviderID:  providerID,
		Date:        monday,
		SlotLabel:   types.TimeString(label),
		Mode:        string(domain.ModeVideo),
	}
}

func TestExecute_Success(t *testing.T) {
	e := newEnv(t, nil)
	reason := "anxiety"
	req := request("9:00")
	req.Reason = &reason

	resp, err := e.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.NotZero(t, resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, types.TimeString("09:00"), resp.SlotLabel)
	assert.Equal(t, domain.DefaultDurationMinutes, resp.DurationMinutes)
	assert.Equal(t, time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC), resp.Start)
	assert.Equal(t, time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC), resp.End)
	assert.Equal(t, &reason, resp.Reason)
	assert.Equal(t, 1, e.txManager.Calls)

	events := e.notifier.Events()
	require.Len(t, events, 1)
	assert.Equal(t, notifier.EventBookingCreated, events[0].Type)
	assert.Equal(t, resp.ID, events[0].BookingID)
}

func TestExecute_OverlapWithLongerBooking(t *testing.T) {
	e := newEnv(t, nil)

	_, err := e.uc.Execute(context.Background(), request("09:00"))
	require.NoError(t, err)

	// 09:30 попадает внутрь [09:00, 10:00)
	_, err = e.uc.Execute(context.Background(), request("09:30"))
	assert.ErrorIs(t, err, ErrSlotConflict)

	// 10:00 только касается границы
	_, err = e.uc.Execute(context.Background(), request("10:00"))
	assert.NoError(t, err)

	assert.Len(t, e.ledger.All(), 2)
	assert.Len(t, e.notifier.Events(), 2)
}

func TestExecute_RejectedBookingVacatesSlot(t *testing.T) {
	e := newEnv(t, nil)

	interval, err := domain.NewSlotInterval(monday, "09:00", 60)
	require.NoError(t, err)
	e.ledger.Put(&domain.Booking{
		RequesterID: 99, ProviderID: providerID,
		Start: interval.Start, End: interval.End, CalendarDate: monday, SlotLabel: "09:00",
		DurationMinutes: 60, Mode: domain.ModeChat, Status: domain.StatusRejected,
	})

	_, err = e.uc.Execute(context.Background(), request("09:00"))
	assert.NoError(t, err)
}

func TestExecute_CompletedBookingStillOccupies(t *testing.T) {
	e := newEnv(t, nil)

	interval, err := domain.NewSlotInterval(monday, "09:00", 60)
	require.NoError(t, err)
	e.ledger.Put(&domain.Booking{
		RequesterID: 99, ProviderID: providerID,
		Start: interval.Start, End: interval.End, CalendarDate: monday, SlotLabel: "09:00",
		DurationMinutes: 60, Mode: domain.ModeChat, Status: domain.StatusCompleted,
	})

	_, err = e.uc.Execute(context.Background(), request("09:00"))
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_CheckOrder(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(e *env, req *Request)
		wantErr error
	}{
		{
			name: "unknown provider",
			prepare: func(_ *env, req *Request) {
				req.ProviderID = 777
			},
			wantErr: ErrProviderNotFound,
		},
		{
			name: "party is not a provider",
			prepare: func(e *env, _ *Request) {
				e.providers.Set(&domain.Provider{ID: providerID, Role: domain.RoleRequester, AcceptingBookings: true})
			},
			wantErr: ErrProviderNotFound,
		},
		{
			name: "not accepting wins over missing slot",
			prepare: func(e *env, req *Request) {
				e.providers.Set(&domain.Provider{ID: providerID, Role: domain.RoleProvider})
				req.SlotLabel = "23:00"
			},
			wantErr: ErrNotAvailable,
		},
		{
			name: "slot not in template",
			prepare: func(_ *env, req *Request) {
				req.SlotLabel = "12:00"
			},
			wantErr: ErrSlotNotOffered,
		},
		{
			name: "weekday without slots",
			prepare: func(_ *env, req *Request) {
				req.Date = monday.AddDate(0, 0, 1)
			},
			wantErr: ErrSlotNotOffered,
		},
		{
			name: "directory failure",
			prepare: func(e *env, _ *Request) {
				e.providers.Err = errors.New("connection refused")
			},
			wantErr: ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t, nil)
			req := request("09:00")
			tt.prepare(e, req)

			resp, err := e.uc.Execute(context.Background(), req)
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, e.ledger.All())
			assert.Zero(t, e.ledger.OccupyingCalls)
			assert.Empty(t, e.notifier.Events())
		})
	}
}

func TestExecute_Validation(t *testing.T) {
	long := string(make([]byte, domain.MaxReasonLength+1))

	tests := []struct {
		name   string
		modify func(req *Request)
	}{
		{"zero requester", func(req *Request) { req.RequesterID = 0 }},
		{"negative provider", func(req *Request) { req.ProviderID = -1 }},
		{"self booking", func(req *Request) { req.RequesterID = providerID }},
		{"missing date", func(req *Request) { req.Date = time.Time{} }},
		{"missing label", func(req *Request) { req.SlotLabel = "" }},
		{"malformed label", func(req *Request) { req.SlotLabel = "25:99" }},
		{"unknown mode", func(req *Request) { req.Mode = "phone" }},
		{"too short", func(req *Request) { req.DurationMinutes = 5 }},
		{"too long", func(req *Request) { req.DurationMinutes = 600 }},
		{"long reason", func(req *Request) { req.Reason = &long }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t, nil)
			req := request("09:00")
			tt.modify(req)

			_, err := e.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_CustomDurationBlocksFollowingSlots(t *testing.T) {
	e := newEnv(t, nil)
	req := request("09:00")
	req.DurationMinutes = 90

	resp, err := e.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 6, 10, 30, 0, 0, time.UTC), resp.End)

	_, err = e.uc.Execute(context.Background(), request("10:00"))
	assert.ErrorIs(t, err, ErrSlotConflict)

	_, err = e.uc.Execute(context.Background(), request("11:00"))
	assert.NoError(t, err)
}

func TestExecute_LedgerFailure(t *testing.T) {
	e := newEnv(t, nil)
	e.ledger.FailWith = errors.New("db is down")

	_, err := e.uc.Execute(context.Background(), request("09:00"))
	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, e.notifier.Events())
}

func TestExecute_LockNotAcquired(t *testing.T) {
	e := newEnv(t, testutil.BusyLocker{Err: lock.ErrLockNotAcquired})

	_, err := e.uc.Execute(context.Background(), request("09:00"))
	assert.ErrorIs(t, err, ErrBusy)
	assert.Empty(t, e.ledger.All())
}

func TestExecute_ConcurrentRequestsSameSlot(t *testing.T) {
	e := newEnv(t, nil)

	const workers = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(requester int64) {
			defer wg.Done()
			req := request("09:00")
			req.RequesterID = requester

			_, err := e.uc.Execute(context.Background(), req)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrSlotConflict):
				conflicts++
			}
		}(int64(100 + i))
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, conflicts)
	assert.Len(t, e.ledger.All(), 1)
}
