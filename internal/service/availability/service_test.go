package availability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TherapyBooking/internal/domain"
	"github.com/m04kA/SMC-TherapyBooking/internal/service/availability/models"
	"github.com/m04kA/SMC-TherapyBooking/internal/service/providers"
	"github.com/m04kA/SMC-TherapyBooking/pkg/logger"
	"github.com/m04kA/SMC-TherapyBooking/pkg/types"
)

type fakeProviders struct {
	items map[int64]*domain.Provider
}

func (f *fakeProviders) FindProvider(_ context.Context, providerID int64) (*domain.Provider, error) {
	p, ok := f.items[providerID]
	if !ok {
		return nil, providers.ErrProviderNotFound
	}
	return p, nil
}

type fakeStore struct {
	items map[int64]*domain.Availability
	err   error
}

func (f *fakeStore) Set(_ context.Context, providerID int64, template domain.WeeklyTemplate) (*domain.Availability, error) {
	if f.err != nil {
		return nil, f.err
	}
	a := &domain.Availability{ProviderID: providerID, AcceptingBookings: true, Template: template}
	f.items[providerID] = a
	return a, nil
}

func (f *fakeStore) SetAcceptingBookings(_ context.Context, providerID int64, accepting bool) (*domain.Availability, error) {
	if f.err != nil {
		return nil, f.err
	}
	a, ok := f.items[providerID]
	if !ok {
		a = &domain.Availability{ProviderID: providerID, Template: domain.WeeklyTemplate{}}
		f.items[providerID] = a
	}
	a.AcceptingBookings = accepting
	return a, nil
}

func newService(store *fakeStore) *Service {
	finder := &fakeProviders{items: map[int64]*domain.Provider{
		10: {ID: 10, Role: domain.RoleProvider},
		20: {ID: 20, Role: domain.RoleRequester},
	}}
	return NewService(finder, store, logger.NewNop())
}

func TestService_ReplaceTemplate(t *testing.T) {
	store := &fakeStore{items: map[int64]*domain.Availability{}}
	svc := newService(store)

	resp, err := svc.ReplaceTemplate(context.Background(), &models.ReplaceTemplateRequest{
		ActorID:    10,
		ProviderID: 10,
		WeeklyTemplate: []models.DayTemplate{
			{Day: 1, Slots: []string{"9:00", "10:00", "09:00"}},
		},
	})
	require.NoError(t, err)

	assert.True(t, resp.AcceptingBookings)
	assert.Equal(t, []models.DayTemplate{{Day: 1, Slots: []string{"09:00", "10:00"}}}, resp.WeeklyTemplate)
	assert.Equal(t, []types.TimeString{"09:00", "10:00"}, store.items[10].Template[0].Slots)
}

func TestService_ReplaceTemplate_Errors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		req     *models.ReplaceTemplateRequest
		wantErr error
	}{
		{"unknown provider", &models.ReplaceTemplateRequest{ActorID: 99, ProviderID: 99}, ErrProviderNotFound},
		{"not a provider", &models.ReplaceTemplateRequest{ActorID: 20, ProviderID: 20}, ErrRoleMismatch},
		{"foreign actor", &models.ReplaceTemplateRequest{ActorID: 20, ProviderID: 10}, ErrRoleMismatch},
		{"invalid weekday", &models.ReplaceTemplateRequest{
			ActorID: 10, ProviderID: 10,
			WeeklyTemplate: []models.DayTemplate{{Day: 9, Slots: []string{"09:00"}}},
		}, ErrInvalidInput},
		{"invalid label", &models.ReplaceTemplateRequest{
			ActorID: 10, ProviderID: 10,
			WeeklyTemplate: []models.DayTemplate{{Day: 1, Slots: []string{"nine"}}},
		}, ErrInvalidInput},
		{"zero ids", &models.ReplaceTemplateRequest{}, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{items: map[int64]*domain.Availability{}}
			_, err := newService(store).ReplaceTemplate(ctx, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, store.items)
		})
	}
}

func TestService_SetAcceptingBookings_KeepsTemplate(t *testing.T) {
	template := domain.WeeklyTemplate{{Weekday: 2, Slots: []types.TimeString{"14:00"}}}
	store := &fakeStore{items: map[int64]*domain.Availability{
		10: {ProviderID: 10, AcceptingBookings: true, Template: template},
	}}
	svc := newService(store)

	resp, err := svc.SetAcceptingBookings(context.Background(), &models.SetAcceptingRequest{
		ActorID: 10, ProviderID: 10, AcceptingBookings: false,
	})
	require.NoError(t, err)

	assert.False(t, resp.AcceptingBookings)
	assert.Equal(t, []models.DayTemplate{{Day: 2, Slots: []string{"14:00"}}}, resp.WeeklyTemplate)
}

func TestService_SetAcceptingBookings_RepositoryError(t *testing.T) {
	store := &fakeStore{items: map[int64]*domain.Availability{}, err: errors.New("db down")}

	_, err := newService(store).SetAcceptingBookings(context.Background(), &models.SetAcceptingRequest{
		ActorID: 10, ProviderID: 10, AcceptingBookings: true,
	})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_GetTemplate(t *testing.T) {
	svc := newService(&fakeStore{items: map[int64]*domain.Availability{}})

	resp, err := svc.GetTemplate(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.ProviderID)
	assert.Empty(t, resp.WeeklyTemplate)

	_, err = svc.GetTemplate(context.Background(), 20)
	assert.ErrorIs(t, err, ErrProviderNotFound)
}
