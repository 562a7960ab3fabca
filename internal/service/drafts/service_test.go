package drafts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	draftStore "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/draft"
	"github.com/m04kA/SMC-SalonBookingService/pkg/logger"
	"github.com/m04kA/SMC-SalonBookingService/pkg/ptr"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type memoryStore struct {
	drafts map[string]domain.BookingDraft
	err    error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{drafts: map[string]domain.BookingDraft{}}
}

func (m *memoryStore) Save(_ context.Context, d *domain.BookingDraft) error {
	if m.err != nil {
		return m.err
	}
	m.drafts[d.SessionKey] = *d
	return nil
}

func (m *memoryStore) Load(_ context.Context, key string) (*domain.BookingDraft, error) {
	if m.err != nil {
		return nil, m.err
	}
	d, ok := m.drafts[key]
	if !ok {
		return nil, draftStore.ErrDraftNotFound
	}
	return &d, nil
}

func (m *memoryStore) Delete(_ context.Context, key string) error {
	if m.err != nil {
		return m.err
	}
	delete(m.drafts, key)
	return nil
}

func (m *memoryStore) TTL() time.Duration { return time.Hour }

var now = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

func newTestService(store DraftStore) *Service {
	svc := NewService(store, logger.NewNop())
	svc.timeProvider = fixedClock{now: now}
	return svc
}

func TestService_SaveGeneratesKey(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)

	saved, err := svc.Save(context.Background(), &domain.BookingDraft{
		CustomerPhone: "+79001234567",
		Items:         []domain.CartItem{{OfferingID: 1, Kind: domain.OfferingService}},
	})

	require.NoError(t, err)
	_, err = uuid.Parse(saved.SessionKey)
	assert.NoError(t, err)
	assert.Equal(t, now, saved.UpdatedAt)
	assert.Contains(t, store.drafts, saved.SessionKey)
}

func TestService_SaveOverwritesAndLoads(t *testing.T) {
	svc := newTestService(newMemoryStore())
	ctx := context.Background()

	_, err := svc.Save(ctx, &domain.BookingDraft{
		SessionKey: "session-1",
		Items:      []domain.CartItem{{OfferingID: 1, Kind: domain.OfferingService}},
	})
	require.NoError(t, err)

	_, err = svc.Save(ctx, &domain.BookingDraft{
		SessionKey: "session-1",
		StaffID:    ptr.Ptr(int64(2)),
		Items:      []domain.CartItem{{OfferingID: 3, Kind: domain.OfferingCombo}},
	})
	require.NoError(t, err)

	loaded, err := svc.Load(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, []domain.CartItem{{OfferingID: 3, Kind: domain.OfferingCombo}}, loaded.Items)
	assert.Equal(t, int64(2), *loaded.StaffID)
}

func TestService_LoadAfterClear(t *testing.T) {
	svc := newTestService(newMemoryStore())
	ctx := context.Background()

	_, err := svc.Save(ctx, &domain.BookingDraft{SessionKey: "abc"})
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, "abc"))
	require.NoError(t, svc.Clear(ctx, "abc"))

	_, err = svc.Load(ctx, "abc")
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestService_SaveValidation(t *testing.T) {
	tooMany := make([]domain.CartItem, domain.MaxCartItems+1)
	for i := range tooMany {
		tooMany[i] = domain.CartItem{OfferingID: int64(i + 1), Kind: domain.OfferingService}
	}

	tests := []struct {
		name  string
		draft *domain.BookingDraft
	}{
		{"nil draft", nil},
		{"bad key", &domain.BookingDraft{SessionKey: "../etc"}},
		{"too many items", &domain.BookingDraft{Items: tooMany}},
		{"unknown kind", &domain.BookingDraft{Items: []domain.CartItem{{OfferingID: 1, Kind: "bundle"}}}},
		{"zero offering", &domain.BookingDraft{Items: []domain.CartItem{{Kind: domain.OfferingService}}}},
		{"bad staff", &domain.BookingDraft{StaffID: ptr.Ptr(int64(-1))}},
		{"long notes", &domain.BookingDraft{Notes: ptr.Ptr(strings.Repeat("n", domain.MaxNotesLength+1))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryStore()
			_, err := newTestService(store).Save(context.Background(), tt.draft)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, store.drafts)
		})
	}
}

func TestService_StoreFailure(t *testing.T) {
	store := newMemoryStore()
	store.err = fmt.Errorf("%w: connection refused", draftStore.ErrRedis)
	svc := newTestService(store)
	ctx := context.Background()

	_, err := svc.Save(ctx, &domain.BookingDraft{SessionKey: "abc"})
	assert.ErrorIs(t, err, ErrInternal)

	_, err = svc.Load(ctx, "abc")
	assert.ErrorIs(t, err, ErrInternal)
	assert.False(t, errors.Is(err, ErrDraftNotFound))

	assert.ErrorIs(t, svc.Clear(ctx, "abc"), ErrInternal)
}
