package get_available_slots

import (
	"context"
	"iter"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/availability"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/cart"
	"github.com/m04kA/SMC-SalonBookingService/pkg/logger"
)

type fakeCalculator struct {
	got   availability.Query
	slots []time.Time
	err   error
}

func (f *fakeCalculator) GetAvailableSlots(_ context.Context, q availability.Query) (iter.Seq[time.Time], error) {
	f.got = q
	if f.err != nil {
		return nil, f.err
	}
	return slices.Values(f.slots), nil
}

func (f *fakeCalculator) Location() *time.Location { return time.UTC }

type fakeCart struct {
	summary *domain.CartSummary
	err     error
}

func (f *fakeCart) Aggregate(_ context.Context, _ []domain.CartItem) (*domain.CartSummary, error) {
	return f.summary, f.err
}

var date = time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)

func TestExecute_DurationFromCart(t *testing.T) {
	calc := &fakeCalculator{slots: []time.Time{date.Add(9 * time.Hour), date.Add(10 * time.Hour)}}
	uc := NewUseCase(calc, &fakeCart{summary: &domain.CartSummary{TotalDurationMinutes: 50}}, logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{
		Date:  date,
		Items: []domain.CartItem{{OfferingID: 10, Kind: domain.OfferingCombo}},
	})

	require.NoError(t, err)
	assert.Equal(t, 50, calc.got.DurationMinutes)
	assert.Equal(t, 50, resp.DurationMinutes)
	assert.Len(t, resp.Slots, 2)
}

func TestExecute_ExplicitDurationSkipsCart(t *testing.T) {
	calc := &fakeCalculator{}
	uc := NewUseCase(calc, &fakeCart{err: cart.ErrInternal}, logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{Date: date, DurationMinutes: 45})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	assert.Equal(t, 45, calc.got.DurationMinutes)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		calc    *fakeCalculator
		cart    *fakeCart
		wantErr error
	}{
		{
			name:    "no duration and no items",
			req:     &Request{Date: date},
			calc:    &fakeCalculator{},
			cart:    &fakeCart{},
			wantErr: ErrInvalidInput,
		},
		{
			name: "rejected cart item",
			req:  &Request{Date: date, Items: []domain.CartItem{{OfferingID: 1, Kind: domain.OfferingService}}},
			calc: &fakeCalculator{},
			cart: &fakeCart{summary: &domain.CartSummary{
				TotalDurationMinutes: 30,
				Rejected:             []domain.RejectedItem{{Reason: domain.RejectInactive}},
			}},
			wantErr: ErrOfferingUnavailable,
		},
		{
			name:    "unknown staff",
			req:     &Request{Date: date, DurationMinutes: 30},
			calc:    &fakeCalculator{err: availability.ErrStaffNotFound},
			cart:    &fakeCart{},
			wantErr: ErrStaffNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewUseCase(tt.calc, tt.cart, logger.NewNop())
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
