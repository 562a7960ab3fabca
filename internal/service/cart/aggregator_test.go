package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/logger"
)

type fakeCatalog struct {
	services   []domain.ServiceOffering
	combos     []domain.ComboOffering
	err        error
	comboCalls int
}

func (f *fakeCatalog) GetActiveServices(_ context.Context) ([]domain.ServiceOffering, error) {
	return f.services, f.err
}

func (f *fakeCatalog) GetActiveCombos(_ context.Context) ([]domain.ComboOffering, error) {
	f.comboCalls++
	return f.combos, f.err
}

func testCatalog() *fakeCatalog {
	return &fakeCatalog{
		services: []domain.ServiceOffering{
			{ID: 1, Name: "Haircut", Price: 10, DurationMinutes: 30, IsActive: true},
			{ID: 2, Name: "Styling", Price: 15, DurationMinutes: 20, IsActive: true},
			{ID: 3, Name: "Coloring", Price: 40, DurationMinutes: 90, IsActive: false},
			{ID: 4, Name: "Manicure", Price: 12.5, DurationMinutes: 45, IsActive: true},
		},
		combos: []domain.ComboOffering{
			{ID: 10, Name: "Cut & Style", Price: 20, ServiceIDs: []int64{1, 2}, IsActive: true},
			{ID: 11, Name: "Full color", Price: 45, ServiceIDs: []int64{1, 3}, IsActive: true},
			{ID: 12, Name: "Retired", Price: 5, ServiceIDs: []int64{1}, IsActive: true, IsDeleted: true},
		},
	}
}

func TestAggregator_Combo(t *testing.T) {
	agg := NewAggregator(testCatalog(), logger.NewNop())

	summary, err := agg.Aggregate(context.Background(), []domain.CartItem{
		{OfferingID: 10, Kind: domain.OfferingCombo},
	})

	require.NoError(t, err)
	require.Len(t, summary.Lines, 2)
	assert.Equal(t, 50, summary.TotalDurationMinutes)
	assert.InDelta(t, 20.0, summary.TotalPrice, 0.001)
	assert.InDelta(t, 8.0, summary.Lines[0].Price, 0.001)
	assert.InDelta(t, 12.0, summary.Lines[1].Price, 0.001)
	assert.Equal(t, 10.0, summary.Lines[0].ListPrice)
	require.NotNil(t, summary.Lines[0].ComboID)
	assert.Equal(t, int64(10), *summary.Lines[0].ComboID)
	assert.False(t, summary.HasRejected())
}

func TestAggregator_MixedCartSkipsUnavailable(t *testing.T) {
	agg := NewAggregator(testCatalog(), logger.NewNop())

	summary, err := agg.Aggregate(context.Background(), []domain.CartItem{
		{OfferingID: 4, Kind: domain.OfferingService},
		{OfferingID: 3, Kind: domain.OfferingService},
		{OfferingID: 99, Kind: domain.OfferingService},
		{OfferingID: 11, Kind: domain.OfferingCombo},
		{OfferingID: 12, Kind: domain.OfferingCombo},
		{OfferingID: 1, Kind: "voucher"},
	})

	require.NoError(t, err)
	require.Len(t, summary.Lines, 1)
	assert.Equal(t, 45, summary.TotalDurationMinutes)
	assert.InDelta(t, 12.5, summary.TotalPrice, 0.001)

	reasons := map[int64]string{}
	for _, r := range summary.Rejected {
		reasons[r.Item.OfferingID] = r.Reason
	}
	assert.Equal(t, domain.RejectInactive, reasons[3])
	assert.Equal(t, domain.RejectNotFound, reasons[99])
	assert.Equal(t, domain.RejectConstituentUnavailable, reasons[11])
	assert.Equal(t, domain.RejectInactive, reasons[12])
	assert.Equal(t, domain.RejectUnknownKind, reasons[1])
}

func TestAggregator_ServicesOnlySkipCombos(t *testing.T) {
	catalog := testCatalog()
	agg := NewAggregator(catalog, logger.NewNop())

	summary, err := agg.Aggregate(context.Background(), []domain.CartItem{
		{OfferingID: 1, Kind: domain.OfferingService},
		{OfferingID: 2, Kind: domain.OfferingService},
	})

	require.NoError(t, err)
	assert.InDelta(t, 25.0, summary.TotalPrice, 0.001)
	assert.Equal(t, 50, summary.TotalDurationMinutes)
	assert.Zero(t, catalog.comboCalls)
}

func TestAggregator_Errors(t *testing.T) {
	agg := NewAggregator(testCatalog(), logger.NewNop())

	_, err := agg.Aggregate(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, err = agg.Aggregate(context.Background(), []domain.CartItem{{OfferingID: 3, Kind: domain.OfferingService}})
	assert.ErrorIs(t, err, ErrOfferingUnavailable)

	failing := NewAggregator(&fakeCatalog{err: errors.New("catalog down")}, logger.NewNop())
	_, err = failing.Aggregate(context.Background(), []domain.CartItem{{OfferingID: 1, Kind: domain.OfferingService}})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestAllocate(t *testing.T) {
	tests := []struct {
		name    string
		total   float64
		weights []float64
		want    []float64
	}{
		{name: "proportional", total: 20, weights: []float64{10, 15}, want: []float64{8, 12}},
		{name: "remainder on last", total: 10, weights: []float64{1, 1, 1}, want: []float64{3.33, 3.33, 3.34}},
		{name: "free constituents", total: 9, weights: []float64{0, 0}, want: []float64{4.5, 4.5}},
		{name: "single", total: 7.99, weights: []float64{3}, want: []float64{7.99}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := allocate(tt.total, tt.weights)
			require.Len(t, got, len(tt.want))

			var sum float64
			for i := range got {
				assert.InDelta(t, tt.want[i], got[i], 0.0001)
				sum += got[i]
			}
			assert.InDelta(t, tt.total, sum, 0.0001)
		})
	}
}
