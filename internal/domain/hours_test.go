package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusinessHours_Window(t *testing.T) {
	loc := time.FixedZone("salon", 3*60*60)
	h := &BusinessHours{OpenTime: "09:00", CloseTime: "20:00"}

	// 22:30 UTC on the 9th is already the 10th in the salon's zone
	date := time.Date(2025, 3, 9, 22, 30, 0, 0, time.UTC)

	openAt, closeAt, err := h.Window(date, loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 9, 0, 0, 0, loc), openAt)
	assert.Equal(t, time.Date(2025, 3, 10, 20, 0, 0, 0, loc), closeAt)
}

func TestBusinessHours_IsBeyondHorizon(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	limited := &BusinessHours{AdvanceBookingDays: 7}
	assert.False(t, limited.IsBeyondHorizon(now.AddDate(0, 0, 7), now, time.UTC))
	assert.True(t, limited.IsBeyondHorizon(now.AddDate(0, 0, 8), now, time.UTC))

	unlimited := &BusinessHours{}
	assert.False(t, unlimited.IsBeyondHorizon(now.AddDate(1, 0, 0), now, time.UTC))
}
