package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 3, 10, hour, minute, 0, 0, time.UTC)
}

func TestInterval_Overlaps(t *testing.T) {
	base := Interval{Start: at(10, 0), End: at(11, 0)}

	tests := []struct {
		name  string
		other Interval
		want  bool
	}{
		{name: "same range", other: base, want: true},
		{name: "inside", other: Interval{Start: at(10, 15), End: at(10, 45)}, want: true},
		{name: "overlaps start", other: Interval{Start: at(9, 30), End: at(10, 30)}, want: true},
		{name: "overlaps end", other: Interval{Start: at(10, 59), End: at(12, 0)}, want: true},
		{name: "ends at start", other: Interval{Start: at(9, 0), End: at(10, 0)}, want: false},
		{name: "starts at end", other: Interval{Start: at(11, 0), End: at(12, 0)}, want: false},
		{name: "far away", other: Interval{Start: at(14, 0), End: at(15, 0)}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

func TestNewInterval(t *testing.T) {
	iv := NewInterval(at(19, 0), 60)
	assert.Equal(t, at(20, 0), iv.End)
	assert.Equal(t, 60, iv.Minutes())
}

func TestSelectFreeStaff(t *testing.T) {
	iv := Interval{Start: at(10, 0), End: at(11, 0)}
	busy := map[int64][]Interval{
		1: {{Start: at(10, 30), End: at(11, 30)}},
		2: {{Start: at(9, 0), End: at(10, 0)}},
		3: {},
	}

	t.Run("lowest free id wins", func(t *testing.T) {
		id, ok := SelectFreeStaff([]int64{3, 2, 1}, busy, iv)
		assert.True(t, ok)
		assert.Equal(t, int64(2), id)
	})

	t.Run("deterministic", func(t *testing.T) {
		first, _ := SelectFreeStaff([]int64{3, 1, 2}, busy, iv)
		second, _ := SelectFreeStaff([]int64{2, 3, 1}, busy, iv)
		assert.Equal(t, first, second)
	})

	t.Run("nobody free", func(t *testing.T) {
		_, ok := SelectFreeStaff([]int64{1}, busy, iv)
		assert.False(t, ok)
	})

	t.Run("no candidates", func(t *testing.T) {
		_, ok := SelectFreeStaff(nil, busy, iv)
		assert.False(t, ok)
	})

	t.Run("candidates are not reordered", func(t *testing.T) {
		candidates := []int64{3, 2, 1}
		SelectFreeStaff(candidates, busy, iv)
		assert.Equal(t, []int64{3, 2, 1}, candidates)
	})
}
