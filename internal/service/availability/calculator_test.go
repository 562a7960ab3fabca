package availability

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/logger"
	"github.com/m04kA/SMC-SalonBookingService/pkg/ptr"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeHours struct {
	hours domain.BusinessHours
	err   error
}

func (f *fakeHours) GetHours(_ context.Context, _ time.Time) (*domain.BusinessHours, error) {
	if f.err != nil {
		return nil, f.err
	}
	h := f.hours
	return &h, nil
}

type fakeAppointments struct {
	items []*domain.Appointment
	calls int
}

func (f *fakeAppointments) ListBusy(_ context.Context, staffIDs []int64, from, to time.Time) ([]*domain.Appointment, error) {
	f.calls++
	window := domain.Interval{Start: from, End: to}
	var out []*domain.Appointment
	for _, a := range f.items {
		if a.StaffID == nil || !slices.Contains(staffIDs, *a.StaffID) {
			continue
		}
		if a.Interval().Overlaps(window) {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeStaff struct {
	staff []domain.Staff
	err   error
}

func (f *fakeStaff) GetActiveStaff(_ context.Context) ([]domain.Staff, error) {
	return f.staff, f.err
}

var (
	monday  = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	tuesday = time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)
)

func at(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.UTC)
}

func salonHours() domain.BusinessHours {
	return domain.BusinessHours{
		IsOpen:                  true,
		OpenTime:                "09:00",
		CloseTime:               "20:00",
		SlotGranularityMinutes:  30,
		MinBookingNoticeMinutes: 60,
	}
}

func appointmentAt(staffID int64, start time.Time, minutes int, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		StaffID:   ptr.Ptr(staffID),
		StartTime: start,
		EndTime:   start.Add(time.Duration(minutes) * time.Minute),
		Status:    status,
	}
}

func newTestCalculator(hours domain.BusinessHours, appts []*domain.Appointment, now time.Time) (*Calculator, *fakeAppointments) {
	repo := &fakeAppointments{items: appts}
	staff := &fakeStaff{staff: []domain.Staff{
		{ID: 1, Name: "Anna", IsActive: true},
		{ID: 2, Name: "Maria", IsActive: true},
	}}
	calc := NewCalculator(&fakeHours{hours: hours}, repo, staff, time.UTC, logger.NewNop(),
		WithTimeProvider(fixedClock{now: now}))
	return calc, repo
}

func collect(t *testing.T, calc *Calculator, q Query) []time.Time {
	t.Helper()
	seq, err := calc.GetAvailableSlots(context.Background(), q)
	require.NoError(t, err)
	return slices.Collect(seq)
}

func TestCalculator_FullDay(t *testing.T) {
	calc, _ := newTestCalculator(salonHours(), nil, at(monday, 8, 0))

	slots := collect(t, calc, Query{Date: tuesday, StaffID: ptr.Ptr(int64(1)), DurationMinutes: 60})

	require.Len(t, slots, 21)
	assert.Equal(t, at(tuesday, 9, 0), slots[0])
	assert.Equal(t, at(tuesday, 19, 0), slots[len(slots)-1])
}

func TestCalculator_StaffBusy(t *testing.T) {
	appts := []*domain.Appointment{
		appointmentAt(1, at(tuesday, 10, 0), 60, domain.StatusConfirmed),
	}
	calc, _ := newTestCalculator(salonHours(), appts, at(monday, 8, 0))

	slots := collect(t, calc, Query{Date: tuesday, StaffID: ptr.Ptr(int64(1)), DurationMinutes: 60})

	assert.Len(t, slots, 18)
	// Граница не считается пересечением
	assert.Contains(t, slots, at(tuesday, 9, 0))
	assert.Contains(t, slots, at(tuesday, 11, 0))
	assert.NotContains(t, slots, at(tuesday, 9, 30))
	assert.NotContains(t, slots, at(tuesday, 10, 0))
	assert.NotContains(t, slots, at(tuesday, 10, 30))
}

func TestCalculator_AnyStaff(t *testing.T) {
	appts := []*domain.Appointment{
		appointmentAt(1, at(tuesday, 10, 0), 60, domain.StatusPending),
		appointmentAt(2, at(tuesday, 9, 30), 90, domain.StatusConfirmed),
	}
	calc, _ := newTestCalculator(salonHours(), appts, at(monday, 8, 0))

	slots := collect(t, calc, Query{Date: tuesday, DurationMinutes: 60})

	// 10:00 занят у обоих мастеров, 09:00 свободен у первого
	assert.NotContains(t, slots, at(tuesday, 10, 0))
	assert.Contains(t, slots, at(tuesday, 9, 0))
	assert.Contains(t, slots, at(tuesday, 11, 0))
}

func TestCalculator_CancelledAndDeletedIgnored(t *testing.T) {
	deleted := appointmentAt(1, at(tuesday, 12, 0), 60, domain.StatusPending)
	deleted.DeletedAt = ptr.Ptr(at(monday, 7, 0))

	appts := []*domain.Appointment{
		appointmentAt(1, at(tuesday, 10, 0), 60, domain.StatusCancelled),
		deleted,
	}
	calc, _ := newTestCalculator(salonHours(), appts, at(monday, 8, 0))

	slots := collect(t, calc, Query{Date: tuesday, StaffID: ptr.Ptr(int64(1)), DurationMinutes: 60})

	assert.Len(t, slots, 21)
}

func TestCalculator_CancellationFreesInterval(t *testing.T) {
	booked := appointmentAt(1, at(tuesday, 10, 0), 60, domain.StatusConfirmed)
	calc, repo := newTestCalculator(salonHours(), []*domain.Appointment{booked}, at(monday, 8, 0))
	q := Query{Date: tuesday, StaffID: ptr.Ptr(int64(1)), DurationMinutes: 60}

	before := collect(t, calc, q)
	assert.NotContains(t, before, at(tuesday, 10, 0))

	booked.Status = domain.StatusCancelled

	after := collect(t, calc, q)
	assert.Contains(t, after, at(tuesday, 10, 0))
	assert.Len(t, after, 21)
	assert.Equal(t, 2, repo.calls)
}

func TestCalculator_MinNotice(t *testing.T) {
	calc, _ := newTestCalculator(salonHours(), nil, at(tuesday, 10, 10))

	slots := collect(t, calc, Query{Date: tuesday, StaffID: ptr.Ptr(int64(1)), DurationMinutes: 30})

	require.NotEmpty(t, slots)
	assert.Equal(t, at(tuesday, 11, 30), slots[0])
}

func TestCalculator_PastDate(t *testing.T) {
	calc, repo := newTestCalculator(salonHours(), nil, at(tuesday, 8, 0))

	slots := collect(t, calc, Query{Date: monday, DurationMinutes: 30})

	assert.Empty(t, slots)
	assert.Zero(t, repo.calls)
}

func TestCalculator_ClosedDay(t *testing.T) {
	hours := salonHours()
	hours.IsOpen = false
	calc, _ := newTestCalculator(hours, nil, at(monday, 8, 0))

	slots := collect(t, calc, Query{Date: tuesday, DurationMinutes: 30})

	assert.Empty(t, slots)
}

func TestCalculator_DurationLongerThanDay(t *testing.T) {
	calc, _ := newTestCalculator(salonHours(), nil, at(monday, 8, 0))

	slots := collect(t, calc, Query{Date: tuesday, DurationMinutes: 11*60 + 30})

	assert.Empty(t, slots)
}

func TestCalculator_BeyondHorizon(t *testing.T) {
	hours := salonHours()
	hours.AdvanceBookingDays = 7
	calc, _ := newTestCalculator(hours, nil, at(monday, 8, 0))

	slots := collect(t, calc, Query{Date: monday.AddDate(0, 0, 10), DurationMinutes: 30})

	assert.Empty(t, slots)
}

func TestCalculator_UnknownStaff(t *testing.T) {
	calc, _ := newTestCalculator(salonHours(), nil, at(monday, 8, 0))

	_, err := calc.GetAvailableSlots(context.Background(), Query{Date: tuesday, StaffID: ptr.Ptr(int64(42)), DurationMinutes: 30})

	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestCalculator_InvalidQuery(t *testing.T) {
	calc, _ := newTestCalculator(salonHours(), nil, at(monday, 8, 0))

	_, err := calc.GetAvailableSlots(context.Background(), Query{Date: tuesday, DurationMinutes: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = calc.GetAvailableSlots(context.Background(), Query{DurationMinutes: 30})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCalculator_StaffDirectoryFailure(t *testing.T) {
	calc := NewCalculator(&fakeHours{hours: salonHours()}, &fakeAppointments{},
		&fakeStaff{err: errors.New("timeout")}, time.UTC, logger.NewNop())

	_, err := calc.GetAvailableSlots(context.Background(), Query{Date: tuesday, DurationMinutes: 30})

	assert.ErrorIs(t, err, ErrInternal)
}

func TestCalculator_SequenceIsRestartable(t *testing.T) {
	appts := []*domain.Appointment{
		appointmentAt(1, at(tuesday, 14, 0), 45, domain.StatusConfirmed),
	}
	calc, _ := newTestCalculator(salonHours(), appts, at(monday, 8, 0))

	seq, err := calc.GetAvailableSlots(context.Background(), Query{Date: tuesday, StaffID: ptr.Ptr(int64(1)), DurationMinutes: 60})
	require.NoError(t, err)

	first := slices.Collect(seq)
	second := slices.Collect(seq)

	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}

func TestSchedule_Contains(t *testing.T) {
	calc, _ := newTestCalculator(salonHours(), nil, at(monday, 8, 0))

	schedule, err := calc.LoadSchedule(context.Background(), tuesday, []int64{1})
	require.NoError(t, err)

	assert.True(t, schedule.Contains(at(tuesday, 9, 30), 60))
	assert.False(t, schedule.Contains(at(tuesday, 9, 15), 60))
	assert.False(t, schedule.Contains(at(tuesday, 19, 30), 60))
}
