package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTransitionPolicy_CanTransition(t *testing.T) {
	strict := TransitionPolicy{RequireConfirmBeforeComplete: true}
	relaxed := TransitionPolicy{RequireConfirmBeforeComplete: false}

	noDeposit := &Invoice{TotalAmount: 50}
	withDeposit := &Invoice{TotalAmount: 50, DepositAmount: 10}

	tests := []struct {
		name    string
		policy  TransitionPolicy
		from    AppointmentStatus
		invoice *Invoice
		to      AppointmentStatus
		want    bool
	}{
		{name: "pending to confirmed", policy: strict, from: StatusPending, to: StatusConfirmed, want: true},
		{name: "pending to cancelled", policy: strict, from: StatusPending, to: StatusCancelled, want: true},
		{name: "confirmed to completed", policy: strict, from: StatusConfirmed, to: StatusCompleted, want: true},
		{name: "confirmed to cancelled", policy: strict, from: StatusConfirmed, to: StatusCancelled, want: true},
		{name: "pending to completed strict", policy: strict, from: StatusPending, invoice: noDeposit, to: StatusCompleted, want: false},
		{name: "pending to completed relaxed", policy: relaxed, from: StatusPending, invoice: noDeposit, to: StatusCompleted, want: true},
		{name: "pending to completed relaxed with deposit", policy: relaxed, from: StatusPending, invoice: withDeposit, to: StatusCompleted, want: false},
		{name: "completed to cancelled", policy: relaxed, from: StatusCompleted, to: StatusCancelled, want: false},
		{name: "cancelled to confirmed", policy: relaxed, from: StatusCancelled, to: StatusConfirmed, want: false},
		{name: "cancelled to pending", policy: relaxed, from: StatusCancelled, to: StatusPending, want: false},
		{name: "confirmed to pending", policy: relaxed, from: StatusConfirmed, to: StatusPending, want: false},
		{name: "confirmed to confirmed", policy: relaxed, from: StatusConfirmed, to: StatusConfirmed, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Appointment{Status: tt.from, Invoice: tt.invoice}
			assert.Equal(t, tt.want, tt.policy.CanTransition(a, tt.to))
		})
	}
}

func TestTransitionPolicy_DeletedAppointment(t *testing.T) {
	deletedAt := time.Now()
	a := &Appointment{Status: StatusPending, DeletedAt: &deletedAt}

	assert.False(t, TransitionPolicy{}.CanTransition(a, StatusConfirmed))
	assert.False(t, TransitionPolicy{}.CanTransition(nil, StatusConfirmed))
}

func TestAppointment_IsActive(t *testing.T) {
	assert.True(t, (&Appointment{Status: StatusPending}).IsActive())
	assert.True(t, (&Appointment{Status: StatusCompleted}).IsActive())
	assert.False(t, (&Appointment{Status: StatusCancelled}).IsActive())
}

func TestDepositFor(t *testing.T) {
	tests := []struct {
		total, percent, want float64
	}{
		{20, 20, 4},
		{33.33, 15, 5},
		{0, 20, 0},
		{99.99, 0, 0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, DepositFor(tt.total, tt.percent), 0.0001)
	}
}
