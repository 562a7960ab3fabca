package domain

// TransitionPolicy configures the optional edges of the appointment state machine
type TransitionPolicy struct {
	// RequireConfirmBeforeComplete forbids pending -> completed.
	// When false the shortcut is still only allowed for appointments without a deposit.
	RequireConfirmBeforeComplete bool
}

// transitions is the fixed part of the lifecycle graph
var transitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether a may move to status to under the policy
func (p TransitionPolicy) CanTransition(a *Appointment, to AppointmentStatus) bool {
	if a == nil || a.IsDeleted() {
		return false
	}

	for _, allowed := range transitions[a.Status] {
		if allowed == to {
			return true
		}
	}

	return a.Status == StatusPending &&
		to == StatusCompleted &&
		!p.RequireConfirmBeforeComplete &&
		a.DepositAmount() == 0
}
