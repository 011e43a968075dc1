package domain

// Transition names a booking lifecycle operation
type Transition string

const (
	TransitionConfirm      Transition = "confirm"
	TransitionCancel       Transition = "cancel"
	TransitionCancelUnpaid Transition = "cancel-unpaid"
	TransitionComplete     Transition = "complete"
)

// transitionRules maps each operation to its allowed source statuses and target status
var transitionRules = map[Transition]struct {
	from []BookingStatus
	to   BookingStatus
}{
	TransitionConfirm:      {from: []BookingStatus{StatusPending}, to: StatusConfirmed},
	TransitionCancel:       {from: []BookingStatus{StatusPending, StatusConfirmed}, to: StatusCancelled},
	TransitionCancelUnpaid: {from: []BookingStatus{StatusPending}, to: StatusCancelled},
	TransitionComplete:     {from: []BookingStatus{StatusConfirmed}, to: StatusCompleted},
}

// Valid returns true for a known transition
func (t Transition) Valid() bool {
	_, ok := transitionRules[t]
	return ok
}

// AllowedFrom returns the statuses from which t may be applied
func (t Transition) AllowedFrom() []BookingStatus {
	rule, ok := transitionRules[t]
	if !ok {
		return nil
	}
	out := make([]BookingStatus, len(rule.from))
	copy(out, rule.from)
	return out
}

// Target returns the status t moves a booking into
func (t Transition) Target() BookingStatus {
	return transitionRules[t].to
}

// CanApply returns true if t may be applied to a booking in status s
func (t Transition) CanApply(s BookingStatus) bool {
	for _, from := range transitionRules[t].from {
		if from == s {
			return true
		}
	}
	return false
}
