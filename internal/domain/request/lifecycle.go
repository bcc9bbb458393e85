package request

import "fmt"

// Trigger is an action that moves a request between statuses.
type Trigger string

const (
	TriggerApprove  Trigger = "approve"
	TriggerReject   Trigger = "reject"
	TriggerCancel   Trigger = "cancel"
	TriggerWithdraw Trigger = "withdraw"
)

// Lifecycle is a fixed transition table. Statuses with no outgoing
// transitions are terminal.
type Lifecycle struct {
	name        string
	transitions map[Status]map[Trigger]Status
}

func newLifecycle(name string) *Lifecycle {
	return &Lifecycle{name: name, transitions: make(map[Status]map[Trigger]Status)}
}

// Permit allows trigger to move from into to.
func (l *Lifecycle) Permit(from Status, trigger Trigger, to Status) *Lifecycle {
	if l.transitions[from] == nil {
		l.transitions[from] = make(map[Trigger]Status)
	}
	l.transitions[from][trigger] = to
	return l
}

func (l *Lifecycle) CanFire(from Status, trigger Trigger) bool {
	_, ok := l.transitions[from][trigger]
	return ok
}

// Fire returns the status trigger leads to from the given one.
func (l *Lifecycle) Fire(from Status, trigger Trigger) (Status, error) {
	to, ok := l.transitions[from][trigger]
	if !ok {
		return from, fmt.Errorf("%s: %s from %s: %w", l.name, trigger, from, ErrInvalidTransition)
	}
	return to, nil
}

func (l *Lifecycle) IsTerminal(s Status) bool {
	return len(l.transitions[s]) == 0
}

// Permitted lists triggers allowed from s.
func (l *Lifecycle) Permitted(s Status) []Trigger {
	var out []Trigger
	for _, t := range []Trigger{TriggerApprove, TriggerReject, TriggerCancel, TriggerWithdraw} {
		if l.CanFire(s, t) {
			out = append(out, t)
		}
	}
	return out
}

// RequestLifecycle governs WFH requests. A decided request only ever moves
// forward to Withdrawn, through an approved withdrawal.
var RequestLifecycle = newLifecycle("wfh request").
	Permit(StatusPending, TriggerApprove, StatusApproved).
	Permit(StatusPending, TriggerReject, StatusRejected).
	Permit(StatusPending, TriggerCancel, StatusCancelled).
	Permit(StatusApproved, TriggerWithdraw, StatusWithdrawn)

// WithdrawalLifecycle governs withdrawal requests.
var WithdrawalLifecycle = newLifecycle("withdrawal").
	Permit(StatusPending, TriggerApprove, StatusApproved).
	Permit(StatusPending, TriggerReject, StatusRejected)

// DecisionTrigger maps a decision status onto its trigger.
func DecisionTrigger(s Status) (Trigger, bool) {
	switch s {
	case StatusApproved:
		return TriggerApprove, true
	case StatusRejected:
		return TriggerReject, true
	}
	return "", false
}
