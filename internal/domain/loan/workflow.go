package loan

import (
	"fmt"
	"time"
)

// State is the persisted progress of one application through origination.
type State string

const (
	StateStarted            State = "started"
	StateCollateralCaptured State = "collateral_captured"
	StateProjectCaptured    State = "project_captured"
	StateApproved           State = "approved"
)

var stateRank = map[State]int{
	StateStarted:            0,
	StateCollateralCaptured: 1,
	StateProjectCaptured:    2,
	StateApproved:           3,
}

func (s State) Valid() bool {
	_, ok := stateRank[s]
	return ok
}

// AtLeast reports whether s has progressed to other or beyond.
func (s State) AtLeast(other State) bool { return stateRank[s] >= stateRank[other] }

// Advance moves the application to next. Capture steps can be repeated, so a
// target at or behind the current state keeps the current state. Skipping a
// step, or touching an application that is no longer pending, is rejected.
func (a *Application) Advance(next State, now time.Time) error {
	if a.Status != StatusPending {
		if a.Status == StatusApproved {
			return ErrAlreadyApproved
		}
		return fmt.Errorf("%w: application is %s", ErrInvalidTransition, a.Status)
	}
	if !next.Valid() {
		return fmt.Errorf("%w: unknown state %q", ErrInvalidTransition, next)
	}
	cur := a.WorkflowState
	if cur == "" {
		cur = StateStarted
	}
	if stateRank[next] > stateRank[cur]+1 {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, cur, next)
	}
	if next == StateApproved && cur != StateProjectCaptured {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, cur, next)
	}
	if stateRank[next] > stateRank[cur] {
		a.WorkflowState = next
		a.WorkflowUpdatedAt = now.UTC()
	}
	if next == StateApproved {
		a.Status = StatusApproved
	}
	return nil
}

// Reject closes a pending application.
func (a *Application) Reject(now time.Time) error {
	if a.Status != StatusPending {
		return fmt.Errorf("%w: application is %s", ErrInvalidTransition, a.Status)
	}
	a.Status = StatusRejected
	a.WorkflowUpdatedAt = now.UTC()
	return nil
}
