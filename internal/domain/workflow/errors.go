package workflow

import (
	"fmt"

	"talent-pipeline/internal/domain/staffing"
)

// TransitionError rejects a target status that is not in the allowed set
// for the activity's current status and owning application state.
type TransitionError struct {
	Current           staffing.ActivityStatus
	Target            staffing.ActivityStatus
	ApplicationStatus staffing.ApplicationStatus
	Reason            string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s (application %s)", e.Reason, e.Current, e.Target, e.ApplicationStatus)
}

// SequenceError rejects a transition or activity creation that violates
// step ordering. Rule names the specific unmet requirement.
type SequenceError struct {
	Rule string
}

func (e *SequenceError) Error() string {
	return "sequence violation: " + e.Rule
}

// ScheduleError rejects a scheduled date outside the bounds set by the
// neighbouring steps' dates.
type ScheduleError struct {
	StepOrder int
	Rule      string
}

func (e *ScheduleError) Error() string {
	return fmt.Sprintf("invalid scheduled date for step %d: %s", e.StepOrder, e.Rule)
}
