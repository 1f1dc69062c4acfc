package workflow

import (
	"fmt"
	"time"

	"talent-pipeline/internal/domain/staffing"

	"github.com/google/uuid"
)

// minStepGap is the minimum spacing between the scheduled dates of two
// consecutive steps.
const minStepGap = time.Minute

// State is everything the machine needs about one application: the ordered
// steps of its requisition's process template and the activities that exist
// so far, at most one per step.
type State struct {
	ApplicationStatus staffing.ApplicationStatus
	Steps             []staffing.ProcessStep
	Activities        map[uuid.UUID]staffing.Activity // keyed by ProcessStepID
}

// NewState copies the inputs into a State, indexing activities by step and
// ordering steps by StepOrder. Callers hand over repository reads verbatim.
func NewState(appStatus staffing.ApplicationStatus, steps []staffing.ProcessStep, activities []staffing.Activity) State {
	ordered := make([]staffing.ProcessStep, len(steps))
	copy(ordered, steps)
	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0 && ordered[j].StepOrder < ordered[j-1].StepOrder; j-- {
			ordered[j], ordered[j-1] = ordered[j-1], ordered[j]
		}
	}

	byStep := make(map[uuid.UUID]staffing.Activity, len(activities))
	for _, a := range activities {
		byStep[a.ProcessStepID] = a
	}

	return State{ApplicationStatus: appStatus, Steps: ordered, Activities: byStep}
}

func (s State) stepIndex(processStepID uuid.UUID) int {
	for i, st := range s.Steps {
		if st.ID == processStepID {
			return i
		}
	}
	return -1
}

func (s State) fullyInstantiated() bool {
	for _, st := range s.Steps {
		if _, ok := s.Activities[st.ID]; !ok {
			return false
		}
	}
	return true
}

// AllowedNext returns the legal target statuses for the activity at the
// given step. An empty slice means the activity is frozen: the application
// was withdrawn, not every step has an activity yet, or the activity is
// already terminal.
func (s State) AllowedNext(processStepID uuid.UUID) []staffing.ActivityStatus {
	if s.ApplicationStatus == staffing.ApplicationWithdrawn {
		return nil
	}
	if !s.fullyInstantiated() {
		return nil
	}

	idx := s.stepIndex(processStepID)
	if idx < 0 {
		return nil
	}
	act, ok := s.Activities[processStepID]
	if !ok {
		return nil
	}

	switch act.Status {
	case staffing.ActivityScheduled:
		out := make([]staffing.ActivityStatus, 0, 2)
		if s.predecessorPassed(idx) {
			out = append(out, staffing.ActivityCompleted)
		}
		// NoShow is a manually-set terminal outcome of a scheduled
		// interview, symmetric with Failed.
		out = append(out, staffing.ActivityNoShow)
		return out
	case staffing.ActivityCompleted:
		return []staffing.ActivityStatus{staffing.ActivityPassed, staffing.ActivityFailed}
	case staffing.ActivityPassed, staffing.ActivityFailed, staffing.ActivityNoShow:
		return nil
	}
	return nil
}

func (s State) predecessorPassed(idx int) bool {
	if idx == 0 {
		return true
	}
	prev, ok := s.Activities[s.Steps[idx-1].ID]
	return ok && prev.Status == staffing.ActivityPassed
}

// CanTransition validates one target status against the allowed set,
// returning a typed error naming the violated rule.
func (s State) CanTransition(processStepID uuid.UUID, target staffing.ActivityStatus) error {
	idx := s.stepIndex(processStepID)
	if idx < 0 {
		return &SequenceError{Rule: "process step does not belong to the application's template"}
	}
	act, ok := s.Activities[processStepID]
	if !ok {
		return &SequenceError{Rule: "no activity exists for this step"}
	}

	if s.ApplicationStatus == staffing.ApplicationWithdrawn {
		return &TransitionError{
			Current:           act.Status,
			Target:            target,
			ApplicationStatus: s.ApplicationStatus,
			Reason:            "application is withdrawn",
		}
	}
	if !s.fullyInstantiated() {
		return &SequenceError{
			Rule: fmt.Sprintf("only %d of %d steps have an activity; instantiate every step before advancing", len(s.Activities), len(s.Steps)),
		}
	}

	if target == staffing.ActivityCompleted && act.Status == staffing.ActivityScheduled && !s.predecessorPassed(idx) {
		prev := s.Steps[idx-1]
		return &SequenceError{
			Rule: fmt.Sprintf("step %d (%s) must be Passed before step %d can be completed", prev.StepOrder, prev.Name, s.Steps[idx].StepOrder),
		}
	}

	for _, allowed := range s.AllowedNext(processStepID) {
		if allowed == target {
			return nil
		}
	}
	return &TransitionError{
		Current:           act.Status,
		Target:            target,
		ApplicationStatus: s.ApplicationStatus,
		Reason:            "no legal transition",
	}
}

// AllPassed reports whether every step's activity has status Passed.
func (s State) AllPassed() bool {
	if len(s.Steps) == 0 {
		return false
	}
	for _, st := range s.Steps {
		act, ok := s.Activities[st.ID]
		if !ok || act.Status != staffing.ActivityPassed {
			return false
		}
	}
	return true
}

// ValidateSchedule checks the proposed scheduled date for one step against
// the dates already set on neighbouring steps. It is a creation/edit-time
// validation, not a transition rule: a violation blocks the write entirely.
func (s State) ValidateSchedule(processStepID uuid.UUID, date time.Time) error {
	idx := s.stepIndex(processStepID)
	if idx < 0 {
		return &SequenceError{Rule: "process step does not belong to the application's template"}
	}

	if idx > 0 {
		if prev, ok := s.Activities[s.Steps[idx-1].ID]; ok && prev.ScheduledDate != nil {
			earliest := prev.ScheduledDate.Add(minStepGap)
			if date.Before(earliest) {
				return &ScheduleError{
					StepOrder: s.Steps[idx].StepOrder,
					Rule: fmt.Sprintf("must be at least 1 minute after step %d's date (%s)",
						s.Steps[idx-1].StepOrder, prev.ScheduledDate.Format(time.RFC3339)),
				}
			}
		}
	}

	for i := idx + 1; i < len(s.Steps); i++ {
		later, ok := s.Activities[s.Steps[i].ID]
		if !ok || later.ScheduledDate == nil {
			continue
		}
		if date.After(*later.ScheduledDate) {
			return &ScheduleError{
				StepOrder: s.Steps[idx].StepOrder,
				Rule: fmt.Sprintf("must not be after step %d's date (%s)",
					s.Steps[i].StepOrder, later.ScheduledDate.Format(time.RFC3339)),
			}
		}
	}

	return nil
}

// ValidateCreate checks the sequencing invariants for creating a new
// activity at the given step.
func (s State) ValidateCreate(processStepID uuid.UUID) error {
	idx := s.stepIndex(processStepID)
	if idx < 0 {
		return &SequenceError{Rule: "process step does not belong to the application's template"}
	}
	if _, exists := s.Activities[processStepID]; exists {
		return &SequenceError{Rule: fmt.Sprintf("step %d already has an activity", s.Steps[idx].StepOrder)}
	}
	if idx > 0 {
		if _, ok := s.Activities[s.Steps[idx-1].ID]; !ok {
			return &SequenceError{
				Rule: fmt.Sprintf("step %d (%s) has no activity yet; steps are created in order", s.Steps[idx-1].StepOrder, s.Steps[idx-1].Name),
			}
		}
	}
	return nil
}
