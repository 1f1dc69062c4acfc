package workflow

import (
	"errors"
	"testing"
	"time"

	"talent-pipeline/internal/domain/staffing"

	"github.com/google/uuid"
)

type fixture struct {
	steps      []staffing.ProcessStep
	activities []staffing.Activity
}

// threeSteps builds a 3-step template with one activity per step, all
// Scheduled unless overridden.
func threeSteps() fixture {
	templateID := uuid.New()
	appID := uuid.New()

	f := fixture{}
	for i := 1; i <= 3; i++ {
		step := staffing.ProcessStep{
			ID:         uuid.New(),
			TemplateID: templateID,
			StepOrder:  i,
			Name:       []string{"Screening", "Technical", "Client"}[i-1],
		}
		f.steps = append(f.steps, step)
		f.activities = append(f.activities, staffing.Activity{
			ID:            uuid.New(),
			ApplicationID: appID,
			ProcessStepID: step.ID,
			Type:          staffing.ActivityOnline,
			Status:        staffing.ActivityScheduled,
		})
	}
	return f
}

func (f *fixture) setStatus(stepIdx int, st staffing.ActivityStatus) {
	f.activities[stepIdx].Status = st
}

func (f *fixture) setDate(stepIdx int, date time.Time) {
	f.activities[stepIdx].ScheduledDate = &date
}

func (f fixture) state(app staffing.ApplicationStatus) State {
	return NewState(app, f.steps, f.activities)
}

func TestAllowedNext_FirstStepScheduled(t *testing.T) {
	f := threeSteps()
	s := f.state(staffing.ApplicationInterviewing)

	got := s.AllowedNext(f.steps[0].ID)
	if len(got) != 2 || got[0] != staffing.ActivityCompleted || got[1] != staffing.ActivityNoShow {
		t.Fatalf("expected [Completed NoShow], got %v", got)
	}
}

func TestAllowedNext_GatedByPredecessor(t *testing.T) {
	f := threeSteps()
	s := f.state(staffing.ApplicationInterviewing)

	got := s.AllowedNext(f.steps[1].ID)
	for _, st := range got {
		if st == staffing.ActivityCompleted {
			t.Fatalf("step 2 must not allow Completed while step 1 is not Passed")
		}
	}

	f.setStatus(0, staffing.ActivityPassed)
	s = f.state(staffing.ApplicationInterviewing)
	got = s.AllowedNext(f.steps[1].ID)
	if len(got) == 0 || got[0] != staffing.ActivityCompleted {
		t.Fatalf("expected Completed allowed after predecessor Passed, got %v", got)
	}
}

func TestAllowedNext_WithdrawnApplicationFreezesEverything(t *testing.T) {
	f := threeSteps()
	s := f.state(staffing.ApplicationWithdrawn)

	for _, step := range f.steps {
		if got := s.AllowedNext(step.ID); len(got) != 0 {
			t.Fatalf("expected empty set for withdrawn application, got %v", got)
		}
	}
}

func TestAllowedNext_RequiresEveryStepInstantiated(t *testing.T) {
	f := threeSteps()
	f.activities = f.activities[:2] // third step not instantiated yet
	s := f.state(staffing.ApplicationInterviewing)

	if got := s.AllowedNext(f.steps[0].ID); len(got) != 0 {
		t.Fatalf("expected empty set until all steps instantiated, got %v", got)
	}
}

func TestAllowedNext_CompletedOffersPassAndFail(t *testing.T) {
	f := threeSteps()
	f.setStatus(0, staffing.ActivityCompleted)
	s := f.state(staffing.ApplicationInterviewing)

	got := s.AllowedNext(f.steps[0].ID)
	if len(got) != 2 || got[0] != staffing.ActivityPassed || got[1] != staffing.ActivityFailed {
		t.Fatalf("expected [Passed Failed], got %v", got)
	}
}

func TestAllowedNext_TerminalStatusesAreDeadEnds(t *testing.T) {
	for _, terminal := range []staffing.ActivityStatus{staffing.ActivityPassed, staffing.ActivityFailed, staffing.ActivityNoShow} {
		f := threeSteps()
		f.setStatus(0, terminal)
		s := f.state(staffing.ApplicationInterviewing)
		if got := s.AllowedNext(f.steps[0].ID); len(got) != 0 {
			t.Fatalf("expected no transitions out of %s, got %v", terminal, got)
		}
	}
}

func TestCanTransition_SequenceViolationNamesPredecessor(t *testing.T) {
	f := threeSteps()
	s := f.state(staffing.ApplicationInterviewing)

	err := s.CanTransition(f.steps[1].ID, staffing.ActivityCompleted)
	var seq *SequenceError
	if !errors.As(err, &seq) {
		t.Fatalf("expected SequenceError, got %v", err)
	}
	if seq.Rule == "" {
		t.Fatalf("expected rule text naming the unmet step")
	}
}

func TestCanTransition_NoLegalTransitionNamesStates(t *testing.T) {
	f := threeSteps()
	f.setStatus(0, staffing.ActivityPassed)
	s := f.state(staffing.ApplicationInterviewing)

	err := s.CanTransition(f.steps[0].ID, staffing.ActivityCompleted)
	var tr *TransitionError
	if !errors.As(err, &tr) {
		t.Fatalf("expected TransitionError, got %v", err)
	}
	if tr.Current != staffing.ActivityPassed || tr.Target != staffing.ActivityCompleted {
		t.Fatalf("error does not carry the offending statuses: %+v", tr)
	}
}

func TestCanTransition_AllowsValidPath(t *testing.T) {
	f := threeSteps()
	s := f.state(staffing.ApplicationInterviewing)

	if err := s.CanTransition(f.steps[0].ID, staffing.ActivityCompleted); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.CanTransition(f.steps[0].ID, staffing.ActivityNoShow); err != nil {
		t.Fatalf("NoShow from Scheduled should be allowed: %v", err)
	}
}

func TestAllPassed(t *testing.T) {
	f := threeSteps()
	for i := range f.steps {
		f.setStatus(i, staffing.ActivityPassed)
	}
	if !f.state(staffing.ApplicationInterviewing).AllPassed() {
		t.Fatalf("expected AllPassed with every activity Passed")
	}

	f.setStatus(2, staffing.ActivityCompleted)
	if f.state(staffing.ApplicationInterviewing).AllPassed() {
		t.Fatalf("AllPassed must be false with a non-Passed activity")
	}
}

func TestValidateSchedule_MinimumGapAfterPredecessor(t *testing.T) {
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	f := threeSteps()
	f.setDate(0, base)
	s := f.state(staffing.ApplicationSubmitted)

	if err := s.ValidateSchedule(f.steps[1].ID, base.Add(30*time.Second)); err == nil {
		t.Fatalf("expected schedule error for date inside the 1-minute gap")
	}
	if err := s.ValidateSchedule(f.steps[1].ID, base.Add(time.Minute)); err != nil {
		t.Fatalf("exactly predecessor+1m should pass: %v", err)
	}
}

func TestValidateSchedule_NotAfterLaterStep(t *testing.T) {
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	f := threeSteps()
	f.setDate(2, base.Add(24*time.Hour))
	s := f.state(staffing.ApplicationSubmitted)

	err := s.ValidateSchedule(f.steps[1].ID, base.Add(48*time.Hour))
	var sched *ScheduleError
	if !errors.As(err, &sched) {
		t.Fatalf("expected ScheduleError, got %v", err)
	}

	if err := s.ValidateSchedule(f.steps[1].ID, base.Add(24*time.Hour)); err != nil {
		t.Fatalf("equal to later step's date should pass: %v", err)
	}
}

func TestValidateSchedule_NoNeighbourDatesMeansNoBounds(t *testing.T) {
	f := threeSteps()
	s := f.state(staffing.ApplicationSubmitted)

	if err := s.ValidateSchedule(f.steps[1].ID, time.Now().UTC()); err != nil {
		t.Fatalf("unexpected error with no neighbouring dates: %v", err)
	}
}

func TestValidateCreate(t *testing.T) {
	f := threeSteps()
	full := f.state(staffing.ApplicationSubmitted)
	if err := full.ValidateCreate(f.steps[0].ID); err == nil {
		t.Fatalf("expected error creating a duplicate activity for a step")
	}

	partial := NewState(staffing.ApplicationSubmitted, f.steps, f.activities[:1])
	if err := partial.ValidateCreate(f.steps[1].ID); err != nil {
		t.Fatalf("step 2 should be creatable once step 1 exists: %v", err)
	}

	var seq *SequenceError
	err := partial.ValidateCreate(f.steps[2].ID)
	if !errors.As(err, &seq) {
		t.Fatalf("expected SequenceError creating step 3 before step 2, got %v", err)
	}
}

func TestNewState_OrdersStepsByStepOrder(t *testing.T) {
	f := threeSteps()
	shuffled := []staffing.ProcessStep{f.steps[2], f.steps[0], f.steps[1]}
	s := NewState(staffing.ApplicationSubmitted, shuffled, f.activities)

	for i, step := range s.Steps {
		if step.StepOrder != i+1 {
			t.Fatalf("steps not ordered: %v", s.Steps)
		}
	}
}
