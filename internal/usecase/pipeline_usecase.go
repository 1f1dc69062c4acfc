package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"talent-pipeline/internal/domain/staffing"
	"talent-pipeline/internal/domain/workflow"
	"talent-pipeline/internal/repository"

	"github.com/google/uuid"
)

type PipelineUsecase interface {
	AllowedNextStatuses(ctx context.Context, activityID uuid.UUID) ([]staffing.ActivityStatus, error)
	TransitionActivity(ctx context.Context, activityID uuid.UUID, target staffing.ActivityStatus, notes string) (TransitionResult, error)
	ValidateScheduledDate(ctx context.Context, applicationID, processStepID uuid.UUID, date time.Time) error
	CreateActivity(ctx context.Context, p CreateActivityParams) (staffing.Activity, error)
}

// TransitionResult is the committed transition plus whatever the cascade
// managed to update afterwards.
type TransitionResult struct {
	Activity staffing.Activity
	Cascade  CascadeOutcome
}

type CreateActivityParams struct {
	ApplicationID uuid.UUID
	ProcessStepID uuid.UUID
	Type          staffing.ActivityType
	ScheduledDate *time.Time
	Notes         string
}

type Pipeline struct {
	activities   repository.ActivityRepository
	applications repository.ApplicationRepository
	requisitions repository.RequisitionRepository
	steps        repository.ProcessStepRepository

	cascade cascadeCoordinator
	lock    TransitionLock
	log     *log.Logger
}

func NewPipelineUsecase(
	activities repository.ActivityRepository,
	applications repository.ApplicationRepository,
	requisitions repository.RequisitionRepository,
	steps repository.ProcessStepRepository,
	candidates repository.CandidateRepository,
	lock TransitionLock,
	logger *log.Logger,
) *Pipeline {
	if logger == nil {
		logger = log.Default()
	}
	return &Pipeline{
		activities:   activities,
		applications: applications,
		requisitions: requisitions,
		steps:        steps,
		cascade: cascadeCoordinator{
			applications: applications,
			candidates:   candidates,
			log:          logger,
		},
		lock: lock,
		log:  logger,
	}
}

// AllowedNextStatuses reports the legal target statuses for one activity
// given the current pipeline state. An empty slice is a valid answer: the
// activity is terminal or the pipeline is frozen.
func (u *Pipeline) AllowedNextStatuses(ctx context.Context, activityID uuid.UUID) ([]staffing.ActivityStatus, error) {
	if activityID == uuid.Nil {
		return nil, ErrInvalidInput
	}

	act, _, state, err := u.loadState(ctx, activityID)
	if err != nil {
		return nil, err
	}

	return state.AllowedNext(act.ProcessStepID), nil
}

// TransitionActivity validates and commits one status transition, then runs
// the status cascade. At most one transition per activity is in flight at a
// time; concurrent attempts get ErrTransitionInFlight.
func (u *Pipeline) TransitionActivity(ctx context.Context, activityID uuid.UUID, target staffing.ActivityStatus, notes string) (TransitionResult, error) {
	if activityID == uuid.Nil {
		return TransitionResult{}, ErrInvalidInput
	}
	if _, err := staffing.ParseActivityStatus(string(target)); err != nil {
		return TransitionResult{}, ErrInvalidInput
	}

	acquired, err := u.lock.TryLock(ctx, activityID)
	if err != nil {
		u.log.Printf("pipeline activity=%s status=lock_failed err=%v", activityID, err)
		return TransitionResult{}, ErrInternal
	}
	if !acquired {
		return TransitionResult{}, ErrTransitionInFlight
	}
	defer func() {
		if err := u.lock.Unlock(ctx, activityID); err != nil {
			u.log.Printf("pipeline activity=%s status=unlock_failed err=%v", activityID, err)
		}
	}()

	act, app, state, err := u.loadState(ctx, activityID)
	if err != nil {
		return TransitionResult{}, err
	}

	if err := state.CanTransition(act.ProcessStepID, target); err != nil {
		return TransitionResult{}, err
	}

	if err := u.activities.UpdateStatus(ctx, activityID, target, notes); err != nil {
		u.log.Printf("pipeline activity=%s target=%s status=update_failed err=%v", activityID, target, err)
		return TransitionResult{}, ErrInternal
	}

	act.Status = target
	act.Notes = notes
	state.Activities[act.ProcessStepID] = act

	result := TransitionResult{
		Activity: act,
		Cascade:  u.cascade.apply(ctx, app, state, target),
	}
	u.log.Printf("pipeline activity=%s application=%s committed=%s warnings=%d",
		activityID, app.ID, target, len(result.Cascade.Warnings))
	return result, nil
}

// ValidateScheduledDate checks a proposed scheduled date for one step
// against the dates already set on the application's other activities.
func (u *Pipeline) ValidateScheduledDate(ctx context.Context, applicationID, processStepID uuid.UUID, date time.Time) error {
	if applicationID == uuid.Nil || processStepID == uuid.Nil || date.IsZero() {
		return ErrInvalidInput
	}

	_, state, err := u.loadApplicationState(ctx, applicationID)
	if err != nil {
		return err
	}

	return state.ValidateSchedule(processStepID, date)
}

// CreateActivity instantiates the activity for one process step. Activities
// are created in step order, one per step, and always start Scheduled.
func (u *Pipeline) CreateActivity(ctx context.Context, p CreateActivityParams) (staffing.Activity, error) {
	if p.ApplicationID == uuid.Nil || p.ProcessStepID == uuid.Nil {
		return staffing.Activity{}, ErrInvalidInput
	}
	if _, err := staffing.ParseActivityType(string(p.Type)); err != nil {
		return staffing.Activity{}, ErrInvalidInput
	}

	app, state, err := u.loadApplicationState(ctx, p.ApplicationID)
	if err != nil {
		return staffing.Activity{}, err
	}
	if app.Status == staffing.ApplicationWithdrawn {
		return staffing.Activity{}, &workflow.TransitionError{
			Target:            staffing.ActivityScheduled,
			ApplicationStatus: app.Status,
			Reason:            "application is withdrawn",
		}
	}

	if err := state.ValidateCreate(p.ProcessStepID); err != nil {
		return staffing.Activity{}, err
	}
	if p.ScheduledDate != nil {
		if err := state.ValidateSchedule(p.ProcessStepID, *p.ScheduledDate); err != nil {
			return staffing.Activity{}, err
		}
	}

	act := staffing.Activity{
		ID:            uuid.New(),
		ApplicationID: p.ApplicationID,
		ProcessStepID: p.ProcessStepID,
		Type:          p.Type,
		ScheduledDate: p.ScheduledDate,
		Status:        staffing.ActivityScheduled,
		Notes:         p.Notes,
	}
	if err := u.activities.Create(ctx, act); err != nil {
		u.log.Printf("pipeline application=%s step=%s status=create_failed err=%v", p.ApplicationID, p.ProcessStepID, err)
		return staffing.Activity{}, ErrInternal
	}
	return act, nil
}

// loadState assembles the workflow state around one activity.
func (u *Pipeline) loadState(ctx context.Context, activityID uuid.UUID) (staffing.Activity, staffing.Application, workflow.State, error) {
	act, err := u.activities.FindByID(ctx, activityID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return staffing.Activity{}, staffing.Application{}, workflow.State{}, ErrActivityNotFound
		}
		return staffing.Activity{}, staffing.Application{}, workflow.State{}, ErrInternal
	}

	app, state, err := u.loadApplicationState(ctx, act.ApplicationID)
	if err != nil {
		return staffing.Activity{}, staffing.Application{}, workflow.State{}, err
	}
	return act, app, state, nil
}

// loadApplicationState assembles the workflow state for one application:
// the application itself, its requisition's template steps, and every
// activity instantiated so far.
func (u *Pipeline) loadApplicationState(ctx context.Context, applicationID uuid.UUID) (staffing.Application, workflow.State, error) {
	app, err := u.applications.FindByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return staffing.Application{}, workflow.State{}, ErrApplicationNotFound
		}
		return staffing.Application{}, workflow.State{}, ErrInternal
	}

	req, err := u.requisitions.FindByID(ctx, app.RequisitionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return staffing.Application{}, workflow.State{}, ErrRequisitionNotFound
		}
		return staffing.Application{}, workflow.State{}, ErrInternal
	}

	steps, err := u.steps.ListByTemplate(ctx, req.ProcessTemplateID)
	if err != nil {
		return staffing.Application{}, workflow.State{}, ErrInternal
	}

	activities, err := u.activities.ListByApplication(ctx, applicationID)
	if err != nil {
		return staffing.Application{}, workflow.State{}, ErrInternal
	}

	return app, workflow.NewState(app.Status, steps, activities), nil
}
