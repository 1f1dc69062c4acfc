package usecase

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrInternal            = errors.New("internal error")
	ErrRequisitionNotFound = errors.New("requisition not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrActivityNotFound    = errors.New("activity not found")
	ErrProcessStepNotFound = errors.New("process step not found")

	// ErrTransitionInFlight rejects a second concurrent transition request
	// for the same activity.
	ErrTransitionInFlight = errors.New("a transition for this activity is already in progress")
)
