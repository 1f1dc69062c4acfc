package usecase

import (
	"context"
	"fmt"
	"log"

	"talent-pipeline/internal/domain/staffing"
	"talent-pipeline/internal/domain/workflow"
	"talent-pipeline/internal/repository"
)

// CascadeOutcome reports the status updates that followed a committed
// activity transition. Nil pointers mean the corresponding status was not
// touched. Warnings carry collaborator failures; the transition itself is
// never rolled back because of them.
type CascadeOutcome struct {
	ApplicationStatus *staffing.ApplicationStatus
	CandidateStatus   *staffing.CandidateStatus
	Warnings          []string
}

// cascadeCoordinator derives application and candidate status updates from
// a just-committed activity status.
type cascadeCoordinator struct {
	applications repository.ApplicationRepository
	candidates   repository.CandidateRepository
	log          *log.Logger
}

// apply runs the cascade for one committed transition. state reflects the
// pipeline after the transition; app is the application as loaded before it.
func (c *cascadeCoordinator) apply(ctx context.Context, app staffing.Application, state workflow.State, committed staffing.ActivityStatus) CascadeOutcome {
	var out CascadeOutcome

	switch committed {
	case staffing.ActivityFailed:
		c.setApplicationStatus(ctx, app, staffing.ApplicationRejected, &out)

	case staffing.ActivityCompleted:
		switch app.Status {
		case staffing.ApplicationInterviewing, staffing.ApplicationHired,
			staffing.ApplicationRejected, staffing.ApplicationWithdrawn:
			// Already interviewing or terminal; nothing to promote.
		default:
			c.setApplicationStatus(ctx, app, staffing.ApplicationInterviewing, &out)
		}

	case staffing.ActivityPassed:
		if state.AllPassed() && app.Status == staffing.ApplicationInterviewing {
			c.setApplicationStatus(ctx, app, staffing.ApplicationHired, &out)
		}

	case staffing.ActivityScheduled, staffing.ActivityNoShow:
		// Scheduled is never a transition target; NoShow ends the activity
		// without deciding the application.
	}

	return out
}

func (c *cascadeCoordinator) setApplicationStatus(ctx context.Context, app staffing.Application, status staffing.ApplicationStatus, out *CascadeOutcome) {
	if err := c.applications.UpdateStatus(ctx, app.ID, status); err != nil {
		c.warn(out, fmt.Sprintf("application %s not moved to %s: %v", app.ID, status, err))
		return
	}
	out.ApplicationStatus = &status

	// Hired and Rejected carry through to the candidate's own status.
	var candidateStatus staffing.CandidateStatus
	switch status {
	case staffing.ApplicationHired:
		candidateStatus = staffing.CandidateWorking
	case staffing.ApplicationRejected:
		candidateStatus = staffing.CandidateAvailable
	default:
		return
	}

	candidateID, err := c.candidates.CandidateIDByCV(ctx, app.CandidateCVID)
	if err != nil {
		c.warn(out, fmt.Sprintf("candidate for cv %s not resolved: %v", app.CandidateCVID, err))
		return
	}
	if err := c.candidates.UpdateStatus(ctx, candidateID, candidateStatus); err != nil {
		c.warn(out, fmt.Sprintf("candidate %s not moved to %s: %v", candidateID, candidateStatus, err))
		return
	}
	out.CandidateStatus = &candidateStatus
}

func (c *cascadeCoordinator) warn(out *CascadeOutcome, msg string) {
	c.log.Printf("pipeline cascade warning=%q", msg)
	out.Warnings = append(out.Warnings, msg)
}
