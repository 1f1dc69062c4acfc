package staffing

import (
	"time"

	"github.com/google/uuid"
)

type JobRoleLevel struct {
	ID    uuid.UUID
	Role  string
	Level string
}

type AvailabilityWindow struct {
	Start time.Time
	End   time.Time
}

// Timeframe is a requisition's project window. A nil End means open-ended.
type Timeframe struct {
	Start time.Time
	End   *time.Time
}

type JobRequisition struct {
	ID                uuid.UUID
	ClientCompanyID   uuid.UUID
	RequiredSkillIDs  []uuid.UUID
	RoleLevel         JobRoleLevel
	WorkingMode       WorkingMode
	LocationID        *uuid.UUID
	Headcount         int
	ProcessTemplateID uuid.UUID
	Timeframe         Timeframe
	Status            RequisitionStatus
	CreatedAt         time.Time
}

type CandidateProfile struct {
	ID          uuid.UUID
	WorkingMode WorkingMode
	LocationID  *uuid.UUID
	Status      CandidateStatus
}

type CandidateCV struct {
	ID            uuid.UUID
	CandidateID   uuid.UUID
	RoleLevel     JobRoleLevel
	Version       int
	Skills        []string
	SkillVerified bool
}

type ProcessStep struct {
	ID         uuid.UUID
	TemplateID uuid.UUID
	StepOrder  int
	Name       string
}

type Application struct {
	ID            uuid.UUID
	RequisitionID uuid.UUID
	CandidateCVID uuid.UUID
	Status        ApplicationStatus
	CreatedAt     time.Time
}

type Activity struct {
	ID            uuid.UUID
	ApplicationID uuid.UUID
	ProcessStepID uuid.UUID
	Type          ActivityType
	ScheduledDate *time.Time
	Status        ActivityStatus
	Notes         string
}

// MatchResult is computed per matching request and never persisted.
type MatchResult struct {
	CandidateCVID        uuid.UUID
	Score                int
	MatchedSkills        []string
	MissingSkills        []string
	LevelMatch           bool
	HasFailedApplication bool
}
