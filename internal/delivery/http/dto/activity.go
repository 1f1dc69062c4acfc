package dto

import (
	"time"

	"github.com/google/uuid"
)

type TransitionActivityRequest struct {
	TargetStatus string `json:"target_status"`
	Notes        string `json:"notes"`
}

type CreateActivityRequest struct {
	ProcessStepID uuid.UUID  `json:"process_step_id"`
	ActivityType  string     `json:"activity_type"`
	ScheduledDate *time.Time `json:"scheduled_date"`
	Notes         string     `json:"notes"`
}

type ValidateScheduleRequest struct {
	ProcessStepID uuid.UUID `json:"process_step_id"`
	ScheduledDate time.Time `json:"scheduled_date"`
}

type ActivityResponse struct {
	ID            uuid.UUID  `json:"id"`
	ApplicationID uuid.UUID  `json:"application_id"`
	ProcessStepID uuid.UUID  `json:"process_step_id"`
	ActivityType  string     `json:"activity_type"`
	ScheduledDate *time.Time `json:"scheduled_date"`
	Status        string     `json:"status"`
	Notes         string     `json:"notes"`
}

type CascadeOutcomeResponse struct {
	ApplicationStatus *string  `json:"application_status"`
	CandidateStatus   *string  `json:"candidate_status"`
	Warnings          []string `json:"warnings"`
}

type TransitionResultResponse struct {
	Activity ActivityResponse       `json:"activity"`
	Cascade  CascadeOutcomeResponse `json:"cascade"`
}

type AllowedStatusesResponse struct {
	ActivityID      uuid.UUID `json:"activity_id"`
	AllowedStatuses []string  `json:"allowed_statuses"`
}
