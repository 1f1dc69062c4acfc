package dto

import "github.com/google/uuid"

type MatchResultResponse struct {
	CandidateCVID        uuid.UUID `json:"candidate_cv_id"`
	Score                int       `json:"score"`
	MatchedSkills        []string  `json:"matched_skills"`
	MissingSkills        []string  `json:"missing_skills"`
	LevelMatch           bool      `json:"level_match"`
	HasFailedApplication bool      `json:"has_failed_application"`
}

type MatchListResponse struct {
	RequisitionID uuid.UUID             `json:"requisition_id"`
	Results       []MatchResultResponse `json:"results"`
}
