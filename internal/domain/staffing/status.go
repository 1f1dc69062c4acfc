package staffing

import "fmt"

// WorkingMode is a bitmask; the zero value means the requisition or the
// candidate declared no working-mode preference.
type WorkingMode uint8

const (
	WorkingModeNone     WorkingMode = 0
	WorkingModeOnsite   WorkingMode = 1
	WorkingModeRemote   WorkingMode = 2
	WorkingModeHybrid   WorkingMode = 4
	WorkingModeFlexible WorkingMode = 8
)

func (m WorkingMode) Includes(other WorkingMode) bool {
	return m&other != 0
}

func (m WorkingMode) Intersects(other WorkingMode) bool {
	return m&other != 0
}

type CandidateStatus string

const (
	CandidateAvailable   CandidateStatus = "Available"
	CandidateBusy        CandidateStatus = "Busy"
	CandidateWorking     CandidateStatus = "Working"
	CandidateApplying    CandidateStatus = "Applying"
	CandidateUnavailable CandidateStatus = "Unavailable"
)

type RequisitionStatus string

const (
	RequisitionPending  RequisitionStatus = "Pending"
	RequisitionApproved RequisitionStatus = "Approved"
	RequisitionClosed   RequisitionStatus = "Closed"
	RequisitionRejected RequisitionStatus = "Rejected"
)

type ApplicationStatus string

const (
	ApplicationSubmitted    ApplicationStatus = "Submitted"
	ApplicationInterviewing ApplicationStatus = "Interviewing"
	ApplicationHired        ApplicationStatus = "Hired"
	ApplicationRejected     ApplicationStatus = "Rejected"
	ApplicationWithdrawn    ApplicationStatus = "Withdrawn"
)

// Terminal reports whether no further lifecycle changes are expected from
// the application itself. Rejected and Withdrawn end the pair invariant:
// a new application for the same requisition and CV may then be created.
func (s ApplicationStatus) Terminal() bool {
	return s == ApplicationHired || s == ApplicationRejected || s == ApplicationWithdrawn
}

type ActivityStatus string

const (
	ActivityScheduled ActivityStatus = "Scheduled"
	ActivityCompleted ActivityStatus = "Completed"
	ActivityPassed    ActivityStatus = "Passed"
	ActivityFailed    ActivityStatus = "Failed"
	ActivityNoShow    ActivityStatus = "NoShow"
)

func (s ActivityStatus) Terminal() bool {
	return s == ActivityPassed || s == ActivityFailed || s == ActivityNoShow
}

func ParseActivityStatus(raw string) (ActivityStatus, error) {
	switch ActivityStatus(raw) {
	case ActivityScheduled, ActivityCompleted, ActivityPassed, ActivityFailed, ActivityNoShow:
		return ActivityStatus(raw), nil
	}
	return "", fmt.Errorf("unknown activity status: %q", raw)
}

type ActivityType string

const (
	ActivityOnline  ActivityType = "Online"
	ActivityOffline ActivityType = "Offline"
)

func ParseActivityType(raw string) (ActivityType, error) {
	switch ActivityType(raw) {
	case ActivityOnline, ActivityOffline:
		return ActivityType(raw), nil
	}
	return "", fmt.Errorf("unknown activity type: %q", raw)
}
