package matching

import (
	"math"
	"sort"
	"strings"

	"talent-pipeline/internal/domain/staffing"

	"github.com/google/uuid"
)

// Score weights. They sum to 100; availability can subtract, so the total
// is clamped afterwards.
const (
	skillsWeight   = 50
	levelWeight    = 20
	modeWeight     = 10
	locationWeight = 15
	availBonus     = 5
)

// Requisition is the scoring view of a job requisition: required skill IDs
// already resolved to names through the shared dictionary.
type Requisition struct {
	RequiredSkills []string
	RoleLevel      staffing.JobRoleLevel
	WorkingMode    staffing.WorkingMode
	LocationID     *uuid.UUID
	Timeframe      staffing.Timeframe
}

// Candidate is one enriched, hard-filter-surviving pool entry.
type Candidate struct {
	CandidateCVID        uuid.UUID
	Skills               []string
	RoleLevel            staffing.JobRoleLevel
	WorkingMode          staffing.WorkingMode
	LocationID           *uuid.UUID
	Windows              []staffing.AvailabilityWindow
	HasFailedApplication bool
}

// Score computes the deterministic 0-100 compatibility between one
// candidate and one requisition. Hard filters are the caller's job; every
// candidate reaching here is scored.
func Score(c Candidate, r Requisition) staffing.MatchResult {
	matched, missing := splitSkills(c.Skills, r.RequiredSkills)

	total := skillPoints(len(matched), len(r.RequiredSkills))

	levelMatch := c.RoleLevel.Level == r.RoleLevel.Level
	if levelMatch {
		total += levelWeight
	}

	if r.WorkingMode == staffing.WorkingModeNone || c.WorkingMode.Intersects(r.WorkingMode) {
		total += modeWeight
	}

	if locationSatisfied(c, r) {
		total += locationWeight
	}

	total += availabilityPoints(c.Windows, r.Timeframe)

	if total < 0 {
		total = 0
	}
	if total > 100 {
		total = 100
	}

	return staffing.MatchResult{
		CandidateCVID:        c.CandidateCVID,
		Score:                total,
		MatchedSkills:        matched,
		MissingSkills:        missing,
		LevelMatch:           levelMatch,
		HasFailedApplication: c.HasFailedApplication,
	}
}

// Rank orders results in place: candidates with a prior failed application
// against this requisition sort after all others, then score descending.
// The sort is stable so equal entries keep their pool order.
func Rank(results []staffing.MatchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].HasFailedApplication != results[j].HasFailedApplication {
			return !results[i].HasFailedApplication
		}
		return results[i].Score > results[j].Score
	})
}

func skillPoints(matched, required int) int {
	if required == 0 {
		return skillsWeight
	}
	return int(math.Round(skillsWeight * float64(matched) / float64(required)))
}

// splitSkills partitions the required skill names into matched and missing
// using case-insensitive comparison. The missing set is always recomputed
// here rather than trusted from upstream, so casing drift between the
// dictionary and a CV cannot leak into the result. Required names are
// deduplicated; reported names keep the requisition's casing.
func splitSkills(candidateSkills, requiredSkills []string) (matched, missing []string) {
	have := make(map[string]struct{}, len(candidateSkills))
	for _, s := range candidateSkills {
		have[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}

	seen := make(map[string]struct{}, len(requiredSkills))
	matched = make([]string, 0, len(requiredSkills))
	missing = make([]string, 0)
	for _, req := range requiredSkills {
		key := strings.ToLower(strings.TrimSpace(req))
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		if _, ok := have[key]; ok {
			matched = append(matched, req)
		} else {
			missing = append(missing, req)
		}
	}
	return matched, missing
}

func locationSatisfied(c Candidate, r Requisition) bool {
	if r.LocationID == nil {
		return true
	}
	// Remote or hybrid postings are location-agnostic even when a location
	// is attached to the requisition.
	if r.WorkingMode.Includes(staffing.WorkingModeRemote) || r.WorkingMode.Includes(staffing.WorkingModeHybrid) {
		return true
	}
	return c.LocationID != nil && *c.LocationID == *r.LocationID
}

// availabilityPoints awards +5 when at least one declared window overlaps
// the project timeframe, -5 when windows exist but none overlap, and 0 when
// the candidate has no windows recorded (availability unknown).
func availabilityPoints(windows []staffing.AvailabilityWindow, tf staffing.Timeframe) int {
	if len(windows) == 0 {
		return 0
	}
	for _, w := range windows {
		if overlaps(w, tf) {
			return availBonus
		}
	}
	return -availBonus
}

func overlaps(w staffing.AvailabilityWindow, tf staffing.Timeframe) bool {
	if !w.End.IsZero() && w.End.Before(tf.Start) {
		return false
	}
	if tf.End != nil && w.Start.After(*tf.End) {
		return false
	}
	return true
}
