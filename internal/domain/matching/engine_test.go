package matching

import (
	"strings"
	"testing"
	"time"

	"talent-pipeline/internal/domain/staffing"

	"github.com/google/uuid"
)

func remoteRequisition(skills ...string) Requisition {
	return Requisition{
		RequiredSkills: skills,
		RoleLevel:      staffing.JobRoleLevel{Role: "Backend Engineer", Level: "Senior"},
		WorkingMode:    staffing.WorkingModeRemote,
		Timeframe:      staffing.Timeframe{Start: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func TestScore_PartialSkillsNoWindows(t *testing.T) {
	// 2 required skills, 1 matched, level match, remote mode overlap, no
	// requisition location, no availability windows recorded:
	// 25 + 20 + 10 + 15 + 0 = 70.
	req := remoteRequisition("React", "Node")
	cand := Candidate{
		CandidateCVID: uuid.New(),
		Skills:        []string{"React"},
		RoleLevel:     staffing.JobRoleLevel{Role: "Backend Engineer", Level: "Senior"},
		WorkingMode:   staffing.WorkingModeRemote,
	}

	res := Score(cand, req)
	if res.Score != 70 {
		t.Fatalf("expected score 70, got %d", res.Score)
	}
	if !res.LevelMatch {
		t.Fatalf("expected level match")
	}
	if len(res.MatchedSkills) != 1 || res.MatchedSkills[0] != "React" {
		t.Fatalf("unexpected matched skills: %v", res.MatchedSkills)
	}
	if len(res.MissingSkills) != 1 || res.MissingSkills[0] != "Node" {
		t.Fatalf("unexpected missing skills: %v", res.MissingSkills)
	}
}

func TestScore_NoSkillsNoOverlap(t *testing.T) {
	// 0 matched skills, windows exist but none overlap the project
	// timeframe: 0 + 20 + 10 + 15 - 5 = 40.
	req := remoteRequisition("React", "Node")
	cand := Candidate{
		CandidateCVID: uuid.New(),
		Skills:        []string{"Java"},
		RoleLevel:     staffing.JobRoleLevel{Role: "Backend Engineer", Level: "Senior"},
		WorkingMode:   staffing.WorkingModeRemote,
		Windows: []staffing.AvailabilityWindow{{
			Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		}},
	}

	res := Score(cand, req)
	if res.Score != 40 {
		t.Fatalf("expected score 40, got %d", res.Score)
	}
}

func TestScore_ZeroRequiredSkillsAwardsFullSkillPoints(t *testing.T) {
	req := remoteRequisition()
	cand := Candidate{CandidateCVID: uuid.New(), WorkingMode: staffing.WorkingModeRemote}

	res := Score(cand, req)
	// 50 skills + 0 level + 10 mode + 15 location + 0 availability.
	if res.Score != 75 {
		t.Fatalf("expected score 75, got %d", res.Score)
	}
	if len(res.MissingSkills) != 0 {
		t.Fatalf("expected no missing skills, got %v", res.MissingSkills)
	}
}

func TestScore_SkillMatchingIsCaseInsensitive(t *testing.T) {
	req := remoteRequisition("PostgreSQL", "Go")
	cand := Candidate{
		CandidateCVID: uuid.New(),
		Skills:        []string{"postgresql", "GO"},
		WorkingMode:   staffing.WorkingModeRemote,
	}

	res := Score(cand, req)
	if len(res.MatchedSkills) != 2 {
		t.Fatalf("expected 2 matched skills, got %v", res.MatchedSkills)
	}
	// Reported names keep the requisition's casing.
	if res.MatchedSkills[0] != "PostgreSQL" {
		t.Fatalf("expected dictionary casing, got %q", res.MatchedSkills[0])
	}
}

func TestScore_SkillCoverageInvariant(t *testing.T) {
	required := []string{"React", "Node", "Docker", "docker"}
	req := remoteRequisition(required...)
	cand := Candidate{
		CandidateCVID: uuid.New(),
		Skills:        []string{"node"},
		WorkingMode:   staffing.WorkingModeRemote,
	}

	res := Score(cand, req)

	union := map[string]struct{}{}
	for _, s := range res.MatchedSkills {
		union[strings.ToLower(s)] = struct{}{}
	}
	for _, s := range res.MissingSkills {
		union[strings.ToLower(s)] = struct{}{}
	}
	if len(union) != 3 {
		t.Fatalf("expected 3 deduplicated required skills covered, got %d", len(union))
	}
	for _, want := range []string{"react", "node", "docker"} {
		if _, ok := union[want]; !ok {
			t.Fatalf("required skill %q not covered by matched+missing", want)
		}
	}
}

func TestScore_LocationRules(t *testing.T) {
	locA := uuid.New()
	locB := uuid.New()

	cases := []struct {
		name     string
		reqLoc   *uuid.UUID
		reqMode  staffing.WorkingMode
		candLoc  *uuid.UUID
		candMode staffing.WorkingMode
		want     int
	}{
		{"no requisition location", nil, staffing.WorkingModeOnsite, nil, staffing.WorkingModeOnsite, 10 + 15},
		{"remote posting ignores location", &locA, staffing.WorkingModeRemote, &locB, staffing.WorkingModeRemote, 10 + 15},
		{"onsite same location", &locA, staffing.WorkingModeOnsite, &locA, staffing.WorkingModeOnsite, 10 + 15},
		{"onsite different location", &locA, staffing.WorkingModeOnsite, &locB, staffing.WorkingModeOnsite, 10},
		{"onsite unknown candidate location", &locA, staffing.WorkingModeOnsite, nil, staffing.WorkingModeOnsite, 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := Requisition{
				RoleLevel:   staffing.JobRoleLevel{Level: "Senior"},
				WorkingMode: tc.reqMode,
				LocationID:  tc.reqLoc,
				Timeframe:   staffing.Timeframe{Start: time.Now().UTC()},
			}
			cand := Candidate{CandidateCVID: uuid.New(), WorkingMode: tc.candMode}
			cand.LocationID = tc.candLoc

			res := Score(cand, req)
			// 50 skill points for zero requirements are always present.
			if res.Score != 50+tc.want {
				t.Fatalf("expected %d, got %d", 50+tc.want, res.Score)
			}
		})
	}
}

func TestScore_WorkingModeNoneAlwaysAwardsModePoints(t *testing.T) {
	req := Requisition{
		RoleLevel: staffing.JobRoleLevel{Level: "Senior"},
		Timeframe: staffing.Timeframe{Start: time.Now().UTC()},
	}
	cand := Candidate{CandidateCVID: uuid.New(), WorkingMode: staffing.WorkingModeOnsite}

	res := Score(cand, req)
	if res.Score != 50+10+15 {
		t.Fatalf("expected 75, got %d", res.Score)
	}
}

func TestScore_Deterministic(t *testing.T) {
	req := remoteRequisition("React", "Node", "Go")
	cand := Candidate{
		CandidateCVID: uuid.New(),
		Skills:        []string{"Go", "React"},
		RoleLevel:     staffing.JobRoleLevel{Level: "Senior"},
		WorkingMode:   staffing.WorkingModeHybrid,
		Windows: []staffing.AvailabilityWindow{{
			Start: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		}},
	}

	first := Score(cand, req)
	for i := 0; i < 10; i++ {
		again := Score(cand, req)
		if again.Score != first.Score {
			t.Fatalf("score changed between runs: %d vs %d", first.Score, again.Score)
		}
		if len(again.MatchedSkills) != len(first.MatchedSkills) {
			t.Fatalf("matched skills changed between runs")
		}
	}
}

func TestRank_FailedApplicationsSortLast(t *testing.T) {
	results := []staffing.MatchResult{
		{CandidateCVID: uuid.New(), Score: 90, HasFailedApplication: true},
		{CandidateCVID: uuid.New(), Score: 40},
		{CandidateCVID: uuid.New(), Score: 80},
	}

	Rank(results)

	if results[0].Score != 80 || results[1].Score != 40 {
		t.Fatalf("expected clean candidates first by score, got %+v", results)
	}
	if !results[2].HasFailedApplication {
		t.Fatalf("expected failed-application candidate last")
	}
}

func TestRank_StableOnTies(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	results := []staffing.MatchResult{
		{CandidateCVID: a, Score: 70},
		{CandidateCVID: b, Score: 70},
	}

	Rank(results)

	if results[0].CandidateCVID != a || results[1].CandidateCVID != b {
		t.Fatalf("tie broke input order: %v then %v", results[0].CandidateCVID, results[1].CandidateCVID)
	}
}

func TestScore_OpenEndedWindowAndTimeframe(t *testing.T) {
	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	req := Requisition{
		RoleLevel:   staffing.JobRoleLevel{Level: "Senior"},
		WorkingMode: staffing.WorkingModeRemote,
		Timeframe:   staffing.Timeframe{Start: start},
	}
	cand := Candidate{
		CandidateCVID: uuid.New(),
		WorkingMode:   staffing.WorkingModeRemote,
		// Zero End means the candidate declared open-ended availability.
		Windows: []staffing.AvailabilityWindow{{Start: start.AddDate(0, 1, 0)}},
	}

	res := Score(cand, req)
	if res.Score != 50+10+15+5 {
		t.Fatalf("expected overlap bonus, got %d", res.Score)
	}
}
