package usecase

import (
	"context"
	"fmt"

	"talent-pipeline/internal/domain/staffing"
	"talent-pipeline/internal/repository"

	"github.com/google/uuid"
)

type stubRequisitionRepo struct {
	req staffing.JobRequisition
	err error
}

func (s *stubRequisitionRepo) FindByID(_ context.Context, id uuid.UUID) (staffing.JobRequisition, error) {
	if s.err != nil {
		return staffing.JobRequisition{}, s.err
	}
	if s.req.ID != id {
		return staffing.JobRequisition{}, fmt.Errorf("requisition %s: %w", id, repository.ErrNotFound)
	}
	return s.req, nil
}

type stubCandidateRepo struct {
	pool        []repository.PoolEntry
	poolErr     error
	windows     map[uuid.UUID][]staffing.AvailabilityWindow
	verified    map[uuid.UUID]bool
	verifiedErr map[uuid.UUID]error
	cvOwner     map[uuid.UUID]uuid.UUID

	updatedID     uuid.UUID
	updatedStatus staffing.CandidateStatus
	updateErr     error
}

func (s *stubCandidateRepo) CandidatePool(context.Context, uuid.UUID) ([]repository.PoolEntry, error) {
	return s.pool, s.poolErr
}

func (s *stubCandidateRepo) AvailabilityWindows(_ context.Context, candidateID uuid.UUID) ([]staffing.AvailabilityWindow, error) {
	return s.windows[candidateID], nil
}

func (s *stubCandidateRepo) SkillVerified(_ context.Context, candidateID uuid.UUID) (bool, error) {
	if err := s.verifiedErr[candidateID]; err != nil {
		return false, err
	}
	return s.verified[candidateID], nil
}

func (s *stubCandidateRepo) CandidateIDByCV(_ context.Context, cvID uuid.UUID) (uuid.UUID, error) {
	id, ok := s.cvOwner[cvID]
	if !ok {
		return uuid.Nil, fmt.Errorf("candidate cv %s: %w", cvID, repository.ErrNotFound)
	}
	return id, nil
}

func (s *stubCandidateRepo) UpdateStatus(_ context.Context, candidateID uuid.UUID, status staffing.CandidateStatus) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updatedID = candidateID
	s.updatedStatus = status
	return nil
}

type stubApplicationRepo struct {
	apps []staffing.Application

	updatedID     uuid.UUID
	updatedStatus staffing.ApplicationStatus
	updateErr     error
}

func (s *stubApplicationRepo) FindByID(_ context.Context, id uuid.UUID) (staffing.Application, error) {
	for _, a := range s.apps {
		if a.ID == id {
			return a, nil
		}
	}
	return staffing.Application{}, fmt.Errorf("application %s: %w", id, repository.ErrNotFound)
}

func (s *stubApplicationRepo) ListByRequisition(context.Context, uuid.UUID) ([]staffing.Application, error) {
	return s.apps, nil
}

func (s *stubApplicationRepo) UpdateStatus(_ context.Context, id uuid.UUID, status staffing.ApplicationStatus) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updatedID = id
	s.updatedStatus = status
	return nil
}

type stubBlacklistRepo struct {
	blacklisted map[uuid.UUID]bool
	errs        map[uuid.UUID]error
}

func (s *stubBlacklistRepo) IsBlacklisted(_ context.Context, _, candidateID uuid.UUID) (bool, error) {
	if err := s.errs[candidateID]; err != nil {
		return false, err
	}
	return s.blacklisted[candidateID], nil
}

type stubReferenceRepo struct {
	skills     map[uuid.UUID]string
	roleLevels map[uuid.UUID]staffing.JobRoleLevel
}

func (s *stubReferenceRepo) SkillDictionary(context.Context) (map[uuid.UUID]string, error) {
	return s.skills, nil
}

func (s *stubReferenceRepo) JobRoleLevelDictionary(context.Context) (map[uuid.UUID]staffing.JobRoleLevel, error) {
	return s.roleLevels, nil
}

func (s *stubReferenceRepo) LocationDictionary(context.Context) (map[uuid.UUID]string, error) {
	return nil, nil
}

type stubActivityRepo struct {
	activities []staffing.Activity

	created       []staffing.Activity
	createErr     error
	updatedID     uuid.UUID
	updatedStatus staffing.ActivityStatus
	updatedNotes  string
	updateErr     error
}

func (s *stubActivityRepo) FindByID(_ context.Context, id uuid.UUID) (staffing.Activity, error) {
	for _, a := range s.activities {
		if a.ID == id {
			return a, nil
		}
	}
	return staffing.Activity{}, fmt.Errorf("activity %s: %w", id, repository.ErrNotFound)
}

func (s *stubActivityRepo) ListByApplication(_ context.Context, applicationID uuid.UUID) ([]staffing.Activity, error) {
	out := make([]staffing.Activity, 0, len(s.activities))
	for _, a := range s.activities {
		if a.ApplicationID == applicationID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *stubActivityRepo) Create(_ context.Context, a staffing.Activity) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, a)
	return nil
}

func (s *stubActivityRepo) UpdateStatus(_ context.Context, id uuid.UUID, status staffing.ActivityStatus, notes string) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updatedID = id
	s.updatedStatus = status
	s.updatedNotes = notes
	return nil
}

type stubStepRepo struct {
	steps []staffing.ProcessStep
}

func (s *stubStepRepo) ListByTemplate(context.Context, uuid.UUID) ([]staffing.ProcessStep, error) {
	return s.steps, nil
}

func (s *stubStepRepo) FindByID(_ context.Context, id uuid.UUID) (staffing.ProcessStep, error) {
	for _, st := range s.steps {
		if st.ID == id {
			return st, nil
		}
	}
	return staffing.ProcessStep{}, fmt.Errorf("process step %s: %w", id, repository.ErrNotFound)
}

type stubLock struct {
	denied   bool
	tryErr   error
	unlocked []uuid.UUID
}

func (s *stubLock) TryLock(_ context.Context, _ uuid.UUID) (bool, error) {
	if s.tryErr != nil {
		return false, s.tryErr
	}
	return !s.denied, nil
}

func (s *stubLock) Unlock(_ context.Context, activityID uuid.UUID) error {
	s.unlocked = append(s.unlocked, activityID)
	return nil
}
