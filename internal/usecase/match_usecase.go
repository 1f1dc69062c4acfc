package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"talent-pipeline/internal/domain/matching"
	"talent-pipeline/internal/domain/staffing"
	"talent-pipeline/internal/pkg/workerpool"
	"talent-pipeline/internal/repository"

	"github.com/google/uuid"
)

const (
	skillDictCacheKey     = "dict:skills"
	roleLevelDictCacheKey = "dict:job_role_levels"
)

type MatchUsecase interface {
	MatchRequisition(ctx context.Context, requisitionID uuid.UUID) ([]staffing.MatchResult, error)
}

type Matching struct {
	requisitions repository.RequisitionRepository
	candidates   repository.CandidateRepository
	applications repository.ApplicationRepository
	blacklist    repository.BlacklistRepository
	reference    repository.ReferenceRepository

	cache   DictionaryCache
	dictTTL time.Duration
	workers int
	log     *log.Logger
}

func NewMatchUsecase(
	requisitions repository.RequisitionRepository,
	candidates repository.CandidateRepository,
	applications repository.ApplicationRepository,
	blacklist repository.BlacklistRepository,
	reference repository.ReferenceRepository,
	cache DictionaryCache,
	dictTTL time.Duration,
	workers int,
	logger *log.Logger,
) *Matching {
	if workers <= 0 {
		workers = 8
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Matching{
		requisitions: requisitions,
		candidates:   candidates,
		applications: applications,
		blacklist:    blacklist,
		reference:    reference,
		cache:        cache,
		dictTTL:      dictTTL,
		workers:      workers,
		log:          logger,
	}
}

// MatchRequisition returns the ranked compatibility results for one
// requisition's candidate pool. A failure to enrich one candidate drops
// that candidate with a logged warning; a failure on anything shared (the
// requisition, the pool, the dictionaries, the application list) fails the
// whole request.
func (u *Matching) MatchRequisition(ctx context.Context, requisitionID uuid.UUID) ([]staffing.MatchResult, error) {
	if requisitionID == uuid.Nil {
		return nil, ErrInvalidInput
	}

	req, err := u.requisitions.FindByID(ctx, requisitionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRequisitionNotFound
		}
		return nil, ErrInternal
	}

	skillDict, err := u.skillDictionary(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	roleLevelDict, err := u.roleLevelDictionary(ctx)
	if err != nil {
		return nil, ErrInternal
	}

	requiredSkills := make([]string, 0, len(req.RequiredSkillIDs))
	for _, id := range req.RequiredSkillIDs {
		name, ok := skillDict[id]
		if !ok {
			u.log.Printf("matching requisition=%s skill=%s status=unknown_skill_id", requisitionID, id)
			continue
		}
		requiredSkills = append(requiredSkills, name)
	}

	pool, err := u.candidates.CandidatePool(ctx, requisitionID)
	if err != nil {
		return nil, ErrInternal
	}

	apps, err := u.applications.ListByRequisition(ctx, requisitionID)
	if err != nil {
		return nil, ErrInternal
	}
	hiredCVs := make(map[uuid.UUID]struct{})
	failedCVs := make(map[uuid.UUID]struct{})
	for _, a := range apps {
		switch a.Status {
		case staffing.ApplicationHired:
			hiredCVs[a.CandidateCVID] = struct{}{}
		case staffing.ApplicationRejected, staffing.ApplicationWithdrawn:
			failedCVs[a.CandidateCVID] = struct{}{}
		}
	}

	engineReq := matching.Requisition{
		RequiredSkills: requiredSkills,
		RoleLevel:      req.RoleLevel,
		WorkingMode:    req.WorkingMode,
		LocationID:     req.LocationID,
		Timeframe:      req.Timeframe,
	}

	// enriched is indexed by pool position so the concurrent fan-out
	// cannot disturb input order; each task writes only its own slot.
	enriched := make([]*matching.Candidate, len(pool))

	p := workerpool.New(u.workers, len(pool))
	for i, entry := range pool {
		if u.excludedBeforeEnrichment(entry, hiredCVs) {
			continue
		}

		idx, e := i, entry
		p.Submit(func(taskCtx context.Context) error {
			cand, keep, err := u.enrich(taskCtx, req.ClientCompanyID, e, roleLevelDict, failedCVs)
			if err != nil {
				u.log.Printf("matching requisition=%s candidate=%s cv=%s status=dropped err=%v",
					requisitionID, e.Profile.ID, e.CV.ID, err)
				return nil
			}
			if keep {
				enriched[idx] = &cand
			}
			return nil
		})
	}
	p.Close()

	for range p.Run(ctx) {
	}
	if err := ctx.Err(); err != nil {
		// Caller abandoned the request; partial enrichment is discarded.
		return nil, err
	}

	results := make([]staffing.MatchResult, 0, len(pool))
	for _, cand := range enriched {
		if cand == nil {
			continue
		}
		results = append(results, matching.Score(*cand, engineReq))
	}
	matching.Rank(results)

	return results, nil
}

// excludedBeforeEnrichment applies the hard filters that need no extra
// I/O: candidates already committed elsewhere and CVs already hired for
// this requisition.
func (u *Matching) excludedBeforeEnrichment(e repository.PoolEntry, hiredCVs map[uuid.UUID]struct{}) bool {
	if e.Profile.Status == staffing.CandidateApplying || e.Profile.Status == staffing.CandidateWorking {
		return true
	}
	if _, hired := hiredCVs[e.CV.ID]; hired {
		return true
	}
	return false
}

// enrich runs the per-candidate collaborator reads and reference lookups:
// blacklist, skill verification, availability, role-level resolution.
// keep=false means a hard filter excluded the candidate; an error means
// the candidate is dropped in isolation. The dictionaries are shared
// read-only across tasks, never re-fetched per candidate.
func (u *Matching) enrich(ctx context.Context, clientCompanyID uuid.UUID, e repository.PoolEntry, roleLevelDict map[uuid.UUID]staffing.JobRoleLevel, failedCVs map[uuid.UUID]struct{}) (matching.Candidate, bool, error) {
	roleLevel, ok := roleLevelDict[e.CV.RoleLevel.ID]
	if !ok {
		return matching.Candidate{}, false, fmt.Errorf("job role level %s not in dictionary", e.CV.RoleLevel.ID)
	}

	blacklisted, err := u.blacklist.IsBlacklisted(ctx, clientCompanyID, e.Profile.ID)
	if err != nil {
		return matching.Candidate{}, false, fmt.Errorf("blacklist check: %w", err)
	}
	if blacklisted {
		return matching.Candidate{}, false, nil
	}

	verified, err := u.candidates.SkillVerified(ctx, e.Profile.ID)
	if err != nil {
		return matching.Candidate{}, false, fmt.Errorf("skill verification: %w", err)
	}
	// Unverified skills are never shown, not merely down-ranked.
	if !verified {
		return matching.Candidate{}, false, nil
	}

	windows, err := u.candidates.AvailabilityWindows(ctx, e.Profile.ID)
	if err != nil {
		return matching.Candidate{}, false, fmt.Errorf("availability windows: %w", err)
	}

	_, hasFailed := failedCVs[e.CV.ID]
	return matching.Candidate{
		CandidateCVID:        e.CV.ID,
		Skills:               e.CV.Skills,
		RoleLevel:            roleLevel,
		WorkingMode:          e.Profile.WorkingMode,
		LocationID:           e.Profile.LocationID,
		Windows:              windows,
		HasFailedApplication: hasFailed,
	}, true, nil
}

// skillDictionary fetches the shared skill dictionary, once per request,
// through the cache when possible.
func (u *Matching) skillDictionary(ctx context.Context) (map[uuid.UUID]string, error) {
	if u.cache != nil {
		dict := map[uuid.UUID]string{}
		if ok, err := u.cache.GetJSON(ctx, skillDictCacheKey, &dict); err == nil && ok {
			return dict, nil
		}
	}

	dict, err := u.reference.SkillDictionary(ctx)
	if err != nil {
		return nil, err
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, skillDictCacheKey, dict, u.dictTTL); err != nil {
			u.log.Printf("matching cache=skills status=set_failed err=%v", err)
		}
	}
	return dict, nil
}

func (u *Matching) roleLevelDictionary(ctx context.Context) (map[uuid.UUID]staffing.JobRoleLevel, error) {
	if u.cache != nil {
		dict := map[uuid.UUID]staffing.JobRoleLevel{}
		if ok, err := u.cache.GetJSON(ctx, roleLevelDictCacheKey, &dict); err == nil && ok {
			return dict, nil
		}
	}

	dict, err := u.reference.JobRoleLevelDictionary(ctx)
	if err != nil {
		return nil, err
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, roleLevelDictCacheKey, dict, u.dictTTL); err != nil {
			u.log.Printf("matching cache=job_role_levels status=set_failed err=%v", err)
		}
	}
	return dict, nil
}
