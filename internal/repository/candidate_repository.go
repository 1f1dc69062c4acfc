package repository

import (
	"context"
	"errors"
	"fmt"

	"talent-pipeline/internal/database"
	"talent-pipeline/internal/domain/staffing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PoolEntry pairs a candidate profile with one of their CVs for the
// matching pool.
type PoolEntry struct {
	Profile staffing.CandidateProfile
	CV      staffing.CandidateCV
}

type CandidateRepository interface {
	// CandidatePool lists (profile, CV) pairs whose CV targets the
	// requisition's role. Only the CV's job_role_level_id is populated;
	// the engine resolves names through the shared dictionary. Hard
	// filters run in the engine, not here.
	CandidatePool(ctx context.Context, requisitionID uuid.UUID) ([]PoolEntry, error)
	AvailabilityWindows(ctx context.Context, candidateID uuid.UUID) ([]staffing.AvailabilityWindow, error)
	SkillVerified(ctx context.Context, candidateID uuid.UUID) (bool, error)
	// CandidateIDByCV resolves the owner of a CV, for status cascades that
	// start from an application.
	CandidateIDByCV(ctx context.Context, cvID uuid.UUID) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, candidateID uuid.UUID, status staffing.CandidateStatus) error
}

type PostgresCandidateRepository struct {
	db database.DB
}

func NewPostgresCandidateRepository(db database.DB) *PostgresCandidateRepository {
	return &PostgresCandidateRepository{db: db}
}

func (r *PostgresCandidateRepository) CandidatePool(ctx context.Context, requisitionID uuid.UUID) ([]PoolEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.id, c.working_mode, c.location_id, c.status,
		       cv.id, cv.version, cv.skill_verified, cv.job_role_level_id,
		       COALESCE(array_agg(cs.skill_name) FILTER (WHERE cs.skill_name IS NOT NULL), '{}')
		FROM candidate_cvs cv
		JOIN candidates c ON c.id = cv.candidate_id
		JOIN job_requisitions r ON r.id = $1
		JOIN job_role_levels req_rl ON req_rl.id = r.job_role_level_id
		JOIN job_role_levels cv_rl ON cv_rl.id = cv.job_role_level_id AND cv_rl.role = req_rl.role
		LEFT JOIN cv_skills cs ON cs.cv_id = cv.id
		GROUP BY c.id, c.working_mode, c.location_id, c.status,
		         cv.id, cv.version, cv.skill_verified, cv.job_role_level_id, cv.created_at
		ORDER BY cv.created_at, cv.id`, requisitionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]PoolEntry, 0)
	for rows.Next() {
		var e PoolEntry
		var mode int16
		var status string
		if err := rows.Scan(
			&e.Profile.ID, &mode, &e.Profile.LocationID, &status,
			&e.CV.ID, &e.CV.Version, &e.CV.SkillVerified, &e.CV.RoleLevel.ID,
			&e.CV.Skills,
		); err != nil {
			return nil, err
		}
		e.Profile.WorkingMode = staffing.WorkingMode(mode)
		e.Profile.Status = staffing.CandidateStatus(status)
		e.CV.CandidateID = e.Profile.ID
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCandidateRepository) AvailabilityWindows(ctx context.Context, candidateID uuid.UUID) ([]staffing.AvailabilityWindow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT start_at, end_at FROM availability_windows
		WHERE candidate_id = $1
		ORDER BY start_at`, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]staffing.AvailabilityWindow, 0)
	for rows.Next() {
		var w staffing.AvailabilityWindow
		if err := rows.Scan(&w.Start, &w.End); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SkillVerified reports whether at least one of the candidate's skill-group
// assessments has been verified.
func (r *PostgresCandidateRepository) SkillVerified(ctx context.Context, candidateID uuid.UUID) (bool, error) {
	row := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM skill_verifications
			WHERE candidate_id = $1 AND verified = TRUE
		)`, candidateID)
	var ok bool
	if err := row.Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func (r *PostgresCandidateRepository) CandidateIDByCV(ctx context.Context, cvID uuid.UUID) (uuid.UUID, error) {
	row := r.db.QueryRow(ctx, `SELECT candidate_id FROM candidate_cvs WHERE id = $1`, cvID)
	var id uuid.UUID
	if err := row.Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, fmt.Errorf("candidate cv %s: %w", cvID, ErrNotFound)
		}
		return uuid.Nil, err
	}
	return id, nil
}

func (r *PostgresCandidateRepository) UpdateStatus(ctx context.Context, candidateID uuid.UUID, status staffing.CandidateStatus) error {
	_, err := r.db.Exec(ctx,
		`UPDATE candidates SET status = $2, updated_at = now() WHERE id = $1`,
		candidateID, string(status),
	)
	return err
}
