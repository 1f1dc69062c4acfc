package repository

import (
	"context"

	"talent-pipeline/internal/database"
	"talent-pipeline/internal/domain/staffing"

	"github.com/google/uuid"
)

// ReferenceRepository reads the shared lookup dictionaries. They are
// fetched once per matching request and passed read-only into every
// enrichment task.
type ReferenceRepository interface {
	SkillDictionary(ctx context.Context) (map[uuid.UUID]string, error)
	JobRoleLevelDictionary(ctx context.Context) (map[uuid.UUID]staffing.JobRoleLevel, error)
	LocationDictionary(ctx context.Context) (map[uuid.UUID]string, error)
}

type PostgresReferenceRepository struct {
	db database.DB
}

func NewPostgresReferenceRepository(db database.DB) *PostgresReferenceRepository {
	return &PostgresReferenceRepository{db: db}
}

func (r *PostgresReferenceRepository) SkillDictionary(ctx context.Context) (map[uuid.UUID]string, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM skills`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uuid.UUID]string)
	for rows.Next() {
		var id uuid.UUID
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		out[id] = name
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresReferenceRepository) JobRoleLevelDictionary(ctx context.Context) (map[uuid.UUID]staffing.JobRoleLevel, error) {
	rows, err := r.db.Query(ctx, `SELECT id, role, level FROM job_role_levels`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uuid.UUID]staffing.JobRoleLevel)
	for rows.Next() {
		var rl staffing.JobRoleLevel
		if err := rows.Scan(&rl.ID, &rl.Role, &rl.Level); err != nil {
			return nil, err
		}
		out[rl.ID] = rl
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresReferenceRepository) LocationDictionary(ctx context.Context) (map[uuid.UUID]string, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM locations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uuid.UUID]string)
	for rows.Next() {
		var id uuid.UUID
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		out[id] = name
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
