package repository

import (
	"context"

	"talent-pipeline/internal/database"

	"github.com/google/uuid"
)

// BlacklistRepository answers whether a client company has blacklisted a
// candidate. Blacklisted candidates are excluded before scoring.
type BlacklistRepository interface {
	IsBlacklisted(ctx context.Context, clientCompanyID, candidateID uuid.UUID) (bool, error)
}

type PostgresBlacklistRepository struct {
	db database.DB
}

func NewPostgresBlacklistRepository(db database.DB) *PostgresBlacklistRepository {
	return &PostgresBlacklistRepository{db: db}
}

func (r *PostgresBlacklistRepository) IsBlacklisted(ctx context.Context, clientCompanyID, candidateID uuid.UUID) (bool, error) {
	row := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM candidate_blacklist
			WHERE client_company_id = $1 AND candidate_id = $2
		)`, clientCompanyID, candidateID)
	var ok bool
	if err := row.Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}
