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

type ApplicationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (staffing.Application, error)
	// ListByRequisition returns every application ever made against the
	// requisition, terminal ones included; the matcher derives both the
	// hired-exclusion and the failed-application flag from one read.
	ListByRequisition(ctx context.Context, requisitionID uuid.UUID) ([]staffing.Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status staffing.ApplicationStatus) error
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

func (r *PostgresApplicationRepository) FindByID(ctx context.Context, id uuid.UUID) (staffing.Application, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, requisition_id, candidate_cv_id, status, created_at
		FROM applications WHERE id = $1`, id)

	var a staffing.Application
	var status string
	if err := row.Scan(&a.ID, &a.RequisitionID, &a.CandidateCVID, &status, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return staffing.Application{}, fmt.Errorf("application %s: %w", id, ErrNotFound)
		}
		return staffing.Application{}, err
	}
	a.Status = staffing.ApplicationStatus(status)
	return a, nil
}

func (r *PostgresApplicationRepository) ListByRequisition(ctx context.Context, requisitionID uuid.UUID) ([]staffing.Application, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, requisition_id, candidate_cv_id, status, created_at
		FROM applications
		WHERE requisition_id = $1
		ORDER BY created_at`, requisitionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]staffing.Application, 0)
	for rows.Next() {
		var a staffing.Application
		var status string
		if err := rows.Scan(&a.ID, &a.RequisitionID, &a.CandidateCVID, &status, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.Status = staffing.ApplicationStatus(status)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status staffing.ApplicationStatus) error {
	n, err := r.db.Exec(ctx,
		`UPDATE applications SET status = $2, updated_at = now() WHERE id = $1`,
		id, string(status),
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("application %s: %w", id, ErrNotFound)
	}
	return nil
}
