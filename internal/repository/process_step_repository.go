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

type ProcessStepRepository interface {
	// ListByTemplate returns the template's steps ordered by step_order.
	ListByTemplate(ctx context.Context, templateID uuid.UUID) ([]staffing.ProcessStep, error)
	FindByID(ctx context.Context, id uuid.UUID) (staffing.ProcessStep, error)
}

type PostgresProcessStepRepository struct {
	db database.DB
}

func NewPostgresProcessStepRepository(db database.DB) *PostgresProcessStepRepository {
	return &PostgresProcessStepRepository{db: db}
}

func (r *PostgresProcessStepRepository) ListByTemplate(ctx context.Context, templateID uuid.UUID) ([]staffing.ProcessStep, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, template_id, step_order, step_name
		FROM process_steps
		WHERE template_id = $1
		ORDER BY step_order`, templateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]staffing.ProcessStep, 0)
	for rows.Next() {
		var s staffing.ProcessStep
		if err := rows.Scan(&s.ID, &s.TemplateID, &s.StepOrder, &s.Name); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresProcessStepRepository) FindByID(ctx context.Context, id uuid.UUID) (staffing.ProcessStep, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, template_id, step_order, step_name
		FROM process_steps WHERE id = $1`, id)

	var s staffing.ProcessStep
	if err := row.Scan(&s.ID, &s.TemplateID, &s.StepOrder, &s.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return staffing.ProcessStep{}, fmt.Errorf("process step %s: %w", id, ErrNotFound)
		}
		return staffing.ProcessStep{}, err
	}
	return s, nil
}
