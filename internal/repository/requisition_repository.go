package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"talent-pipeline/internal/database"
	"talent-pipeline/internal/domain/staffing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type RequisitionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (staffing.JobRequisition, error)
}

type PostgresRequisitionRepository struct {
	db database.DB
}

func NewPostgresRequisitionRepository(db database.DB) *PostgresRequisitionRepository {
	return &PostgresRequisitionRepository{db: db}
}

func (r *PostgresRequisitionRepository) FindByID(ctx context.Context, id uuid.UUID) (staffing.JobRequisition, error) {
	row := r.db.QueryRow(ctx, `
		SELECT r.id, r.client_company_id, r.working_mode, r.location_id,
		       r.headcount, r.process_template_id, r.project_start, r.project_end,
		       r.status, r.created_at,
		       rl.id, rl.role, rl.level
		FROM job_requisitions r
		JOIN job_role_levels rl ON rl.id = r.job_role_level_id
		WHERE r.id = $1`, id)

	var req staffing.JobRequisition
	var mode int16
	var status string
	var projectEnd *time.Time
	if err := row.Scan(
		&req.ID, &req.ClientCompanyID, &mode, &req.LocationID,
		&req.Headcount, &req.ProcessTemplateID, &req.Timeframe.Start, &projectEnd,
		&status, &req.CreatedAt,
		&req.RoleLevel.ID, &req.RoleLevel.Role, &req.RoleLevel.Level,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return staffing.JobRequisition{}, fmt.Errorf("requisition %s: %w", id, ErrNotFound)
		}
		return staffing.JobRequisition{}, err
	}
	req.WorkingMode = staffing.WorkingMode(mode)
	req.Status = staffing.RequisitionStatus(status)
	req.Timeframe.End = projectEnd

	rows, err := r.db.Query(ctx, `SELECT skill_id FROM requisition_skills WHERE requisition_id = $1`, id)
	if err != nil {
		return staffing.JobRequisition{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var skillID uuid.UUID
		if err := rows.Scan(&skillID); err != nil {
			return staffing.JobRequisition{}, err
		}
		req.RequiredSkillIDs = append(req.RequiredSkillIDs, skillID)
	}
	if err := rows.Err(); err != nil {
		return staffing.JobRequisition{}, err
	}

	return req, nil
}
