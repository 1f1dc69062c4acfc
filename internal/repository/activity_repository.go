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

type ActivityRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (staffing.Activity, error)
	ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]staffing.Activity, error)
	Create(ctx context.Context, a staffing.Activity) error
	// UpdateStatus persists a committed transition together with its notes.
	UpdateStatus(ctx context.Context, id uuid.UUID, status staffing.ActivityStatus, notes string) error
}

type PostgresActivityRepository struct {
	db database.DB
}

func NewPostgresActivityRepository(db database.DB) *PostgresActivityRepository {
	return &PostgresActivityRepository{db: db}
}

func (r *PostgresActivityRepository) FindByID(ctx context.Context, id uuid.UUID) (staffing.Activity, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, application_id, process_step_id, activity_type, scheduled_date, status, notes
		FROM activities WHERE id = $1`, id)

	a, err := scanActivity(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return staffing.Activity{}, fmt.Errorf("activity %s: %w", id, ErrNotFound)
		}
		return staffing.Activity{}, err
	}
	return a, nil
}

func (r *PostgresActivityRepository) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]staffing.Activity, error) {
	rows, err := r.db.Query(ctx, `
		SELECT a.id, a.application_id, a.process_step_id, a.activity_type, a.scheduled_date, a.status, a.notes
		FROM activities a
		JOIN process_steps s ON s.id = a.process_step_id
		WHERE a.application_id = $1
		ORDER BY s.step_order`, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]staffing.Activity, 0)
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresActivityRepository) Create(ctx context.Context, a staffing.Activity) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO activities (id, application_id, process_step_id, activity_type, scheduled_date, status, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		a.ID, a.ApplicationID, a.ProcessStepID, string(a.Type), a.ScheduledDate, string(a.Status), a.Notes,
	)
	return err
}

func (r *PostgresActivityRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status staffing.ActivityStatus, notes string) error {
	n, err := r.db.Exec(ctx,
		`UPDATE activities SET status = $2, notes = $3, updated_at = now() WHERE id = $1`,
		id, string(status), notes,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("activity %s: %w", id, ErrNotFound)
	}
	return nil
}

func scanActivity(row database.Row) (staffing.Activity, error) {
	var a staffing.Activity
	var typ, status string
	if err := row.Scan(&a.ID, &a.ApplicationID, &a.ProcessStepID, &typ, &a.ScheduledDate, &status, &a.Notes); err != nil {
		return staffing.Activity{}, err
	}
	a.Type = staffing.ActivityType(typ)
	a.Status = staffing.ActivityStatus(status)
	return a, nil
}
