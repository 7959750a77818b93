package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const applicationColumns = `id, user_id, company_name, job_title, jd_url, status, score, notes, applied_date`

func scanApplication(row pgx.Row) (*Application, error) {
	var a Application
	err := row.Scan(&a.ID, &a.UserID, &a.CompanyName, &a.JobTitle, &a.JDURL, &a.Status, &a.Score, &a.Notes, &a.AppliedDate)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateApplication inserts a job application. An empty status becomes DefaultApplicationStatus.
func (db *DB) CreateApplication(ctx context.Context, input *ApplicationCreateInput) (*Application, error) {
	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = DefaultApplicationStatus
	}

	a, err := scanApplication(db.pool.QueryRow(ctx,
		`INSERT INTO job_applications (user_id, company_name, job_title, jd_url, status, notes)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+applicationColumns,
		input.UserID, input.CompanyName, input.JobTitle, input.JDURL, status, input.Notes,
	))
	if err != nil {
		if hasPgCode(err, pgForeignKeyViolation) {
			return nil, ErrUnknownUser
		}
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return a, nil
}

// ListApplicationsByUser returns a user's applications, most recent first.
func (db *DB) ListApplicationsByUser(ctx context.Context, userID uuid.UUID) ([]Application, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+applicationColumns+` FROM job_applications
		 WHERE user_id = $1
		 ORDER BY applied_date DESC, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	apps := []Application{}
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating applications: %w", err)
	}
	return apps, nil
}

// GetApplication retrieves an application by ID. Returns nil, nil when absent.
func (db *DB) GetApplication(ctx context.Context, id uuid.UUID) (*Application, error) {
	a, err := scanApplication(db.pool.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM job_applications WHERE id = $1`, id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return a, nil
}

// UpdateApplication applies a partial update and returns the stored row.
// Returns nil, nil when the application does not exist.
func (db *DB) UpdateApplication(ctx context.Context, id uuid.UUID, update ApplicationUpdate) (*Application, error) {
	if update.IsEmpty() {
		return db.GetApplication(ctx, id)
	}

	a, err := scanApplication(db.pool.QueryRow(ctx,
		`UPDATE job_applications SET
			status = COALESCE($2, status),
			score  = COALESCE($3, score),
			notes  = COALESCE($4, notes)
		 WHERE id = $1
		 RETURNING `+applicationColumns,
		id, update.Status, update.Score, update.Notes,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update application: %w", err)
	}
	return a, nil
}
