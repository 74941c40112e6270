package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cuongbtq/job-board/internal/api/domain"
	"github.com/cuongbtq/job-board/internal/api/intake"
	"github.com/cuongbtq/job-board/internal/api/model"
)

const applicationColumns = `
	application_id, job_id, job_title, employer_id, employer_name,
	applicant_id, applicant_name, applicant_email, cover_letter, resume,
	status, submitted_at, updated_at
`

func (s *Storage) SaveApplication(ctx context.Context, app *domain.Application) error {
	query := `
		INSERT INTO applications (` + applicationColumns + `) VALUES (
			:application_id, :job_id, :job_title, :employer_id, :employer_name,
			:applicant_id, :applicant_name, :applicant_email, :cover_letter, :resume,
			:status, :submitted_at, :updated_at
		)
	`

	if _, err := s.db.NamedExecContext(ctx, query, model.ApplicationFromDomain(app)); err != nil {
		return fmt.Errorf("failed to save application: %w", err)
	}
	return nil
}

func (s *Storage) GetApplication(ctx context.Context, id string) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE application_id = $1`

	var row model.Application
	if err := s.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound("Application not found", nil)
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	app := row.ToDomain()
	return &app, nil
}

func (s *Storage) ListApplications(ctx context.Context, q intake.Query) ([]domain.Application, error) {
	query, args := applicationQuery(q)

	var rows []model.Application
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	apps := make([]domain.Application, len(rows))
	for i := range rows {
		apps[i] = rows[i].ToDomain()
	}
	return apps, nil
}

func applicationQuery(q intake.Query) (string, []interface{}) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if q.ApplicantID != "" {
		query += fmt.Sprintf(" AND applicant_id = $%d", argIdx)
		args = append(args, q.ApplicantID)
		argIdx++
	}

	if q.EmployerID != "" {
		query += fmt.Sprintf(" AND employer_id = $%d", argIdx)
		args = append(args, q.EmployerID)
		argIdx++
	}

	if q.JobID != "" {
		query += fmt.Sprintf(" AND job_id = $%d", argIdx)
		args = append(args, q.JobID)
		argIdx++
	}

	query += " ORDER BY submitted_at DESC, application_id DESC"

	if q.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, q.Limit)
	}

	return query, args
}

func (s *Storage) UpdateApplicationStatus(ctx context.Context, id string, status domain.ApplicationStatus, updatedAt time.Time) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE applications SET status = $1, updated_at = $2 WHERE application_id = $3`,
		string(status), updatedAt, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return domain.NotFound("Application not found", nil)
	}
	return nil
}
