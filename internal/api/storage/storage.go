package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cuongbtq/job-board/internal/api/domain"
	"github.com/cuongbtq/job-board/internal/api/intake"
	"github.com/cuongbtq/job-board/internal/api/listing"
	"github.com/cuongbtq/job-board/internal/api/model"
	"github.com/cuongbtq/job-board/shared/postgresql"
	"github.com/jmoiron/sqlx"
)

const jobColumns = `
	job_id, title, employer_id, employer_name, location, job_type,
	experience_level, salary_min, salary_max, currency, category, description,
	requirements, benefits, skills, posted_at, deadline, is_active, applications_count
`

var (
	_ listing.Store = (*Storage)(nil)
	_ intake.Store  = (*Storage)(nil)
)

// Storage is the PostgreSQL job and application store.
type Storage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewStorage(pg *postgresql.Client, logger *slog.Logger) *Storage {
	return &Storage{
		db:     pg.GetDB(),
		logger: logger,
	}
}

// ListJobs returns every job, active or not, newest first.
func (s *Storage) ListJobs(ctx context.Context) ([]domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs ORDER BY posted_at DESC, job_id DESC`

	var rows []model.Job
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	jobs := make([]domain.Job, len(rows))
	for i := range rows {
		jobs[i] = rows[i].ToDomain()
	}
	return jobs, nil
}

func (s *Storage) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE job_id = $1`

	var row model.Job
	if err := s.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound("Job not found", nil)
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	job := row.ToDomain()
	return &job, nil
}

func (s *Storage) CreateJob(ctx context.Context, job *domain.Job) error {
	return insertJob(ctx, s.db, job)
}

func insertJob(ctx context.Context, db sqlx.ExtContext, job *domain.Job) error {
	query := `
		INSERT INTO jobs (` + jobColumns + `) VALUES (
			:job_id, :title, :employer_id, :employer_name, :location, :job_type,
			:experience_level, :salary_min, :salary_max, :currency, :category, :description,
			:requirements, :benefits, :skills, :posted_at, :deadline, :is_active, :applications_count
		)
		ON CONFLICT (job_id) DO NOTHING
	`

	if _, err := sqlx.NamedExecContext(ctx, db, query, model.JobFromDomain(job)); err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

func (s *Storage) SetJobActive(ctx context.Context, id string, active bool) (*domain.Job, error) {
	query := `UPDATE jobs SET is_active = $1 WHERE job_id = $2 RETURNING ` + jobColumns

	var row model.Job
	if err := s.db.GetContext(ctx, &row, query, active, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound("Job not found", nil)
		}
		return nil, fmt.Errorf("failed to update job: %w", err)
	}

	job := row.ToDomain()
	return &job, nil
}

func (s *Storage) DeleteJob(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM jobs WHERE job_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return domain.NotFound("Job not found", nil)
	}
	return nil
}

// Seed inserts jobs that are not stored yet, in one transaction.
func (s *Storage) Seed(ctx context.Context, jobs []domain.Job) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i := range jobs {
		if err := insertJob(ctx, tx, &jobs[i]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}

	s.logger.Info("Seeded jobs", slog.Int("count", len(jobs)))
	return nil
}
