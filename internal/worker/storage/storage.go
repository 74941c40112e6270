package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cuongbtq/job-board/internal/worker/domain"
	"github.com/cuongbtq/job-board/shared/postgresql"
	"github.com/jmoiron/sqlx"
)

// Storage handles all database operations for the worker
type Storage struct {
	client *postgresql.Client
	logger *slog.Logger
}

// NewStorage creates a new Storage instance
func NewStorage(client *postgresql.Client, logger *slog.Logger) *Storage {
	return &Storage{
		client: client,
		logger: logger,
	}
}

// CountApplication marks the application as counted and increments its job's
// applicant count in one transaction. An application is counted at most once.
func (s *Storage) CountApplication(ctx context.Context, applicationID string) (*domain.CountResult, error) {
	result := &domain.CountResult{ApplicationID: applicationID}

	err := s.client.WithTx(ctx, func(tx *sqlx.Tx) error {
		claim := `
			UPDATE applications
			SET counted = TRUE
			WHERE application_id = $1
			  AND counted = FALSE
			RETURNING job_id
		`
		err := tx.QueryRowxContext(ctx, claim, applicationID).Scan(&result.JobID)
		if errors.Is(err, sql.ErrNoRows) {
			var exists bool
			if err := tx.GetContext(ctx, &exists,
				`SELECT EXISTS (SELECT 1 FROM applications WHERE application_id = $1)`, applicationID,
			); err != nil {
				return fmt.Errorf("failed to check application: %w", err)
			}
			if exists {
				return domain.ErrAlreadyCounted
			}
			return domain.ErrApplicationNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to claim application: %w", err)
		}

		increment := `
			UPDATE jobs
			SET applications_count = applications_count + 1
			WHERE job_id = $1
			RETURNING applications_count
		`
		err = tx.QueryRowxContext(ctx, increment, result.JobID).Scan(&result.ApplicantCount)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrJobNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to increment applicant count: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Application counted",
		slog.String("application_id", applicationID),
		slog.String("job_id", result.JobID),
		slog.Int("applicant_count", result.ApplicantCount),
	)
	return result, nil
}
