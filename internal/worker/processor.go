package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cuongbtq/job-board/internal/worker/domain"
)

// processApplication counts one application against its job
func (w *Worker) processApplication(ctx context.Context, msg *domain.ApplicationMessage) error {
	jobCtx, cancel := context.WithTimeout(ctx, w.jobTimeout)
	defer cancel()

	result, err := w.storage.CountApplication(jobCtx, msg.ApplicationID)
	switch {
	case err == nil:
		w.logger.Info("Applicant count updated",
			slog.String("application_id", msg.ApplicationID),
			slog.String("job_id", result.JobID),
			slog.Int("applicant_count", result.ApplicantCount),
		)
		return nil

	case errors.Is(err, domain.ErrAlreadyCounted):
		// Duplicate delivery; the first one already counted it
		w.logger.Info("Application already counted, skipping",
			slog.String("application_id", msg.ApplicationID),
		)
		return nil

	case errors.Is(err, domain.ErrApplicationNotFound), errors.Is(err, domain.ErrJobNotFound):
		return err

	case msg.Redelivered:
		return fmt.Errorf("%w: %v", domain.ErrMaxRetriesExceeded, err)
	}

	return domain.NewRetryableError(fmt.Errorf("failed to count application: %w", err))
}
