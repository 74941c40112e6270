// Package intake validates and records job applications.
package intake

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cuongbtq/job-board/internal/api/domain"
	"github.com/google/uuid"
)

// Notifier is told about every recorded application.
type Notifier interface {
	ApplicationSubmitted(ctx context.Context, app *domain.Application) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, app *domain.Application) error

func (f NotifierFunc) ApplicationSubmitted(ctx context.Context, app *domain.Application) error {
	return f(ctx, app)
}

// Config holds Intake dependencies. Notifier and Clock are optional.
type Config struct {
	Store    Store
	Notifier Notifier
	Logger   *slog.Logger
	Clock    func() time.Time
}

// Intake records applications against jobs for authenticated job seekers.
type Intake struct {
	store    Store
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
	newID    func() string
}

func New(cfg *Config) *Intake {
	in := &Intake{
		store:    cfg.Store,
		notifier: cfg.Notifier,
		logger:   cfg.Logger,
		now:      cfg.Clock,
		newID:    func() string { return uuid.New().String() },
	}
	if in.logger == nil {
		in.logger = slog.Default()
	}
	if in.now == nil {
		in.now = time.Now
	}
	return in
}

// Submit records an application by applicant for job. Both the identity and
// the cover letter are checked before anything is stored.
func (in *Intake) Submit(ctx context.Context, job *domain.Job, applicant domain.Identity, coverLetter, resume string) (*domain.Application, error) {
	if !applicant.IsAuthenticated || applicant.User == nil {
		return nil, domain.AuthRequired("Please login to apply for this job.", nil)
	}
	if applicant.Role != domain.RoleJobSeeker {
		return nil, domain.Forbidden("Only job seekers can apply for jobs.", nil)
	}
	if job == nil {
		return nil, domain.NotFound("Job not found", nil)
	}
	if !job.IsActive {
		return nil, domain.Validation("This job is no longer accepting applications.", nil)
	}
	if strings.TrimSpace(coverLetter) == "" {
		return nil, domain.Validation("Please write a cover letter to submit your application.", nil)
	}

	now := in.now()
	app := &domain.Application{
		ID:             in.newID(),
		JobID:          job.ID,
		JobTitle:       job.Title,
		EmployerID:     job.EmployerID,
		EmployerName:   job.EmployerName,
		ApplicantID:    applicant.User.ID,
		ApplicantName:  applicant.User.FullName,
		ApplicantEmail: applicant.User.Email,
		CoverLetter:    coverLetter,
		Resume:         resume,
		Status:         domain.ApplicationPending,
		SubmittedAt:    now,
		UpdatedAt:      now,
	}

	if err := in.store.SaveApplication(ctx, app); err != nil {
		in.logger.Error("Failed to save application",
			slog.String("job_id", job.ID),
			slog.String("applicant_id", app.ApplicantID),
			slog.String("error", err.Error()),
		)
		return nil, domain.Submission("Failed to submit application. Please try again.", err)
	}

	in.logger.Info("Application submitted",
		slog.String("application_id", app.ID),
		slog.String("job_id", app.JobID),
		slog.String("applicant_id", app.ApplicantID),
	)

	if in.notifier != nil {
		if err := in.notifier.ApplicationSubmitted(ctx, app); err != nil {
			// The application is stored; only the applicant count lags.
			in.logger.Warn("Failed to publish application event",
				slog.String("application_id", app.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	return app, nil
}

// List returns the applications visible to who: a job seeker's own, or those
// for a company's jobs. Newest first.
func (in *Intake) List(ctx context.Context, who domain.Identity, limit int) ([]domain.Application, error) {
	if !who.IsAuthenticated || who.User == nil {
		return nil, domain.AuthRequired("Please login to view applications.", nil)
	}

	q := Query{Limit: limit}
	switch who.Role {
	case domain.RoleJobSeeker:
		q.ApplicantID = who.User.ID
	case domain.RoleCompany:
		q.EmployerID = who.User.ID
	default:
		return nil, domain.Forbidden("Unknown user type", nil)
	}

	apps, err := in.store.ListApplications(ctx, q)
	if err != nil {
		return nil, domain.Fetch("Failed to fetch applications", err)
	}
	return apps, nil
}

// UpdateStatus moves an application to status on behalf of the employer
// that owns the job.
func (in *Intake) UpdateStatus(ctx context.Context, who domain.Identity, id string, status domain.ApplicationStatus) (*domain.Application, error) {
	if !who.IsAuthenticated || who.User == nil {
		return nil, domain.AuthRequired("Please login to review applications.", nil)
	}
	if who.Role != domain.RoleCompany {
		return nil, domain.Forbidden("Only employers can review applications.", nil)
	}

	app, err := in.store.GetApplication(ctx, id)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return nil, err
		}
		return nil, domain.Fetch("Failed to fetch application", err)
	}
	if app.EmployerID != who.User.ID {
		return nil, domain.Forbidden("You can only review applications for your own jobs.", nil)
	}
	if !domain.CanTransition(app.Status, status) {
		return nil, domain.Conflict(fmt.Sprintf("Cannot move application from %s to %s", app.Status, status), nil)
	}

	now := in.now()
	if err := in.store.UpdateApplicationStatus(ctx, id, status, now); err != nil {
		var de *domain.Error
		if errors.As(err, &de) {
			return nil, de
		}
		return nil, domain.Submission("Failed to update application status", err)
	}

	app.Status = status
	app.UpdatedAt = now

	in.logger.Info("Application status updated",
		slog.String("application_id", id),
		slog.String("status", string(status)),
	)
	return app, nil
}
