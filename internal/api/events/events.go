// Package events tells the rest of the system that an application was
// recorded.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/cuongbtq/job-board/internal/api/domain"
	"github.com/cuongbtq/job-board/internal/api/intake"
	"github.com/cuongbtq/job-board/internal/api/listing"
)

// TypeApplicationSubmitted is the event_type of ApplicationSubmitted.
const TypeApplicationSubmitted = "application.submitted"

// ApplicationSubmitted is the message body consumed by the worker service.
type ApplicationSubmitted struct {
	EventType     string    `json:"event_type"`
	ApplicationID string    `json:"application_id"`
	JobID         string    `json:"job_id"`
	ApplicantID   string    `json:"applicant_id"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

func NewApplicationSubmitted(app *domain.Application) ApplicationSubmitted {
	return ApplicationSubmitted{
		EventType:     TypeApplicationSubmitted,
		ApplicationID: app.ID,
		JobID:         app.JobID,
		ApplicantID:   app.ApplicantID,
		SubmittedAt:   app.SubmittedAt,
	}
}

// Publisher is satisfied by *rabbitmq.Client.
type Publisher interface {
	PublishWithRetry(ctx context.Context, body []byte, contentType string) error
}

// BrokerNotifier publishes application events to the message broker.
type BrokerNotifier struct {
	publisher Publisher
	logger    *slog.Logger
}

var _ intake.Notifier = (*BrokerNotifier)(nil)

func NewBrokerNotifier(publisher Publisher, logger *slog.Logger) *BrokerNotifier {
	return &BrokerNotifier{publisher: publisher, logger: logger}
}

func (n *BrokerNotifier) ApplicationSubmitted(ctx context.Context, app *domain.Application) error {
	body, err := json.Marshal(NewApplicationSubmitted(app))
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := n.publisher.PublishWithRetry(ctx, body, "application/json"); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	n.logger.Debug("Published application event",
		slog.String("application_id", app.ID),
		slog.String("job_id", app.JobID),
	)
	return nil
}

// Counter is satisfied by *listing.MemorySource.
type Counter interface {
	IncrementApplicantCount(ctx context.Context, id string) error
	GetJob(ctx context.Context, id string) (*domain.Job, error)
}

// LocalNotifier applies the applicant count change in process and pushes the
// updated job to every live browse session.
type LocalNotifier struct {
	counter  Counter
	registry *listing.Registry
	logger   *slog.Logger
}

var _ intake.Notifier = (*LocalNotifier)(nil)

func NewLocalNotifier(counter Counter, registry *listing.Registry, logger *slog.Logger) *LocalNotifier {
	return &LocalNotifier{counter: counter, registry: registry, logger: logger}
}

func (n *LocalNotifier) ApplicationSubmitted(ctx context.Context, app *domain.Application) error {
	if err := n.counter.IncrementApplicantCount(ctx, app.JobID); err != nil {
		return fmt.Errorf("failed to increment applicant count: %w", err)
	}

	job, err := n.counter.GetJob(ctx, app.JobID)
	if err != nil {
		return fmt.Errorf("failed to reload job: %w", err)
	}

	if n.registry != nil {
		n.registry.Each(func(m *listing.Manager) {
			m.UpdateItem(*job)
		})
	}

	n.logger.Debug("Applicant count updated",
		slog.String("job_id", job.ID),
		slog.Int("applicant_count", job.ApplicantCount),
	)
	return nil
}
