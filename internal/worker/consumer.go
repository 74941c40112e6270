package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/cuongbtq/job-board/internal/worker/domain"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// parseMessage validates a delivery body
func parseMessage(body []byte) (*domain.ApplicationMessage, error) {
	var evt domain.ApplicationEvent
	if err := json.Unmarshal(body, &evt); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidMessage, err)
	}

	if evt.EventType != domain.EventApplicationSubmitted {
		return nil, fmt.Errorf("%w: unexpected event type %q", domain.ErrInvalidMessage, evt.EventType)
	}

	if _, err := uuid.Parse(evt.ApplicationID); err != nil {
		return nil, fmt.Errorf("%w: application_id is not a UUID", domain.ErrInvalidMessage)
	}

	if evt.JobID == "" {
		return nil, fmt.Errorf("%w: job_id is required", domain.ErrInvalidMessage)
	}

	return &domain.ApplicationMessage{
		ApplicationID: evt.ApplicationID,
		JobID:         evt.JobID,
	}, nil
}

// startMessageDispatcher parses deliveries and dispatches them to the worker
// pool. It reports whether it stopped because deliveries was closed.
func (w *Worker) startMessageDispatcher(ctx context.Context, deliveries <-chan amqp.Delivery) bool {
	w.logger.Info("Message dispatcher started",
		slog.String("worker_id", w.workerID),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Message dispatcher stopped - context canceled")
			return false

		case delivery, ok := <-deliveries:
			if !ok {
				w.logger.Warn("RabbitMQ delivery channel closed")
				return true
			}

			msg, err := parseMessage(delivery.Body)
			if err != nil {
				w.logger.Error("Discarding invalid message",
					slog.String("error", err.Error()),
					slog.String("body", string(delivery.Body)),
				)
				// Malformed messages go to the dead letter queue, if any
				if nackErr := delivery.Nack(false, false); nackErr != nil {
					w.logger.Error("Failed to NACK invalid message",
						slog.String("error", nackErr.Error()),
					)
				}
				continue
			}
			msg.DeliveryTag = delivery.DeliveryTag
			msg.Redelivered = delivery.Redelivered

			select {
			case w.tasks <- task{msg: msg, ack: delivery.Acknowledger}:
				w.logger.Debug("Application event dispatched to worker pool",
					slog.String("application_id", msg.ApplicationID),
					slog.Uint64("delivery_tag", delivery.DeliveryTag),
				)
			case <-ctx.Done():
				w.logger.Info("Message dispatcher stopped while dispatching")
				if nackErr := delivery.Nack(false, true); nackErr != nil {
					w.logger.Error("Failed to NACK message on shutdown",
						slog.String("error", nackErr.Error()),
					)
				}
				return false
			}
		}
	}
}
