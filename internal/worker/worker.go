package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/cuongbtq/job-board/internal/worker/domain"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Counter applies one application to its job's applicant count.
// *storage.Storage satisfies it.
type Counter interface {
	CountApplication(ctx context.Context, applicationID string) (*domain.CountResult, error)
}

// Consumer hands out broker deliveries. *rabbitmq.Client satisfies it.
type Consumer interface {
	Consume(consumerTag string) (<-chan amqp.Delivery, error)
}

// Config holds worker configuration
type Config struct {
	Logger      *slog.Logger
	Storage     Counter
	Consumer    Consumer
	WorkerID    string
	Concurrency int
	MaxJobs     int
	JobTimeout  time.Duration
}

// task is a message together with the acknowledger of its delivery
type task struct {
	msg *domain.ApplicationMessage
	ack amqp.Acknowledger
}

// Worker consumes application events and keeps applicant counts current
type Worker struct {
	logger      *slog.Logger
	storage     Counter
	consumer    Consumer
	workerID    string
	concurrency int
	jobTimeout  time.Duration
	tasks       chan task
	wg          sync.WaitGroup
	stopChan    chan struct{}
	stopOnce    sync.Once
}

// NewWorker creates a new worker instance
func NewWorker(cfg *Config) *Worker {
	workerID := cfg.WorkerID
	if workerID == "" {
		workerID = "worker-" + uuid.New().String()[:8]
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	jobTimeout := cfg.JobTimeout
	if jobTimeout <= 0 {
		jobTimeout = 30 * time.Second
	}

	return &Worker{
		logger:      cfg.Logger,
		storage:     cfg.Storage,
		consumer:    cfg.Consumer,
		workerID:    workerID,
		concurrency: concurrency,
		jobTimeout:  jobTimeout,
		tasks:       make(chan task, max(cfg.MaxJobs, 0)),
		stopChan:    make(chan struct{}),
	}
}

// Start consumes events until ctx is canceled or the delivery channel closes
func (w *Worker) Start(ctx context.Context) error {
	w.logger.Info("Starting worker",
		slog.String("worker_id", w.workerID),
		slog.Int("concurrency", w.concurrency),
		slog.Duration("job_timeout", w.jobTimeout),
	)

	deliveries, err := w.consumer.Consume(w.workerID)
	if err != nil {
		return err
	}

	w.spawnWorkerPool(ctx)

	if closed := w.startMessageDispatcher(ctx, deliveries); closed {
		return errors.New("delivery channel closed")
	}
	return nil
}

// Stop gracefully stops the worker
func (w *Worker) Stop() {
	w.logger.Info("Stopping worker...")
	w.stopOnce.Do(func() { close(w.stopChan) })
	w.wg.Wait()
	w.logger.Info("Worker stopped")
}
