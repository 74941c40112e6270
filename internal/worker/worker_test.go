package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/cuongbtq/job-board/internal/worker/domain"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const appID = "3f8a2b9e-4c1d-4e6f-9a7b-2c5d8e1f0a3b"

type ackRecord struct {
	tag     uint64
	acked   bool
	requeue bool
}

type fakeAcker struct {
	mu      sync.Mutex
	records []ackRecord
}

func (a *fakeAcker) Ack(tag uint64, multiple bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.records = append(a.records, ackRecord{tag: tag, acked: true})
	return nil
}

func (a *fakeAcker) Nack(tag uint64, multiple, requeue bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.records = append(a.records, ackRecord{tag: tag, requeue: requeue})
	return nil
}

func (a *fakeAcker) Reject(tag uint64, requeue bool) error {
	return a.Nack(tag, false, requeue)
}

func (a *fakeAcker) snapshot() []ackRecord {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]ackRecord(nil), a.records...)
}

type fakeCounter struct {
	mu     sync.Mutex
	counts map[string]int
	errs   []error
}

func (c *fakeCounter) CountApplication(ctx context.Context, applicationID string) (*domain.CountResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.errs) > 0 {
		err := c.errs[0]
		c.errs = c.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	c.counts[applicationID]++
	return &domain.CountResult{ApplicationID: applicationID, JobID: "job-1", ApplicantCount: c.counts[applicationID]}, nil
}

type fakeConsumer struct {
	deliveries chan amqp.Delivery
	err        error
}

func (c *fakeConsumer) Consume(consumerTag string) (<-chan amqp.Delivery, error) {
	return c.deliveries, c.err
}

func newTestWorker(counter Counter, consumer Consumer) *Worker {
	return NewWorker(&Config{
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		Storage:     counter,
		Consumer:    consumer,
		WorkerID:    "test",
		Concurrency: 2,
		JobTimeout:  time.Second,
	})
}

func delivery(acker amqp.Acknowledger, tag uint64, body string, redelivered bool) amqp.Delivery {
	return amqp.Delivery{
		Acknowledger: acker,
		DeliveryTag:  tag,
		Redelivered:  redelivered,
		Body:         []byte(body),
	}
}

const validBody = `{"event_type":"application.submitted","application_id":"` + appID + `","job_id":"job-1","applicant_id":"1"}`

func TestParseMessage(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: validBody},
		{name: "malformed json", body: `{"event_type":`, wantErr: true},
		{name: "wrong event type", body: `{"event_type":"job.created","application_id":"` + appID + `","job_id":"job-1"}`, wantErr: true},
		{name: "application id not a uuid", body: `{"event_type":"application.submitted","application_id":"abc","job_id":"job-1"}`, wantErr: true},
		{name: "missing job id", body: `{"event_type":"application.submitted","application_id":"` + appID + `"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := parseMessage([]byte(tt.body))
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrInvalidMessage)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, appID, msg.ApplicationID)
			assert.Equal(t, "job-1", msg.JobID)
		})
	}
}

func TestShouldRequeue(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "retryable", err: domain.NewRetryableError(errors.New("connection reset")), want: true},
		{name: "application missing", err: domain.ErrApplicationNotFound, want: false},
		{name: "job missing", err: domain.ErrJobNotFound, want: false},
		{name: "invalid message", err: domain.ErrInvalidMessage, want: false},
		{name: "retries exhausted", err: domain.ErrMaxRetriesExceeded, want: false},
		{name: "unknown", err: errors.New("boom"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shouldRequeue(tt.err))
		})
	}
}

func TestProcessApplication(t *testing.T) {
	transient := errors.New("connection reset")

	tests := []struct {
		name        string
		err         error
		redelivered bool
		wantErr     error
		retryable   bool
	}{
		{name: "counted"},
		{name: "duplicate delivery is success", err: domain.ErrAlreadyCounted},
		{name: "missing application", err: domain.ErrApplicationNotFound, wantErr: domain.ErrApplicationNotFound},
		{name: "transient error is retryable", err: transient, wantErr: transient, retryable: true},
		{name: "transient error on redelivery gives up", err: transient, redelivered: true, wantErr: domain.ErrMaxRetriesExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorker(&fakeCounter{errs: []error{tt.err}}, nil)

			err := w.processApplication(context.Background(), &domain.ApplicationMessage{
				ApplicationID: appID,
				Redelivered:   tt.redelivered,
			})
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.retryable, shouldRequeue(err))
		})
	}
}

func TestWorker_AcksAndNacks(t *testing.T) {
	counter := &fakeCounter{errs: []error{nil, domain.ErrJobNotFound}}
	consumer := &fakeConsumer{deliveries: make(chan amqp.Delivery)}
	w := newTestWorker(counter, consumer)
	w.concurrency = 1
	acker := &fakeAcker{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	consumer.deliveries <- delivery(acker, 1, validBody, false)
	consumer.deliveries <- delivery(acker, 2, `not json`, false)
	consumer.deliveries <- delivery(acker, 3, validBody, false)

	assert.Eventually(t, func() bool { return len(acker.snapshot()) == 3 }, time.Second, 5*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
	w.Stop()

	records := acker.snapshot()
	byTag := make(map[uint64]ackRecord)
	for _, r := range records {
		byTag[r.tag] = r
	}
	assert.True(t, byTag[1].acked)
	assert.False(t, byTag[2].acked)
	assert.False(t, byTag[2].requeue, "invalid messages are dropped")
	assert.False(t, byTag[3].acked)
	assert.False(t, byTag[3].requeue, "missing job is not retried")
}

func TestWorker_StartFailsWhenDeliveriesClose(t *testing.T) {
	consumer := &fakeConsumer{deliveries: make(chan amqp.Delivery)}
	w := newTestWorker(&fakeCounter{}, consumer)

	close(consumer.deliveries)
	err := w.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delivery channel closed")
	w.Stop()
}

func TestWorker_StartFailsWhenConsumeFails(t *testing.T) {
	w := newTestWorker(&fakeCounter{}, &fakeConsumer{err: errors.New("channel closed")})

	err := w.Start(context.Background())
	assert.EqualError(t, err, "channel closed")
}
