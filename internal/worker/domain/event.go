package domain

import "time"

// ApplicationEvent is the message body published by the API service
type ApplicationEvent struct {
	EventType     string    `json:"event_type"`
	ApplicationID string    `json:"application_id"`
	JobID         string    `json:"job_id"`
	ApplicantID   string    `json:"applicant_id"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

// ApplicationMessage is a validated event handed to the worker pool
type ApplicationMessage struct {
	ApplicationID string
	JobID         string
	DeliveryTag   uint64
	Redelivered   bool
}

// CountResult is the outcome of counting one application
type CountResult struct {
	ApplicationID  string
	JobID          string
	ApplicantCount int
}
