package domain

import (
	"fmt"
	"time"
)

// ApplicationStatus is the review state of an application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationReviewed ApplicationStatus = "reviewed"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

// statusTransitions lists every allowed (from -> to) pair. Accepted and
// rejected are terminal and nothing returns to pending.
var statusTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationPending:  {ApplicationReviewed, ApplicationAccepted, ApplicationRejected},
	ApplicationReviewed: {ApplicationAccepted, ApplicationRejected},
}

// ParseApplicationStatus converts a raw string to an ApplicationStatus.
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	st := ApplicationStatus(s)
	switch st {
	case ApplicationPending, ApplicationReviewed, ApplicationAccepted, ApplicationRejected:
		return st, nil
	}
	return "", Validation(fmt.Sprintf("unknown application status %q", s), nil)
}

// CanTransition reports whether an application may move from one status to
// another.
func CanTransition(from, to ApplicationStatus) bool {
	for _, s := range statusTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further status change is possible.
func (s ApplicationStatus) IsTerminal() bool {
	return len(statusTransitions[s]) == 0
}

// Application is a submitted job application. Job and applicant details are
// snapshots taken at submission time.
type Application struct {
	ID             string            `json:"id"`
	JobID          string            `json:"job_id"`
	JobTitle       string            `json:"job_title"`
	EmployerID     string            `json:"employer_id"`
	EmployerName   string            `json:"employer_name"`
	ApplicantID    string            `json:"applicant_id"`
	ApplicantName  string            `json:"applicant_name"`
	ApplicantEmail string            `json:"applicant_email"`
	CoverLetter    string            `json:"cover_letter"`
	Resume         string            `json:"resume,omitempty"`
	Status         ApplicationStatus `json:"status"`
	SubmittedAt    time.Time         `json:"submitted_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}
