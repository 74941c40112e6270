package domain

import (
	"fmt"
	"strings"
	"time"
)

// JobType is the employment arrangement of a job.
type JobType string

const (
	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
	JobTypeRemote     JobType = "remote"
)

// ParseJobType converts a raw string to a JobType. The empty string is
// accepted and means "no constraint" when used in a filter.
func ParseJobType(s string) (JobType, error) {
	jt := JobType(strings.TrimSpace(s))
	switch jt {
	case "", JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship, JobTypeRemote:
		return jt, nil
	}
	return "", Validation(fmt.Sprintf("unknown job type %q", s), nil)
}

// ExperienceLevel is the seniority a job targets.
type ExperienceLevel string

const (
	ExperienceEntry     ExperienceLevel = "entry"
	ExperienceMid       ExperienceLevel = "mid"
	ExperienceSenior    ExperienceLevel = "senior"
	ExperienceExecutive ExperienceLevel = "executive"
)

// ParseExperienceLevel converts a raw string to an ExperienceLevel. The empty
// string is accepted and means "no constraint" when used in a filter.
func ParseExperienceLevel(s string) (ExperienceLevel, error) {
	lvl := ExperienceLevel(strings.TrimSpace(s))
	switch lvl {
	case "", ExperienceEntry, ExperienceMid, ExperienceSenior, ExperienceExecutive:
		return lvl, nil
	}
	return "", Validation(fmt.Sprintf("unknown experience level %q", s), nil)
}

// SalaryRange is a salary band. Min never exceeds Max.
type SalaryRange struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Currency string `json:"currency"`
}

// Job is a single posting in the canonical collection.
type Job struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	EmployerID      string          `json:"employer_id"`
	EmployerName    string          `json:"employer_name"`
	Location        string          `json:"location"`
	JobType         JobType         `json:"job_type"`
	ExperienceLevel ExperienceLevel `json:"experience_level"`
	Salary          SalaryRange     `json:"salary"`
	Category        string          `json:"category"`
	Description     string          `json:"description"`
	Requirements    []string        `json:"requirements"`
	Benefits        []string        `json:"benefits"`
	Skills          []string        `json:"skills"`
	PostedAt        time.Time       `json:"posted_at"`
	Deadline        time.Time       `json:"deadline"`
	IsActive        bool            `json:"is_active"`
	ApplicantCount  int             `json:"applicant_count"`
}

// Validate checks the invariants a job must hold before it enters the
// canonical collection.
func (j *Job) Validate() error {
	if strings.TrimSpace(j.Title) == "" {
		return Validation("job title is required", nil)
	}
	if j.EmployerID == "" {
		return Validation("job employer is required", nil)
	}
	if _, err := ParseJobType(string(j.JobType)); err != nil || j.JobType == "" {
		return Validation(fmt.Sprintf("invalid job type %q", j.JobType), nil)
	}
	if _, err := ParseExperienceLevel(string(j.ExperienceLevel)); err != nil || j.ExperienceLevel == "" {
		return Validation(fmt.Sprintf("invalid experience level %q", j.ExperienceLevel), nil)
	}
	if j.Salary.Min < 0 || j.Salary.Min > j.Salary.Max {
		return Validation("salary minimum must be between 0 and the maximum", nil)
	}
	if j.ApplicantCount < 0 {
		return Validation("applicant count cannot be negative", nil)
	}
	return nil
}
