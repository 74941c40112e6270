package dto

import (
	"strings"
	"time"

	"github.com/cuongbtq/job-board/internal/api/domain"
	"github.com/cuongbtq/job-board/internal/api/pagination"
)

// DefaultCurrency is used when a posted job does not name one.
const DefaultCurrency = "NPR"

// DefaultApplicationWindow is how long a posted job stays open when no
// deadline is given.
const DefaultApplicationWindow = 30 * 24 * time.Hour

// ListJobsRequest is the query string of GET /api/v1/jobs.
type ListJobsRequest struct {
	Search          string `form:"search"`
	Location        string `form:"location"`
	Category        string `form:"category"`
	JobType         string `form:"job_type"`
	ExperienceLevel string `form:"experience_level"`
	SalaryMin       *int   `form:"salary_min" binding:"omitempty,min=0"`
	SalaryMax       *int   `form:"salary_max" binding:"omitempty,min=0"`
	Page            int    `form:"page" binding:"omitempty,min=1"`
}

// Filters returns the default filter set with every supplied parameter
// applied.
func (r *ListJobsRequest) Filters() (domain.JobFilterSet, error) {
	jobType, err := domain.ParseJobType(r.JobType)
	if err != nil {
		return domain.JobFilterSet{}, err
	}
	level, err := domain.ParseExperienceLevel(r.ExperienceLevel)
	if err != nil {
		return domain.JobFilterSet{}, err
	}

	f := domain.DefaultFilters()
	f.Search = strings.TrimSpace(r.Search)
	f.Location = strings.TrimSpace(r.Location)
	f.Category = strings.TrimSpace(r.Category)
	f.JobType = jobType
	f.ExperienceLevel = level
	if r.SalaryMin != nil {
		f.SalaryFloor = *r.SalaryMin
	}
	if r.SalaryMax != nil {
		f.SalaryCeiling = *r.SalaryMax
	}
	return f, nil
}

// CurrentPage returns the requested page, 1 when absent.
func (r *ListJobsRequest) CurrentPage() int {
	if r.Page <= 0 {
		return 1
	}
	return r.Page
}

type ListJobsResponse struct {
	Items      []domain.Job        `json:"items"`
	Pagination pagination.State    `json:"pagination"`
	Window     []pagination.Marker `json:"window"`
	Filters    domain.JobFilterSet `json:"filters"`
}

// CreateJobRequest is the body of POST /api/v1/jobs.
type CreateJobRequest struct {
	Title           string     `json:"title" binding:"required"`
	Location        string     `json:"location" binding:"required"`
	JobType         string     `json:"job_type" binding:"required"`
	ExperienceLevel string     `json:"experience_level" binding:"required"`
	SalaryMin       int        `json:"salary_min" binding:"min=0"`
	SalaryMax       int        `json:"salary_max" binding:"min=0"`
	Currency        string     `json:"currency"`
	Category        string     `json:"category" binding:"required"`
	Description     string     `json:"description" binding:"required"`
	Requirements    []string   `json:"requirements"`
	Benefits        []string   `json:"benefits"`
	Skills          []string   `json:"skills"`
	Deadline        *time.Time `json:"deadline"`
}

// ToJob builds an active job posted by employer at now.
func (r *CreateJobRequest) ToJob(id string, employer *domain.User, now time.Time) (*domain.Job, error) {
	jobType, err := domain.ParseJobType(r.JobType)
	if err != nil {
		return nil, err
	}
	level, err := domain.ParseExperienceLevel(r.ExperienceLevel)
	if err != nil {
		return nil, err
	}

	currency := strings.TrimSpace(r.Currency)
	if currency == "" {
		currency = DefaultCurrency
	}
	deadline := now.Add(DefaultApplicationWindow)
	if r.Deadline != nil {
		if !r.Deadline.After(now) {
			return nil, domain.Validation("Deadline must be in the future", nil)
		}
		deadline = *r.Deadline
	}

	job := &domain.Job{
		ID:              id,
		Title:           strings.TrimSpace(r.Title),
		EmployerID:      employer.ID,
		EmployerName:    employer.DisplayName(),
		Location:        strings.TrimSpace(r.Location),
		JobType:         jobType,
		ExperienceLevel: level,
		Salary: domain.SalaryRange{
			Min:      r.SalaryMin,
			Max:      r.SalaryMax,
			Currency: currency,
		},
		Category:     strings.TrimSpace(r.Category),
		Description:  r.Description,
		Requirements: cleanList(r.Requirements),
		Benefits:     cleanList(r.Benefits),
		Skills:       cleanList(r.Skills),
		PostedAt:     now,
		Deadline:     deadline,
		IsActive:     true,
	}
	if err := job.Validate(); err != nil {
		return nil, err
	}
	return job, nil
}

type SetActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// cleanList trims entries and drops empty ones. The result is never nil.
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
