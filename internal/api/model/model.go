package model

import (
	"database/sql"
	"time"

	"github.com/cuongbtq/job-board/internal/api/domain"
	"github.com/lib/pq"
)

// Job is a row of the jobs table.
type Job struct {
	JobID           string         `db:"job_id"`
	Title           string         `db:"title"`
	EmployerID      string         `db:"employer_id"`
	EmployerName    string         `db:"employer_name"`
	Location        string         `db:"location"`
	JobType         string         `db:"job_type"`
	ExperienceLevel string         `db:"experience_level"`
	SalaryMin       int            `db:"salary_min"`
	SalaryMax       int            `db:"salary_max"`
	Currency        string         `db:"currency"`
	Category        string         `db:"category"`
	Description     string         `db:"description"`
	Requirements    pq.StringArray `db:"requirements"`
	Benefits        pq.StringArray `db:"benefits"`
	Skills          pq.StringArray `db:"skills"`
	PostedAt        time.Time      `db:"posted_at"`
	Deadline        sql.NullTime   `db:"deadline"`
	IsActive        bool           `db:"is_active"`
	ApplicantCount  int            `db:"applications_count"`
}

// Application is a row of the applications table.
type Application struct {
	ApplicationID  string    `db:"application_id"`
	JobID          string    `db:"job_id"`
	JobTitle       string    `db:"job_title"`
	EmployerID     string    `db:"employer_id"`
	EmployerName   string    `db:"employer_name"`
	ApplicantID    string    `db:"applicant_id"`
	ApplicantName  string    `db:"applicant_name"`
	ApplicantEmail string    `db:"applicant_email"`
	CoverLetter    string    `db:"cover_letter"`
	Resume         string    `db:"resume"`
	Status         string    `db:"status"`
	SubmittedAt    time.Time `db:"submitted_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func JobFromDomain(j *domain.Job) Job {
	row := Job{
		JobID:           j.ID,
		Title:           j.Title,
		EmployerID:      j.EmployerID,
		EmployerName:    j.EmployerName,
		Location:        j.Location,
		JobType:         string(j.JobType),
		ExperienceLevel: string(j.ExperienceLevel),
		SalaryMin:       j.Salary.Min,
		SalaryMax:       j.Salary.Max,
		Currency:        j.Salary.Currency,
		Category:        j.Category,
		Description:     j.Description,
		Requirements:    pq.StringArray(nonNil(j.Requirements)),
		Benefits:        pq.StringArray(nonNil(j.Benefits)),
		Skills:          pq.StringArray(nonNil(j.Skills)),
		PostedAt:        j.PostedAt,
		IsActive:        j.IsActive,
		ApplicantCount:  j.ApplicantCount,
	}
	if !j.Deadline.IsZero() {
		row.Deadline = sql.NullTime{Time: j.Deadline, Valid: true}
	}
	return row
}

func (r *Job) ToDomain() domain.Job {
	j := domain.Job{
		ID:              r.JobID,
		Title:           r.Title,
		EmployerID:      r.EmployerID,
		EmployerName:    r.EmployerName,
		Location:        r.Location,
		JobType:         domain.JobType(r.JobType),
		ExperienceLevel: domain.ExperienceLevel(r.ExperienceLevel),
		Salary:          domain.SalaryRange{Min: r.SalaryMin, Max: r.SalaryMax, Currency: r.Currency},
		Category:        r.Category,
		Description:     r.Description,
		Requirements:    nonNil(r.Requirements),
		Benefits:        nonNil(r.Benefits),
		Skills:          nonNil(r.Skills),
		PostedAt:        r.PostedAt,
		IsActive:        r.IsActive,
		ApplicantCount:  r.ApplicantCount,
	}
	if r.Deadline.Valid {
		j.Deadline = r.Deadline.Time
	}
	return j
}

func ApplicationFromDomain(a *domain.Application) Application {
	return Application{
		ApplicationID:  a.ID,
		JobID:          a.JobID,
		JobTitle:       a.JobTitle,
		EmployerID:     a.EmployerID,
		EmployerName:   a.EmployerName,
		ApplicantID:    a.ApplicantID,
		ApplicantName:  a.ApplicantName,
		ApplicantEmail: a.ApplicantEmail,
		CoverLetter:    a.CoverLetter,
		Resume:         a.Resume,
		Status:         string(a.Status),
		SubmittedAt:    a.SubmittedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func (r *Application) ToDomain() domain.Application {
	return domain.Application{
		ID:             r.ApplicationID,
		JobID:          r.JobID,
		JobTitle:       r.JobTitle,
		EmployerID:     r.EmployerID,
		EmployerName:   r.EmployerName,
		ApplicantID:    r.ApplicantID,
		ApplicantName:  r.ApplicantName,
		ApplicantEmail: r.ApplicantEmail,
		CoverLetter:    r.CoverLetter,
		Resume:         r.Resume,
		Status:         domain.ApplicationStatus(r.Status),
		SubmittedAt:    r.SubmittedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
