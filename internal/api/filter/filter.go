// Package filter decides which jobs a filter set admits.
package filter

import (
	"strings"

	"github.com/cuongbtq/job-board/internal/api/domain"
)

// Matches reports whether job passes every clause of f. Inactive jobs never
// match. Text clauses are case-insensitive; the salary clause requires the
// job's whole range to sit inside [SalaryFloor, SalaryCeiling], with a zero
// ceiling meaning unbounded.
func Matches(job *domain.Job, f domain.JobFilterSet) bool {
	if !job.IsActive {
		return false
	}

	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !containsFold(job.Title, q) &&
			!containsFold(job.EmployerName, q) &&
			!containsFold(job.Description, q) {
			return false
		}
	}

	if f.Location != "" && !containsFold(job.Location, strings.ToLower(f.Location)) {
		return false
	}

	if f.Category != "" && !strings.EqualFold(job.Category, f.Category) {
		return false
	}

	if f.JobType != "" && job.JobType != f.JobType {
		return false
	}

	if f.ExperienceLevel != "" && job.ExperienceLevel != f.ExperienceLevel {
		return false
	}

	if job.Salary.Min < f.SalaryFloor {
		return false
	}
	if f.SalaryCeiling > 0 && job.Salary.Max > f.SalaryCeiling {
		return false
	}

	return true
}

// Apply returns the jobs that match f, preserving collection order. The
// result never aliases jobs.
func Apply(jobs []domain.Job, f domain.JobFilterSet) []domain.Job {
	out := make([]domain.Job, 0, len(jobs))
	for i := range jobs {
		if Matches(&jobs[i], f) {
			out = append(out, jobs[i])
		}
	}
	return out
}

// containsFold reports whether lowered q occurs in s, ignoring case.
func containsFold(s, q string) bool {
	return strings.Contains(strings.ToLower(s), q)
}
