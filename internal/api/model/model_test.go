package model

import (
	"testing"
	"time"

	"github.com/cuongbtq/job-board/internal/api/domain"
	"github.com/stretchr/testify/assert"
)

func TestJobRow_DeadlineAndArrays(t *testing.T) {
	posted := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	j := domain.Job{
		ID:         "job-1",
		Title:      "Go Developer",
		EmployerID: "2",
		JobType:    domain.JobTypeFullTime,
		Salary:     domain.SalaryRange{Min: 10, Max: 20, Currency: "NPR"},
		Skills:     []string{"Go"},
		PostedAt:   posted,
		IsActive:   true,
	}

	row := JobFromDomain(&j)
	assert.False(t, row.Deadline.Valid, "zero deadline is stored as NULL")
	assert.NotNil(t, row.Requirements)

	back := row.ToDomain()
	assert.Equal(t, j.Skills, back.Skills)
	assert.Equal(t, []string{}, back.Benefits)
	assert.True(t, back.Deadline.IsZero())
	assert.Equal(t, j.Salary, back.Salary)

	j.Deadline = posted.Add(time.Hour)
	row = JobFromDomain(&j)
	assert.True(t, row.Deadline.Valid)
	assert.Equal(t, j.Deadline, row.ToDomain().Deadline)
}

func TestApplicationRow_Status(t *testing.T) {
	a := domain.Application{ID: "a1", Status: domain.ApplicationReviewed}
	row := ApplicationFromDomain(&a)
	assert.Equal(t, "reviewed", row.Status)
	assert.Equal(t, domain.ApplicationReviewed, row.ToDomain().Status)
}
