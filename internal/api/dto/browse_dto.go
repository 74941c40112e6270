package dto

import (
	"github.com/cuongbtq/job-board/internal/api/domain"
	"github.com/cuongbtq/job-board/internal/api/listing"
)

// FilterPatchRequest is a partial filter update. Absent fields keep their
// current value.
type FilterPatchRequest struct {
	Search          *string `json:"search"`
	Location        *string `json:"location"`
	Category        *string `json:"category"`
	JobType         *string `json:"job_type"`
	ExperienceLevel *string `json:"experience_level"`
	SalaryMin       *int    `json:"salary_min"`
	SalaryMax       *int    `json:"salary_max"`
}

// ToPatch validates the enum and salary fields and converts the request.
func (r *FilterPatchRequest) ToPatch() (domain.FilterPatch, error) {
	p := domain.FilterPatch{
		Search:   r.Search,
		Location: r.Location,
		Category: r.Category,
	}

	if r.JobType != nil {
		jt, err := domain.ParseJobType(*r.JobType)
		if err != nil {
			return domain.FilterPatch{}, err
		}
		p.JobType = &jt
	}
	if r.ExperienceLevel != nil {
		lvl, err := domain.ParseExperienceLevel(*r.ExperienceLevel)
		if err != nil {
			return domain.FilterPatch{}, err
		}
		p.ExperienceLevel = &lvl
	}
	if r.SalaryMin != nil {
		if *r.SalaryMin < 0 {
			return domain.FilterPatch{}, domain.Validation("salary_min cannot be negative", nil)
		}
		p.SalaryFloor = r.SalaryMin
	}
	if r.SalaryMax != nil {
		if *r.SalaryMax < 0 {
			return domain.FilterPatch{}, domain.Validation("salary_max cannot be negative", nil)
		}
		p.SalaryCeiling = r.SalaryMax
	}
	return p, nil
}

type SetPageRequest struct {
	Page *int `json:"page" binding:"required"`
}

type SelectJobRequest struct {
	JobID string `json:"job_id" binding:"required"`
}

// BrowseResponse is a browse session snapshot tagged with its session id.
type BrowseResponse struct {
	SessionID string `json:"session_id"`
	listing.Snapshot
}
