package domain

// DefaultSalaryCeiling is the upper salary bound of a cleared filter set.
const DefaultSalaryCeiling = 500000

// JobFilterSet holds the user's browse constraints. Empty strings and zero
// values impose no constraint, with the exception of SalaryFloor where zero is
// already the widest bound.
type JobFilterSet struct {
	Search          string          `json:"search"`
	Location        string          `json:"location"`
	Category        string          `json:"category"`
	JobType         JobType         `json:"job_type"`
	ExperienceLevel ExperienceLevel `json:"experience_level"`
	SalaryFloor     int             `json:"salary_min"`
	SalaryCeiling   int             `json:"salary_max"`
}

// DefaultFilters returns the filter set a browse session starts with and
// returns to on clear.
func DefaultFilters() JobFilterSet {
	return JobFilterSet{SalaryCeiling: DefaultSalaryCeiling}
}

// FilterPatch is a field-level update to a JobFilterSet. Nil fields are left
// untouched by Merge.
type FilterPatch struct {
	Search          *string
	Location        *string
	Category        *string
	JobType         *JobType
	ExperienceLevel *ExperienceLevel
	SalaryFloor     *int
	SalaryCeiling   *int
}

// Merge returns f with every non-nil field of p applied.
func (f JobFilterSet) Merge(p FilterPatch) JobFilterSet {
	if p.Search != nil {
		f.Search = *p.Search
	}
	if p.Location != nil {
		f.Location = *p.Location
	}
	if p.Category != nil {
		f.Category = *p.Category
	}
	if p.JobType != nil {
		f.JobType = *p.JobType
	}
	if p.ExperienceLevel != nil {
		f.ExperienceLevel = *p.ExperienceLevel
	}
	if p.SalaryFloor != nil {
		f.SalaryFloor = *p.SalaryFloor
	}
	if p.SalaryCeiling != nil {
		f.SalaryCeiling = *p.SalaryCeiling
	}
	return f
}
