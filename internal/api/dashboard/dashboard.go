// Package dashboard builds the per-role summary shown after sign-in.
package dashboard

import (
	"github.com/cuongbtq/job-board/internal/api/domain"
)

// RecentLimit caps the recent jobs and applications lists.
const RecentLimit = 5

type SeekerSummary struct {
	Total    int                  `json:"total"`
	Pending  int                  `json:"pending"`
	Reviewed int                  `json:"reviewed"`
	Accepted int                  `json:"accepted"`
	Rejected int                  `json:"rejected"`
	Recent   []domain.Application `json:"recent_applications"`
}

type CompanySummary struct {
	ActiveJobs         int                  `json:"active_jobs"`
	TotalApplications  int                  `json:"total_applications"`
	TotalApplicants    int                  `json:"total_applicants"`
	NewApplications    int                  `json:"new_applications"`
	RecentJobs         []domain.Job         `json:"recent_jobs"`
	RecentApplications []domain.Application `json:"recent_applications"`
}

// Dashboard carries exactly one of Seeker or Company.
type Dashboard struct {
	Role    domain.Role     `json:"role"`
	Seeker  *SeekerSummary  `json:"seeker,omitempty"`
	Company *CompanySummary `json:"company,omitempty"`
}

// Summarize builds who's dashboard. apps must already be scoped to who and
// ordered newest first; jobs may be the whole board.
func Summarize(who domain.Identity, jobs []domain.Job, apps []domain.Application) (*Dashboard, error) {
	if !who.IsAuthenticated || who.User == nil {
		return nil, domain.AuthRequired("Please login to view your dashboard.", nil)
	}

	switch who.Role {
	case domain.RoleJobSeeker:
		return &Dashboard{Role: who.Role, Seeker: seeker(apps)}, nil
	case domain.RoleCompany:
		return &Dashboard{Role: who.Role, Company: company(who.User.ID, jobs, apps)}, nil
	}
	return nil, domain.Forbidden("Unknown user type", nil)
}

func seeker(apps []domain.Application) *SeekerSummary {
	s := &SeekerSummary{Total: len(apps), Recent: head(apps)}
	for i := range apps {
		switch apps[i].Status {
		case domain.ApplicationPending:
			s.Pending++
		case domain.ApplicationReviewed:
			s.Reviewed++
		case domain.ApplicationAccepted:
			s.Accepted++
		case domain.ApplicationRejected:
			s.Rejected++
		}
	}
	return s
}

func company(employerID string, jobs []domain.Job, apps []domain.Application) *CompanySummary {
	s := &CompanySummary{
		TotalApplications:  len(apps),
		RecentApplications: head(apps),
		RecentJobs:         make([]domain.Job, 0, RecentLimit),
	}
	for i := range jobs {
		if jobs[i].EmployerID != employerID {
			continue
		}
		if jobs[i].IsActive {
			s.ActiveJobs++
		}
		s.TotalApplicants += jobs[i].ApplicantCount
		if len(s.RecentJobs) < RecentLimit {
			s.RecentJobs = append(s.RecentJobs, jobs[i])
		}
	}
	for i := range apps {
		if apps[i].Status == domain.ApplicationPending {
			s.NewApplications++
		}
	}
	return s
}

func head[T any](items []T) []T {
	n := min(len(items), RecentLimit)
	out := make([]T, n)
	copy(out, items[:n])
	return out
}
