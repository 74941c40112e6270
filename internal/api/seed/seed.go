// Package seed provides the demo job collection used by the in-memory data
// source and by the -seed flag of the API service.
package seed

import (
	"fmt"
	"time"

	"github.com/cuongbtq/job-board/internal/api/domain"
)

type employer struct {
	id   string
	name string
}

var (
	techCorp   = employer{"2", "TechCorp Nepal"}
	himalayan  = employer{"101", "Himalayan Software"}
	everest    = employer{"102", "Everest Fintech"}
	kathmandu  = employer{"103", "Kathmandu Creative Studio"}
	annapurna  = employer{"104", "Annapurna Health"}
	pokharaEdu = employer{"105", "Pokhara Learning Labs"}
)

type template struct {
	title    string
	emp      employer
	location string
	jobType  domain.JobType
	level    domain.ExperienceLevel
	category string
	min, max int
	skills   []string
	active   bool
	count    int
}

var templates = []template{
	{"Senior Backend Engineer", techCorp, "Kathmandu", domain.JobTypeFullTime, domain.ExperienceSenior, "Engineering", 150000, 250000, []string{"Go", "PostgreSQL", "RabbitMQ"}, true, 12},
	{"Frontend Developer", techCorp, "Kathmandu", domain.JobTypeFullTime, domain.ExperienceMid, "Engineering", 80000, 140000, []string{"React", "TypeScript"}, true, 25},
	{"QA Intern", techCorp, "Lalitpur", domain.JobTypeInternship, domain.ExperienceEntry, "Engineering", 15000, 25000, []string{"Testing"}, true, 40},
	{"DevOps Engineer", techCorp, "Remote", domain.JobTypeRemote, domain.ExperienceMid, "Engineering", 120000, 200000, []string{"Kubernetes", "Terraform"}, false, 7},
	{"Mobile Developer", himalayan, "Kathmandu", domain.JobTypeFullTime, domain.ExperienceMid, "Engineering", 90000, 160000, []string{"Flutter", "Kotlin"}, true, 18},
	{"Data Analyst", himalayan, "Lalitpur", domain.JobTypeFullTime, domain.ExperienceEntry, "Data", 50000, 90000, []string{"SQL", "Python"}, true, 33},
	{"Engineering Manager", himalayan, "Kathmandu", domain.JobTypeFullTime, domain.ExperienceExecutive, "Management", 300000, 450000, []string{"Leadership"}, true, 4},
	{"Machine Learning Engineer", himalayan, "Remote", domain.JobTypeRemote, domain.ExperienceSenior, "Data", 200000, 350000, []string{"Python", "PyTorch"}, true, 9},
	{"Financial Analyst", everest, "Kathmandu", domain.JobTypeFullTime, domain.ExperienceMid, "Finance", 70000, 120000, []string{"Excel", "Modeling"}, true, 15},
	{"Compliance Officer", everest, "Kathmandu", domain.JobTypeContract, domain.ExperienceSenior, "Finance", 110000, 180000, []string{"AML", "Risk"}, true, 6},
	{"Payments Engineer", everest, "Bhaktapur", domain.JobTypeFullTime, domain.ExperienceSenior, "Engineering", 180000, 280000, []string{"Go", "Kafka"}, true, 11},
	{"Customer Support Associate", everest, "Pokhara", domain.JobTypePartTime, domain.ExperienceEntry, "Support", 25000, 40000, []string{"Communication"}, true, 52},
	{"UI/UX Designer", kathmandu, "Kathmandu", domain.JobTypeFullTime, domain.ExperienceMid, "Design", 70000, 130000, []string{"Figma", "Prototyping"}, true, 21},
	{"Graphic Design Intern", kathmandu, "Kathmandu", domain.JobTypeInternship, domain.ExperienceEntry, "Design", 10000, 20000, []string{"Illustrator"}, true, 37},
	{"Content Writer", kathmandu, "Remote", domain.JobTypeRemote, domain.ExperienceEntry, "Marketing", 30000, 55000, []string{"Copywriting", "SEO"}, true, 29},
	{"Marketing Lead", kathmandu, "Lalitpur", domain.JobTypeFullTime, domain.ExperienceSenior, "Marketing", 140000, 220000, []string{"Strategy", "Analytics"}, false, 8},
	{"Staff Nurse", annapurna, "Pokhara", domain.JobTypeFullTime, domain.ExperienceMid, "Healthcare", 45000, 70000, []string{"Patient Care"}, true, 19},
	{"Medical Officer", annapurna, "Pokhara", domain.JobTypeContract, domain.ExperienceSenior, "Healthcare", 150000, 240000, []string{"MBBS"}, true, 5},
	{"Health Data Coordinator", annapurna, "Chitwan", domain.JobTypePartTime, domain.ExperienceMid, "Data", 40000, 65000, []string{"Excel", "HMIS"}, true, 10},
	{"Hospital Administrator", annapurna, "Chitwan", domain.JobTypeFullTime, domain.ExperienceExecutive, "Management", 250000, 400000, []string{"Operations"}, true, 3},
	{"Mathematics Teacher", pokharaEdu, "Pokhara", domain.JobTypeFullTime, domain.ExperienceMid, "Education", 40000, 60000, []string{"Teaching"}, true, 14},
	{"Curriculum Designer", pokharaEdu, "Remote", domain.JobTypeContract, domain.ExperienceSenior, "Education", 80000, 120000, []string{"Instructional Design"}, true, 6},
	{"Teaching Assistant", pokharaEdu, "Pokhara", domain.JobTypePartTime, domain.ExperienceEntry, "Education", 15000, 25000, []string{"Tutoring"}, true, 22},
	{"Chief Technology Officer", pokharaEdu, "Kathmandu", domain.JobTypeFullTime, domain.ExperienceExecutive, "Management", 400000, 600000, []string{"Leadership", "Architecture"}, true, 2},
}

// Jobs returns the demo collection, newest first, posted relative to now.
func Jobs(now time.Time) []domain.Job {
	jobs := make([]domain.Job, len(templates))
	for i, t := range templates {
		posted := now.Add(-time.Duration(i*18) * time.Hour)
		jobs[i] = domain.Job{
			ID:              fmt.Sprintf("job-%03d", i+1),
			Title:           t.title,
			EmployerID:      t.emp.id,
			EmployerName:    t.emp.name,
			Location:        t.location,
			JobType:         t.jobType,
			ExperienceLevel: t.level,
			Salary:          domain.SalaryRange{Min: t.min, Max: t.max, Currency: "NPR"},
			Category:        t.category,
			Description:     fmt.Sprintf("%s is hiring a %s to join the team in %s.", t.emp.name, t.title, t.location),
			Requirements:    []string{fmt.Sprintf("Experience relevant to %s roles", t.category), "Good communication skills"},
			Benefits:        []string{"Health insurance", "Paid leave"},
			Skills:          t.skills,
			PostedAt:        posted,
			Deadline:        posted.Add(30 * 24 * time.Hour),
			IsActive:        t.active,
			ApplicantCount:  t.count,
		}
	}
	return jobs
}
