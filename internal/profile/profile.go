package profile

import (
	"strings"
	"time"

	"go-greenhouse-autopilot/internal/models"
)

// ApplicationProfile is the flattened, read-only snapshot built once per
// submission attempt. It is never cached or mutated after Load returns.
type ApplicationProfile struct {
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	LinkedinURL  string
	PortfolioURL string
	ResumeURL    string
	Education    EducationInfo
	Experience   *ExperienceInfo // nil when the profile has no work experience
	JobContext   JobContext
}

type EducationInfo struct {
	University string
	Degree     string
	Field      string
	EndDate    *time.Time // nil = currently enrolled
	Location   string
}

type ExperienceInfo struct {
	Company     string
	Position    string
	Location    string
	Description string
}

type ProjectInfo struct {
	Name         string
	Description  string
	Technologies string
}

// JobContext is the job-search context derived from the most recent
// education entry. Pure derivation, no I/O.
type JobContext struct {
	EmploymentType   string // Internship | Full-time
	GraduationDate   *time.Time
	GraduationSeason string // Spring | Spring/Summer | Fall/Winter
	IsStudent        bool
	Location         string
	Skills           string
	Projects         []ProjectInfo
}

// EmploymentType infers what kind of position the candidate is after:
// still enrolled (no end date, or end date in the future) means Internship.
func EmploymentType(endDate *time.Time, now time.Time) string {
	if endDate == nil || endDate.After(now) {
		return "Internship"
	}
	return "Full-time"
}

// GraduationSeason buckets a graduation date by month.
func GraduationSeason(endDate *time.Time) string {
	if endDate == nil {
		return ""
	}
	switch m := endDate.Month(); {
	case m >= time.May && m <= time.August:
		return "Spring/Summer"
	case m >= time.September && m <= time.December:
		return "Fall/Winter"
	default:
		return "Spring"
	}
}

// DeriveJobContext builds the JobContext from the raw profile rows.
func DeriveJobContext(edu models.Education, skills []models.Skill, projects []models.Project, location string, now time.Time) JobContext {
	isStudent := edu.EndDate == nil || edu.EndDate.After(now)

	names := make([]string, 0, len(skills))
	for _, s := range skills {
		names = append(names, s.Name)
	}

	projInfos := make([]ProjectInfo, 0, len(projects))
	for _, p := range projects {
		projInfos = append(projInfos, ProjectInfo{
			Name:         p.Name,
			Description:  p.Description,
			Technologies: strings.Join(p.Technologies, ", "),
		})
	}

	return JobContext{
		EmploymentType:   EmploymentType(edu.EndDate, now),
		GraduationDate:   edu.EndDate,
		GraduationSeason: GraduationSeason(edu.EndDate),
		IsStudent:        isStudent,
		Location:         location,
		Skills:           strings.Join(names, ", "),
		Projects:         projInfos,
	}
}

// FullName is used in prompt context.
func (p *ApplicationProfile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}
