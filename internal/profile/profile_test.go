package profile

import (
	"testing"
	"time"

	"go-greenhouse-autopilot/internal/models"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestEmploymentType(t *testing.T) {
	now := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		endDate  *time.Time
		expected string
	}{
		{"No end date means enrolled", nil, "Internship"},
		{"Future end date means enrolled", date(2026, time.May, 15), "Internship"},
		{"Past end date means graduated", date(2025, time.June, 1), "Full-time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EmploymentType(tt.endDate, now))
		})
	}
}

func TestGraduationSeason(t *testing.T) {
	tests := []struct {
		name     string
		endDate  *time.Time
		expected string
	}{
		{"May is spring/summer", date(2026, time.May, 1), "Spring/Summer"},
		{"August is spring/summer", date(2026, time.August, 31), "Spring/Summer"},
		{"September is fall/winter", date(2026, time.September, 1), "Fall/Winter"},
		{"December is fall/winter", date(2026, time.December, 20), "Fall/Winter"},
		{"January is spring", date(2026, time.January, 5), "Spring"},
		{"April is spring", date(2026, time.April, 30), "Spring"},
		{"No date no season", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GraduationSeason(tt.endDate))
		})
	}
}

func TestDeriveJobContext(t *testing.T) {
	now := time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC)
	edu := models.Education{
		University: "Analytical University",
		Degree:     "BSc",
		Field:      "Computer Science",
		EndDate:    date(2026, time.May, 15),
	}
	skills := []models.Skill{{Name: "Go"}, {Name: "SQL"}}
	projects := []models.Project{
		{Name: "Pipeline", Description: "ETL tool", Technologies: []string{"Go", "Postgres"}},
	}

	ctx := DeriveJobContext(edu, skills, projects, "Austin, TX", now)

	assert.Equal(t, "Internship", ctx.EmploymentType)
	assert.True(t, ctx.IsStudent)
	assert.Equal(t, "Spring/Summer", ctx.GraduationSeason)
	assert.Equal(t, "Go, SQL", ctx.Skills)
	assert.Equal(t, "Austin, TX", ctx.Location)
	if assert.Len(t, ctx.Projects, 1) {
		assert.Equal(t, "Go, Postgres", ctx.Projects[0].Technologies)
	}
}

func TestFullName(t *testing.T) {
	p := &ApplicationProfile{FirstName: "Ada", LastName: "Lovelace"}
	assert.Equal(t, "Ada Lovelace", p.FullName())

	p = &ApplicationProfile{FirstName: "Ada"}
	assert.Equal(t, "Ada", p.FullName())
}
