package profile

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go-greenhouse-autopilot/internal/models"
)

// The three incomplete-profile reasons need different user-facing
// remediation, so they are distinct sentinels rather than one error.
var (
	ErrUserNotFound     = errors.New("user not found, please ensure you are logged in")
	ErrProfileMissing   = errors.New("profile not found, please complete your profile before applying")
	ErrEducationMissing = errors.New("education details not found, please add your education details before applying")
)

// Store is the read-only slice of the persistence layer the loader needs.
// internal/database.Repository implements it.
type Store interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	// ListEducation and ListExperience return rows most-recent-first
	// (end date descending, open-ended entries first).
	ListEducation(ctx context.Context, profileID string) ([]models.Education, error)
	ListExperience(ctx context.Context, profileID string) ([]models.Experience, error)
	ListProjects(ctx context.Context, profileID string) ([]models.Project, error)
	ListSkills(ctx context.Context, profileID string) ([]models.Skill, error)
}

type Loader struct {
	store Store
	now   func() time.Time
}

func NewLoader(store Store) *Loader {
	return &Loader{store: store, now: time.Now}
}

// Load resolves a user id into a fresh ApplicationProfile. No side
// effects beyond reads, no network or LLM calls.
func (l *Loader) Load(ctx context.Context, userID string) (*ApplicationProfile, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}

	user, err := l.store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	prof, err := l.store.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	if prof == nil {
		return nil, ErrProfileMissing
	}

	education, err := l.store.ListEducation(ctx, prof.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch education: %w", err)
	}
	if len(education) == 0 {
		// hard precondition, never silently defaulted
		return nil, ErrEducationMissing
	}

	experiences, err := l.store.ListExperience(ctx, prof.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch experience: %w", err)
	}

	projects, err := l.store.ListProjects(ctx, prof.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch projects: %w", err)
	}

	skills, err := l.store.ListSkills(ctx, prof.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch skills: %w", err)
	}

	current := education[0]
	result := &ApplicationProfile{
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Email:        user.Email,
		Phone:        deref(prof.PhoneNumber),
		LinkedinURL:  deref(prof.LinkedinURL),
		PortfolioURL: deref(prof.PortfolioURL),
		ResumeURL:    deref(prof.ResumeURL),
		Education: EducationInfo{
			University: current.University,
			Degree:     current.Degree,
			Field:      current.Field,
			EndDate:    current.EndDate,
			Location:   deref(current.Location),
		},
		JobContext: DeriveJobContext(current, skills, projects, cityState(prof), l.now()),
	}

	if len(experiences) > 0 {
		exp := experiences[0]
		result.Experience = &ExperienceInfo{
			Company:     exp.Company,
			Position:    exp.Position,
			Location:    deref(exp.Location),
			Description: deref(exp.Description),
		}
	}

	log.Printf("✅ Built application profile for user %s (%s, %s)", userID, result.JobContext.EmploymentType, result.Education.University)
	return result, nil
}

func cityState(p *models.Profile) string {
	if p.City == nil {
		return ""
	}
	if p.State == nil {
		return *p.City
	}
	return *p.City + ", " + *p.State
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
