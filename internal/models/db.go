package models

import (
	"time"
)

type ApplicationStatus string

const (
	StatusApplying ApplicationStatus = "APPLYING"
	StatusApplied  ApplicationStatus = "APPLIED"
	StatusFailed   ApplicationStatus = "FAILED"
)

type User struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type Profile struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	PhoneNumber  *string   `json:"phone_number,omitempty"`
	LinkedinURL  *string   `json:"linkedin_url,omitempty"`
	PortfolioURL *string   `json:"portfolio_url,omitempty"`
	ResumeURL    *string   `json:"resume_url,omitempty"`
	City         *string   `json:"city,omitempty"`
	State        *string   `json:"state,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type Education struct {
	ID         string     `json:"id"`
	ProfileID  string     `json:"profile_id"`
	University string     `json:"university"`
	Degree     string     `json:"degree"`
	Field      string     `json:"field"`
	EndDate    *time.Time `json:"end_date,omitempty"` // nil = currently enrolled
	Location   *string    `json:"location,omitempty"`
}

type Experience struct {
	ID          string     `json:"id"`
	ProfileID   string     `json:"profile_id"`
	Company     string     `json:"company"`
	Position    string     `json:"position"`
	Location    *string    `json:"location,omitempty"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Description *string    `json:"description,omitempty"`
}

type Project struct {
	ID           string   `json:"id"`
	ProfileID    string   `json:"profile_id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
}

type Skill struct {
	ID        string `json:"id"`
	ProfileID string `json:"profile_id"`
	Name      string `json:"name"`
}

// ApplicationRecord is the immutable audit row written once per applyToJob
// attempt. Retries create new records, existing rows are never updated.
type ApplicationRecord struct {
	ID          string            `json:"id"`
	UserID      string            `json:"user_id"`
	CompanyName string            `json:"company_name"`
	JobTitle    string            `json:"job_title"`
	JobURL      string            `json:"job_url"`
	Status      ApplicationStatus `json:"status"`
	Responses   map[string]string `json:"responses"` // field id -> submitted value
	CreatedAt   time.Time         `json:"created_at"`
}
