package database

import (
	"context"
	"fmt"
	"time"

	"go-greenhouse-autopilot/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

func ConnectDB(ctx context.Context, connString string) (*Repository, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database url: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	// IMPORTANT: Supabase connection pooler (PgBouncer in Transaction mode)
	// does not support prepared statements easily. We MUST disable the statement cache.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	// Ping to ensure connection
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	return &Repository{db: pool}, nil
}

func (r *Repository) Close() {
	if r.db != nil {
		r.db.Close()
	}
}

// ---------------- USER / PROFILE READS ----------------

// GetUser returns nil (no error) when the user does not exist, the
// profile loader maps that to its own sentinel.
func (r *Repository) GetUser(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := r.db.QueryRow(ctx,
		"SELECT id, first_name, last_name, email, created_at FROM users WHERE id = $1", userID).
		Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *Repository) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	var p models.Profile
	query := `SELECT id, user_id, phone_number, linkedin_url, portfolio_url, resume_url, city, state, created_at
		FROM profiles WHERE user_id = $1`
	err := r.db.QueryRow(ctx, query, userID).
		Scan(&p.ID, &p.UserID, &p.PhoneNumber, &p.LinkedinURL, &p.PortfolioURL, &p.ResumeURL, &p.City, &p.State, &p.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}

// ListEducation returns education rows most-recent-first. NULL end
// dates (currently enrolled) sort ahead of everything else.
func (r *Repository) ListEducation(ctx context.Context, profileID string) ([]models.Education, error) {
	query := `SELECT id, profile_id, university, degree, field, end_date, location
		FROM education WHERE profile_id = $1
		ORDER BY end_date DESC NULLS FIRST`
	rows, err := r.db.Query(ctx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list education: %w", err)
	}
	defer rows.Close()

	var result []models.Education
	for rows.Next() {
		var e models.Education
		if err := rows.Scan(&e.ID, &e.ProfileID, &e.University, &e.Degree, &e.Field, &e.EndDate, &e.Location); err != nil {
			return nil, fmt.Errorf("failed to scan education row: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

func (r *Repository) ListExperience(ctx context.Context, profileID string) ([]models.Experience, error) {
	query := `SELECT id, profile_id, company, position, location, start_date, end_date, description
		FROM experiences WHERE profile_id = $1
		ORDER BY end_date DESC NULLS FIRST`
	rows, err := r.db.Query(ctx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list experience: %w", err)
	}
	defer rows.Close()

	var result []models.Experience
	for rows.Next() {
		var e models.Experience
		if err := rows.Scan(&e.ID, &e.ProfileID, &e.Company, &e.Position, &e.Location, &e.StartDate, &e.EndDate, &e.Description); err != nil {
			return nil, fmt.Errorf("failed to scan experience row: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

func (r *Repository) ListProjects(ctx context.Context, profileID string) ([]models.Project, error) {
	query := `SELECT id, profile_id, name, description, technologies
		FROM projects WHERE profile_id = $1
		ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var result []models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.ProfileID, &p.Name, &p.Description, &p.Technologies); err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (r *Repository) ListSkills(ctx context.Context, profileID string) ([]models.Skill, error) {
	rows, err := r.db.Query(ctx,
		"SELECT id, profile_id, name FROM skills WHERE profile_id = $1", profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	defer rows.Close()

	var result []models.Skill
	for rows.Next() {
		var s models.Skill
		if err := rows.Scan(&s.ID, &s.ProfileID, &s.Name); err != nil {
			return nil, fmt.Errorf("failed to scan skill row: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// ---------------- APPLICATION RECORDS ----------------

// SaveApplication writes one immutable audit row per attempt. There is
// no update path on purpose: retries insert new records.
func (r *Repository) SaveApplication(ctx context.Context, rec *models.ApplicationRecord) (*models.ApplicationRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	query := `
		INSERT INTO applications (id, user_id, company_name, job_title, job_url, status, responses)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	err := r.db.QueryRow(ctx, query,
		rec.ID, rec.UserID, rec.CompanyName, rec.JobTitle, rec.JobURL, rec.Status, rec.Responses).
		Scan(&rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save application: %w", err)
	}
	return rec, nil
}

func (r *Repository) ListApplications(ctx context.Context, userID string) ([]models.ApplicationRecord, error) {
	query := `SELECT id, user_id, company_name, job_title, job_url, status, responses, created_at
		FROM applications WHERE user_id = $1
		ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var result []models.ApplicationRecord
	for rows.Next() {
		var rec models.ApplicationRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.CompanyName, &rec.JobTitle, &rec.JobURL, &rec.Status, &rec.Responses, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan application row: %w", err)
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}
