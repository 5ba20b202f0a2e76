// The applicator composes the whole pipeline: profile load, browser
// session, form discovery, field resolution, review gate, audit
// record. Callers always get a structured result back, never a raw
// panic or unhandled error.

package applicator

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"go-greenhouse-autopilot/internal/form"
	"go-greenhouse-autopilot/internal/models"
	"go-greenhouse-autopilot/internal/profile"
	"go-greenhouse-autopilot/internal/resolver"
)

// supportedProviderMarker gates the one ATS host this pipeline knows
// how to reverse-engineer.
const supportedProviderMarker = "greenhouse.io"

const (
	SubmitModeManual = "manual" // fill and verify, a human clicks submit
	SubmitModeAuto   = "auto"   // click submit after the gate confirms
)

type Request struct {
	JobURL      string
	UserID      string
	CompanyName string
	JobTitle    string
	// Gate optionally lets the caller confirm or cancel the review
	// pause. Nil means the fixed window only.
	Gate *Gate
}

type Result struct {
	Success       bool              `json:"success"`
	Error         string            `json:"error,omitempty"`
	FormData      map[string]string `json:"formData,omitempty"`
	ApplicationID string            `json:"applicationId,omitempty"`
}

type ProfileLoader interface {
	Load(ctx context.Context, userID string) (*profile.ApplicationProfile, error)
}

type Recorder interface {
	SaveApplication(ctx context.Context, rec *models.ApplicationRecord) (*models.ApplicationRecord, error)
}

// Session is one exclusively-owned browser bound to one attempt.
type Session interface {
	resolver.Driver
	Navigate(ctx context.Context, url string) error
	DiscoverFields() ([]form.Field, error)
	HasSubmitControl() (bool, error)
	ClickSubmit() error
	Close()
}

type SessionFactory func(ctx context.Context) (Session, error)

// Notifier pushes submission results to an external channel. Optional.
type Notifier interface {
	SendApplicationResult(rec *models.ApplicationRecord) error
}

type Service struct {
	profiles     ProfileLoader
	recorder     Recorder
	resolver     *resolver.Resolver
	newSession   SessionFactory
	notifier     Notifier
	submitMode   string
	reviewWindow time.Duration
}

type Options struct {
	SubmitMode   string
	ReviewWindow time.Duration
	Notifier     Notifier
}

func NewService(profiles ProfileLoader, recorder Recorder, res *resolver.Resolver, factory SessionFactory, opts Options) *Service {
	submitMode := opts.SubmitMode
	if submitMode == "" {
		submitMode = SubmitModeManual
	}
	reviewWindow := opts.ReviewWindow
	if reviewWindow <= 0 {
		reviewWindow = 10 * time.Second
	}
	return &Service{
		profiles:     profiles,
		recorder:     recorder,
		resolver:     res,
		newSession:   factory,
		notifier:     opts.Notifier,
		submitMode:   submitMode,
		reviewWindow: reviewWindow,
	}
}

// ApplyToJob runs one end-to-end application attempt. The Service
// holds no per-call state, so concurrent calls on one instance are
// safe, each paying for its own browser process.
func (s *Service) ApplyToJob(ctx context.Context, req Request) *Result {
	log.Printf("🚀 Starting application: %s at %s (%s)", req.JobTitle, req.CompanyName, req.JobURL)

	sub := resolver.NewSubmission()

	// fast-fail before any browser is launched
	if !strings.Contains(req.JobURL, supportedProviderMarker) {
		return s.finish(ctx, req, sub, fmt.Errorf("invalid job URL, only Greenhouse job postings are supported"))
	}

	return s.finish(ctx, req, sub, s.run(ctx, req, sub))
}

func (s *Service) run(ctx context.Context, req Request, sub *resolver.Submission) error {
	cand, err := s.profiles.Load(ctx, req.UserID)
	if err != nil {
		return err
	}

	session, err := s.newSession(ctx)
	if err != nil {
		return fmt.Errorf("failed to start browser session: %w", err)
	}
	defer session.Close()

	log.Printf("🌐 Navigating to job posting...")
	if err := session.Navigate(ctx, req.JobURL); err != nil {
		return err
	}

	fields, err := session.DiscoverFields()
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return fmt.Errorf("no form fields found, please check if the job posting is still active")
	}

	if err := s.resolver.FillAll(ctx, session, fields, cand, sub); err != nil {
		return err
	}

	hasSubmit, err := session.HasSubmitControl()
	if err != nil {
		return err
	}
	if !hasSubmit {
		return fmt.Errorf("submit button not found, the job posting might have changed")
	}

	gate := req.Gate
	if gate == nil {
		gate = NewGate()
	}
	log.Printf("⏸️ Review window open (%s). Please verify the form entries.", s.reviewWindow)
	if err := gate.Wait(ctx, s.reviewWindow); err != nil {
		return err
	}

	if s.submitMode == SubmitModeAuto {
		if err := session.ClickSubmit(); err != nil {
			return err
		}
		log.Printf("📨 Submit clicked")
	}

	return nil
}

// finish writes the one immutable audit record every attempt gets,
// success or failure, and shapes the caller-facing result. Partial
// form data is always surfaced.
func (s *Service) finish(ctx context.Context, req Request, sub *resolver.Submission, runErr error) *Result {
	status := models.StatusApplied
	if runErr != nil {
		status = models.StatusFailed
		log.Printf("❌ Application failed: %v", runErr)
	}

	rec := &models.ApplicationRecord{
		UserID:      req.UserID,
		CompanyName: req.CompanyName,
		JobTitle:    req.JobTitle,
		JobURL:      req.JobURL,
		Status:      status,
		Responses:   sub.Values,
	}

	// the audit row must still be written when the attempt died to a
	// cancelled context
	saved, saveErr := s.recorder.SaveApplication(context.WithoutCancel(ctx), rec)
	if saveErr != nil {
		log.Printf("❌ Error saving application record: %v", saveErr)
	} else if s.notifier != nil {
		if err := s.notifier.SendApplicationResult(saved); err != nil {
			log.Printf("⚠️ Failed to send notification: %v", err)
		}
	}

	// a lost audit row is itself a failure, even when the form went
	// through
	result := &Result{
		Success:  runErr == nil && saveErr == nil,
		FormData: sub.Values,
	}
	if runErr != nil {
		result.Error = runErr.Error()
	} else if saveErr != nil {
		result.Error = fmt.Sprintf("failed to save application record: %v", saveErr)
	}
	if saved != nil {
		result.ApplicationID = saved.ID
	}
	return result
}
