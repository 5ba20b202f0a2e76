// The field resolver is the decision core of the pipeline: for every
// discovered field it picks a value through a prioritized strategy
// chain and drives the browser to commit it. One bad field never
// aborts the whole submission — a mostly-filled form beats none.

package resolver

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"go-greenhouse-autopilot/internal/ai"
	"go-greenhouse-autopilot/internal/form"
	"go-greenhouse-autopilot/internal/profile"
)

// Driver is the slice of browser primitives the resolver needs.
// browser.Session implements it.
type Driver interface {
	FillByID(id, value string) error
	OpenAndListOptions(id string) ([]string, error)
	ClickOptionByText(label string) error
	NativeOptionLabels(id string) ([]string, error)
	SelectNativeOption(id, label string) error
	UploadFile(id, path string) error
}

// Submission is the explicit per-call context threaded through the
// resolution of one attempt. It is never shared between attempts, so
// concurrent applications on one Resolver cannot cross-contaminate.
type Submission struct {
	Values map[string]string
}

func NewSubmission() *Submission {
	return &Submission{Values: map[string]string{}}
}

func (s *Submission) record(fieldID, value string) {
	s.Values[fieldID] = value
}

type Resolver struct {
	llm        ai.Client
	policy     ai.Policy
	httpClient *http.Client
}

func New(llm ai.Client, policy ai.Policy) *Resolver {
	return &Resolver{
		llm:        llm,
		policy:     policy,
		httpClient: &http.Client{},
	}
}

// FillAll resolves and commits every field in the catalog. Per-field
// failures are logged and skipped; only a resume-upload failure
// propagates, since a resume is typically mandatory.
func (r *Resolver) FillAll(ctx context.Context, drv Driver, fields []form.Field, cand *profile.ApplicationProfile, sub *Submission) error {
	mapping := directMapping(cand)

	for _, f := range fields {
		if isResumeField(f) {
			if err := r.uploadResume(ctx, drv, f, cand, sub); err != nil {
				return fmt.Errorf("resume upload for #%s: %w", f.ID, err)
			}
			continue
		}

		if err := r.resolveField(ctx, drv, f, cand, mapping, sub); err != nil {
			log.Printf("⚠️ Failed to fill field %q: %v", f.ID, err)
		}
	}

	log.Printf("✅ Form filling completed (%d values submitted)", len(sub.Values))
	return nil
}

func (r *Resolver) resolveField(ctx context.Context, drv Driver, f form.Field, cand *profile.ApplicationProfile, mapping map[string]string, sub *Submission) error {
	question := fieldQuestion(f)

	// profile URLs are filled verbatim, never through the model
	if url, ok := verbatimURL(f.ID, question, cand); ok {
		if url == "" {
			return nil
		}
		if err := drv.FillByID(f.ID, url); err != nil {
			return err
		}
		sub.record(f.ID, url)
		return nil
	}

	if value, ok := mapping[f.ID]; ok && value != "" {
		log.Printf("📄 Direct mapping for %q", f.ID)
		if err := drv.FillByID(f.ID, value); err != nil {
			return err
		}
		sub.record(f.ID, value)
		return nil
	}

	switch f.Category {
	case form.CategorySelect, form.CategoryCombobox:
		return r.resolveChoice(ctx, drv, f, question, cand, sub)
	case form.CategoryText:
		return r.resolveFreeText(ctx, drv, f, question, cand, sub)
	default:
		// left untouched, required-field enforcement is the site's job
		return nil
	}
}

// resolveChoice enumerates the currently available options and commits
// the one the model (or the policy fallback chain) picks. The committed
// value is always a member of the option set.
func (r *Resolver) resolveChoice(ctx context.Context, drv Driver, f form.Field, question string, cand *profile.ApplicationProfile, sub *Submission) error {
	ctrl := controlFor(drv, f)

	options, err := ctrl.ListOptions()
	if err != nil {
		return err
	}
	if len(options) == 0 {
		log.Printf("⚠️ No options found for %q", f.ID)
		return nil
	}
	log.Printf("🔍 Options for %q: %s", f.ID, strings.Join(options, ", "))

	raw, err := r.llm.SelectOption(ctx, question, options, cand)
	if err != nil {
		log.Printf("⚠️ Option selection call failed for %q, falling back to heuristics: %v", f.ID, err)
		raw = ""
	}

	choice := MatchOption(raw, question, options, r.policy)
	log.Printf("✅ Selected %q for %q", choice, f.ID)

	if err := ctrl.Select(choice); err != nil {
		return err
	}
	sub.record(f.ID, choice)
	return nil
}

func (r *Resolver) resolveFreeText(ctx context.Context, drv Driver, f form.Field, question string, cand *profile.ApplicationProfile, sub *Submission) error {
	answer, err := r.llm.GenerateAnswer(ctx, question, cand)
	if err != nil {
		return fmt.Errorf("answer generation failed: %w", err)
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil
	}

	if err := drv.FillByID(f.ID, answer); err != nil {
		return err
	}
	sub.record(f.ID, answer)
	return nil
}

func (r *Resolver) uploadResume(ctx context.Context, drv Driver, f form.Field, cand *profile.ApplicationProfile, sub *Submission) error {
	log.Printf("📎 Handling resume upload for %q...", f.ID)

	path, cleanup, err := fetchResume(ctx, r.httpClient, cand.ResumeURL)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := drv.UploadFile(f.ID, path); err != nil {
		return err
	}
	sub.record(f.ID, cand.ResumeURL)
	log.Printf("✅ Resume uploaded")
	return nil
}

// directMapping is the static identifier table for high-confidence
// profile attributes. Empty values are dropped so blank optional fields
// are skipped rather than overwritten with "".
func directMapping(cand *profile.ApplicationProfile) map[string]string {
	m := map[string]string{
		"first_name":   cand.FirstName,
		"last_name":    cand.LastName,
		"email":        cand.Email,
		"phone":        cand.Phone,
		"linkedin_url": cand.LinkedinURL,
		"linkedin":     cand.LinkedinURL,
		"website":      cand.PortfolioURL,
		"portfolio":    cand.PortfolioURL,
	}

	edu := cand.Education
	m["education"] = fmt.Sprintf("%s in %s from %s", edu.Degree, edu.Field, edu.University)
	m["university"] = edu.University
	m["school"] = edu.University
	m["degree"] = edu.Degree
	m["field_of_study"] = edu.Field
	if edu.EndDate != nil {
		m["graduation_date"] = edu.EndDate.Format("2006-01-02")
	}

	if exp := cand.Experience; exp != nil {
		m["work_experience"] = exp.Description
		m["current_company"] = exp.Company
		m["current_title"] = exp.Position
		m["job_title"] = exp.Position
	}

	for k, v := range m {
		if v == "" {
			delete(m, k)
		}
	}
	return m
}

// verbatimURL special-cases LinkedIn and portfolio fields ahead of any
// generative step so the exact profile URL is used.
func verbatimURL(fieldID, question string, cand *profile.ApplicationProfile) (string, bool) {
	probe := strings.ToLower(fieldID + " " + question)
	if strings.Contains(probe, "linkedin") {
		return cand.LinkedinURL, true
	}
	if strings.Contains(probe, "portfolio") ||
		strings.Contains(probe, "website") ||
		strings.Contains(probe, "personal site") {
		return cand.PortfolioURL, true
	}
	return "", false
}

func isResumeField(f form.Field) bool {
	return strings.Contains(strings.ToLower(f.ID), "resume")
}

// fieldQuestion resolves the human question text for a field, falling
// back through aria attributes to the raw identifier.
func fieldQuestion(f form.Field) string {
	if f.Label != "" {
		return f.Label
	}
	if aria := f.Attributes["aria-label"]; aria != "" {
		return aria
	}
	return f.ID
}
