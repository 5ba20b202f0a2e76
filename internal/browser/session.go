package browser

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"go-greenhouse-autopilot/internal/form"
	"go-greenhouse-autopilot/internal/retry"

	"github.com/playwright-community/playwright-go"
)

const (
	navigationTimeoutMs = 60000
	navMaxRetries       = 2
)

// Session owns one browser process, one context and one page for the
// duration of a single application attempt. Nothing is shared across
// concurrent attempts.
type Session struct {
	manager *PlaywrightManager
	context playwright.BrowserContext
	page    playwright.Page
	settle  time.Duration
}

func NewSession(headless bool, settleDelay time.Duration) (*Session, error) {
	manager, err := NewPlaywright(headless)
	if err != nil {
		return nil, err
	}

	browserCtx, err := manager.NewContext()
	if err != nil {
		manager.Close()
		return nil, err
	}

	page, err := browserCtx.NewPage()
	if err != nil {
		browserCtx.Close()
		manager.Close()
		return nil, fmt.Errorf("could not create page: %w", err)
	}

	return &Session{
		manager: manager,
		context: browserCtx,
		page:    page,
		settle:  settleDelay,
	}, nil
}

// Navigate loads the job posting and waits for network idle, retrying
// with backoff since third-party career pages flake.
func (s *Session) Navigate(ctx context.Context, url string) error {
	return retry.Do(ctx, navMaxRetries, func() error {
		if _, err := s.page.Goto(url, playwright.PageGotoOptions{
			WaitUntil: playwright.WaitUntilStateNetworkidle,
			Timeout:   playwright.Float(navigationTimeoutMs),
		}); err != nil {
			return fmt.Errorf("navigation failed: %w", err)
		}
		return nil
	})
}

func (s *Session) DiscoverFields() ([]form.Field, error) {
	return form.Discover(s.page), nil
}

// settleWait gives the page's own reactive widgets time to re-render
// after a DOM mutation before the next read.
func (s *Session) settleWait() {
	time.Sleep(s.settle)
}

func (s *Session) FillByID(id, value string) error {
	if err := s.page.Locator("#" + id).Fill(value); err != nil {
		return fmt.Errorf("could not fill #%s: %w", id, err)
	}
	s.settleWait()
	return nil
}

func (s *Session) ClickByID(id string) error {
	if err := s.page.Locator("#" + id).Click(); err != nil {
		return fmt.Errorf("could not click #%s: %w", id, err)
	}
	s.settleWait()
	return nil
}

// OpenAndListOptions clicks a rich combobox open and reads the rendered
// option labels. The options are not in the markup until the control is
// interacted with, so this is the only way to enumerate them.
func (s *Session) OpenAndListOptions(id string) ([]string, error) {
	if err := s.ClickByID(id); err != nil {
		return nil, err
	}

	rendered, err := s.page.Locator(`[role="option"]`).All()
	if err != nil {
		return nil, fmt.Errorf("could not read rendered options: %w", err)
	}

	var labels []string
	for _, opt := range rendered {
		text, err := opt.TextContent()
		if err != nil {
			continue
		}
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			labels = append(labels, trimmed)
		}
	}
	return labels, nil
}

func (s *Session) ClickOptionByText(label string) error {
	if err := s.page.Locator(fmt.Sprintf(`[role="option"]:text-is(%q)`, label)).First().Click(); err != nil {
		return fmt.Errorf("could not click option %q: %w", label, err)
	}
	s.settleWait()
	return nil
}

func (s *Session) NativeOptionLabels(id string) ([]string, error) {
	rendered, err := s.page.Locator("#" + id + " option").All()
	if err != nil {
		return nil, fmt.Errorf("could not read select options: %w", err)
	}

	var labels []string
	for _, opt := range rendered {
		text, err := opt.TextContent()
		if err != nil {
			continue
		}
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			labels = append(labels, trimmed)
		}
	}
	return labels, nil
}

func (s *Session) SelectNativeOption(id, label string) error {
	if _, err := s.page.Locator("#"+id).SelectOption(playwright.SelectOptionValues{
		Labels: &[]string{label},
	}); err != nil {
		return fmt.Errorf("could not select option %q in #%s: %w", label, id, err)
	}
	s.settleWait()
	return nil
}

func (s *Session) UploadFile(id, path string) error {
	if err := s.page.Locator("#"+id).SetInputFiles(path); err != nil {
		return fmt.Errorf("could not upload file to #%s: %w", id, err)
	}
	s.settleWait()
	return nil
}

func (s *Session) HasSubmitControl() (bool, error) {
	count, err := s.page.Locator(`input[type="submit"], button[type="submit"]`).Count()
	if err != nil {
		return false, fmt.Errorf("could not query submit control: %w", err)
	}
	return count > 0, nil
}

func (s *Session) ClickSubmit() error {
	if err := s.page.Locator(`input[type="submit"], button[type="submit"]`).First().Click(); err != nil {
		return fmt.Errorf("could not click submit: %w", err)
	}
	s.settleWait()
	return nil
}

// Close releases page, context and browser. Each close is individually
// guarded so a failure on one never blocks the others.
func (s *Session) Close() {
	if s.page != nil {
		if err := s.page.Close(); err != nil {
			log.Printf("⚠️ Error closing page: %v", err)
		}
	}
	if s.context != nil {
		if err := s.context.Close(); err != nil {
			log.Printf("⚠️ Error closing context: %v", err)
		}
	}
	if s.manager != nil {
		s.manager.Close()
	}
}
