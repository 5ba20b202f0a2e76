package resolver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"go-greenhouse-autopilot/internal/retry"
)

const resumeMaxRetries = 2

// fetchResume downloads the stored resume document to a temporary
// local file so the browser can attach it to a file input. The caller
// must invoke cleanup once the upload is done. The URL must be
// publicly fetchable, no auth header is added.
func fetchResume(ctx context.Context, client *http.Client, url string) (path string, cleanup func(), err error) {
	if url == "" {
		return "", nil, fmt.Errorf("no resume URL on profile")
	}

	data, err := retry.Value(ctx, resumeMaxRetries, func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
		if err != nil {
			return nil, retry.Permanent(fmt.Errorf("failed to create resume request: %w", err))
		}

		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("resume fetch failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			err := fmt.Errorf("resume fetch returned status %d", resp.StatusCode)
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				return nil, retry.Permanent(err)
			}
			return nil, err
		}

		return io.ReadAll(resp.Body)
	})
	if err != nil {
		return "", nil, err
	}

	tmp, err := os.CreateTemp("", "resume-*.pdf")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp resume file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", nil, fmt.Errorf("failed to write temp resume file: %w", err)
	}
	tmp.Close()

	return tmp.Name(), func() { os.Remove(tmp.Name()) }, nil
}
