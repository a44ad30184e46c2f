package browser

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

// UpdateLastUsed updates the LastUsedAt timestamp to the current time.
func (s *Session) UpdateLastUsed() {
	s.LastUsedAt = time.Now()
}

// Navigate navigates the session's page to the specified URL.
func (s *Session) Navigate(url string, opts NavigateOptions) error {
	s.UpdateLastUsed()

	playwrightOpts := playwright.PageGotoOptions{}

	if opts.WaitUntil != "" {
		waitUntil := playwright.WaitUntilState(opts.WaitUntil)
		playwrightOpts.WaitUntil = &waitUntil
	}

	if opts.Timeout > 0 {
		playwrightOpts.Timeout = &opts.Timeout
	}

	if _, err := s.Page.Goto(url, playwrightOpts); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}

	s.CurrentURL = s.Page.URL()
	return nil
}

// nextScanPrefix returns a ref prefix unique to one enumeration pass, so
// refs from an old scan never collide with refs from a new one after the
// page changes underneath us.
func (s *Session) nextScanPrefix() string {
	s.scanMu.Lock()
	defer s.scanMu.Unlock()
	s.scanSeq++
	return fmt.Sprintf("pv%d", s.scanSeq)
}
