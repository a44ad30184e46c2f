package browser

import (
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/pagevoice/pkg/logging"
)

// Session represents one active browser page with its associated
// resources. A session owns exactly one page; the page-side heuristics
// address it through the page.DOM interface the session implements.
type Session struct {
	// Name is the unique identifier for this session
	Name string

	// Browser is the Playwright browser instance
	Browser playwright.Browser

	// Context is the browser context (isolated session)
	Context playwright.BrowserContext

	// Page is the session's page
	Page playwright.Page

	// Headless indicates if the browser is running without a window
	Headless bool

	// CreatedAt is the timestamp when the session was created
	CreatedAt time.Time

	// LastUsedAt is the timestamp of the last operation on this session
	LastUsedAt time.Time

	// CurrentURL is the URL of the current page
	CurrentURL string

	log *logging.Logger

	// scanMu guards scanSeq, the counter behind element ref prefixes.
	scanMu  sync.Mutex
	scanSeq int
}

// SessionOptions configures a new browser session.
type SessionOptions struct {
	// Headless controls whether the browser runs without a visible window
	Headless bool

	// Viewport sets the initial viewport size
	Viewport *Viewport

	// Timeout sets the default timeout for page operations (milliseconds)
	Timeout float64
}

// Viewport represents the browser viewport dimensions.
type Viewport struct {
	Width  int
	Height int
}

// NavigateOptions configures page navigation behavior.
type NavigateOptions struct {
	// WaitUntil specifies when to consider navigation successful
	// Valid values: "load", "domcontentloaded", "networkidle"
	WaitUntil string

	// Timeout in milliseconds (0 means the session default)
	Timeout float64
}

// Default values for sessions and navigation.
const (
	DefaultTimeout        = 30000.0 // 30 seconds in milliseconds
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720
	DefaultMaxSessions    = 5
	DefaultIdleTimeout    = 300 // 5 minutes in seconds
)
