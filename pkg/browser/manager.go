package browser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/pagevoice/pkg/logging"
	"github.com/entrhq/pagevoice/pkg/observe"
	"github.com/entrhq/pagevoice/pkg/page"
)

// ErrSessionNotFound is returned when an operation names a session the
// manager does not hold. Callers that treat a missing session as an
// expected outcome match on it with errors.Is.
var ErrSessionNotFound = errors.New("session not found")

// SessionManager manages all active browser sessions on top of a single
// Playwright instance.
type SessionManager struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	playwright  *playwright.Playwright
	maxSessions int
	idleTimeout time.Duration
	defaults    SessionOptions
	initialized bool

	log     *logging.Logger
	metrics *observe.Metrics
}

// ManagerOption configures a SessionManager.
type ManagerOption func(*SessionManager)

// WithManagerLogger sets the logger sessions inherit.
func WithManagerLogger(l *logging.Logger) ManagerOption {
	return func(m *SessionManager) {
		m.log = l
	}
}

// WithManagerMetrics sets the metrics instance the active-session gauge
// is recorded on.
func WithManagerMetrics(met *observe.Metrics) ManagerOption {
	return func(m *SessionManager) {
		m.metrics = met
	}
}

// WithMaxSessions caps the number of concurrently open sessions.
func WithMaxSessions(n int) ManagerOption {
	return func(m *SessionManager) {
		if n > 0 {
			m.maxSessions = n
		}
	}
}

// WithIdleTimeout sets how long a session may sit unused before
// CleanupIdleSessions closes it.
func WithIdleTimeout(d time.Duration) ManagerOption {
	return func(m *SessionManager) {
		if d > 0 {
			m.idleTimeout = d
		}
	}
}

// WithSessionDefaults sets the options applied to sessions the manager
// creates implicitly (see Navigate).
func WithSessionDefaults(opts SessionOptions) ManagerOption {
	return func(m *SessionManager) {
		m.defaults = opts
	}
}

// NewSessionManager creates a new session manager.
func NewSessionManager(opts ...ManagerOption) *SessionManager {
	m := &SessionManager{
		sessions:    make(map[string]*Session),
		maxSessions: DefaultMaxSessions,
		idleTimeout: time.Duration(DefaultIdleTimeout) * time.Second,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Initialize installs the browser driver if needed and starts the
// Playwright instance. It must be called before creating any sessions.
func (m *SessionManager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	// Driver output is discarded: stdout belongs to the MCP transport.
	opts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}

	if err := playwright.Install(opts); err != nil {
		return fmt.Errorf("failed to install playwright: %w", err)
	}

	pw, err := playwright.Run(opts)
	if err != nil {
		return fmt.Errorf("failed to start playwright: %w", err)
	}

	m.playwright = pw
	m.initialized = true
	return nil
}

// StartSession creates a new browser session. An empty name gets a
// generated one.
func (m *SessionManager) StartSession(name string, opts SessionOptions) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.startSessionLocked(name, opts)
}

// startSessionLocked is StartSession without the lock; m.mu must be held.
func (m *SessionManager) startSessionLocked(name string, opts SessionOptions) (*Session, error) {
	if name == "" {
		name = uuid.New().String()
	}

	if _, exists := m.sessions[name]; exists {
		return nil, fmt.Errorf("session %q already exists", name)
	}

	if len(m.sessions) >= m.maxSessions {
		return nil, fmt.Errorf("maximum number of sessions (%d) reached", m.maxSessions)
	}

	if !m.initialized {
		return nil, fmt.Errorf("session manager not initialized")
	}

	// Set defaults
	if opts.Viewport == nil {
		opts.Viewport = &Viewport{
			Width:  DefaultViewportWidth,
			Height: DefaultViewportHeight,
		}
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}

	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: &opts.Headless,
	}
	browser, err := m.playwright.Chromium.Launch(launchOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	contextOpts := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  opts.Viewport.Width,
			Height: opts.Viewport.Height,
		},
	}
	browserCtx, err := browser.NewContext(contextOpts)
	if err != nil {
		browser.Close()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	pg, err := browserCtx.NewPage()
	if err != nil {
		browserCtx.Close()
		browser.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	pg.SetDefaultTimeout(opts.Timeout)

	now := time.Now()
	session := &Session{
		Name:       name,
		Browser:    browser,
		Context:    browserCtx,
		Page:       pg,
		Headless:   opts.Headless,
		CreatedAt:  now,
		LastUsedAt: now,
		CurrentURL: "about:blank",
		log:        m.log,
	}

	m.sessions[name] = session
	m.metrics.AddActiveSession(context.Background(), 1)
	if m.log != nil {
		m.log.Infof("started browser session %q (headless=%v)", name, opts.Headless)
	}
	return session, nil
}

// CloseSession closes and removes a browser session.
func (m *SessionManager) CloseSession(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, exists := m.sessions[name]
	if !exists {
		return fmt.Errorf("session %q: %w", name, ErrSessionNotFound)
	}

	// Close Playwright resources; errors are ignored so cleanup continues.
	_ = session.Page.Close()
	_ = session.Context.Close()
	_ = session.Browser.Close()

	delete(m.sessions, name)
	m.metrics.AddActiveSession(context.Background(), -1)
	if m.log != nil {
		m.log.Infof("closed browser session %q", name)
	}
	return nil
}

// GetSession retrieves an active session by name.
func (m *SessionManager) GetSession(name string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[name]
	if !exists {
		return nil, fmt.Errorf("session %q: %w", name, ErrSessionNotFound)
	}

	return session, nil
}

// DOM returns the named session as a page.DOM. It is how the tool layer
// hands pages to the heuristics without knowing about Playwright.
func (m *SessionManager) DOM(name string) (page.DOM, error) {
	return m.GetSession(name)
}

// Navigate drives the named session to url, creating the session with
// the manager's default options when it does not exist yet.
func (m *SessionManager) Navigate(ctx context.Context, name, url, waitUntil string, timeoutMs float64) error {
	m.mu.Lock()
	session, exists := m.sessions[name]
	if !exists {
		var err error
		session, err = m.startSessionLocked(name, m.defaults)
		if err != nil {
			m.mu.Unlock()
			return err
		}
	}
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return session.Navigate(url, NavigateOptions{WaitUntil: waitUntil, Timeout: timeoutMs})
}

// ListSessions returns information about all active sessions, ordered by
// name.
func (m *SessionManager) ListSessions() []SessionInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	infos := make([]SessionInfo, 0, len(m.sessions))
	for _, session := range m.sessions {
		infos = append(infos, SessionInfo{
			Name:       session.Name,
			CurrentURL: session.CurrentURL,
			Headless:   session.Headless,
			CreatedAt:  session.CreatedAt,
			LastUsedAt: session.LastUsedAt,
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })

	return infos
}

// HasSessions returns true if there are any active sessions.
func (m *SessionManager) HasSessions() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions) > 0
}

// Shutdown closes all sessions and stops Playwright.
func (m *SessionManager) Shutdown() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for name := range m.sessions {
		session := m.sessions[name]
		session.Page.Close()
		session.Context.Close()
		session.Browser.Close()
		delete(m.sessions, name)
		m.metrics.AddActiveSession(context.Background(), -1)
	}

	if m.initialized && m.playwright != nil {
		if err := m.playwright.Stop(); err != nil {
			return fmt.Errorf("failed to stop playwright: %w", err)
		}
		m.initialized = false
	}

	return nil
}

// CleanupIdleSessions closes sessions that have been idle for longer
// than the idle timeout.
func (m *SessionManager) CleanupIdleSessions() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	var toClose []string

	for name, session := range m.sessions {
		if now.Sub(session.LastUsedAt) > m.idleTimeout {
			toClose = append(toClose, name)
		}
	}

	var errs []error
	for _, name := range toClose {
		session := m.sessions[name]

		if err := session.Page.Close(); err != nil {
			errs = append(errs, err)
		}
		if err := session.Context.Close(); err != nil {
			errs = append(errs, err)
		}
		if err := session.Browser.Close(); err != nil {
			errs = append(errs, err)
		}

		delete(m.sessions, name)
		m.metrics.AddActiveSession(context.Background(), -1)
		if m.log != nil {
			m.log.Infof("closed idle browser session %q", name)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during cleanup: %v", errs)
	}
	return nil
}

// SessionInfo contains metadata about a browser session.
type SessionInfo struct {
	Name       string
	CurrentURL string
	Headless   bool
	CreatedAt  time.Time
	LastUsedAt time.Time
}
