package mcp

import (
	"context"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/entrhq/pagevoice/pkg/browser"
	"github.com/entrhq/pagevoice/pkg/logging"
	"github.com/entrhq/pagevoice/pkg/observe"
	"github.com/entrhq/pagevoice/pkg/page"
	"github.com/entrhq/pagevoice/pkg/speech"
)

// DefaultSession is the session name used when a tool call names none.
const DefaultSession = "default"

// PageHost supplies live pages and their lifecycle to the tool
// handlers. The Playwright session manager implements it; tests
// substitute a fake.
type PageHost interface {
	// Navigate drives the named session to url, creating the session
	// when it does not exist yet.
	Navigate(ctx context.Context, session, url, waitUntil string, timeoutMs float64) error

	// DOM returns the named session's page capability surface.
	DOM(session string) (page.DOM, error)

	// CloseSession closes the named session, releasing its browser.
	// A missing session reports browser.ErrSessionNotFound.
	CloseSession(session string) error

	// ListSessions describes every open session, ordered by name.
	ListSessions() []browser.SessionInfo
}

// Toolkit holds the wired toolkit the tool handlers call into.
type Toolkit struct {
	pages    PageHost
	speaker  *speech.Speaker
	listener *speech.Listener
	lang     string

	highlightOpts []page.HighlightOption

	log     *logging.Logger
	metrics *observe.Metrics
}

// ToolkitOption configures a Toolkit.
type ToolkitOption func(*Toolkit)

// WithToolkitLogger sets the logger tool failures are reported to.
func WithToolkitLogger(l *logging.Logger) ToolkitOption {
	return func(t *Toolkit) {
		t.log = l
	}
}

// WithToolkitMetrics sets the metrics instance tool calls are recorded
// on.
func WithToolkitMetrics(m *observe.Metrics) ToolkitOption {
	return func(t *Toolkit) {
		t.metrics = m
	}
}

// WithDefaultLanguage sets the language speech tools fall back to when a
// call names none.
func WithDefaultLanguage(lang string) ToolkitOption {
	return func(t *Toolkit) {
		if lang != "" {
			t.lang = lang
		}
	}
}

// WithHighlightOptions sets the options passed through to every
// highlight call; tests use it to shorten the revert delay.
func WithHighlightOptions(opts ...page.HighlightOption) ToolkitOption {
	return func(t *Toolkit) {
		t.highlightOpts = opts
	}
}

// NewToolkit wires a Toolkit over the given page host and speech
// wrappers.
func NewToolkit(pages PageHost, speaker *speech.Speaker, listener *speech.Listener, opts ...ToolkitOption) *Toolkit {
	t := &Toolkit{
		pages:    pages,
		speaker:  speaker,
		listener: listener,
		lang:     speech.DefaultListenLang,
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// NewServer builds the MCP server with every pagevoice tool registered.
func (t *Toolkit) NewServer(name, version string) *mcpsdk.Server {
	srv := mcpsdk.NewServer(&mcpsdk.Implementation{Name: name, Version: version}, nil)

	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        "navigate",
		Description: "Open a URL in a browser session, creating the session if it does not exist. Run this before any other page tool.",
	}, t.navigate)
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        "speak",
		Description: "Speak text aloud through the page. Always completes; playback problems are logged, not returned.",
	}, t.speak)
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        "listen",
		Description: "Listen for one spoken utterance and return its transcript. heard is false when nothing was said.",
	}, t.listen)
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        "find_field",
		Description: "Locate a form field by semantic type (name, email, phone, address, city, state, zip, country, company, title, experience, education, skills, resume).",
	}, t.findField)
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        "fill_field",
		Description: "Locate a form field by semantic type and set its value.",
	}, t.fillField)
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        "click_button",
		Description: "Click the first button or link whose visible text contains the given text (case-insensitive).",
	}, t.clickButton)
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        "scroll",
		Description: "Scroll the page: up or down by 80% of the viewport, or jump to top or bottom.",
	}, t.scroll)
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        "highlight",
		Description: "Visually highlight an element by ref for a few seconds, scrolling it into view.",
	}, t.highlight)
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        "detect_site",
		Description: "Classify the current page by hostname (linkedin, indeed, google, ... or unknown).",
	}, t.detectSite)
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        "extract_content",
		Description: "Extract the readable text of the page: the main content region, or the full page with navigation text removed, capped at 8000 characters.",
	}, t.extractContent)
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        "attach_resume",
		Description: "Validate a PDF and upload it into the page's resume file input. attached is false when the page has none.",
	}, t.attachResume)
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        "close_session",
		Description: "Close a browser session and release its browser. closed is false when no such session exists.",
	}, t.closeSession)
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        "list_sessions",
		Description: "List all open browser sessions with their current URL and age.",
	}, t.listSessions)

	return srv
}

// sessionName applies the default session name.
func sessionName(s string) string {
	if s == "" {
		return DefaultSession
	}
	return s
}

// finish records one tool call's outcome and duration.
func (t *Toolkit) finish(ctx context.Context, tool string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
		if t.log != nil {
			t.log.Errorf("%s tool failed: %v", tool, err)
		}
	}
	t.metrics.RecordToolCall(ctx, tool, status, time.Since(start).Seconds())
}
