package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/entrhq/pagevoice/pkg/browser"
	"github.com/entrhq/pagevoice/pkg/page"
	"github.com/entrhq/pagevoice/pkg/speech"
)

// ControlInfo is the wire shape of a located form control.
type ControlInfo struct {
	Ref         string `json:"ref"`
	Tag         string `json:"tag"`
	Type        string `json:"type,omitempty"`
	ID          string `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	Label       string `json:"label,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
	AriaLabel   string `json:"aria_label,omitempty"`
}

func controlInfo(c *page.Control) *ControlInfo {
	if c == nil {
		return nil
	}
	return &ControlInfo{
		Ref:         c.Ref,
		Tag:         c.Tag,
		Type:        c.Type,
		ID:          c.ID,
		Name:        c.Name,
		Label:       c.Label,
		Placeholder: c.Placeholder,
		AriaLabel:   c.AriaLabel,
	}
}

// NavigateInput are the arguments of the navigate tool.
type NavigateInput struct {
	Session   string  `json:"session,omitempty" jsonschema:"browser session name; defaults to the shared default session"`
	URL       string  `json:"url" jsonschema:"the URL to open"`
	WaitUntil string  `json:"wait_until,omitempty" jsonschema:"when navigation counts as done: load, domcontentloaded, or networkidle"`
	TimeoutMs float64 `json:"timeout_ms,omitempty" jsonschema:"navigation timeout in milliseconds"`
}

// NavigateOutput is the result of the navigate tool.
type NavigateOutput struct {
	Session string `json:"session"`
	URL     string `json:"url"`
}

func (t *Toolkit) navigate(ctx context.Context, req *mcpsdk.CallToolRequest, in NavigateInput) (_ *mcpsdk.CallToolResult, out NavigateOutput, err error) {
	start := time.Now()
	defer func() { t.finish(ctx, "navigate", start, err) }()

	if in.URL == "" {
		err = fmt.Errorf("url is required")
		return nil, out, err
	}

	session := sessionName(in.Session)
	if err = t.pages.Navigate(ctx, session, in.URL, in.WaitUntil, in.TimeoutMs); err != nil {
		return nil, out, err
	}
	return nil, NavigateOutput{Session: session, URL: in.URL}, nil
}

// SpeakInput are the arguments of the speak tool.
type SpeakInput struct {
	Text string `json:"text" jsonschema:"the text to speak aloud"`
	Lang string `json:"lang,omitempty" jsonschema:"BCP 47 language tag; defaults to the configured language"`
}

// SpeakOutput is the result of the speak tool.
type SpeakOutput struct {
	Spoken bool `json:"spoken"`
}

func (t *Toolkit) speak(ctx context.Context, req *mcpsdk.CallToolRequest, in SpeakInput) (_ *mcpsdk.CallToolResult, out SpeakOutput, err error) {
	start := time.Now()
	defer func() { t.finish(ctx, "speak", start, err) }()

	lang := in.Lang
	if lang == "" {
		lang = t.lang
	}
	t.speaker.Speak(ctx, in.Text, lang)
	return nil, SpeakOutput{Spoken: true}, nil
}

// ListenInput are the arguments of the listen tool.
type ListenInput struct {
	Lang            string `json:"lang,omitempty" jsonschema:"BCP 47 language tag; defaults to the configured language"`
	InterimResults  bool   `json:"interim_results,omitempty" jsonschema:"ask the platform for partial results while speaking"`
	MaxAlternatives int    `json:"max_alternatives,omitempty" jsonschema:"transcript alternatives per result; defaults to 1"`
}

// ListenOutput is the result of the listen tool.
type ListenOutput struct {
	Transcript string `json:"transcript"`
	Heard      bool   `json:"heard"`
}

func (t *Toolkit) listen(ctx context.Context, req *mcpsdk.CallToolRequest, in ListenInput) (_ *mcpsdk.CallToolResult, out ListenOutput, err error) {
	start := time.Now()
	defer func() { t.finish(ctx, "listen", start, err) }()

	lang := in.Lang
	if lang == "" {
		lang = t.lang
	}
	transcript, lerr := t.listener.Listen(ctx, speech.ListenOptions{
		Lang:            lang,
		InterimResults:  in.InterimResults,
		MaxAlternatives: in.MaxAlternatives,
	})
	if lerr != nil {
		// Silence is an expected outcome, not a tool failure.
		if errors.Is(lerr, speech.ErrNoSpeech) {
			return nil, ListenOutput{}, nil
		}
		err = lerr
		return nil, out, err
	}
	return nil, ListenOutput{Transcript: transcript, Heard: true}, nil
}

// FindFieldInput are the arguments of the find_field tool.
type FindFieldInput struct {
	Session   string `json:"session,omitempty" jsonschema:"browser session name; defaults to the shared default session"`
	FieldType string `json:"field_type" jsonschema:"semantic field type, e.g. email, phone, name"`
}

// FindFieldOutput is the result of the find_field tool.
type FindFieldOutput struct {
	Found   bool         `json:"found"`
	Control *ControlInfo `json:"control,omitempty"`
}

func (t *Toolkit) findField(ctx context.Context, req *mcpsdk.CallToolRequest, in FindFieldInput) (_ *mcpsdk.CallToolResult, out FindFieldOutput, err error) {
	start := time.Now()
	defer func() { t.finish(ctx, "find_field", start, err) }()

	dom, err := t.pages.DOM(sessionName(in.Session))
	if err != nil {
		return nil, out, err
	}

	ctl, err := page.FindFormField(ctx, dom, page.FieldType(in.FieldType))
	if err != nil {
		return nil, out, err
	}
	t.metrics.RecordLocatorScan(ctx, "field", scanOutcome(ctl != nil))
	return nil, FindFieldOutput{Found: ctl != nil, Control: controlInfo(ctl)}, nil
}

// FillFieldInput are the arguments of the fill_field tool.
type FillFieldInput struct {
	Session   string `json:"session,omitempty" jsonschema:"browser session name; defaults to the shared default session"`
	FieldType string `json:"field_type" jsonschema:"semantic field type, e.g. email, phone, name"`
	Value     string `json:"value" jsonschema:"the value to set"`
}

// FillFieldOutput is the result of the fill_field tool.
type FillFieldOutput struct {
	Filled  bool         `json:"filled"`
	Control *ControlInfo `json:"control,omitempty"`
}

func (t *Toolkit) fillField(ctx context.Context, req *mcpsdk.CallToolRequest, in FillFieldInput) (_ *mcpsdk.CallToolResult, out FillFieldOutput, err error) {
	start := time.Now()
	defer func() { t.finish(ctx, "fill_field", start, err) }()

	dom, err := t.pages.DOM(sessionName(in.Session))
	if err != nil {
		return nil, out, err
	}

	ctl, err := page.FillField(ctx, dom, page.FieldType(in.FieldType), in.Value)
	if err != nil {
		return nil, out, err
	}
	t.metrics.RecordLocatorScan(ctx, "field", scanOutcome(ctl != nil))
	return nil, FillFieldOutput{Filled: ctl != nil, Control: controlInfo(ctl)}, nil
}

// ClickButtonInput are the arguments of the click_button tool.
type ClickButtonInput struct {
	Session string `json:"session,omitempty" jsonschema:"browser session name; defaults to the shared default session"`
	Text    string `json:"text" jsonschema:"text the button's visible label must contain (case-insensitive)"`
}

// ClickButtonOutput is the result of the click_button tool.
type ClickButtonOutput struct {
	Clicked bool `json:"clicked"`
}

func (t *Toolkit) clickButton(ctx context.Context, req *mcpsdk.CallToolRequest, in ClickButtonInput) (_ *mcpsdk.CallToolResult, out ClickButtonOutput, err error) {
	start := time.Now()
	defer func() { t.finish(ctx, "click_button", start, err) }()

	dom, err := t.pages.DOM(sessionName(in.Session))
	if err != nil {
		return nil, out, err
	}

	clicked, err := page.ClickButton(ctx, dom, in.Text)
	if err != nil {
		return nil, out, err
	}
	t.metrics.RecordLocatorScan(ctx, "button", scanOutcome(clicked))
	return nil, ClickButtonOutput{Clicked: clicked}, nil
}

// ScrollInput are the arguments of the scroll tool.
type ScrollInput struct {
	Session   string `json:"session,omitempty" jsonschema:"browser session name; defaults to the shared default session"`
	Direction string `json:"direction" jsonschema:"one of up, down, top, bottom"`
}

// ScrollOutput is the result of the scroll tool.
type ScrollOutput struct {
	Scrolled bool `json:"scrolled"`
}

func (t *Toolkit) scroll(ctx context.Context, req *mcpsdk.CallToolRequest, in ScrollInput) (_ *mcpsdk.CallToolResult, out ScrollOutput, err error) {
	start := time.Now()
	defer func() { t.finish(ctx, "scroll", start, err) }()

	dom, err := t.pages.DOM(sessionName(in.Session))
	if err != nil {
		return nil, out, err
	}

	scrolled, err := page.ScrollPage(ctx, dom, page.Direction(in.Direction))
	if err != nil {
		return nil, out, err
	}
	if scrolled {
		t.metrics.RecordScroll(ctx, in.Direction)
	}
	return nil, ScrollOutput{Scrolled: scrolled}, nil
}

// HighlightInput are the arguments of the highlight tool.
type HighlightInput struct {
	Session string `json:"session,omitempty" jsonschema:"browser session name; defaults to the shared default session"`
	Ref     string `json:"ref" jsonschema:"element ref from a previous find_field or fill_field result"`
}

// HighlightOutput is the result of the highlight tool.
type HighlightOutput struct {
	Highlighted bool `json:"highlighted"`
}

func (t *Toolkit) highlight(ctx context.Context, req *mcpsdk.CallToolRequest, in HighlightInput) (_ *mcpsdk.CallToolResult, out HighlightOutput, err error) {
	start := time.Now()
	defer func() { t.finish(ctx, "highlight", start, err) }()

	dom, err := t.pages.DOM(sessionName(in.Session))
	if err != nil {
		return nil, out, err
	}

	if err = page.HighlightElement(ctx, dom, in.Ref, t.highlightOpts...); err != nil {
		return nil, out, err
	}
	return nil, HighlightOutput{Highlighted: in.Ref != ""}, nil
}

// DetectSiteInput are the arguments of the detect_site tool.
type DetectSiteInput struct {
	Session string `json:"session,omitempty" jsonschema:"browser session name; defaults to the shared default session"`
}

// DetectSiteOutput is the result of the detect_site tool.
type DetectSiteOutput struct {
	Site string `json:"site"`
}

func (t *Toolkit) detectSite(ctx context.Context, req *mcpsdk.CallToolRequest, in DetectSiteInput) (_ *mcpsdk.CallToolResult, out DetectSiteOutput, err error) {
	start := time.Now()
	defer func() { t.finish(ctx, "detect_site", start, err) }()

	dom, err := t.pages.DOM(sessionName(in.Session))
	if err != nil {
		return nil, out, err
	}

	site, err := page.DetectWebsite(ctx, dom)
	if err != nil {
		return nil, out, err
	}
	return nil, DetectSiteOutput{Site: string(site)}, nil
}

// ExtractContentInput are the arguments of the extract_content tool.
type ExtractContentInput struct {
	Session string `json:"session,omitempty" jsonschema:"browser session name; defaults to the shared default session"`
}

// ExtractContentOutput is the result of the extract_content tool.
type ExtractContentOutput struct {
	Content string `json:"content"`
	Chars   int    `json:"chars"`
}

func (t *Toolkit) extractContent(ctx context.Context, req *mcpsdk.CallToolRequest, in ExtractContentInput) (_ *mcpsdk.CallToolResult, out ExtractContentOutput, err error) {
	start := time.Now()
	defer func() { t.finish(ctx, "extract_content", start, err) }()

	dom, err := t.pages.DOM(sessionName(in.Session))
	if err != nil {
		return nil, out, err
	}

	content, err := page.ExtractContent(ctx, dom)
	if err != nil {
		return nil, out, err
	}
	t.metrics.RecordExtract(ctx, len(content))
	return nil, ExtractContentOutput{Content: content, Chars: len(content)}, nil
}

// AttachResumeInput are the arguments of the attach_resume tool.
type AttachResumeInput struct {
	Session string `json:"session,omitempty" jsonschema:"browser session name; defaults to the shared default session"`
	Path    string `json:"path" jsonschema:"path to the resume PDF on the server"`
}

// AttachResumeOutput is the result of the attach_resume tool.
type AttachResumeOutput struct {
	Attached bool `json:"attached"`
}

func (t *Toolkit) attachResume(ctx context.Context, req *mcpsdk.CallToolRequest, in AttachResumeInput) (_ *mcpsdk.CallToolResult, out AttachResumeOutput, err error) {
	start := time.Now()
	defer func() { t.finish(ctx, "attach_resume", start, err) }()

	dom, err := t.pages.DOM(sessionName(in.Session))
	if err != nil {
		return nil, out, err
	}

	attached, err := page.AttachResume(ctx, dom, in.Path)
	if err != nil {
		return nil, out, err
	}
	return nil, AttachResumeOutput{Attached: attached}, nil
}

// CloseSessionInput are the arguments of the close_session tool.
type CloseSessionInput struct {
	Session string `json:"session,omitempty" jsonschema:"browser session name; defaults to the shared default session"`
}

// CloseSessionOutput is the result of the close_session tool.
type CloseSessionOutput struct {
	Closed bool `json:"closed"`
}

func (t *Toolkit) closeSession(ctx context.Context, req *mcpsdk.CallToolRequest, in CloseSessionInput) (_ *mcpsdk.CallToolResult, out CloseSessionOutput, err error) {
	start := time.Now()
	defer func() { t.finish(ctx, "close_session", start, err) }()

	cerr := t.pages.CloseSession(sessionName(in.Session))
	if cerr != nil {
		// Closing a session that was never opened is an expected
		// outcome, not a tool failure.
		if errors.Is(cerr, browser.ErrSessionNotFound) {
			return nil, CloseSessionOutput{}, nil
		}
		err = cerr
		return nil, out, err
	}
	return nil, CloseSessionOutput{Closed: true}, nil
}

// SessionSummary is the wire shape of one open browser session.
type SessionSummary struct {
	Session  string `json:"session"`
	URL      string `json:"url"`
	Headless bool   `json:"headless"`
	AgeSec   int64  `json:"age_sec"`
	IdleSec  int64  `json:"idle_sec"`
}

// ListSessionsInput are the arguments of the list_sessions tool.
type ListSessionsInput struct{}

// ListSessionsOutput is the result of the list_sessions tool.
type ListSessionsOutput struct {
	Sessions []SessionSummary `json:"sessions"`
	Count    int              `json:"count"`
}

func (t *Toolkit) listSessions(ctx context.Context, req *mcpsdk.CallToolRequest, in ListSessionsInput) (_ *mcpsdk.CallToolResult, out ListSessionsOutput, err error) {
	start := time.Now()
	defer func() { t.finish(ctx, "list_sessions", start, err) }()

	infos := t.pages.ListSessions()
	now := time.Now()
	summaries := make([]SessionSummary, 0, len(infos))
	for _, info := range infos {
		summaries = append(summaries, SessionSummary{
			Session:  info.Name,
			URL:      info.CurrentURL,
			Headless: info.Headless,
			AgeSec:   int64(now.Sub(info.CreatedAt).Seconds()),
			IdleSec:  int64(now.Sub(info.LastUsedAt).Seconds()),
		})
	}
	return nil, ListSessionsOutput{Sessions: summaries, Count: len(summaries)}, nil
}

// scanOutcome is the metric attribute value for a locator scan result.
func scanOutcome(found bool) string {
	if found {
		return "found"
	}
	return "not_found"
}
