// Package mock provides a test double for the page.DOM interface.
//
// Use DOM to script the controls, clickables, and texts a page exposes
// and to verify the clicks, value sets, scrolls, and style swaps the
// heuristics perform. Inline styles are simulated for real: SwapStyles
// records the call, applies the new values, and returns the previous
// ones, so highlight revert behavior can be observed end to end.
//
// Example:
//
//	dom := &mock.DOM{
//	    Controls: []page.Control{{Ref: "c0", Tag: "input", ID: "email"}},
//	}
//	ctl, _ := page.FindFormField(ctx, dom, page.FieldEmail)
package mock

import (
	"context"
	"sync"

	"github.com/entrhq/pagevoice/pkg/page"
)

// SetValueCall records a single invocation of SetValue.
type SetValueCall struct {
	// Ref is the control ref passed to SetValue.
	Ref string
	// Value is the value passed to SetValue.
	Value string
}

// SetFilesCall records a single invocation of SetFiles.
type SetFilesCall struct {
	// Ref is the control ref passed to SetFiles.
	Ref string
	// Paths is a copy of the paths passed to SetFiles.
	Paths []string
}

// SwapStylesCall records a single invocation of SwapStyles.
type SwapStylesCall struct {
	// Ref is the element ref passed to SwapStyles.
	Ref string
	// Styles is a copy of the styles passed to SwapStyles.
	Styles map[string]string
}

// DOM is a mock implementation of page.DOM.
type DOM struct {
	mu sync.Mutex

	// --- Configurable responses ---

	// Controls is returned by FormControls.
	Controls []page.Control

	// ControlsErr, if non-nil, is returned as the error from FormControls.
	ControlsErr error

	// ClickablesResult is returned by Clickables.
	ClickablesResult []page.Clickable

	// ClickablesErr, if non-nil, is returned as the error from Clickables.
	ClickablesErr error

	// ClickErr, if non-nil, is returned from Click.
	ClickErr error

	// SetValueErr, if non-nil, is returned from SetValue.
	SetValueErr error

	// SetFilesErr, if non-nil, is returned from SetFiles.
	SetFilesErr error

	// ScrollErr, if non-nil, is returned from ScrollBy, ScrollTo, and
	// ScrollIntoView.
	ScrollErr error

	// SwapStylesErr, if non-nil, is returned from SwapStyles.
	SwapStylesErr error

	// Texts maps a selector to the inner text InnerText reports for it.
	// Selectors absent from the map report found=false.
	Texts map[string]string

	// TextsList maps a selector to the texts InnerTexts reports for it.
	TextsList map[string][]string

	// Host is returned by Hostname.
	Host string

	// HostErr, if non-nil, is returned as the error from Hostname.
	HostErr error

	// --- Call records ---

	// ClickCalls records the ref of every Click in order.
	ClickCalls []string

	// SetValueCalls records every call to SetValue in order.
	SetValueCalls []SetValueCall

	// SetFilesCalls records every call to SetFiles in order.
	SetFilesCalls []SetFilesCall

	// ScrollByCalls records the fraction of every ScrollBy in order.
	ScrollByCalls []float64

	// ScrollToCalls records the edge of every ScrollTo in order.
	ScrollToCalls []page.Edge

	// ScrollIntoViewCalls records the ref of every ScrollIntoView in order.
	ScrollIntoViewCalls []string

	// SwapStylesCalls records every call to SwapStyles in order.
	SwapStylesCalls []SwapStylesCall

	// styles holds the simulated inline styles per ref.
	styles map[string]map[string]string
}

// FormControls returns Controls, ControlsErr.
func (d *DOM) FormControls(ctx context.Context) ([]page.Control, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.Controls, d.ControlsErr
}

// Clickables returns ClickablesResult, ClickablesErr.
func (d *DOM) Clickables(ctx context.Context) ([]page.Clickable, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ClickablesResult, d.ClickablesErr
}

// Click records the call and returns ClickErr.
func (d *DOM) Click(ctx context.Context, ref string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ClickCalls = append(d.ClickCalls, ref)
	return d.ClickErr
}

// SetValue records the call and returns SetValueErr.
func (d *DOM) SetValue(ctx context.Context, ref, value string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.SetValueCalls = append(d.SetValueCalls, SetValueCall{Ref: ref, Value: value})
	return d.SetValueErr
}

// SetFiles records the call and returns SetFilesErr.
func (d *DOM) SetFiles(ctx context.Context, ref string, paths []string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	pathsCopy := make([]string, len(paths))
	copy(pathsCopy, paths)
	d.SetFilesCalls = append(d.SetFilesCalls, SetFilesCall{Ref: ref, Paths: pathsCopy})
	return d.SetFilesErr
}

// ScrollBy records the call and returns ScrollErr.
func (d *DOM) ScrollBy(ctx context.Context, fraction float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ScrollByCalls = append(d.ScrollByCalls, fraction)
	return d.ScrollErr
}

// ScrollTo records the call and returns ScrollErr.
func (d *DOM) ScrollTo(ctx context.Context, edge page.Edge) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ScrollToCalls = append(d.ScrollToCalls, edge)
	return d.ScrollErr
}

// ScrollIntoView records the call and returns ScrollErr.
func (d *DOM) ScrollIntoView(ctx context.Context, ref string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ScrollIntoViewCalls = append(d.ScrollIntoViewCalls, ref)
	return d.ScrollErr
}

// SwapStyles records the call, applies styles to the simulated element,
// and returns the previous values of exactly the given properties (empty
// string for properties that were unset).
func (d *DOM) SwapStyles(ctx context.Context, ref string, styles map[string]string) (map[string]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	stylesCopy := make(map[string]string, len(styles))
	for k, v := range styles {
		stylesCopy[k] = v
	}
	d.SwapStylesCalls = append(d.SwapStylesCalls, SwapStylesCall{Ref: ref, Styles: stylesCopy})

	if d.SwapStylesErr != nil {
		return nil, d.SwapStylesErr
	}

	if d.styles == nil {
		d.styles = make(map[string]map[string]string)
	}
	if d.styles[ref] == nil {
		d.styles[ref] = make(map[string]string)
	}

	previous := make(map[string]string, len(styles))
	for k, v := range styles {
		previous[k] = d.styles[ref][k]
		d.styles[ref][k] = v
	}
	return previous, nil
}

// InnerText returns the scripted text for the selector; found is false
// for selectors absent from Texts.
func (d *DOM) InnerText(ctx context.Context, selector string) (string, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	text, ok := d.Texts[selector]
	return text, ok, nil
}

// InnerTexts returns the scripted texts for the selector.
func (d *DOM) InnerTexts(ctx context.Context, selector string) ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.TextsList[selector], nil
}

// Hostname returns Host, HostErr.
func (d *DOM) Hostname(ctx context.Context) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.Host, d.HostErr
}

// SwapStylesCount reports how many times SwapStyles has been called.
// Thread-safe; for polling while a highlight revert is pending.
func (d *DOM) SwapStylesCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.SwapStylesCalls)
}

// StyleOf returns the current simulated inline value of one style
// property. Thread-safe; for asserting on highlight state.
func (d *DOM) StyleOf(ref, property string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.styles[ref][property]
}

// SetStyle seeds the simulated inline style of an element before a test.
// Thread-safe.
func (d *DOM) SetStyle(ref, property, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.styles == nil {
		d.styles = make(map[string]map[string]string)
	}
	if d.styles[ref] == nil {
		d.styles[ref] = make(map[string]string)
	}
	d.styles[ref][property] = value
}

// Reset clears all recorded calls and simulated styles. Thread-safe.
func (d *DOM) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ClickCalls = nil
	d.SetValueCalls = nil
	d.SetFilesCalls = nil
	d.ScrollByCalls = nil
	d.ScrollToCalls = nil
	d.ScrollIntoViewCalls = nil
	d.SwapStylesCalls = nil
	d.styles = nil
}

// Ensure DOM implements page.DOM at compile time.
var _ page.DOM = (*DOM)(nil)
