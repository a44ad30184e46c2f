package page

import "context"

// Edge is a document edge for absolute scrolling.
type Edge string

const (
	// EdgeTop is the document start.
	EdgeTop Edge = "top"

	// EdgeBottom is the document end.
	EdgeBottom Edge = "bottom"
)

// Control is one form control candidate with its harvested identifying
// signals. The adapter produces controls in document order.
type Control struct {
	// Ref is an opaque element handle understood by the DOM adapter
	Ref string

	// Tag is the lower-cased element name ("input", "textarea", "select")
	Tag string

	// Type is the lower-cased input type attribute; empty for non-inputs
	Type string

	// ID is the element id attribute
	ID string

	// Name is the name attribute
	Name string

	// Label is the associated label text (explicit association first,
	// else the label[for=id] lookup)
	Label string

	// Placeholder is the placeholder attribute
	Placeholder string

	// AriaLabel is the aria-label attribute
	AriaLabel string
}

// Clickable is one clickable candidate with the raw text signals its
// visible text is derived from. The adapter produces clickables in
// document order.
type Clickable struct {
	// Ref is an opaque element handle understood by the DOM adapter
	Ref string

	// InnerText is the rendered text
	InnerText string

	// Value is the value attribute (submit/button inputs)
	Value string

	// TextContent is the raw text content
	TextContent string
}

// DOM is the page capability interface all heuristics are written
// against. Implementations wrap one live page; mock.DOM is the
// deterministic fake.
//
// Refs handed out by the enumeration methods stay valid until the page
// navigates. Methods return an error only when the page itself fails;
// absence is expressed in the data (empty slices, found=false).
type DOM interface {
	// FormControls enumerates the field candidates: text-capable inputs
	// (excluding types hidden, submit, button), textareas and selects,
	// in document order, with their signals harvested.
	FormControls(ctx context.Context) ([]Control, error)

	// Clickables enumerates the click candidates: buttons, submit and
	// button inputs, anchors, and elements with role="button", in
	// document order.
	Clickables(ctx context.Context) ([]Clickable, error)

	// Click dispatches a click on the element behind ref.
	Click(ctx context.Context, ref string) error

	// SetValue sets the value of the form control behind ref, firing the
	// input and change events a user interaction would.
	SetValue(ctx context.Context, ref, value string) error

	// SetFiles attaches files to the file input behind ref.
	SetFiles(ctx context.Context, ref string, paths []string) error

	// ScrollBy scrolls vertically by a signed fraction of the viewport
	// height (negative is up).
	ScrollBy(ctx context.Context, fraction float64) error

	// ScrollTo jumps to a document edge.
	ScrollTo(ctx context.Context, edge Edge) error

	// ScrollIntoView smooth-scrolls the element behind ref to the center
	// of the viewport.
	ScrollIntoView(ctx context.Context, ref string) error

	// SwapStyles sets the given inline style properties on the element
	// behind ref and returns the previous inline values of exactly those
	// properties (empty string for properties that were unset). Setting
	// and capturing happen in one round trip.
	SwapStyles(ctx context.Context, ref string, styles map[string]string) (map[string]string, error)

	// InnerText returns the rendered text of the first element matching
	// the selector. found is false when nothing matches.
	InnerText(ctx context.Context, selector string) (text string, found bool, err error)

	// InnerTexts returns the rendered text of every element matching the
	// selector, in document order.
	InnerTexts(ctx context.Context, selector string) ([]string, error)

	// Hostname returns the hostname of the page's current location.
	Hostname(ctx context.Context) (string, error)
}
