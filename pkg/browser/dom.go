package browser

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/entrhq/pagevoice/pkg/page"
)

// refAttribute is the attribute the enumeration scripts tag elements
// with so later operations can address the exact element a scan found.
const refAttribute = "data-pagevoice-ref"

// Session implements page.DOM.
var _ page.DOM = (*Session)(nil)

// jsonControl mirrors the objects the form-control scan script returns.
type jsonControl struct {
	Ref         string `json:"ref"`
	Tag         string `json:"tag"`
	Type        string `json:"type"`
	ID          string `json:"id"`
	Name        string `json:"name"`
	Label       string `json:"label"`
	Placeholder string `json:"placeholder"`
	AriaLabel   string `json:"ariaLabel"`
}

// jsonClickable mirrors the objects the clickable scan script returns.
type jsonClickable struct {
	Ref         string `json:"ref"`
	InnerText   string `json:"innerText"`
	Value       string `json:"value"`
	TextContent string `json:"textContent"`
}

// FormControls enumerates the page's field candidates in document order.
func (s *Session) FormControls(ctx context.Context) ([]page.Control, error) {
	s.UpdateLastUsed()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := s.Page.Evaluate(formControlsScript, s.nextScanPrefix())
	if err != nil {
		return nil, fmt.Errorf("form control scan failed: %w", err)
	}

	var raw []jsonControl
	if err := remarshal(result, &raw); err != nil {
		return nil, fmt.Errorf("form control scan returned unexpected data: %w", err)
	}

	controls := make([]page.Control, len(raw))
	for i, c := range raw {
		controls[i] = page.Control{
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
	return controls, nil
}

// Clickables enumerates the page's click candidates in document order.
func (s *Session) Clickables(ctx context.Context) ([]page.Clickable, error) {
	s.UpdateLastUsed()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := s.Page.Evaluate(clickablesScript, s.nextScanPrefix())
	if err != nil {
		return nil, fmt.Errorf("clickable scan failed: %w", err)
	}

	var raw []jsonClickable
	if err := remarshal(result, &raw); err != nil {
		return nil, fmt.Errorf("clickable scan returned unexpected data: %w", err)
	}

	clickables := make([]page.Clickable, len(raw))
	for i, c := range raw {
		clickables[i] = page.Clickable{
			Ref:         c.Ref,
			InnerText:   c.InnerText,
			Value:       c.Value,
			TextContent: c.TextContent,
		}
	}
	return clickables, nil
}

// Click dispatches a click on the element behind ref.
func (s *Session) Click(ctx context.Context, ref string) error {
	s.UpdateLastUsed()
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.Page.Click(refSelector(ref)); err != nil {
		return fmt.Errorf("click failed: %w", err)
	}

	// The click may have navigated.
	s.CurrentURL = s.Page.URL()
	return nil
}

// SetValue sets the value of the form control behind ref and fires the
// input and change events a user interaction would.
func (s *Session) SetValue(ctx context.Context, ref, value string) error {
	s.UpdateLastUsed()
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := s.Page.Evaluate(setValueScript, map[string]interface{}{
		"selector": refSelector(ref),
		"value":    value,
	})
	if err != nil {
		return fmt.Errorf("set value failed: %w", err)
	}
	return nil
}

// SetFiles attaches files to the file input behind ref.
func (s *Session) SetFiles(ctx context.Context, ref string, paths []string) error {
	s.UpdateLastUsed()
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.Page.SetInputFiles(refSelector(ref), paths); err != nil {
		return fmt.Errorf("set files failed: %w", err)
	}
	return nil
}

// ScrollBy scrolls vertically by a signed fraction of the viewport
// height.
func (s *Session) ScrollBy(ctx context.Context, fraction float64) error {
	s.UpdateLastUsed()
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := s.Page.Evaluate(scrollByScript, fraction); err != nil {
		return fmt.Errorf("scroll failed: %w", err)
	}
	return nil
}

// ScrollTo jumps to a document edge.
func (s *Session) ScrollTo(ctx context.Context, edge page.Edge) error {
	s.UpdateLastUsed()
	if err := ctx.Err(); err != nil {
		return err
	}

	script := scrollTopScript
	if edge == page.EdgeBottom {
		script = scrollBottomScript
	}
	if _, err := s.Page.Evaluate(script); err != nil {
		return fmt.Errorf("scroll failed: %w", err)
	}
	return nil
}

// ScrollIntoView smooth-scrolls the element behind ref to the center of
// the viewport. A vanished element is a no-op.
func (s *Session) ScrollIntoView(ctx context.Context, ref string) error {
	s.UpdateLastUsed()
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := s.Page.Evaluate(scrollIntoViewScript, refSelector(ref)); err != nil {
		return fmt.Errorf("scroll into view failed: %w", err)
	}
	return nil
}

// SwapStyles applies the given inline style properties to the element
// behind ref and returns the previous inline values of exactly those
// properties.
func (s *Session) SwapStyles(ctx context.Context, ref string, styles map[string]string) (map[string]string, error) {
	s.UpdateLastUsed()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := s.Page.Evaluate(swapStylesScript, map[string]interface{}{
		"selector": refSelector(ref),
		"styles":   styles,
	})
	if err != nil {
		return nil, fmt.Errorf("style swap failed: %w", err)
	}

	var previous map[string]string
	if err := remarshal(result, &previous); err != nil {
		return nil, fmt.Errorf("style swap returned unexpected data: %w", err)
	}
	return previous, nil
}

// InnerText returns the rendered text of the first element matching the
// selector.
func (s *Session) InnerText(ctx context.Context, selector string) (string, bool, error) {
	s.UpdateLastUsed()
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	result, err := s.Page.Evaluate(innerTextScript, selector)
	if err != nil {
		return "", false, fmt.Errorf("inner text read failed: %w", err)
	}
	if result == nil {
		return "", false, nil
	}

	var text string
	if err := remarshal(result, &text); err != nil {
		return "", false, fmt.Errorf("inner text read returned unexpected data: %w", err)
	}
	return text, true, nil
}

// InnerTexts returns the rendered text of every element matching the
// selector, in document order.
func (s *Session) InnerTexts(ctx context.Context, selector string) ([]string, error) {
	s.UpdateLastUsed()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := s.Page.Evaluate(innerTextsScript, selector)
	if err != nil {
		return nil, fmt.Errorf("inner texts read failed: %w", err)
	}

	var texts []string
	if err := remarshal(result, &texts); err != nil {
		return nil, fmt.Errorf("inner texts read returned unexpected data: %w", err)
	}
	return texts, nil
}

// Hostname returns the hostname of the page's current location.
func (s *Session) Hostname(ctx context.Context) (string, error) {
	s.UpdateLastUsed()
	if err := ctx.Err(); err != nil {
		return "", err
	}

	result, err := s.Page.Evaluate(hostnameScript)
	if err != nil {
		return "", fmt.Errorf("hostname read failed: %w", err)
	}

	var host string
	if err := remarshal(result, &host); err != nil {
		return "", fmt.Errorf("hostname read returned unexpected data: %w", err)
	}
	return host, nil
}

// refSelector builds the CSS selector addressing the element tagged with
// ref. Refs are generated by this package and contain no characters that
// need escaping.
func refSelector(ref string) string {
	return fmt.Sprintf("[%s=%q]", refAttribute, ref)
}

// remarshal decodes an evaluated JavaScript result (generic maps and
// slices) into a typed value via a JSON round trip.
func remarshal(v interface{}, out interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}
