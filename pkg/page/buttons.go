package page

import (
	"context"
	"strings"
)

// clickableSelectors is the fixed candidate list for button clicking, in
// scan order. The DOM adapter enumerates candidates matching these; the
// list is exported to the adapter via ClickableSelector.
var clickableSelectors = []string{
	"button",
	`input[type="submit"]`,
	`input[type="button"]`,
	"a",
	`[role="button"]`,
}

// ClickableSelector returns the combined CSS selector the DOM adapter
// uses to enumerate click candidates.
func ClickableSelector() string {
	return strings.Join(clickableSelectors, ", ")
}

// ClickButton finds the first clickable element whose visible text
// contains text (case-insensitive) and clicks it. Returns true when a
// click was dispatched, (false, nil) when nothing matched, and an error
// only when the scan or the click itself failed.
func ClickButton(ctx context.Context, dom DOM, text string) (bool, error) {
	candidates, err := dom.Clickables(ctx)
	if err != nil {
		return false, err
	}

	// Contains semantics throughout: an empty text matches the first
	// candidate, even one with no visible text at all.
	want := strings.ToLower(text)
	for _, c := range candidates {
		visible := strings.ToLower(visibleText(c))
		if strings.Contains(visible, want) {
			if err := dom.Click(ctx, c.Ref); err != nil {
				return false, err
			}
			return true, nil
		}
	}

	return false, nil
}

// visibleText derives a clickable's visible text: the rendered text when
// non-empty, else the value attribute, else the raw text content.
func visibleText(c Clickable) string {
	if t := strings.TrimSpace(c.InnerText); t != "" {
		return t
	}
	if t := strings.TrimSpace(c.Value); t != "" {
		return t
	}
	return strings.TrimSpace(c.TextContent)
}
