package page

import (
	"context"
	"strings"
)

// mainContentSelectors is the preference order for the main-content
// region. The first selector with a match supplies the extracted text.
var mainContentSelectors = []string{
	"main",
	"article",
	".content",
	"#content",
}

// navigationSelectors are the regions whose text is subtracted from the
// full page text when no main-content region exists.
var navigationSelectors = []string{
	"nav",
	"header",
	"footer",
	"aside",
	".navigation",
	".menu",
	".sidebar",
}

// maxContentLength caps the extracted text.
const maxContentLength = 8000

// ExtractContent returns the readable text of the page: the rendered text
// of the first main-content region (main, article, .content, #content),
// or, when the page has none, the full page text with each
// navigation-like region's text removed once by literal substring
// subtraction. Either way the result is trimmed and capped at 8000
// characters. An empty page yields an empty string and no error.
//
// The subtraction is textual, not structural: if a navigation region's
// text recurs verbatim inside the content, the first occurrence is the
// one removed.
func ExtractContent(ctx context.Context, dom DOM) (string, error) {
	for _, sel := range mainContentSelectors {
		text, found, err := dom.InnerText(ctx, sel)
		if err != nil {
			return "", err
		}
		if found {
			return truncate(strings.TrimSpace(text), maxContentLength), nil
		}
	}

	body, _, err := dom.InnerText(ctx, "body")
	if err != nil {
		return "", err
	}

	for _, sel := range navigationSelectors {
		regions, err := dom.InnerTexts(ctx, sel)
		if err != nil {
			return "", err
		}
		for _, region := range regions {
			if region == "" {
				continue
			}
			body = strings.Replace(body, region, "", 1)
		}
	}

	return truncate(strings.TrimSpace(body), maxContentLength), nil
}

// truncate caps s at max characters (runes, not bytes).
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
