package page

import (
	"context"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// AttachResume validates that path is a well-formed PDF and uploads it
// into the first file control identified as a resume field. Returns true
// when the file was attached, (false, nil) when the page has no resume
// file control, and an error when the PDF is invalid or the upload
// fails.
func AttachResume(ctx context.Context, dom DOM, path string) (bool, error) {
	if err := api.ValidateFile(path, nil); err != nil {
		return false, fmt.Errorf("validate resume pdf: %w", err)
	}

	controls, err := dom.FormControls(ctx)
	if err != nil {
		return false, err
	}

	ctl := findResumeFileControl(controls)
	if ctl == nil {
		return false, nil
	}

	if err := dom.SetFiles(ctx, ctl.Ref, []string{path}); err != nil {
		return false, err
	}
	return true, nil
}

// findResumeFileControl returns the first file input whose signals match
// the resume patterns, or nil.
func findResumeFileControl(controls []Control) *Control {
	patterns := fieldPatterns[FieldResume]
	for i := range controls {
		c := &controls[i]
		if c.Type != "file" {
			continue
		}
		if matchesPatterns(c, patterns) {
			return c
		}
	}
	return nil
}
