package page

import (
	"context"
	"strings"
)

// FieldType is a semantic category of form input used to select a pattern
// list. Unknown values are permitted; they have no patterns and match
// nothing beyond the input-type special cases.
type FieldType string

const (
	FieldName       FieldType = "name"
	FieldEmail      FieldType = "email"
	FieldPhone      FieldType = "phone"
	FieldAddress    FieldType = "address"
	FieldCity       FieldType = "city"
	FieldState      FieldType = "state"
	FieldZip        FieldType = "zip"
	FieldCountry    FieldType = "country"
	FieldCompany    FieldType = "company"
	FieldTitle      FieldType = "title"
	FieldExperience FieldType = "experience"
	FieldEducation  FieldType = "education"
	FieldSkills     FieldType = "skills"
	FieldResume     FieldType = "resume"
)

// fieldPatterns maps each field type to its ordered list of lower-case
// substrings. A candidate matches when any pattern appears in any of its
// identifying signals. The lists are matching data, not display strings;
// order within a list is preserved for determinism.
var fieldPatterns = map[FieldType][]string{
	FieldName:       {"name", "full name", "fullname", "first", "last"},
	FieldEmail:      {"email", "e-mail", "mail"},
	FieldPhone:      {"phone", "mobile", "telephone", "cell"},
	FieldAddress:    {"address", "street"},
	FieldCity:       {"city", "town"},
	FieldState:      {"state", "province", "region"},
	FieldZip:        {"zip", "postal", "postcode"},
	FieldCountry:    {"country", "nation"},
	FieldCompany:    {"company", "employer", "organization"},
	FieldTitle:      {"title", "position", "role"},
	FieldExperience: {"experience", "years"},
	FieldEducation:  {"education", "degree", "school", "university"},
	FieldSkills:     {"skills", "expertise"},
	FieldResume:     {"resume", "cv", "curriculum"},
}

// FindFormField scans the page's form controls in document order and
// returns the first one identified as fieldType, or (nil, nil) when none
// matches.
//
// Two input types short-circuit the pattern scan: an input of type
// "email" always matches FieldEmail and an input of type "tel" always
// matches FieldPhone, whatever their other signals say. Every other
// match is a case-insensitive substring test of the field type's
// patterns against the candidate's id, name, label text, placeholder,
// and aria-label.
func FindFormField(ctx context.Context, dom DOM, fieldType FieldType) (*Control, error) {
	controls, err := dom.FormControls(ctx)
	if err != nil {
		return nil, err
	}

	patterns := fieldPatterns[fieldType]
	for i := range controls {
		c := &controls[i]

		// Input-type special cases win before any pattern matching.
		if fieldType == FieldEmail && c.Type == "email" {
			return c, nil
		}
		if fieldType == FieldPhone && c.Type == "tel" {
			return c, nil
		}

		if matchesPatterns(c, patterns) {
			return c, nil
		}
	}

	return nil, nil
}

// matchesPatterns reports whether any pattern appears in any of the
// control's identifying signals, compared lower-cased.
func matchesPatterns(c *Control, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}

	signals := []string{
		strings.ToLower(c.ID),
		strings.ToLower(c.Name),
		strings.ToLower(c.Label),
		strings.ToLower(c.Placeholder),
		strings.ToLower(c.AriaLabel),
	}

	for _, p := range patterns {
		for _, s := range signals {
			if s != "" && strings.Contains(s, p) {
				return true
			}
		}
	}
	return false
}

// FillField locates the field for fieldType and sets its value. Returns
// the control that was filled, (nil, nil) when no field matched, or the
// error from the locate or the set.
//
// The value goes through the DOM adapter's value setter, not through
// markup, so it needs no escaping.
func FillField(ctx context.Context, dom DOM, fieldType FieldType, value string) (*Control, error) {
	ctl, err := FindFormField(ctx, dom, fieldType)
	if err != nil || ctl == nil {
		return nil, err
	}

	if err := dom.SetValue(ctx, ctl.Ref, value); err != nil {
		return nil, err
	}
	return ctl, nil
}
