package page_test

import (
	"context"
	"errors"
	"testing"

	"github.com/entrhq/pagevoice/pkg/page"
	"github.com/entrhq/pagevoice/pkg/page/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFormFieldMatchesEverySignal(t *testing.T) {
	// The phone patterns must be discoverable through any of the five
	// identifying signals.
	tests := []struct {
		name    string
		control page.Control
	}{
		{name: "id", control: page.Control{Ref: "c0", Tag: "input", ID: "phone-number"}},
		{name: "name attribute", control: page.Control{Ref: "c0", Tag: "input", Name: "userPhone"}},
		{name: "label", control: page.Control{Ref: "c0", Tag: "input", Label: "Mobile number"}},
		{name: "placeholder", control: page.Control{Ref: "c0", Tag: "input", Placeholder: "Telephone"}},
		{name: "aria label", control: page.Control{Ref: "c0", Tag: "input", AriaLabel: "Cell phone"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dom := &mock.DOM{Controls: []page.Control{tt.control}}

			got, err := page.FindFormField(context.Background(), dom, page.FieldPhone)

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, "c0", got.Ref)
		})
	}
}

func TestFindFormFieldEveryFieldType(t *testing.T) {
	tests := []struct {
		fieldType page.FieldType
		signal    string
	}{
		{page.FieldName, "full name"},
		{page.FieldEmail, "email address"},
		{page.FieldPhone, "phone"},
		{page.FieldAddress, "street address"},
		{page.FieldCity, "city"},
		{page.FieldState, "state or province"},
		{page.FieldZip, "postal code"},
		{page.FieldCountry, "country"},
		{page.FieldCompany, "current employer"},
		{page.FieldTitle, "job title"},
		{page.FieldExperience, "years of experience"},
		{page.FieldEducation, "highest degree"},
		{page.FieldSkills, "skills"},
		{page.FieldResume, "upload resume"},
	}

	for _, tt := range tests {
		t.Run(string(tt.fieldType), func(t *testing.T) {
			dom := &mock.DOM{Controls: []page.Control{
				{Ref: "noise", Tag: "input", ID: "q"},
				{Ref: "hit", Tag: "input", Label: tt.signal},
			}}

			got, err := page.FindFormField(context.Background(), dom, tt.fieldType)

			require.NoError(t, err)
			require.NotNil(t, got, "field type %s should match label %q", tt.fieldType, tt.signal)
			assert.Equal(t, "hit", got.Ref)
		})
	}
}

func TestFindFormFieldEmailTypeShortCircuit(t *testing.T) {
	// An input of type email matches FieldEmail whatever its other
	// signals say.
	dom := &mock.DOM{Controls: []page.Control{
		{Ref: "c0", Tag: "input", Type: "email", ID: "x7", Name: "q"},
	}}

	got, err := page.FindFormField(context.Background(), dom, page.FieldEmail)

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "c0", got.Ref)
}

func TestFindFormFieldTelTypeShortCircuit(t *testing.T) {
	dom := &mock.DOM{Controls: []page.Control{
		{Ref: "c0", Tag: "input", Type: "tel", ID: "x7"},
	}}

	got, err := page.FindFormField(context.Background(), dom, page.FieldPhone)

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "c0", got.Ref)
}

func TestFindFormFieldDocumentOrderWins(t *testing.T) {
	dom := &mock.DOM{Controls: []page.Control{
		{Ref: "first", Tag: "input", ID: "email-primary"},
		{Ref: "second", Tag: "input", Type: "email"},
	}}

	got, err := page.FindFormField(context.Background(), dom, page.FieldEmail)

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "first", got.Ref)
}

func TestFindFormFieldNotFound(t *testing.T) {
	dom := &mock.DOM{Controls: []page.Control{
		{Ref: "c0", Tag: "input", ID: "search", Name: "q", Placeholder: "Search"},
	}}

	got, err := page.FindFormField(context.Background(), dom, page.FieldEmail)

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFindFormFieldUnknownType(t *testing.T) {
	// Unknown field types have no patterns and match nothing.
	dom := &mock.DOM{Controls: []page.Control{
		{Ref: "c0", Tag: "input", ID: "favorite-color", Label: "Favorite color"},
	}}

	got, err := page.FindFormField(context.Background(), dom, page.FieldType("favorite-color"))

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFindFormFieldScanError(t *testing.T) {
	dom := &mock.DOM{ControlsErr: errors.New("page closed")}

	_, err := page.FindFormField(context.Background(), dom, page.FieldEmail)

	assert.Error(t, err)
}

func TestFillField(t *testing.T) {
	dom := &mock.DOM{Controls: []page.Control{
		{Ref: "c3", Tag: "input", ID: "city"},
	}}

	got, err := page.FillField(context.Background(), dom, page.FieldCity, "Lisbon")

	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, dom.SetValueCalls, 1)
	assert.Equal(t, "c3", dom.SetValueCalls[0].Ref)
	assert.Equal(t, "Lisbon", dom.SetValueCalls[0].Value)
}

func TestFillFieldNotFound(t *testing.T) {
	dom := &mock.DOM{}

	got, err := page.FillField(context.Background(), dom, page.FieldCity, "Lisbon")

	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Empty(t, dom.SetValueCalls)
}

func TestFillFieldSetValueError(t *testing.T) {
	dom := &mock.DOM{
		Controls:    []page.Control{{Ref: "c3", Tag: "input", ID: "city"}},
		SetValueErr: errors.New("element detached"),
	}

	_, err := page.FillField(context.Background(), dom, page.FieldCity, "Lisbon")

	assert.Error(t, err)
}
