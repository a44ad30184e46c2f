package speech

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChooseFemaleVoice(t *testing.T) {
	tests := []struct {
		name     string
		voices   []Voice
		lang     string
		wantName string
		wantOK   bool
	}{
		{
			name: "name hint female",
			voices: []Voice{
				{Name: "Daniel", Lang: "en-GB"},
				{Name: "Samantha Female", Lang: "en-US"},
			},
			lang:     "en-US",
			wantName: "Samantha Female",
			wantOK:   true,
		},
		{
			name: "name hint is case insensitive",
			voices: []Voice{
				{Name: "Microsoft Zira Desktop", Lang: "en-US"},
			},
			lang:     "en-US",
			wantName: "Microsoft Zira Desktop",
			wantOK:   true,
		},
		{
			name: "reported gender female",
			voices: []Voice{
				{Name: "Daniel", Lang: "en-GB", Gender: "male"},
				{Name: "Nova", Lang: "en-US", Gender: "Female"},
			},
			lang:     "en-US",
			wantName: "Nova",
			wantOK:   true,
		},
		{
			name: "first qualifying voice wins",
			voices: []Voice{
				{Name: "Hazel", Lang: "en-GB"},
				{Name: "Susan", Lang: "en-US"},
			},
			lang:     "en-US",
			wantName: "Hazel",
			wantOK:   true,
		},
		{
			name: "google fallback matches language family",
			voices: []Voice{
				{Name: "Daniel", Lang: "en-GB"},
				{Name: "Google Deutsch", Lang: "de-DE"},
				{Name: "Google UK English Male", Lang: "en-GB"},
			},
			lang:     "en-US",
			wantName: "Google UK English Male",
			wantOK:   true,
		},
		{
			name: "google fallback is case sensitive",
			voices: []Voice{
				{Name: "google english", Lang: "en-US"},
			},
			lang:   "en-US",
			wantOK: false,
		},
		{
			name: "hints beat fallback regardless of order",
			voices: []Voice{
				{Name: "Google US English", Lang: "en-US"},
				{Name: "Microsoft Hazel", Lang: "en-GB"},
			},
			lang:     "en-US",
			wantName: "Microsoft Hazel",
			wantOK:   true,
		},
		{
			name: "no acceptable voice",
			voices: []Voice{
				{Name: "Daniel", Lang: "en-GB", Gender: "male"},
				{Name: "Thomas", Lang: "fr-FR"},
			},
			lang:   "en-US",
			wantOK: false,
		},
		{
			name:   "empty voice list",
			voices: nil,
			lang:   "en-US",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ChooseFemaleVoice(tt.voices, tt.lang)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantName, got.Name)
			}
		})
	}
}

func TestConfigureUtterance(t *testing.T) {
	voices := []Voice{
		{Name: "Daniel", Lang: "en-GB", Gender: "male"},
		{Name: "Microsoft Zira", Lang: "en-US"},
	}

	u := ConfigureUtterance("hello there", "en-US", voices)

	assert.Equal(t, "hello there", u.Text)
	assert.Equal(t, "en-US", u.Lang)
	assert.Equal(t, "Microsoft Zira", u.VoiceName)
	assert.Equal(t, UtterancePitch, u.Pitch)
	assert.Equal(t, UtteranceRate, u.Rate)
}

func TestConfigureUtteranceWithoutPreferredVoice(t *testing.T) {
	// Pitch and rate apply even when no voice qualified.
	u := ConfigureUtterance("bonjour", "fr-FR", nil)

	assert.Empty(t, u.VoiceName)
	assert.Equal(t, UtterancePitch, u.Pitch)
	assert.Equal(t, UtteranceRate, u.Rate)
}

func TestLangFamily(t *testing.T) {
	tests := []struct {
		lang string
		want string
	}{
		{"en-US", "en"},
		{"en", "en"},
		{"pt-BR", "pt"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, langFamily(tt.lang))
	}
}
