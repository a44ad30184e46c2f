package speech

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchCommandExact(t *testing.T) {
	commands := []string{"scroll down", "submit form", "next field"}

	got, score, ok := MatchCommand("submit form", commands)

	assert.True(t, ok)
	assert.Equal(t, "submit form", got)
	assert.InDelta(t, 1.0, score, 0.001)
}

func TestMatchCommandPreservesCommandCasing(t *testing.T) {
	got, _, ok := MatchCommand("SUBMIT FORM", []string{"Submit Form"})

	assert.True(t, ok)
	assert.Equal(t, "Submit Form", got)
}

func TestMatchCommandMisheardWord(t *testing.T) {
	// "role down" for "scroll down": the shared word aligns phonetically,
	// so the command is accepted at the lower phonetic threshold.
	commands := []string{"scroll up", "scroll down"}

	got, score, ok := MatchCommand("role down", commands)

	assert.True(t, ok)
	assert.Equal(t, "scroll down", got)
	assert.GreaterOrEqual(t, score, 0.70)
}

func TestMatchCommandFuzzyFallback(t *testing.T) {
	// "main" and "mail" share no metaphone code (MN vs ML), so matching
	// falls back to string similarity, which clears the fuzzy threshold.
	got, score, ok := MatchCommand("main", []string{"mail"})

	assert.True(t, ok)
	assert.Equal(t, "mail", got)
	assert.GreaterOrEqual(t, score, 0.85)
}

func TestMatchCommandFuzzyThresholdOption(t *testing.T) {
	// Same pair as above, with the fuzzy bar raised out of reach.
	_, _, ok := MatchCommand("main", []string{"mail"}, WithFuzzyThreshold(0.95))

	assert.False(t, ok)
}

func TestMatchCommandNoMatch(t *testing.T) {
	got, score, ok := MatchCommand("hello", []string{"submit form", "next field"})

	assert.False(t, ok)
	assert.Empty(t, got)
	assert.Zero(t, score)
}

func TestMatchCommandEmptyInputs(t *testing.T) {
	tests := []struct {
		name     string
		heard    string
		commands []string
	}{
		{name: "empty transcript", heard: "", commands: []string{"scroll down"}},
		{name: "whitespace transcript", heard: "   ", commands: []string{"scroll down"}},
		{name: "no commands", heard: "scroll down", commands: nil},
		{name: "blank command skipped", heard: "scroll down", commands: []string{"  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, ok := MatchCommand(tt.heard, tt.commands)
			assert.False(t, ok)
		})
	}
}
