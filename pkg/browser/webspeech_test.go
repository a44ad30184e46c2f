package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/pagevoice/pkg/speech"
)

func TestRemarshalVoices(t *testing.T) {
	evaluated := []interface{}{
		map[string]interface{}{"name": "Microsoft Zira", "lang": "en-US", "default": true},
		map[string]interface{}{"name": "Google UK English Female", "lang": "en-GB", "default": false},
	}

	var raw []jsonVoice
	require.NoError(t, remarshal(evaluated, &raw))
	require.Len(t, raw, 2)

	assert.Equal(t, "Microsoft Zira", raw[0].Name)
	assert.True(t, raw[0].Default)
	assert.Equal(t, "en-GB", raw[1].Lang)
}

func TestRemarshalRecognitionOutcome(t *testing.T) {
	var outcome struct {
		Transcript *string `json:"transcript"`
		ErrorCode  string  `json:"errorCode"`
		Ended      bool    `json:"ended"`
	}

	// A result event carries the transcript, even an empty one; the
	// pointer distinguishes "empty transcript" from "no result".
	require.NoError(t, remarshal(map[string]interface{}{"transcript": ""}, &outcome))
	require.NotNil(t, outcome.Transcript)
	assert.Equal(t, "", *outcome.Transcript)
	assert.False(t, outcome.Ended)

	outcome.Transcript = nil
	require.NoError(t, remarshal(map[string]interface{}{"errorCode": "not-allowed"}, &outcome))
	assert.Nil(t, outcome.Transcript)
	assert.Equal(t, "not-allowed", outcome.ErrorCode)

	outcome.ErrorCode = ""
	require.NoError(t, remarshal(map[string]interface{}{"ended": true}, &outcome))
	assert.True(t, outcome.Ended)
}

func TestWebSpeechImplementsInterfaces(t *testing.T) {
	var _ speech.Synthesizer = (*WebSpeech)(nil)
	var _ speech.Recognizer = (*WebSpeech)(nil)
}
