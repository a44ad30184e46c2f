package openaivoice

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/pagevoice/pkg/speech"
)

// fakeAPI scripts the OpenAI calls.
type fakeAPI struct {
	mu sync.Mutex

	synthData []byte
	synthErr  error
	synthText string
	synthRate float64

	transcript     string
	transcribeErr  error
	transcribeLang string
	transcribed    []byte
}

func (f *fakeAPI) synthesize(ctx context.Context, text, voice string, rate float64) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.synthText = text
	f.synthRate = rate
	return f.synthData, f.synthErr
}

func (f *fakeAPI) transcribe(ctx context.Context, data []byte, mimeType, lang string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transcribed = data
	f.transcribeLang = lang
	return f.transcript, f.transcribeErr
}

// fakeAudio scripts the audio transport.
type fakeAudio struct {
	mu sync.Mutex

	played     [][]byte
	playedMime []string
	playErr    error

	recording  []byte
	recordMime string
	recordErr  error
}

func (f *fakeAudio) Play(ctx context.Context, data []byte, mimeType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.played = append(f.played, data)
	f.playedMime = append(f.playedMime, mimeType)
	return f.playErr
}

func (f *fakeAudio) Record(ctx context.Context, d time.Duration) ([]byte, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.recording, f.recordMime, f.recordErr
}

func newTestProvider(api api, audio AudioIO) *Provider {
	return &Provider{
		api:    api,
		audio:  audio,
		voice:  "nova",
		window: 10 * time.Millisecond,
	}
}

func TestVoicesMarksConfiguredDefault(t *testing.T) {
	p := newTestProvider(&fakeAPI{}, &fakeAudio{})

	voices, err := p.Voices(context.Background())

	require.NoError(t, err)
	require.Len(t, voices, 6)
	for _, v := range voices {
		assert.Equal(t, v.Name == "nova", v.Default, "voice %s", v.Name)
	}
}

func TestVoicesOfferFemaleCandidates(t *testing.T) {
	p := newTestProvider(&fakeAPI{}, &fakeAudio{})

	voices, err := p.Voices(context.Background())
	require.NoError(t, err)

	// The voice-selection heuristic keys on the reported gender here;
	// none of the catalog names carry its name hints.
	chosen, ok := speech.ChooseFemaleVoice(voices, "en-US")
	require.True(t, ok)
	assert.Equal(t, "nova", chosen.Name)
}

func TestSpeakPlaysSynthesizedAudio(t *testing.T) {
	api := &fakeAPI{synthData: []byte("mp3 bytes")}
	audio := &fakeAudio{}
	p := newTestProvider(api, audio)

	err := p.Speak(context.Background(), speech.Utterance{
		Text: "hello", Lang: "en-US", VoiceName: "shimmer", Rate: 0.9,
	})

	require.NoError(t, err)
	require.Len(t, audio.played, 1)
	assert.Equal(t, []byte("mp3 bytes"), audio.played[0])
	assert.Equal(t, "audio/mpeg", audio.playedMime[0])
	assert.Equal(t, "hello", api.synthText)
	assert.InDelta(t, 0.9, api.synthRate, 1e-9)
}

func TestSpeakSurfacesSynthesisError(t *testing.T) {
	api := &fakeAPI{synthErr: errors.New("quota exceeded")}
	p := newTestProvider(api, &fakeAudio{})

	err := p.Speak(context.Background(), speech.Utterance{Text: "hello"})

	assert.ErrorContains(t, err, "synthesize")
}

func TestListenRoundTrip(t *testing.T) {
	api := &fakeAPI{transcript: "open the jobs page"}
	audio := &fakeAudio{recording: []byte("webm"), recordMime: "audio/webm;codecs=opus"}
	p := newTestProvider(api, audio)

	listener := speech.NewListener(p)
	transcript, err := listener.Listen(context.Background(), speech.ListenOptions{Lang: "en-GB"})

	require.NoError(t, err)
	assert.Equal(t, "open the jobs page", transcript)
	assert.Equal(t, []byte("webm"), api.transcribed)
	assert.Equal(t, "en-GB", api.transcribeLang)
}

func TestListenBlankTranscriptIsNoSpeech(t *testing.T) {
	api := &fakeAPI{transcript: "   "}
	audio := &fakeAudio{recording: []byte("webm"), recordMime: "audio/webm"}
	p := newTestProvider(api, audio)

	listener := speech.NewListener(p)
	_, err := listener.Listen(context.Background(), speech.ListenOptions{})

	assert.ErrorIs(t, err, speech.ErrNoSpeech)
}

func TestListenEmptyRecordingIsNoSpeech(t *testing.T) {
	p := newTestProvider(&fakeAPI{transcript: "should not be reached"}, &fakeAudio{})

	listener := speech.NewListener(p)
	_, err := listener.Listen(context.Background(), speech.ListenOptions{})

	assert.ErrorIs(t, err, speech.ErrNoSpeech)
}

func TestListenSurfacesRecordError(t *testing.T) {
	audio := &fakeAudio{recordErr: errors.New("microphone denied")}
	p := newTestProvider(&fakeAPI{}, audio)

	listener := speech.NewListener(p)
	_, err := listener.Listen(context.Background(), speech.ListenOptions{})

	require.Error(t, err)
	assert.ErrorContains(t, err, "record audio")
}

func TestFileNameFor(t *testing.T) {
	assert.Equal(t, "speech.webm", fileNameFor("audio/webm;codecs=opus"))
	assert.Equal(t, "speech.ogg", fileNameFor("audio/ogg"))
	assert.Equal(t, "speech.mp3", fileNameFor("audio/mpeg"))
	assert.Equal(t, "speech.webm", fileNameFor(""))
}

func TestPrimarySubtag(t *testing.T) {
	assert.Equal(t, "en", primarySubtag("en-US"))
	assert.Equal(t, "de", primarySubtag("de"))
	assert.Equal(t, "", primarySubtag(""))
}
