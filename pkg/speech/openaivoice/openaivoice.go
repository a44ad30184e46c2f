// Package openaivoice implements the speech capability interfaces on the
// OpenAI audio APIs: synthesis through the text-to-speech endpoint and
// recognition through the transcription endpoint. Audio enters and
// leaves through an AudioIO bridge, typically the page's media APIs
// (browser.PageAudio), so the voice still sounds and listens where the
// user is.
package openaivoice

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/entrhq/pagevoice/pkg/logging"
	"github.com/entrhq/pagevoice/pkg/speech"
)

// AudioIO is the audio transport the backend plays and records through.
type AudioIO interface {
	// Play sounds encoded audio and returns when playback ends.
	Play(ctx context.Context, data []byte, mimeType string) error

	// Record captures d worth of audio and returns the encoded bytes
	// with their MIME type.
	Record(ctx context.Context, d time.Duration) (data []byte, mimeType string, err error)
}

// DefaultRecordWindow is how long one recognition session records before
// transcribing.
const DefaultRecordWindow = 5 * time.Second

// Options configures a Provider.
type Options struct {
	// APIKey authenticates against the OpenAI API. Empty falls back to
	// the OPENAI_API_KEY environment variable.
	APIKey string

	// Voice is the synthesis voice used when an utterance names none.
	// Default "nova".
	Voice string

	// SpeechModel is the text-to-speech model. Default "tts-1".
	SpeechModel string

	// TranscribeModel is the transcription model. Default "whisper-1".
	TranscribeModel string

	// RecordWindow is how long one recognition session records before
	// transcribing. Default DefaultRecordWindow.
	RecordWindow time.Duration

	// Logger receives diagnostics. Nil disables them.
	Logger *logging.Logger
}

// Provider implements speech.Synthesizer and speech.Recognizer on the
// OpenAI audio APIs.
type Provider struct {
	api    api
	audio  AudioIO
	voice  string
	window time.Duration
	log    *logging.Logger
}

var (
	_ speech.Synthesizer = (*Provider)(nil)
	_ speech.Recognizer  = (*Provider)(nil)
)

// New constructs a Provider that moves audio through the given AudioIO.
func New(audio AudioIO, opts Options) *Provider {
	if opts.Voice == "" {
		opts.Voice = "nova"
	}
	if opts.SpeechModel == "" {
		opts.SpeechModel = "tts-1"
	}
	if opts.TranscribeModel == "" {
		opts.TranscribeModel = "whisper-1"
	}
	if opts.RecordWindow <= 0 {
		opts.RecordWindow = DefaultRecordWindow
	}

	var reqOpts []option.RequestOption
	if opts.APIKey != "" {
		reqOpts = append(reqOpts, option.WithAPIKey(opts.APIKey))
	}
	client := oai.NewClient(reqOpts...)

	return &Provider{
		api: &openaiAPI{
			client:          client,
			speechModel:     opts.SpeechModel,
			transcribeModel: opts.TranscribeModel,
		},
		audio:  audio,
		voice:  opts.Voice,
		window: opts.RecordWindow,
		log:    opts.Logger,
	}
}

// voiceCatalog is the fixed set of OpenAI synthesis voices, in the order
// the API documents them. The API is language-agnostic, so every entry
// reports en-US; nova and shimmer are the female-presenting voices,
// which is what the voice-selection heuristic keys on.
var voiceCatalog = []speech.Voice{
	{Name: "alloy", Lang: "en-US"},
	{Name: "echo", Lang: "en-US"},
	{Name: "fable", Lang: "en-US"},
	{Name: "onyx", Lang: "en-US"},
	{Name: "nova", Lang: "en-US", Gender: "female"},
	{Name: "shimmer", Lang: "en-US", Gender: "female"},
}

// Voices lists the fixed OpenAI voice catalog, marking the configured
// default.
func (p *Provider) Voices(ctx context.Context) ([]speech.Voice, error) {
	voices := make([]speech.Voice, len(voiceCatalog))
	copy(voices, voiceCatalog)
	for i := range voices {
		voices[i].Default = voices[i].Name == p.voice
	}
	return voices, nil
}

// Speak synthesizes the utterance and plays it through the AudioIO,
// returning when playback ends. Pitch has no API equivalent and is
// ignored; rate maps to the synthesis speed.
func (p *Provider) Speak(ctx context.Context, u speech.Utterance) error {
	voice := u.VoiceName
	if voice == "" {
		voice = p.voice
	}

	data, err := p.api.synthesize(ctx, u.Text, voice, u.Rate)
	if err != nil {
		return fmt.Errorf("synthesize: %w", err)
	}

	if err := p.audio.Play(ctx, data, "audio/mpeg"); err != nil {
		return fmt.Errorf("play synthesized audio: %w", err)
	}
	return nil
}

// Start begins one recognition session: record for the window, then
// transcribe. The returned session delivers at most one event and closes
// its channel; a transcription that comes back blank delivers nothing,
// which the listen wrapper reads as no speech.
func (p *Provider) Start(ctx context.Context, cfg speech.RecognitionConfig) (speech.Session, error) {
	if p.audio == nil {
		return nil, fmt.Errorf("no audio transport configured")
	}

	sessCtx, cancel := context.WithCancel(ctx)
	s := &session{
		events: make(chan speech.Event, 1),
		cancel: cancel,
	}
	go s.run(sessCtx, p, cfg)
	return s, nil
}

// session is one record-then-transcribe pass.
type session struct {
	events chan speech.Event
	cancel context.CancelFunc
}

var _ speech.Session = (*session)(nil)

func (s *session) run(ctx context.Context, p *Provider, cfg speech.RecognitionConfig) {
	defer close(s.events)

	data, mimeType, err := p.audio.Record(ctx, p.window)
	if err != nil {
		s.events <- speech.Event{Err: fmt.Errorf("record audio: %w", err)}
		return
	}
	if len(data) == 0 {
		return
	}

	transcript, err := p.api.transcribe(ctx, data, mimeType, cfg.Lang)
	if err != nil {
		s.events <- speech.Event{Err: fmt.Errorf("transcribe audio: %w", err)}
		return
	}
	if strings.TrimSpace(transcript) == "" {
		return
	}

	if p.log != nil {
		p.log.Debugf("transcribed %d bytes of %s into %d chars", len(data), mimeType, len(transcript))
	}
	s.events <- speech.Event{Transcript: transcript}
}

// Events returns the event channel.
func (s *session) Events() <-chan speech.Event {
	return s.events
}

// Stop cancels the recording or transcription in flight.
func (s *session) Stop() {
	s.cancel()
}

// api is the slice of the OpenAI client the provider uses; tests swap in
// a fake.
type api interface {
	synthesize(ctx context.Context, text, voice string, rate float64) ([]byte, error)
	transcribe(ctx context.Context, data []byte, mimeType, lang string) (string, error)
}

// openaiAPI is the real client.
type openaiAPI struct {
	client          oai.Client
	speechModel     string
	transcribeModel string
}

func (c *openaiAPI) synthesize(ctx context.Context, text, voice string, rate float64) ([]byte, error) {
	params := oai.AudioSpeechNewParams{
		Model:          oai.SpeechModel(c.speechModel),
		Voice:          oai.AudioSpeechNewParamsVoice(voice),
		Input:          text,
		ResponseFormat: oai.AudioSpeechNewParamsResponseFormatMP3,
	}
	if rate > 0 {
		params.Speed = oai.Float(rate)
	}

	res, err := c.client.Audio.Speech.New(ctx, params)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read synthesis response: %w", err)
	}
	return data, nil
}

func (c *openaiAPI) transcribe(ctx context.Context, data []byte, mimeType, lang string) (string, error) {
	params := oai.AudioTranscriptionNewParams{
		Model: oai.AudioModel(c.transcribeModel),
		File:  oai.File(bytes.NewReader(data), fileNameFor(mimeType), mimeType),
	}
	if sub := primarySubtag(lang); sub != "" {
		params.Language = oai.String(sub)
	}

	transcription, err := c.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return "", err
	}
	return transcription.Text, nil
}

// fileNameFor derives an upload filename from a MIME type, dropping any
// codec parameters ("audio/webm;codecs=opus").
func fileNameFor(mimeType string) string {
	base, _, _ := strings.Cut(mimeType, ";")
	switch strings.TrimSpace(base) {
	case "audio/ogg":
		return "speech.ogg"
	case "audio/mp4":
		return "speech.mp4"
	case "audio/mpeg":
		return "speech.mp3"
	case "audio/wav", "audio/x-wav":
		return "speech.wav"
	default:
		return "speech.webm"
	}
}

// primarySubtag returns the language part of a BCP 47 tag ("en-US" ->
// "en"), which is what the transcription API expects.
func primarySubtag(lang string) string {
	sub, _, _ := strings.Cut(lang, "-")
	return strings.ToLower(strings.TrimSpace(sub))
}
