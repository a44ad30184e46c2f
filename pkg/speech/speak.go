package speech

import (
	"context"
	"time"

	"github.com/entrhq/pagevoice/pkg/logging"
	"github.com/entrhq/pagevoice/pkg/observe"
)

// Speaker wraps a Synthesizer with the voice-selection policy and the
// never-fails playback contract.
type Speaker struct {
	synth   Synthesizer
	log     *logging.Logger
	metrics *observe.Metrics
}

// SpeakerOption configures a Speaker.
type SpeakerOption func(*Speaker)

// WithSpeakerLogger sets the logger used for swallowed playback errors.
func WithSpeakerLogger(l *logging.Logger) SpeakerOption {
	return func(s *Speaker) {
		s.log = l
	}
}

// WithSpeakerMetrics sets the metrics instance playback durations and
// errors are recorded on.
func WithSpeakerMetrics(m *observe.Metrics) SpeakerOption {
	return func(s *Speaker) {
		s.metrics = m
	}
}

// NewSpeaker creates a Speaker on top of the given Synthesizer.
func NewSpeaker(synth Synthesizer, opts ...SpeakerOption) *Speaker {
	s := &Speaker{synth: synth}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Speak voices text aloud in lang and blocks until playback ends or
// fails. Failures (voice listing as well as playback) are logged and
// swallowed: from the caller's point of view Speak always completes.
func (s *Speaker) Speak(ctx context.Context, text, lang string) {
	start := time.Now()

	voices, err := s.synth.Voices(ctx)
	if err != nil {
		// Proceed with the platform default voice.
		s.errorf("listing voices failed: %v", err)
		voices = nil
	}

	u := ConfigureUtterance(text, lang, voices)
	s.debugf("speaking %d chars (lang=%s voice=%q)", len(u.Text), u.Lang, u.VoiceName)

	if err := s.synth.Speak(ctx, u); err != nil {
		s.metrics.RecordSpeechError(ctx, "speak")
		s.errorf("speech playback failed: %v", err)
		return
	}

	s.metrics.RecordSpeak(ctx, time.Since(start).Seconds())
}

func (s *Speaker) debugf(format string, v ...interface{}) {
	if s.log != nil {
		s.log.Debugf(format, v...)
	}
}

func (s *Speaker) errorf(format string, v ...interface{}) {
	if s.log != nil {
		s.log.Errorf(format, v...)
	}
}
