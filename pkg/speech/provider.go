package speech

import "context"

// Synthesizer is the platform speech-output capability.
//
// Implementations are expected to be safe for sequential reuse; the
// package never calls a Synthesizer from more than one goroutine at a
// time per Speaker.
type Synthesizer interface {
	// Voices lists the voices the platform currently offers, in the
	// platform's own order. The order matters: voice selection picks the
	// first acceptable voice.
	Voices(ctx context.Context) ([]Voice, error)

	// Speak plays one utterance and returns when playback ends. A non-nil
	// error reports that playback failed or was cut short.
	Speak(ctx context.Context, u Utterance) error
}

// Recognizer is the platform speech-input capability.
type Recognizer interface {
	// Start begins one recognition session. A non-nil error means the
	// platform could not construct the session at all (recognition
	// unavailable, permission denied at setup, and so on).
	Start(ctx context.Context, cfg RecognitionConfig) (Session, error)
}

// Session is one live recognition session.
//
// Events delivers terminal events and is closed when the session ends.
// Implementations must not block delivering an event after the consumer
// has stopped reading; buffering the channel is the expected approach.
type Session interface {
	// Events returns the event channel. Closed on session end.
	Events() <-chan Event

	// Stop releases the session. Best-effort: platforms that cannot abort
	// an in-flight recognition may implement it as a no-op.
	Stop()
}
