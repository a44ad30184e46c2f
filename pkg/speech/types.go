package speech

// Voice describes one voice offered by the speech platform.
type Voice struct {
	// Name is the platform's display name for the voice
	Name string

	// Lang is the BCP 47 language tag the voice speaks (e.g., "en-US")
	Lang string

	// Gender is the platform-reported gender, when available. Empty on
	// platforms that do not report one.
	Gender string

	// Default indicates the platform's default voice
	Default bool
}

// Utterance is one configured speech request, ready for playback.
type Utterance struct {
	// Text is what to say
	Text string

	// Lang is the BCP 47 language tag to speak in
	Lang string

	// VoiceName selects a platform voice by name. Empty means the
	// platform default.
	VoiceName string

	// Pitch is the voice pitch multiplier
	Pitch float64

	// Rate is the speaking rate multiplier
	Rate float64
}

// Every utterance is played with the same pitch and rate, whether or not
// a preferred voice was found.
const (
	UtterancePitch = 1.1
	UtteranceRate  = 0.9
)

// RecognitionConfig is what a platform recognition session is started with.
type RecognitionConfig struct {
	// Lang is the BCP 47 language tag to recognise
	Lang string

	// InterimResults asks the platform for partial results while the
	// speaker is still talking
	InterimResults bool

	// MaxAlternatives caps the number of transcript alternatives the
	// platform produces per result
	MaxAlternatives int
}

// Event is one terminal recognition event delivered by a Session. Either
// Transcript or Err is set, never both.
type Event struct {
	// Transcript is the recognised text (the top alternative of the
	// first result)
	Transcript string

	// Err is the platform recognition failure
	Err error
}

// RecognitionError is a platform recognition failure that preserves the
// platform's error code (e.g., "no-speech", "not-allowed", "network").
type RecognitionError struct {
	// Code is the platform error code
	Code string
}

// Error implements the error interface.
func (e *RecognitionError) Error() string {
	return "speech recognition error: " + e.Code
}

// DefaultListenLang is the recognition language used when ListenOptions
// leaves Lang empty.
const DefaultListenLang = "en-US"

// ListenOptions configures one listen operation. The zero value is valid:
// language defaults to DefaultListenLang, interim results are off, and one
// alternative is requested.
type ListenOptions struct {
	// Lang is the BCP 47 language tag to recognise
	Lang string

	// InterimResults asks the platform for partial results
	InterimResults bool

	// MaxAlternatives caps transcript alternatives per result
	MaxAlternatives int

	// OnListeningStart, when set, is invoked synchronously after the
	// platform session starts and before any event can settle the
	// operation. Useful for audible or visual "listening" cues.
	OnListeningStart func()
}

// withDefaults returns a copy of o with unset fields filled in.
func (o ListenOptions) withDefaults() ListenOptions {
	if o.Lang == "" {
		o.Lang = DefaultListenLang
	}
	if o.MaxAlternatives == 0 {
		o.MaxAlternatives = 1
	}
	return o
}
