// Package speech orchestrates speech output and recognition on top of
// narrow platform capability interfaces.
//
// The package does not talk to any speech engine itself. Platform access
// goes through two interfaces:
//
//  1. Synthesizer: lists voices and plays one configured utterance
//  2. Recognizer: starts one recognition session delivering events
//
// Adapters for real platforms live elsewhere (the browser Web Speech
// adapter in pkg/browser, the OpenAI adapter in pkg/speech/openaivoice);
// deterministic fakes for tests live in pkg/speech/mock.
//
// # Speaking
//
// Speaker.Speak voices text with a fixed policy: a female-sounding voice
// is preferred (by name hint or reported gender, with a Google-voice
// fallback for the requested language), and every utterance is played at
// pitch 1.1 and rate 0.9. Playback failures are logged and swallowed, so
// Speak always completes from the caller's point of view.
//
// # Listening
//
// Listener.Listen captures one utterance and settles exactly once: with
// the transcript of the first result, with the platform error, or with
// ErrNoSpeech when the session ends silently. Later session events are
// ignored. The one-shot rule is enforced by an explicit outcome state,
// not by convention.
//
// # Example
//
//	speaker := speech.NewSpeaker(synth)
//	speaker.Speak(ctx, "Found the email field.", "en-US")
//
//	listener := speech.NewListener(rec)
//	transcript, err := listener.Listen(ctx, speech.ListenOptions{
//	    OnListeningStart: func() { speaker.Speak(ctx, "Listening.", "en-US") },
//	})
package speech
