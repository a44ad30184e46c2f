// Package mock provides test doubles for the speech.Synthesizer and
// speech.Recognizer interfaces.
//
// Use Synthesizer to verify which utterance reached the platform, and
// Recognizer to script the events a recognition session delivers.
//
// Example:
//
//	rec := &mock.Recognizer{
//	    Events: []speech.Event{{Transcript: "hello"}},
//	}
//	got, _ := speech.NewListener(rec).Listen(ctx, speech.ListenOptions{})
package mock

import (
	"context"
	"sync"

	"github.com/entrhq/pagevoice/pkg/speech"
)

// VoicesCall records a single invocation of Voices.
type VoicesCall struct {
	// Ctx is the context passed to Voices.
	Ctx context.Context
}

// SpeakCall records a single invocation of Speak.
type SpeakCall struct {
	// Ctx is the context passed to Speak.
	Ctx context.Context
	// Utterance is the utterance passed to Speak.
	Utterance speech.Utterance
}

// Synthesizer is a mock implementation of speech.Synthesizer.
type Synthesizer struct {
	mu sync.Mutex

	// --- Configurable responses ---

	// VoicesResult is returned by Voices.
	VoicesResult []speech.Voice

	// VoicesErr, if non-nil, is returned as the error from Voices.
	VoicesErr error

	// SpeakErr, if non-nil, is returned as the error from Speak.
	SpeakErr error

	// --- Call records ---

	// VoicesCalls records every call to Voices in order.
	VoicesCalls []VoicesCall

	// SpeakCalls records every call to Speak in order.
	SpeakCalls []SpeakCall
}

// Voices records the call and returns VoicesResult, VoicesErr.
func (s *Synthesizer) Voices(ctx context.Context) ([]speech.Voice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.VoicesCalls = append(s.VoicesCalls, VoicesCall{Ctx: ctx})
	return s.VoicesResult, s.VoicesErr
}

// Speak records the call and returns SpeakErr.
func (s *Synthesizer) Speak(ctx context.Context, u speech.Utterance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SpeakCalls = append(s.SpeakCalls, SpeakCall{Ctx: ctx, Utterance: u})
	return s.SpeakErr
}

// Reset clears all recorded calls. Thread-safe.
func (s *Synthesizer) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.VoicesCalls = nil
	s.SpeakCalls = nil
}

// StartCall records a single invocation of Start.
type StartCall struct {
	// Ctx is the context passed to Start.
	Ctx context.Context
	// Config is the RecognitionConfig passed to Start.
	Config speech.RecognitionConfig
}

// Recognizer is a mock implementation of speech.Recognizer. Each Start
// produces a fresh Session that delivers Events in order and then, unless
// KeepOpen is set, closes its channel.
type Recognizer struct {
	mu sync.Mutex

	// --- Configurable responses ---

	// StartErr, if non-nil, is returned as the error from Start instead
	// of constructing a session.
	StartErr error

	// Events is the sequence of events each session delivers.
	Events []speech.Event

	// KeepOpen leaves the session channel open after Events have been
	// delivered, so the session only ends via context cancellation.
	KeepOpen bool

	// --- Call records ---

	// StartCalls records every call to Start in order.
	StartCalls []StartCall

	// LastSession is the session produced by the most recent Start.
	LastSession *Session
}

// Start records the call and returns a session preloaded with Events.
func (r *Recognizer) Start(ctx context.Context, cfg speech.RecognitionConfig) (speech.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.StartCalls = append(r.StartCalls, StartCall{Ctx: ctx, Config: cfg})
	if r.StartErr != nil {
		return nil, r.StartErr
	}

	ch := make(chan speech.Event, len(r.Events))
	for _, ev := range r.Events {
		ch <- ev
	}
	if !r.KeepOpen {
		close(ch)
	}

	sess := &Session{events: ch}
	r.LastSession = sess
	return sess, nil
}

// Reset clears all recorded calls and the last session. Thread-safe.
func (r *Recognizer) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.StartCalls = nil
	r.LastSession = nil
}

// Session is the speech.Session produced by Recognizer.Start.
type Session struct {
	mu     sync.Mutex
	events chan speech.Event

	// stopCalls counts invocations of Stop.
	stopCalls int
}

// Events returns the scripted event channel.
func (s *Session) Events() <-chan speech.Event {
	return s.events
}

// Stop records the call.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopCalls++
}

// StopCalls reports how many times Stop has been called. Thread-safe.
func (s *Session) StopCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopCalls
}

// Ensure the mocks implement the interfaces at compile time.
var (
	_ speech.Synthesizer = (*Synthesizer)(nil)
	_ speech.Recognizer  = (*Recognizer)(nil)
	_ speech.Session     = (*Session)(nil)
)
