package browser

import (
	"context"
	"fmt"
	"sync"

	"github.com/entrhq/pagevoice/pkg/logging"
	"github.com/entrhq/pagevoice/pkg/speech"
)

// WebSpeech drives the speech-synthesis and speech-recognition APIs of
// one session's page. It implements both speech.Synthesizer and
// speech.Recognizer, resolving the session at call time so it can be
// constructed before the session exists.
type WebSpeech struct {
	manager *SessionManager
	session string
	log     *logging.Logger
}

var (
	_ speech.Synthesizer = (*WebSpeech)(nil)
	_ speech.Recognizer  = (*WebSpeech)(nil)
)

// NewWebSpeech creates a WebSpeech bound to the named session of the
// given manager.
func NewWebSpeech(manager *SessionManager, session string, log *logging.Logger) *WebSpeech {
	return &WebSpeech{manager: manager, session: session, log: log}
}

// jsonVoice mirrors the objects the voices script returns.
type jsonVoice struct {
	Name    string `json:"name"`
	Lang    string `json:"lang"`
	Default bool   `json:"default"`
}

// Voices lists the page's speech-synthesis voices in platform order.
// The page does not report voice gender, so Gender is always empty and
// the name-based selection heuristics carry the weight.
func (w *WebSpeech) Voices(ctx context.Context) ([]speech.Voice, error) {
	sess, err := w.manager.GetSession(w.session)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := sess.Page.Evaluate(voicesScript)
	if err != nil {
		return nil, fmt.Errorf("listing voices failed: %w", err)
	}

	var raw []jsonVoice
	if err := remarshal(result, &raw); err != nil {
		return nil, fmt.Errorf("voice listing returned unexpected data: %w", err)
	}

	voices := make([]speech.Voice, len(raw))
	for i, v := range raw {
		voices[i] = speech.Voice{Name: v.Name, Lang: v.Lang, Default: v.Default}
	}
	return voices, nil
}

// Speak plays one utterance through the page's speech synthesis and
// returns when playback ends. The promise in the page rejects on a
// playback error, which surfaces here as the evaluation error.
func (w *WebSpeech) Speak(ctx context.Context, u speech.Utterance) error {
	sess, err := w.manager.GetSession(w.session)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err = sess.Page.Evaluate(speakScript, map[string]interface{}{
		"text":      u.Text,
		"lang":      u.Lang,
		"voiceName": u.VoiceName,
		"pitch":     u.Pitch,
		"rate":      u.Rate,
	})
	if err != nil {
		return fmt.Errorf("speech playback failed: %w", err)
	}
	return nil
}

// Start begins one recognition session on the page. The returned session
// delivers at most one event and then closes its channel; a page without
// recognition support, or one that throws constructing the recognizer,
// fails Start itself.
func (w *WebSpeech) Start(ctx context.Context, cfg speech.RecognitionConfig) (speech.Session, error) {
	sess, err := w.manager.GetSession(w.session)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := sess.Page.Evaluate(startRecognitionScript, map[string]interface{}{
		"lang":            cfg.Lang,
		"interimResults":  cfg.InterimResults,
		"maxAlternatives": cfg.MaxAlternatives,
	})
	if err != nil {
		return nil, fmt.Errorf("recognition setup failed: %w", err)
	}

	var setup struct {
		Error string `json:"error"`
	}
	if err := remarshal(result, &setup); err != nil {
		return nil, fmt.Errorf("recognition setup returned unexpected data: %w", err)
	}
	if setup.Error != "" {
		return nil, fmt.Errorf("recognition setup failed: %s", setup.Error)
	}

	rs := &recognitionSession{
		sess:   sess,
		log:    w.log,
		events: make(chan speech.Event, 1),
	}
	go rs.wait()
	return rs, nil
}

// recognitionSession is one live page recognition. A single goroutine
// awaits the page-side outcome, delivers it, and closes the channel.
type recognitionSession struct {
	sess     *Session
	log      *logging.Logger
	events   chan speech.Event
	stopOnce sync.Once
}

var _ speech.Session = (*recognitionSession)(nil)

// wait blocks on the page-side outcome promise, translates it into at
// most one event, and closes the channel.
func (r *recognitionSession) wait() {
	defer close(r.events)

	result, err := r.sess.Page.Evaluate(awaitRecognitionScript)
	if err != nil {
		r.events <- speech.Event{Err: fmt.Errorf("recognition wait failed: %w", err)}
		return
	}

	var outcome struct {
		Transcript *string `json:"transcript"`
		ErrorCode  string  `json:"errorCode"`
		Ended      bool    `json:"ended"`
	}
	if err := remarshal(result, &outcome); err != nil {
		r.events <- speech.Event{Err: fmt.Errorf("recognition returned unexpected data: %w", err)}
		return
	}

	switch {
	case outcome.Transcript != nil:
		r.events <- speech.Event{Transcript: *outcome.Transcript}
	case outcome.ErrorCode != "":
		r.events <- speech.Event{Err: &speech.RecognitionError{Code: outcome.ErrorCode}}
	default:
		// Session ended with neither; channel close is the signal.
	}
}

// Events returns the event channel.
func (r *recognitionSession) Events() <-chan speech.Event {
	return r.events
}

// Stop aborts the page-side recognition, best-effort.
func (r *recognitionSession) Stop() {
	r.stopOnce.Do(func() {
		if _, err := r.sess.Page.Evaluate(stopRecognitionScript); err != nil && r.log != nil {
			r.log.Debugf("stopping recognition failed: %v", err)
		}
	})
}

// voicesScript resolves the voice list, waiting once for voiceschanged
// on pages that populate it lazily.
const voicesScript = `() => new Promise((resolve) => {
	if (!window.speechSynthesis) {
		resolve([]);
		return;
	}
	const list = () => speechSynthesis.getVoices().map((v) => ({
		name: v.name,
		lang: v.lang,
		default: v.default,
	}));
	const voices = list();
	if (voices.length > 0) {
		resolve(voices);
		return;
	}
	speechSynthesis.addEventListener('voiceschanged', () => resolve(list()), { once: true });
	setTimeout(() => resolve(list()), 1000);
})`

// speakScript plays one utterance; the promise resolves on end and
// rejects on a playback error.
const speakScript = `(u) => new Promise((resolve, reject) => {
	if (!window.speechSynthesis) {
		reject(new Error('speech synthesis is not available'));
		return;
	}
	const msg = new SpeechSynthesisUtterance(u.text);
	msg.lang = u.lang;
	msg.pitch = u.pitch;
	msg.rate = u.rate;
	if (u.voiceName) {
		const voice = speechSynthesis.getVoices().find((v) => v.name === u.voiceName);
		if (voice) {
			msg.voice = voice;
		}
	}
	msg.onend = () => resolve(true);
	msg.onerror = (e) => reject(new Error('playback error: ' + (e.error || 'unknown')));
	speechSynthesis.speak(msg);
})`

// startRecognitionScript constructs and starts the recognizer, stashing
// it with a settle-once outcome holder on the window. It returns
// synchronously: an empty object on success, { error } when recognition
// is unavailable or construction throws.
const startRecognitionScript = `(cfg) => {
	const SR = window.SpeechRecognition || window.webkitSpeechRecognition;
	if (!SR) {
		return { error: 'speech recognition is not available' };
	}
	try {
		const rec = new SR();
		rec.lang = cfg.lang;
		rec.interimResults = cfg.interimResults;
		rec.maxAlternatives = cfg.maxAlternatives;

		const state = { outcome: null, resolve: null };
		const settle = (outcome) => {
			if (state.outcome) {
				return;
			}
			state.outcome = outcome;
			if (state.resolve) {
				state.resolve(outcome);
			}
		};
		rec.onresult = (e) => settle({ transcript: e.results[0][0].transcript });
		rec.onerror = (e) => settle({ errorCode: e.error || 'unknown' });
		rec.onend = () => settle({ ended: true });

		window.__pagevoiceRecognition = { rec: rec, state: state };
		rec.start();
		return {};
	} catch (err) {
		return { error: String(err) };
	}
}`

// awaitRecognitionScript resolves with the recognition outcome, waiting
// when it has not settled yet.
const awaitRecognitionScript = `() => {
	const h = window.__pagevoiceRecognition;
	if (!h) {
		return { ended: true };
	}
	if (h.state.outcome) {
		return h.state.outcome;
	}
	return new Promise((resolve) => {
		h.state.resolve = resolve;
	});
}`

// stopRecognitionScript aborts the stashed recognizer, if any.
const stopRecognitionScript = `() => {
	const h = window.__pagevoiceRecognition;
	if (h) {
		try {
			h.rec.abort();
		} catch (err) {
			// already stopped
		}
	}
}`
