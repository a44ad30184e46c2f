package speech

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/entrhq/pagevoice/pkg/logging"
	"github.com/entrhq/pagevoice/pkg/observe"
)

// ErrNoSpeech reports that the recognition session ended without producing
// a result or an error.
var ErrNoSpeech = errors.New("no speech detected")

// Listener wraps a Recognizer with the one-shot listen contract.
type Listener struct {
	rec     Recognizer
	log     *logging.Logger
	metrics *observe.Metrics
}

// ListenerOption configures a Listener.
type ListenerOption func(*Listener)

// WithListenerLogger sets the logger for recognition diagnostics.
func WithListenerLogger(l *logging.Logger) ListenerOption {
	return func(ln *Listener) {
		ln.log = l
	}
}

// WithListenerMetrics sets the metrics instance listen durations and
// errors are recorded on.
func WithListenerMetrics(m *observe.Metrics) ListenerOption {
	return func(ln *Listener) {
		ln.metrics = m
	}
}

// NewListener creates a Listener on top of the given Recognizer.
func NewListener(rec Recognizer, opts ...ListenerOption) *Listener {
	ln := &Listener{rec: rec}
	for _, o := range opts {
		o(ln)
	}
	return ln
}

// outcome is the settle-once state of a single listen operation: it starts
// pending, transitions exactly once to either a transcript or an error,
// and refuses every transition after that. It is driven from the Listen
// goroutine only.
type outcome struct {
	settled    bool
	transcript string
	err        error
}

// succeed settles with a transcript. Reports whether this call settled the
// outcome (false when already settled).
func (o *outcome) succeed(transcript string) bool {
	if o.settled {
		return false
	}
	o.settled = true
	o.transcript = transcript
	return true
}

// fail settles with an error. Reports whether this call settled the
// outcome (false when already settled).
func (o *outcome) fail(err error) bool {
	if o.settled {
		return false
	}
	o.settled = true
	o.err = err
	return true
}

// Listen captures one utterance and returns its transcript. It settles
// exactly once, on the first of:
//
//   - a result event: success with that transcript
//   - an error event: failure with the platform error
//   - session end with neither: failure with ErrNoSpeech
//   - context cancellation: failure with the context error
//
// A Recognizer that cannot even construct a session fails immediately with
// the construction error. Once settled, later session events are ignored.
// The session is stopped (best-effort) before Listen returns.
func (l *Listener) Listen(ctx context.Context, opts ListenOptions) (string, error) {
	opts = opts.withDefaults()
	start := time.Now()

	sess, err := l.rec.Start(ctx, RecognitionConfig{
		Lang:            opts.Lang,
		InterimResults:  opts.InterimResults,
		MaxAlternatives: opts.MaxAlternatives,
	})
	if err != nil {
		l.metrics.RecordSpeechError(ctx, "listen")
		return "", fmt.Errorf("start recognition: %w", err)
	}
	defer sess.Stop()

	if opts.OnListeningStart != nil {
		opts.OnListeningStart()
	}

	var o outcome
	for !o.settled {
		select {
		case ev, ok := <-sess.Events():
			switch {
			case !ok:
				o.fail(ErrNoSpeech)
			case ev.Err != nil:
				o.fail(ev.Err)
			default:
				o.succeed(ev.Transcript)
			}
		case <-ctx.Done():
			o.fail(ctx.Err())
		}
	}

	if o.err != nil {
		l.metrics.RecordSpeechError(ctx, "listen")
		l.debugf("listen settled with error after %s: %v", time.Since(start).Round(time.Millisecond), o.err)
		return "", o.err
	}

	l.metrics.RecordListen(ctx, time.Since(start).Seconds())
	l.debugf("listen settled with %d chars after %s", len(o.transcript), time.Since(start).Round(time.Millisecond))
	return o.transcript, nil
}

func (l *Listener) debugf(format string, v ...interface{}) {
	if l.log != nil {
		l.log.Debugf(format, v...)
	}
}
