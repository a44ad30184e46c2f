package page

import (
	"context"
	"time"

	"github.com/entrhq/pagevoice/pkg/logging"
)

// DefaultRevertDelay is how long highlight styles stay applied before the
// original values are restored.
const DefaultRevertDelay = 3 * time.Second

// highlightStyles are the inline properties swapped in by
// HighlightElement: blue outline, blue glow, translucent blue background.
var highlightStyles = map[string]string{
	"outline":          "3px solid #4a90e2",
	"box-shadow":       "0 0 10px rgba(74, 144, 226, 0.6)",
	"background-color": "rgba(74, 144, 226, 0.1)",
}

// HighlightOption configures a HighlightElement call.
type HighlightOption func(*highlightOptions)

// WithRevertDelay overrides the delay before the original styles are
// restored.
func WithRevertDelay(d time.Duration) HighlightOption {
	return func(o *highlightOptions) {
		o.delay = d
	}
}

// WithHighlightLogger sets the logger revert failures are reported to.
func WithHighlightLogger(l *logging.Logger) HighlightOption {
	return func(o *highlightOptions) {
		o.log = l
	}
}

type highlightOptions struct {
	delay time.Duration
	log   *logging.Logger
}

// HighlightElement draws attention to the element behind ref: it swaps in
// the highlight styles (capturing the previous inline values of exactly
// those properties), smooth-scrolls the element to the center of the
// viewport, and restores the captured values verbatim after the revert
// delay, including values that were empty strings.
//
// An empty ref is a no-op. The revert is scheduled as soon as the styles
// are applied and runs regardless of what happens to the caller's
// context; it cannot be canceled, and if the element is restyled in the
// meantime the restore clobbers those changes. A revert failure is
// logged, never returned. HighlightElement returns once the styles are
// applied and the scroll is issued, not after the revert.
func HighlightElement(ctx context.Context, dom DOM, ref string, opts ...HighlightOption) error {
	if ref == "" {
		return nil
	}

	o := highlightOptions{delay: DefaultRevertDelay}
	for _, opt := range opts {
		opt(&o)
	}

	previous, err := dom.SwapStyles(ctx, ref, highlightStyles)
	if err != nil {
		return err
	}

	time.AfterFunc(o.delay, func() {
		// The caller's context is long gone by now; the revert gets its
		// own.
		if _, err := dom.SwapStyles(context.Background(), ref, previous); err != nil {
			if o.log != nil {
				o.log.Errorf("highlight revert failed for %s: %v", ref, err)
			}
		}
	})

	return dom.ScrollIntoView(ctx, ref)
}
