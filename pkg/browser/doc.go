// Package browser is the Playwright-backed platform adapter for
// pagevoice. It owns the real browser: a SessionManager launches and
// tracks sessions, each session wraps one live page and implements the
// page.DOM capability interface, and the WebSpeech and PageAudio types
// bridge the page's speech-synthesis, speech-recognition, and media
// APIs to the pkg/speech capability interfaces.
//
// Everything the heuristic packages need from a page goes through small
// JavaScript snippets evaluated in the page context; the snippets tag
// elements with data-pagevoice-ref attributes so later operations can
// address the exact element a scan found.
//
// Example usage:
//
//	manager := browser.NewSessionManager()
//	if err := manager.Initialize(); err != nil {
//	    log.Fatal(err)
//	}
//	defer manager.Shutdown()
//
//	sess, err := manager.StartSession("jobs", browser.SessionOptions{Headless: true})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := sess.Navigate("https://example.com", browser.NavigateOptions{}); err != nil {
//	    log.Fatal(err)
//	}
//
//	ctl, err := page.FindFormField(ctx, sess, page.FieldEmail)
package browser
