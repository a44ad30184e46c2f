// Package page implements the DOM-side heuristics of the voice toolkit:
// locating form fields by semantic type, clicking buttons by visible text,
// scrolling, highlighting elements, classifying the current site, and
// extracting readable page content.
//
// Every heuristic is written against the narrow DOM capability interface,
// so the same logic runs over a real browser adapter in production and a
// deterministic fake in tests. The heuristics themselves are stateless:
// pattern tables and selector lists are declarative package data whose
// order is part of the contract (first match wins, always in document
// order).
//
// # Absence vs failure
//
// Not finding something is an expected outcome, not an error: locators
// return a nil control or a false boolean with a nil error. Errors are
// reserved for the DOM adapter failing (page gone, evaluation failed).
//
// # Example
//
//	ctl, err := page.FindFormField(ctx, dom, page.FieldEmail)
//	if err != nil {
//	    return err
//	}
//	if ctl == nil {
//	    // nothing on this page looks like an email field
//	}
package page
