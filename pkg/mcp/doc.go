// Package mcp exposes the pagevoice toolkit as Model Context Protocol
// tools. The handlers are deliberately thin: decode arguments, call into
// pkg/page and pkg/speech, encode the result. Absence outcomes (no field
// found, no button matched, unsupported scroll direction, nothing heard)
// come back as data (found:false and friends), never as tool errors;
// only platform failures surface as errors.
//
// The Toolkit is wired against the PageHost interface rather than the
// Playwright adapter directly so handler tests can run on the
// deterministic page and speech fakes.
package mcp
