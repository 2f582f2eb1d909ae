// Package api holds the small set of types shared by toolstream's
// construction-time and configuration-time error paths. It does not model
// the parser's own advisory diagnostics (those are plain strings delivered
// through pkg/toolcall's error event, see that package's doc comment),
// only errors that can legitimately fail a Go function call, such as
// building a malformed schema or loading a broken config file.
//
// The package has zero external dependencies (Go standard library only)
// and performs no I/O.
package api
