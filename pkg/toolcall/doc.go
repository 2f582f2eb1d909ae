// Package toolcall implements an incremental parser for an XML-like
// tool-invocation mini-language embedded in a free-form character
// stream: plain text interleaved with invocations of the form
// <tool_name><param_name>value</param_name>...</tool_name>.
//
// The parser is single-threaded, cooperative, and performs no I/O. It
// consumes strings handed to it via ProcessChunk and publishes Block
// and error events synchronously through callbacks. It owns no global
// state and does no logging of its own; both of those are the
// responsibility of whatever embeds a Parser (see pkg/observability and
// cmd/toolstream-demo for the layer that does).
//
// A Parser is constructed from a schema (see pkg/toolcall/schema)
// describing the valid tool and parameter names, and is not safe for
// concurrent use by more than one goroutine. Callers needing
// concurrency run one Parser per logical stream.
package toolcall
