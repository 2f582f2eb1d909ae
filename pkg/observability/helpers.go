package observability

import "strconv"

// taxonomyPrefixes lists the stable error-message prefixes the parser's
// error event can carry, in the order they are matched (the first entry
// that prefixes a message wins; no entry is a prefix of another).
var taxonomyPrefixes = []string{
	"Invalid tool name",
	"Invalid param",
	"Mismatched closing tag",
	"Unexpected whitespace after",
	"Unexpected whitespace in parameter tag",
	"Unexpected character",
	"Closing tag without matching opening tag",
}

// ErrorPrefix maps a parser error message to its stable taxonomy prefix,
// for use as a low-cardinality Prometheus label. Falls back to "other"
// for a message that matches none of the known prefixes (which would
// mean the parser emitted something the taxonomy doesn't yet cover).
func ErrorPrefix(msg string) string {
	for _, p := range taxonomyPrefixes {
		if len(msg) >= len(p) && msg[:len(p)] == p {
			return p
		}
	}
	return "other"
}

// RecordBlock increments BlocksEmittedTotal for a block of the given
// kind ("text"/"tool_use") and partial/final status.
func RecordBlock(kind string, partial bool) {
	BlocksEmittedTotal.WithLabelValues(kind, strconv.FormatBool(partial)).Inc()
}

// RecordError increments ErrorsEmittedTotal under the message's
// taxonomy prefix.
func RecordError(msg string) {
	ErrorsEmittedTotal.WithLabelValues(ErrorPrefix(msg)).Inc()
}

// RecordChunk observes the length of a chunk passed to ProcessChunk.
func RecordChunk(n int) {
	CharsProcessed.Observe(float64(n))
}
