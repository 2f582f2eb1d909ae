package toolcall

import "fmt"

// The functions in this file build the advisory diagnostic strings
// delivered through the error event. Every message except "Invalid tag
// name" begins with one of the stable prefixes a caller may match on:
// "Invalid tool name", "Invalid param", "Mismatched closing tag",
// "Unexpected whitespace after", "Unexpected whitespace in parameter
// tag", "Unexpected character", "Closing tag without matching opening
// tag". These are
// plain strings, not Go errors: the parser never returns an error
// value from ProcessChunk or Finalize.

func errInvalidToolName(name string) string {
	return fmt.Sprintf("Invalid tool name: %s", name)
}

func errInvalidParamName(name, tool string) string {
	return fmt.Sprintf("Invalid param name: %s for tool %s", name, tool)
}

func errInvalidTagName() string {
	return "Invalid tag name"
}

func errMismatchedClosing(expected, actual string) string {
	return fmt.Sprintf("Mismatched closing tag: expected </%s> but got </%s>", expected, actual)
}

func errClosingWithoutOpening() string {
	return "Closing tag without matching opening tag"
}

func errWhitespaceAfterLT() string {
	return "Unexpected whitespace after '<'"
}

func errWhitespaceInParamTag() string {
	return "Unexpected whitespace in parameter tag"
}

func errUnexpectedCharOutsideText() string {
	return "Unexpected character outside of allowed text content"
}

func errUnexpectedCharInContext(nodeName string) string {
	return fmt.Sprintf("Unexpected character in %s context", nodeName)
}
