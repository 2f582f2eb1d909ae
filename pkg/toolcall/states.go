package toolcall

import (
	"strings"
	"unicode"
)

// stateID is a tagged enumeration of parse states, dispatched through
// stateTable below rather than through singleton state objects: state
// is data the driver looks up, not a type hierarchy.
type stateID int

const (
	stateText stateID = iota
	stateTagOpening
	stateTagName
	stateTextContent
	stateClosingTag
)

// stateFunc is the transition function for one state: given the parser
// and the next character, it mutates ctx and/or p.state.
type stateFunc func(p *Parser, ch rune)

var stateTable = [...]stateFunc{
	stateText:        stepText,
	stateTagOpening:  stepTagOpening,
	stateTagName:     stepTagName,
	stateTextContent: stepTextContent,
	stateClosingTag:  stepClosingTag,
}

func isSpace(ch rune) bool {
	return unicode.IsSpace(ch)
}

// stepText handles the Text state: outside any tool.
func stepText(p *Parser, ch rune) {
	c := p.ctx
	if ch == '<' {
		p.flushText()
		c.tagBuffer.Reset()
		p.state = stateTagOpening
		return
	}
	if c.currentNode.AllowsTextContent {
		c.textBuffer.WriteRune(ch)
		return
	}
	if isSpace(ch) {
		return
	}
	p.emitError(errUnexpectedCharOutsideText())
	c.textBuffer.WriteRune(ch)
}

// stepTagOpening handles the single character immediately after '<'.
func stepTagOpening(p *Parser, ch rune) {
	c := p.ctx
	switch {
	case ch == '/':
		if !c.atRoot() {
			c.closingTagBuffer.Reset()
			p.state = stateClosingTag
			return
		}
		p.emitError(errClosingWithoutOpening())
		c.textBuffer.WriteString("</")
		p.state = stateText
	case isSpace(ch):
		p.emitError(errWhitespaceAfterLT())
		c.textBuffer.WriteRune('<')
		c.textBuffer.WriteRune(ch)
		p.state = stateText
	default:
		c.tagBuffer.Reset()
		c.tagBuffer.WriteRune(ch)
		p.state = stateTagName
	}
}

// stepTagName accumulates the name of an opening tag and resolves it
// against current_node's children as soon as it's unambiguous.
func stepTagName(p *Parser, ch rune) {
	c := p.ctx
	if ch == '>' {
		p.closeTagName()
		return
	}
	if isSpace(ch) {
		name := c.tagBuffer.String()
		if _, ok := c.currentNode.Child(name); ok {
			p.emitError(errWhitespaceInParamTag())
		}
		p.handleInvalidTag(name, string(ch))
		return
	}
	c.tagBuffer.WriteRune(ch)
	if !c.currentNode.HasChildPrefixedBy(c.tagBuffer.String()) {
		p.handleInvalidTag(c.tagBuffer.String(), "")
	}
}

// closeTagName resolves a complete tag name on '>'.
func (p *Parser) closeTagName() {
	c := p.ctx
	name := c.tagBuffer.String()

	child, ok := c.currentNode.Child(name)
	if !ok {
		p.handleInvalidTag(name, ">")
		return
	}

	if child.IsTool() {
		c.currentToolUse = &toolUse{name: child.Name, params: map[string]string{}}
	} else {
		c.currentParamName = child.Name
		c.paramValueBuffer.Reset()
	}
	c.descend(child)
	c.tagBuffer.Reset()
	p.state = stateTextContent
}

// handleInvalidTag recovers from a tag name that cannot resolve against
// current_node's children. The three reachable branches correspond
// exactly to the three schema levels (root, tool, parameter) a depth-3
// schema can put current_node at; the default branch is unreachable
// with such a schema but kept as a defensive fallback.
func (p *Parser) handleInvalidTag(name, terminator string) {
	c := p.ctx
	literal := "<" + name + terminator

	switch {
	case c.currentNode.IsRoot():
		p.emitError(errInvalidToolName(name))
		c.textBuffer.WriteString(literal)
		p.state = stateText
	case c.currentNode.IsTool():
		p.emitError(errInvalidParamName(name, c.currentNode.Name))
		c.paramValueBuffer.WriteString(literal)
		p.state = stateTextContent
	case c.currentNode.IsParam():
		p.emitError(errInvalidTagName())
		c.paramValueBuffer.WriteString(literal)
		p.state = stateTextContent
	default:
		p.emitError(errInvalidTagName())
		c.textBuffer.WriteString(literal)
		c.reset()
		p.state = stateText
	}
	c.tagBuffer.Reset()
}

// stepTextContent handles both "inside a parameter value" and "inside a
// tool between its parameter tags"; current_node tells them apart.
func stepTextContent(p *Parser, ch rune) {
	c := p.ctx
	if ch == '<' {
		c.tagBuffer.Reset()
		p.state = stateTagOpening
		return
	}
	if c.currentNode.IsParam() {
		c.paramValueBuffer.WriteRune(ch)
		return
	}
	if c.currentNode.AllowsTextContent {
		c.textBuffer.WriteRune(ch)
		return
	}
	if isSpace(ch) {
		return
	}
	p.emitError(errUnexpectedCharInContext(c.currentNode.Name))
	c.textBuffer.WriteRune(ch)
}

// stepClosingTag accumulates a closing tag name, failing fast as soon as
// it can no longer be a prefix of current_node's name.
func stepClosingTag(p *Parser, ch rune) {
	c := p.ctx
	if ch == '>' {
		p.closeClosingTag(">")
		return
	}
	c.closingTagBuffer.WriteRune(ch)
	if !strings.HasPrefix(c.currentNode.Name, c.closingTagBuffer.String()) {
		p.handleMismatchedClosing("")
	}
}

// closeClosingTag resolves a complete closing tag name on '>'.
func (p *Parser) closeClosingTag(terminator string) {
	c := p.ctx
	if c.closingTagBuffer.String() != c.currentNode.Name {
		p.handleMismatchedClosing(terminator)
		return
	}

	if c.currentNode.IsParam() {
		c.currentToolUse.params[c.currentParamName] = c.paramValueBuffer.String()
		c.paramValueBuffer.Reset()
		c.currentParamName = ""
		c.ascend()
	} else {
		p.emitBlock(Block{
			Kind:     BlockToolUse,
			Partial:  false,
			ToolName: c.currentToolUse.name,
			Params:   c.currentToolUse.paramsCopy(),
		})
		c.currentToolUse = nil
		c.ascend()
	}

	c.closingTagBuffer.Reset()
	if c.atRoot() {
		p.state = stateText
	} else {
		p.state = stateTextContent
	}
}

// handleMismatchedClosing recovers from a closing tag that cannot match
// current_node.Name. ClosingTag is only ever entered with current_node
// at a tool or a parameter (root's stray '</' is caught directly in
// stepTagOpening), so the root arm below is defensive, not reachable.
func (p *Parser) handleMismatchedClosing(terminator string) {
	c := p.ctx
	expected := c.currentNode.Name
	actual := c.closingTagBuffer.String()
	p.emitError(errMismatchedClosing(expected, actual))

	literal := "</" + actual + terminator
	switch {
	case c.currentNode.IsParam():
		c.paramValueBuffer.WriteString(literal)
		c.closingTagBuffer.Reset()
		p.state = stateTextContent
	case c.currentNode.AllowsTextContent:
		c.textBuffer.WriteString(literal)
		c.closingTagBuffer.Reset()
		p.state = stateText
	default:
		// A tool node accepts no text at all; the malformed closing
		// tag cannot be preserved anywhere sensible, so recovery resets
		// to root rather than attaching it to the wrong buffer.
		c.closingTagBuffer.Reset()
		c.reset()
		p.state = stateText
	}
}
