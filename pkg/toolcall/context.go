package toolcall

import (
	"strings"

	"github.com/rhuss/toolstream/pkg/toolcall/schema"
)

// toolUse is the tool invocation currently being assembled.
type toolUse struct {
	name   string
	params map[string]string
}

// paramsCopy returns a defensive copy of params, so a published Block
// never aliases the parser's own working map.
func (t *toolUse) paramsCopy() map[string]string {
	cp := make(map[string]string, len(t.params))
	for k, v := range t.params {
		cp[k] = v
	}
	return cp
}

// parserContext owns every piece of mutable parsing state for one
// parser instance. It is the single owner the design notes call for:
// states read and write it directly, nothing else holds parsing state.
//
// Parent back-references are resolved via nodeStack (push on descend,
// pop on ascend) rather than a pointer carried on the schema node
// itself. schema.Node does keep a real Parent pointer, but that tree
// is immutable after construction, so there is no cycle for a mutable
// graph to worry about; nodeStack is what actually changes per parse.
type parserContext struct {
	textBuffer       strings.Builder
	tagBuffer        strings.Builder
	closingTagBuffer strings.Builder
	paramValueBuffer strings.Builder

	root        *schema.Node
	currentNode *schema.Node
	nodeStack   []*schema.Node

	currentToolUse   *toolUse
	currentParamName string

	relaxedMode bool
}

func newParserContext(root *schema.Node, relaxedMode bool) *parserContext {
	return &parserContext{
		root:        root,
		currentNode: root,
		relaxedMode: relaxedMode,
	}
}

// descend moves current_node to child, remembering the node we came
// from so ascend can return to it.
func (c *parserContext) descend(child *schema.Node) {
	c.nodeStack = append(c.nodeStack, c.currentNode)
	c.currentNode = child
}

// ascend moves current_node back to whatever it was before the last
// unmatched descend.
func (c *parserContext) ascend() {
	n := len(c.nodeStack)
	c.currentNode = c.nodeStack[n-1]
	c.nodeStack = c.nodeStack[:n-1]
}

func (c *parserContext) atRoot() bool {
	return c.currentNode == c.root
}

// reset restores the context to its post-construction condition, so
// the parser instance can be reused.
func (c *parserContext) reset() {
	c.textBuffer.Reset()
	c.tagBuffer.Reset()
	c.closingTagBuffer.Reset()
	c.paramValueBuffer.Reset()
	c.currentNode = c.root
	c.nodeStack = c.nodeStack[:0]
	c.currentToolUse = nil
	c.currentParamName = ""
}
