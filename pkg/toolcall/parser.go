package toolcall

import (
	"strings"

	"github.com/rhuss/toolstream/pkg/toolcall/schema"
)

// Options holds the construction-time flags for a Parser that aren't
// part of the schema itself.
type Options struct {
	// RelaxedMode suppresses error events on invalid tokens. Recovery
	// behavior is identical to strict mode either way; only the
	// advisory event is silenced.
	RelaxedMode bool
}

// Parser is a single-threaded, I/O-free streaming tokenizer for the
// tool-invocation mini-language described by a schema tree. It never
// blocks and never returns an error from ProcessChunk or Finalize;
// anomalies are reported through the error callback and always
// recovered from inline.
type Parser struct {
	ctx     *parserContext
	state   stateID
	onBlock func(Block)
	onError func(string)
}

// New constructs a parser in the Text state at root.
func New(root *schema.Node, opts Options) *Parser {
	return &Parser{
		ctx:   newParserContext(root, opts.RelaxedMode),
		state: stateText,
	}
}

// OnBlock registers the callback invoked for every emitted content
// block. Only one callback may be registered at a time; a later call
// replaces an earlier one.
func (p *Parser) OnBlock(fn func(Block)) {
	p.onBlock = fn
}

// OnError registers the callback invoked for every advisory diagnostic.
// Registering a callback has no effect in relaxed mode, since relaxed
// mode suppresses the event at the source.
func (p *Parser) OnError(fn func(string)) {
	p.onError = fn
}

func (p *Parser) emitBlock(b Block) {
	if p.onBlock != nil {
		p.onBlock(b)
	}
}

func (p *Parser) emitError(msg string) {
	if p.ctx.relaxedMode {
		return
	}
	if p.onError != nil {
		p.onError(msg)
	}
}

// flushText trims text_buffer and, if non-empty, emits it as a final
// (non-partial) text block. Used whenever a tag opens from the Text
// state.
func (p *Parser) flushText() {
	text := strings.TrimSpace(p.ctx.textBuffer.String())
	if text != "" {
		p.emitBlock(Block{Kind: BlockText, Partial: false, Text: text})
	}
	p.ctx.textBuffer.Reset()
}

// ProcessChunk consumes s character by character, synchronously
// emitting zero or more block/error events, then publishes exactly one
// partial snapshot if one is warranted. It is safe to call with an
// empty string.
func (p *Parser) ProcessChunk(s string) {
	for _, ch := range s {
		stateTable[p.state](p, ch)
	}
	p.emitPartialSnapshot()
}

// emitPartialSnapshot publishes the chunk-boundary partial block, if
// any: trailing text in Text state, or the in-flight tool-use otherwise.
func (p *Parser) emitPartialSnapshot() {
	c := p.ctx
	if p.state == stateText {
		text := strings.TrimSpace(c.textBuffer.String())
		if text != "" {
			p.emitBlock(Block{Kind: BlockText, Partial: true, Text: text})
		}
		return
	}

	if c.currentToolUse == nil {
		return
	}
	if c.currentNode.IsParam() {
		// Transient write: replaced by the next snapshot or when the
		// parameter closes, this only exists to make the snapshot
		// reflect the buffer as it stands right now.
		c.currentToolUse.params[c.currentParamName] = c.paramValueBuffer.String()
	}
	p.emitBlock(Block{
		Kind:     BlockToolUse,
		Partial:  true,
		ToolName: c.currentToolUse.name,
		Params:   c.currentToolUse.paramsCopy(),
	})
}

// Finalize signals end of stream: it emits any pending trailing text as
// a final block, then resets all parser state so the instance may be
// reused. An open tool-use is not re-emitted; its last partial snapshot
// remains the final observation of it.
func (p *Parser) Finalize() {
	if p.state == stateText {
		text := strings.TrimSpace(p.ctx.textBuffer.String())
		if text != "" {
			p.emitBlock(Block{Kind: BlockText, Partial: false, Text: text})
		}
	}
	p.ctx.reset()
	p.state = stateText
}
