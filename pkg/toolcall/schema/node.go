// Package schema builds and represents the two-level tool schema
// (tool names, and per-tool parameter names) that pkg/toolcall parses
// against. The tree is built once, up front, and never mutated
// afterward, so Node keeps a real parent pointer rather than an index
// into some external arena: there's no cyclic-ownership concern for a
// tree nobody writes to again.
package schema

import (
	"fmt"
	"strings"

	"github.com/rhuss/toolstream/pkg/api"
)

// Node is one level of the schema tree: the root, a tool, or a
// parameter. AllowsTextContent mirrors the corresponding parser
// invariant: the root and parameter nodes accept free text between
// tags, tool nodes do not (only recognized parameter tags may appear
// directly inside a tool).
type Node struct {
	Name              string
	AllowsTextContent bool
	Children          []*Node
	Parent            *Node
}

// Child returns the direct child with the given exact name, if any.
func (n *Node) Child(name string) (*Node, bool) {
	for _, c := range n.Children {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// HasChildPrefixedBy reports whether any child's name starts with
// prefix. Used while a tag name is still being accumulated character
// by character, to decide whether the buffered-so-far text could still
// resolve to a valid child.
func (n *Node) HasChildPrefixedBy(prefix string) bool {
	for _, c := range n.Children {
		if strings.HasPrefix(c.Name, prefix) {
			return true
		}
	}
	return false
}

// IsRoot reports whether n is the tree root.
func (n *Node) IsRoot() bool {
	return n.Parent == nil
}

// IsTool reports whether n is a tool node (a direct child of the root).
func (n *Node) IsTool() bool {
	return n.Parent != nil && n.Parent.IsRoot()
}

// IsParam reports whether n is a parameter node (a child of a tool).
func (n *Node) IsParam() bool {
	return n.Parent != nil && !n.Parent.IsRoot()
}

// Build constructs the depth-3 schema tree: root, tools, parameters.
// validToolNames lists every recognized tool; validParamNamesByTool
// lists, per tool, every recognized parameter name (a tool with no
// entry simply accepts no parameters). Tool and parameter names must be
// non-empty and unique within their scope, and every key of
// validParamNamesByTool must name a tool present in validToolNames.
func Build(validToolNames []string, validParamNamesByTool map[string][]string) (*Node, error) {
	if len(validToolNames) == 0 {
		return nil, api.NewInvalidSchemaError("valid_tool_names", "must not be empty")
	}

	root := &Node{Name: "", AllowsTextContent: true}

	seenTools := make(map[string]bool, len(validToolNames))
	for _, toolName := range validToolNames {
		if toolName == "" {
			return nil, api.NewInvalidSchemaError("valid_tool_names", "tool name must not be empty")
		}
		if seenTools[toolName] {
			return nil, api.NewInvalidSchemaError("valid_tool_names", fmt.Sprintf("duplicate tool name %q", toolName))
		}
		seenTools[toolName] = true

		toolNode := &Node{Name: toolName, AllowsTextContent: false, Parent: root}

		seenParams := make(map[string]bool, len(validParamNamesByTool[toolName]))
		for _, paramName := range validParamNamesByTool[toolName] {
			if paramName == "" {
				return nil, api.NewInvalidSchemaError("valid_param_names_by_tool", fmt.Sprintf("tool %q: param name must not be empty", toolName))
			}
			if seenParams[paramName] {
				return nil, api.NewInvalidSchemaError("valid_param_names_by_tool", fmt.Sprintf("tool %q: duplicate param name %q", toolName, paramName))
			}
			seenParams[paramName] = true

			toolNode.Children = append(toolNode.Children, &Node{
				Name:              paramName,
				AllowsTextContent: true,
				Parent:            toolNode,
			})
		}

		root.Children = append(root.Children, toolNode)
	}

	for toolName := range validParamNamesByTool {
		if !seenTools[toolName] {
			return nil, api.NewInvalidSchemaError("valid_param_names_by_tool", fmt.Sprintf("no such tool %q in valid_tool_names", toolName))
		}
	}

	return root, nil
}
