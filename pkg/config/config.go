// Package config loads the schema and parser options that drive
// pkg/toolcall from a layered set of sources:
//  1. Built-in defaults
//  2. YAML config file (discovered or explicitly specified)
//  3. TOOLSTREAM_-prefixed environment variable overrides
//  4. Validation
//
// It exists so callers can describe a tool schema as data instead of
// wiring schema.Build calls by hand.
package config

import (
	"github.com/rhuss/toolstream/pkg/toolcall/schema"
)

// Config is the full set of values needed to build a parser: the schema
// definition and the relaxed-mode toggle.
type Config struct {
	Schema SchemaConfig `yaml:"schema"`
	Parser ParserConfig `yaml:"parser"`
}

// SchemaConfig mirrors the arguments to schema.Build: the set of valid
// tool names and, per tool, the set of valid parameter names.
type SchemaConfig struct {
	ValidToolNames        []string            `yaml:"valid_tool_names"`
	ValidParamNamesByTool map[string][]string `yaml:"valid_param_names_by_tool"`
}

// ParserConfig holds the construction options passed to toolcall.New
// that are not part of the schema itself.
type ParserConfig struct {
	RelaxedMode bool `yaml:"relaxed_mode"` // default: false
}

// Defaults returns the built-in configuration: no tools registered and
// strict mode. The schema is the one thing every caller must supply
// explicitly; Defaults alone will not pass Validate.
func Defaults() Config {
	return Config{
		Schema: SchemaConfig{
			ValidToolNames:        nil,
			ValidParamNamesByTool: map[string][]string{},
		},
		Parser: ParserConfig{
			RelaxedMode: false,
		},
	}
}

// ToSchema builds the immutable schema tree described by c.Schema.
func (c Config) ToSchema() (*schema.Node, error) {
	return schema.Build(c.Schema.ValidToolNames, c.Schema.ValidParamNamesByTool)
}
