package config

import (
	"errors"
	"fmt"

	"github.com/rhuss/toolstream/pkg/api"
)

// Validate checks the configuration for structural problems (empty or
// duplicate names, parameter entries for tools that don't exist) before
// it is handed to ToSchema. schema.Build repeats the tool/param checks
// (it has to, since it's also callable directly without going through
// config), so the two deliberately overlap; Validate exists to attach
// the right field path for a YAML/env-sourced mistake.
func (c *Config) Validate() error {
	var errs []error

	if len(c.Schema.ValidToolNames) == 0 {
		errs = append(errs, api.NewInvalidConfigError("schema.valid_tool_names", "must not be empty"))
	}

	seenTools := make(map[string]bool, len(c.Schema.ValidToolNames))
	for _, name := range c.Schema.ValidToolNames {
		if name == "" {
			errs = append(errs, api.NewInvalidConfigError("schema.valid_tool_names", "tool name must not be empty"))
			continue
		}
		if seenTools[name] {
			errs = append(errs, api.NewInvalidConfigError("schema.valid_tool_names", fmt.Sprintf("duplicate tool name %q", name)))
		}
		seenTools[name] = true
	}

	for tool, params := range c.Schema.ValidParamNamesByTool {
		if !seenTools[tool] {
			errs = append(errs, api.NewInvalidConfigError("schema.valid_param_names_by_tool", fmt.Sprintf("no such tool %q in valid_tool_names", tool)))
		}
		seenParams := make(map[string]bool, len(params))
		for _, p := range params {
			if p == "" {
				errs = append(errs, api.NewInvalidConfigError("schema.valid_param_names_by_tool", fmt.Sprintf("tool %q: param name must not be empty", tool)))
				continue
			}
			if seenParams[p] {
				errs = append(errs, api.NewInvalidConfigError("schema.valid_param_names_by_tool", fmt.Sprintf("tool %q: duplicate param name %q", tool, p)))
			}
			seenParams[p] = true
		}
	}

	return errors.Join(errs...)
}
