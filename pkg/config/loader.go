package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from a layered set of sources.
//
// The loading order is:
//  1. Built-in defaults
//  2. YAML config file (explicit path, TOOLSTREAM_CONFIG env, ./toolstream.yaml,
//     /etc/toolstream/config.yaml)
//  3. TOOLSTREAM_-prefixed environment variable overrides
//  4. Validation
func Load(configPath string) (*Config, error) {
	cfg := Defaults()

	filePath := discoverConfigFile(configPath)
	if filePath != "" {
		if err := loadYAMLFile(filePath, &cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", filePath, err)
		}
		slog.Info("loaded schema config", "path", filePath, "tools", len(cfg.Schema.ValidToolNames))
	} else {
		slog.Warn("no config file found, using defaults and env overrides")
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// discoverConfigFile finds the config file path using the discovery order:
//  1. Explicit configPath argument
//  2. TOOLSTREAM_CONFIG environment variable
//  3. ./toolstream.yaml in the current directory
//  4. /etc/toolstream/config.yaml
//
// Returns empty string if no config file is found.
func discoverConfigFile(configPath string) string {
	if configPath != "" {
		return configPath
	}

	if envPath := os.Getenv("TOOLSTREAM_CONFIG"); envPath != "" {
		return envPath
	}

	candidates := []string{
		"toolstream.yaml",
		"/etc/toolstream/config.yaml",
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// loadYAMLFile reads and parses a YAML file into the Config struct.
// Fields not present in the YAML retain their current (default) values.
func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnvOverrides maps TOOLSTREAM_-prefixed environment variables onto
// the config. TOOLSTREAM_VALID_TOOL_NAMES is a comma-separated list;
// TOOLSTREAM_VALID_PARAM_NAMES_BY_TOOL overrides the structured YAML
// field with a JSON-encoded env var, and TOOLSTREAM_RELAXED_MODE mirrors
// the YAML field directly.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TOOLSTREAM_VALID_TOOL_NAMES"); v != "" {
		names := strings.Split(v, ",")
		for i := range names {
			names[i] = strings.TrimSpace(names[i])
		}
		cfg.Schema.ValidToolNames = names
	}

	if v := os.Getenv("TOOLSTREAM_VALID_PARAM_NAMES_BY_TOOL"); v != "" {
		params, err := parseParamNamesJSON(v)
		if err != nil {
			slog.Warn("ignoring malformed TOOLSTREAM_VALID_PARAM_NAMES_BY_TOOL", "error", err)
		} else {
			cfg.Schema.ValidParamNamesByTool = params
		}
	}

	if v := os.Getenv("TOOLSTREAM_RELAXED_MODE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Parser.RelaxedMode = b
		} else {
			slog.Warn("ignoring malformed TOOLSTREAM_RELAXED_MODE", "value", v)
		}
	}
}

// parseParamNamesJSON parses a JSON object mapping tool name to a list of
// parameter names.
func parseParamNamesJSON(jsonStr string) (map[string][]string, error) {
	var params map[string][]string
	if err := json.Unmarshal([]byte(jsonStr), &params); err != nil {
		return nil, fmt.Errorf("parsing valid_param_names_by_tool JSON: %w", err)
	}
	return params, nil
}
