package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Schema.ValidToolNames != nil {
		t.Errorf("default schema.valid_tool_names = %v, want nil", cfg.Schema.ValidToolNames)
	}
	if cfg.Parser.RelaxedMode {
		t.Error("default parser.relaxed_mode = true, want false")
	}
	if err := cfg.Validate(); err == nil {
		t.Error("Defaults().Validate() = nil, want error (no tools configured)")
	}
}

func TestLoadFromYAML(t *testing.T) {
	yamlContent := `
schema:
  valid_tool_names:
    - read_file
    - write_file
  valid_param_names_by_tool:
    read_file:
      - path
    write_file:
      - path
      - content
parser:
  relaxed_mode: true
`
	tmpFile := writeTemp(t, "config-*.yaml", yamlContent)

	cfg, err := Load(tmpFile)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if len(cfg.Schema.ValidToolNames) != 2 {
		t.Fatalf("schema.valid_tool_names length = %d, want 2", len(cfg.Schema.ValidToolNames))
	}
	if cfg.Schema.ValidToolNames[0] != "read_file" {
		t.Errorf("schema.valid_tool_names[0] = %q, want \"read_file\"", cfg.Schema.ValidToolNames[0])
	}
	if !cfg.Parser.RelaxedMode {
		t.Error("parser.relaxed_mode = false, want true")
	}
	wantParams := cfg.Schema.ValidParamNamesByTool["write_file"]
	if len(wantParams) != 2 || wantParams[0] != "path" || wantParams[1] != "content" {
		t.Errorf("schema.valid_param_names_by_tool[write_file] = %v, want [path content]", wantParams)
	}
}

func TestLoadBuildsSchema(t *testing.T) {
	yamlContent := `
schema:
  valid_tool_names:
    - read_file
  valid_param_names_by_tool:
    read_file:
      - path
`
	tmpFile := writeTemp(t, "config-*.yaml", yamlContent)

	cfg, err := Load(tmpFile)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	root, err := cfg.ToSchema()
	if err != nil {
		t.Fatalf("ToSchema() error: %v", err)
	}
	if _, ok := root.Child("read_file"); !ok {
		t.Error("ToSchema() root has no read_file child")
	}
}

func TestEnvOverrideToolNames(t *testing.T) {
	yamlContent := `
schema:
  valid_tool_names:
    - from_yaml_tool
  valid_param_names_by_tool:
    from_yaml_tool:
      - x
`
	tmpFile := writeTemp(t, "config-*.yaml", yamlContent)

	t.Setenv("TOOLSTREAM_VALID_TOOL_NAMES", "read_file, write_file")
	t.Setenv("TOOLSTREAM_VALID_PARAM_NAMES_BY_TOOL", `{"read_file":["path"],"write_file":["path","content"]}`)
	t.Setenv("TOOLSTREAM_RELAXED_MODE", "true")

	cfg, err := Load(tmpFile)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if len(cfg.Schema.ValidToolNames) != 2 || cfg.Schema.ValidToolNames[0] != "read_file" || cfg.Schema.ValidToolNames[1] != "write_file" {
		t.Errorf("schema.valid_tool_names = %v, want [read_file write_file]", cfg.Schema.ValidToolNames)
	}
	if !cfg.Parser.RelaxedMode {
		t.Error("parser.relaxed_mode = false, want true (env override)")
	}
}

func TestFileDiscovery(t *testing.T) {
	yamlContent := `
schema:
  valid_tool_names: [read_file]
  valid_param_names_by_tool:
    read_file: [path]
`
	tmpFile := writeTemp(t, "config-*.yaml", yamlContent)

	cfg, err := Load(tmpFile)
	if err != nil {
		t.Fatalf("Load(explicit) error: %v", err)
	}
	if len(cfg.Schema.ValidToolNames) != 1 {
		t.Errorf("explicit path: valid_tool_names = %v, want [read_file]", cfg.Schema.ValidToolNames)
	}

	envFile := writeTemp(t, "envconfig-*.yaml", `
schema:
  valid_tool_names: [from_env_config]
  valid_param_names_by_tool:
    from_env_config: [x]
`)
	t.Setenv("TOOLSTREAM_CONFIG", envFile)

	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load(TOOLSTREAM_CONFIG) error: %v", err)
	}
	if cfg.Schema.ValidToolNames[0] != "from_env_config" {
		t.Errorf("TOOLSTREAM_CONFIG: valid_tool_names = %v, want [from_env_config]", cfg.Schema.ValidToolNames)
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:    "no tools",
			modify:  func(c *Config) {},
			wantErr: "schema.valid_tool_names",
		},
		{
			name: "empty tool name",
			modify: func(c *Config) {
				c.Schema.ValidToolNames = []string{""}
			},
			wantErr: "tool name must not be empty",
		},
		{
			name: "duplicate tool name",
			modify: func(c *Config) {
				c.Schema.ValidToolNames = []string{"read_file", "read_file"}
			},
			wantErr: "duplicate tool name",
		},
		{
			name: "param for unknown tool",
			modify: func(c *Config) {
				c.Schema.ValidToolNames = []string{"read_file"}
				c.Schema.ValidParamNamesByTool = map[string][]string{"write_file": {"path"}}
			},
			wantErr: "no such tool",
		},
		{
			name: "duplicate param name",
			modify: func(c *Config) {
				c.Schema.ValidToolNames = []string{"read_file"}
				c.Schema.ValidParamNamesByTool = map[string][]string{"read_file": {"path", "path"}}
			},
			wantErr: "duplicate param name",
		},
		{
			name: "valid config",
			modify: func(c *Config) {
				c.Schema.ValidToolNames = []string{"read_file"}
				c.Schema.ValidParamNamesByTool = map[string][]string{"read_file": {"path"}}
			},
			wantErr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.modify(&cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}

			if err == nil {
				t.Fatalf("Validate() expected error containing %q, got nil", tt.wantErr)
			}
			if !contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestYAMLDefaultsMerge(t *testing.T) {
	yamlContent := `
schema:
  valid_tool_names: [read_file]
  valid_param_names_by_tool:
    read_file: [path]
`
	tmpFile := writeTemp(t, "config-*.yaml", yamlContent)

	cfg, err := Load(tmpFile)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Parser.RelaxedMode {
		t.Error("parser.relaxed_mode = true, want default false when unset in YAML")
	}
}

// writeTemp creates a temporary file with the given content and returns its path.
// The file is automatically cleaned up when the test finishes.
func writeTemp(t *testing.T, pattern, content string) string {
	t.Helper()
	dir := t.TempDir()

	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	path := f.Name()

	if _, err := f.WriteString(content); err != nil {
		f.Close()
		t.Fatalf("writing temp file: %v", err)
	}
	f.Close()

	return filepath.Clean(path)
}

// contains checks if s contains substr.
func contains(s, substr string) bool {
	return len(s) >= len(substr) && searchSubstring(s, substr)
}

func searchSubstring(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
