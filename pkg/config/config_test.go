package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethpandaops/runbook-lint/pkg/observability"
	"github.com/ethpandaops/runbook-lint/pkg/types"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		expectError bool
	}{
		{
			name: "valid minimal config",
			content: `
report:
  format: text
`,
			expectError: false,
		},
		{
			name: "config with env substitution",
			content: `
report:
  format: ${REPORT_FORMAT:-json}
`,
			expectError: false,
		},
		{
			name: "invalid report format",
			content: `
report:
  format: yaml
`,
			expectError: true,
		},
		{
			name: "unknown disabled rule",
			content: `
rules:
  disabled:
    - not_a_rule
`,
			expectError: true,
		},
		{
			name: "invalid severity value",
			content: `
rules:
  severity:
    step_index_gap: fatal
`,
			expectError: true,
		},
		{
			name: "workers above max",
			content: `
discovery:
  workers: 65
`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			configPath := filepath.Join(tmpDir, "runbook-lint.yaml")
			err := os.WriteFile(configPath, []byte(tt.content), 0644)
			require.NoError(t, err)

			os.Unsetenv("REPORT_FORMAT")

			cfg, err := Load(configPath)
			if tt.expectError {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.NotNil(t, cfg)
		})
	}
}

func TestLoadWithEnvVars(t *testing.T) {
	content := `
report:
  format: ${TEST_FORMAT:-text}
discovery:
  workers: ${TEST_WORKERS:-4}
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "runbook-lint.yaml")
	err := os.WriteFile(configPath, []byte(content), 0644)
	require.NoError(t, err)

	t.Setenv("TEST_FORMAT", "json")
	t.Setenv("TEST_WORKERS", "2")

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Report.Format)
	assert.Equal(t, 2, cfg.Discovery.Workers)
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}

	applyDefaults(cfg)

	assert.Equal(t, "text", cfg.Report.Format)
	assert.False(t, cfg.Report.FailOnWarnings)
	assert.Equal(t, []string{".md"}, cfg.Discovery.Extensions)
	assert.Equal(t, 8, cfg.Discovery.Workers)
	assert.Equal(t, observability.LogLevelInfo, cfg.Observability.Logging.Level)
	assert.Equal(t, observability.LogFormatText, cfg.Observability.Logging.Format)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{
			name:        "defaults are valid",
			mutate:      func(*Config) {},
			expectError: false,
		},
		{
			name: "bad format",
			mutate: func(c *Config) {
				c.Report.Format = "html"
			},
			expectError: true,
		},
		{
			name: "workers at max boundary",
			mutate: func(c *Config) {
				c.Discovery.Workers = MaxWorkers
			},
			expectError: false,
		},
		{
			name: "negative workers",
			mutate: func(c *Config) {
				c.Discovery.Workers = -1
			},
			expectError: true,
		},
		{
			name: "bad log level",
			mutate: func(c *Config) {
				c.Observability.Logging.Level = "verbose"
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRuleSet(t *testing.T) {
	cfg := Default()
	cfg.Rules.Disabled = []string{string(types.StepIndexGap)}
	cfg.Rules.Severity = map[string]string{
		string(types.EmptyStepName): string(types.SeverityError),
	}
	require.NoError(t, cfg.Validate())

	rules := cfg.RuleSet()
	assert.Equal(t, types.SeverityError, rules.Severity(types.EmptyStepName))
}

func TestReportOptions(t *testing.T) {
	cfg := Default()
	cfg.Report.Format = "json"
	cfg.Report.FailOnWarnings = true

	opts := cfg.ReportOptions()
	assert.Equal(t, "json", string(opts.Format))
	assert.True(t, opts.FailOnWarnings)
}

func TestSubstituteEnvVars(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		envVars  map[string]string
		expected string
	}{
		{
			name:     "no substitution needed",
			content:  "key: value",
			expected: "key: value",
		},
		{
			name:     "simple substitution",
			content:  "key: ${TEST_VAR}",
			envVars:  map[string]string{"TEST_VAR": "replaced"},
			expected: "key: replaced",
		},
		{
			name:     "substitution with default",
			content:  "key: ${MISSING_VAR:-default_value}",
			expected: "key: default_value",
		},
		{
			name:     "comment lines skipped",
			content:  "# ${IGNORED}\nkey: value",
			expected: "# ${IGNORED}\nkey: value",
		},
		{
			name:     "multiple substitutions",
			content:  "a: ${VAR1}\nb: ${VAR2:-default}",
			envVars:  map[string]string{"VAR1": "one"},
			expected: "a: one\nb: default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}
			if _, exists := tt.envVars["TEST_VAR"]; !exists {
				os.Unsetenv("TEST_VAR")
			}
			if _, exists := tt.envVars["VAR1"]; !exists {
				os.Unsetenv("VAR1")
			}

			result, err := substituteEnvVars(tt.content)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}
