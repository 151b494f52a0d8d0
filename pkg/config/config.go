// Package config provides configuration loading for runbook-lint.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ethpandaops/runbook-lint/pkg/observability"
	"github.com/ethpandaops/runbook-lint/pkg/report"
	"github.com/ethpandaops/runbook-lint/pkg/types"
	"github.com/ethpandaops/runbook-lint/pkg/validator"
)

// Config is the main configuration structure.
type Config struct {
	Report        ReportConfig        `yaml:"report"`
	Rules         RulesConfig         `yaml:"rules"`
	Discovery     DiscoveryConfig     `yaml:"discovery"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ReportConfig holds report rendering configuration.
type ReportConfig struct {
	// Format is "text" or "json".
	Format string `yaml:"format"`
	// FailOnWarnings makes warning-severity violations fail the run.
	FailOnWarnings bool `yaml:"fail_on_warnings"`
}

// RulesConfig makes the validation rule set configurable. The schema is
// an authoring convention, not a guaranteed contract, so individual
// rules can be switched off or re-weighted.
type RulesConfig struct {
	// Disabled lists rule kinds that record no violations.
	Disabled []string `yaml:"disabled,omitempty"`
	// Severity overrides the default severity per rule kind.
	Severity map[string]string `yaml:"severity,omitempty"`
}

// DiscoveryConfig holds batch file discovery configuration.
type DiscoveryConfig struct {
	// Extensions are the file extensions treated as runbooks.
	Extensions []string `yaml:"extensions,omitempty"`
	// Workers is the number of documents processed concurrently.
	Workers int `yaml:"workers"`
}

// ObservabilityConfig holds observability configuration.
type ObservabilityConfig struct {
	Logging observability.LoggerConfig `yaml:"logging"`
}

// MaxWorkers is the maximum allowed discovery worker count.
const MaxWorkers = 64

// Load loads configuration from a YAML file with environment variable
// substitution.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "runbook-lint.yaml"
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	// Substitute environment variables
	substituted, err := substituteEnvVars(string(data))
	if err != nil {
		return nil, fmt.Errorf("substituting env vars: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(substituted), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Apply defaults
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Default returns a config with production defaults, for use when no
// config file exists.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)

	return cfg
}

// envVarWithDefaultPattern matches ${VAR_NAME:-default} patterns.
var envVarWithDefaultPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// substituteEnvVars replaces ${VAR_NAME} and ${VAR_NAME:-default} patterns with environment variable values.
// Lines that are comments (starting with #) are skipped.
// Missing environment variables without defaults are replaced with empty strings (lenient mode).
func substituteEnvVars(content string) (string, error) {
	lines := strings.Split(content, "\n")

	for i, line := range lines {
		// Skip lines that are YAML comments.
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			continue
		}

		lines[i] = envVarWithDefaultPattern.ReplaceAllStringFunc(line, func(match string) string {
			parts := envVarWithDefaultPattern.FindStringSubmatch(match)
			varName := parts[1]
			defaultVal := ""
			if len(parts) > 2 {
				defaultVal = parts[2]
			}

			value := os.Getenv(varName)
			if value == "" {
				return defaultVal // Use default or empty string
			}

			return value
		})
	}

	return strings.Join(lines, "\n"), nil
}

// applyDefaults sets default values for configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.Report.Format == "" {
		cfg.Report.Format = string(report.FormatText)
	}

	if len(cfg.Discovery.Extensions) == 0 {
		cfg.Discovery.Extensions = []string{".md"}
	}

	if cfg.Discovery.Workers == 0 {
		cfg.Discovery.Workers = 8
	}

	cfg.Observability.Logging.ApplyDefaults()
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !report.IsValidFormat(c.Report.Format) {
		return fmt.Errorf("report.format must be one of: text, json (got %q)", c.Report.Format)
	}

	if c.Discovery.Workers < 0 || c.Discovery.Workers > MaxWorkers {
		return fmt.Errorf("discovery.workers must be between 1 and %d", MaxWorkers)
	}

	for _, name := range c.Rules.Disabled {
		if !isKnownRule(name) {
			return fmt.Errorf("rules.disabled contains unknown rule %q", name)
		}
	}

	for name, sev := range c.Rules.Severity {
		if !isKnownRule(name) {
			return fmt.Errorf("rules.severity contains unknown rule %q", name)
		}

		if !types.IsValidSeverity(sev) {
			return fmt.Errorf("rules.severity[%s] must be one of: error, warning (got %q)", name, sev)
		}
	}

	if !observability.IsValidLogLevel(string(c.Observability.Logging.Level)) {
		return fmt.Errorf("observability.logging.level is invalid: %q", c.Observability.Logging.Level)
	}

	return nil
}

// RuleSet builds the validator rule set from the configuration.
func (c *Config) RuleSet() validator.RuleSet {
	rules := validator.DefaultRuleSet()

	for _, name := range c.Rules.Disabled {
		rules.Disable(types.ViolationKind(name))
	}

	for name, sev := range c.Rules.Severity {
		rules.SetSeverity(types.ViolationKind(name), types.Severity(sev))
	}

	return rules
}

// ReportOptions builds report rendering options from the configuration.
func (c *Config) ReportOptions() report.Options {
	return report.Options{
		Format:         report.Format(c.Report.Format),
		FailOnWarnings: c.Report.FailOnWarnings,
	}
}

func isKnownRule(name string) bool {
	for _, kind := range types.Kinds() {
		if string(kind) == name {
			return true
		}
	}

	return false
}
