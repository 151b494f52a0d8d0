package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/ethpandaops/runbook-lint/pkg/config"
	"github.com/ethpandaops/runbook-lint/pkg/runner"
)

// loadConfigOrDefaults loads config from file if provided, otherwise
// returns defaults suitable for CLI usage.
func loadConfigOrDefaults(cfgPath string) (*config.Config, error) {
	if cfgPath != "" {
		return config.Load(cfgPath)
	}

	// Check if CONFIG_PATH env var is set.
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		return config.Load(envPath)
	}

	// Check if default runbook-lint.yaml exists.
	if _, err := os.Stat("runbook-lint.yaml"); err == nil {
		return config.Load("runbook-lint.yaml")
	}

	return config.Default(), nil
}

// buildRunner creates a runner wired with the configured rule set and
// discovery settings.
func buildRunner(cfg *config.Config) *runner.Runner {
	return runner.New(
		log,
		cfg.RuleSet(),
		runner.WithExtensions(cfg.Discovery.Extensions),
		runner.WithWorkers(cfg.Discovery.Workers),
	)
}

// outputJSON marshals a value to JSON and prints it to stdout.
func outputJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}

	fmt.Println(string(data))

	return nil
}

// isTerminal returns true if stdout is a terminal (TTY).
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// suppressLogs sets log output to discard when not in verbose mode.
// CLI commands should be quiet by default, only showing output.
func suppressLogs() {
	if log.GetLevel() < logrus.DebugLevel {
		log.SetOutput(os.Stderr)
		log.SetLevel(logrus.WarnLevel)
	}
}
