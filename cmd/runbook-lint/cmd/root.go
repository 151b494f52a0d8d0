package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ethpandaops/runbook-lint/pkg/config"
	"github.com/ethpandaops/runbook-lint/pkg/observability"
)

var (
	cfgFile  string
	logLevel string
	log      = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "runbook-lint",
	Short: "Structural validator for runbook Markdown documents",
	Long: `runbook-lint parses runbook documents (title, summary of changes,
numbered steps with sub-steps, and a manual testing plan) into a
structured tree and checks them against the runbook schema. It is meant
for CI jobs and for authors validating documents as they write.`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		// Load config to get logging settings if available.
		cfg, err := config.Load(cfgFile)
		if err != nil {
			// Fall back to CLI flag if config fails to load.
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			log.SetLevel(level)
			log.SetFormatter(&logrus.TextFormatter{
				FullTimestamp: true,
			})
			return nil
		}

		loggerCfg := cfg.Observability.Logging

		// CLI flag overrides config file.
		if logLevel != "" && logLevel != "info" {
			loggerCfg.Level = observability.LogLevel(logLevel)
		}

		configuredLog, err := observability.ConfigureLogger(loggerCfg)
		if err != nil {
			// Fall back to default logging.
			level, _ := logrus.ParseLevel(logLevel)
			log.SetLevel(level)
			log.SetFormatter(&logrus.TextFormatter{
				FullTimestamp: true,
			})
			return nil
		}

		// Copy settings to the global log.
		log.SetLevel(configuredLog.Level)
		log.SetFormatter(configuredLog.Formatter)
		log.SetOutput(configuredLog.Out)

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: runbook-lint.yaml or $CONFIG_PATH)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
}
