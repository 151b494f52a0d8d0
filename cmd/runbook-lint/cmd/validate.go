package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ethpandaops/runbook-lint/pkg/report"
)

var (
	validateFormat         string
	validateFailOnWarnings bool
)

var validateCmd = &cobra.Command{
	Use:   "validate <path>...",
	Short: "Validate runbook documents",
	Long: `Validate one or more runbook files or directories against the
runbook schema and print a report.

Exits 0 when every document is valid, 1 when any document has a
violation above the severity threshold or fails to parse.

Examples:
  runbook-lint validate docs/runbooks
  runbook-lint validate plan.md --format json
  runbook-lint validate docs/runbooks --fail-on-warnings`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateFormat, "format", "", "report format: text or json (default from config)")
	validateCmd.Flags().BoolVar(&validateFailOnWarnings, "fail-on-warnings", false, "treat warnings as failures")
}

func runValidate(cmd *cobra.Command, args []string) error {
	suppressLogs()

	cfg, err := loadConfigOrDefaults(cfgFile)
	if err != nil {
		return err
	}

	opts := cfg.ReportOptions()

	if validateFormat != "" {
		if !report.IsValidFormat(validateFormat) {
			return fmt.Errorf("invalid format %q: must be text or json", validateFormat)
		}

		opts.Format = report.Format(validateFormat)
	} else if !isTerminal() {
		// Piped output defaults to JSON for CI consumers.
		opts.Format = report.FormatJSON
	}

	if validateFailOnWarnings {
		opts.FailOnWarnings = true
	}

	rep, err := buildRunner(cfg).Run(cmd.Context(), args)
	if err != nil {
		return err
	}

	out, err := report.Render(rep, opts)
	if err != nil {
		return err
	}

	fmt.Print(out)

	if code := report.ExitCode(rep, opts); code != 0 {
		os.Exit(code)
	}

	return nil
}
