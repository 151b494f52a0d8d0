package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ethpandaops/runbook-lint/pkg/report"
)

var watchCmd = &cobra.Command{
	Use:   "watch <path>...",
	Short: "Re-validate runbooks on file changes",
	Long: `Validate the given files or directories, then watch them and
re-validate whenever a file changes. Useful while authoring a runbook.

Press Ctrl+C to exit.

Examples:
  runbook-lint watch docs/runbooks`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	suppressLogs()

	cfg, err := loadConfigOrDefaults(cfgFile)
	if err != nil {
		return err
	}

	opts := cfg.ReportOptions()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Println("Watching for changes... (Press Ctrl+C to exit)")

	return buildRunner(cfg).Watch(ctx, args, func(rep report.Report) {
		out, err := report.Render(rep, opts)
		if err != nil {
			log.WithError(err).Error("Failed to render report")

			return
		}

		fmt.Print(out)
	})
}
