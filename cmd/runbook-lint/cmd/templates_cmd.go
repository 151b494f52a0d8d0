package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ethpandaops/runbook-lint/templates"
)

var (
	templatesJSON bool
	templatesShow string
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List built-in runbook templates",
	Long: `List the embedded known-good runbook templates, or print one in
full as a starting point for a new document.

Examples:
  runbook-lint templates
  runbook-lint templates --show framework-migration.md > my-runbook.md`,
	RunE: runTemplates,
}

func init() {
	rootCmd.AddCommand(templatesCmd)

	templatesCmd.Flags().BoolVar(&templatesJSON, "json", false, "Output in JSON format")
	templatesCmd.Flags().StringVar(&templatesShow, "show", "", "Print the named template in full")
}

func runTemplates(_ *cobra.Command, _ []string) error {
	suppressLogs()

	if templatesShow != "" {
		data, err := templates.Raw(templatesShow)
		if err != nil {
			return err
		}

		fmt.Print(string(data))

		return nil
	}

	reg, err := templates.NewRegistry(log)
	if err != nil {
		return err
	}

	docs := reg.All()

	if templatesJSON || !isTerminal() {
		return outputJSON(docs)
	}

	for _, doc := range docs {
		fmt.Printf("%s: %q (%d steps)\n", doc.FilePath, doc.Title, len(doc.Steps))
	}

	return nil
}
