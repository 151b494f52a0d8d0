package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ethpandaops/runbook-lint/pkg/parser"
	"github.com/ethpandaops/runbook-lint/pkg/types"
)

var listJSON bool

// listEntry is the JSON output format for the list command.
type listEntry struct {
	Path     string `json:"path"`
	Title    string `json:"title"`
	Steps    int    `json:"steps"`
	SubSteps int    `json:"substeps"`
	Error    string `json:"error,omitempty"`
}

var listCmd = &cobra.Command{
	Use:   "list <file>...",
	Short: "List parsed runbook documents",
	Long: `Parse the given runbook files and print an inventory: title, step
count, and sub-step count per document. Files that fail to parse are
listed with their parse error.

Examples:
  runbook-lint list docs/runbooks/*.md`,
	Args: cobra.MinimumNArgs(1),
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
}

func runList(_ *cobra.Command, args []string) error {
	suppressLogs()

	entries := make([]listEntry, 0, len(args))

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			entries = append(entries, listEntry{Path: path, Error: err.Error()})

			continue
		}

		doc, err := parser.Parse(string(data))
		if err != nil {
			entries = append(entries, listEntry{Path: path, Error: err.Error()})

			continue
		}

		entries = append(entries, listEntry{
			Path:     path,
			Title:    doc.Title,
			Steps:    len(doc.Steps),
			SubSteps: countSubSteps(doc),
		})
	}

	if listJSON || !isTerminal() {
		return outputJSON(entries)
	}

	for _, e := range entries {
		if e.Error != "" {
			fmt.Printf("%s: %s\n", e.Path, e.Error)

			continue
		}

		fmt.Printf("%s: %q (%d steps, %d sub-steps)\n", e.Path, e.Title, e.Steps, e.SubSteps)
	}

	return nil
}

func countSubSteps(doc *types.Document) int {
	count := 0
	for _, step := range doc.Steps {
		count += len(step.SubSteps)
	}

	return count
}
