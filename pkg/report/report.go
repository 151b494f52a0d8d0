// Package report renders batch validation results for CLI or CI
// consumption and computes the process exit code. Rendering is pure:
// writing the report anywhere is the caller's responsibility.
package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethpandaops/runbook-lint/pkg/types"
)

// Format selects the report output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// IsValidFormat checks if a format string is recognized.
func IsValidFormat(format string) bool {
	switch Format(format) {
	case FormatText, FormatJSON:
		return true
	default:
		return false
	}
}

// Options configures report rendering and exit-code computation.
type Options struct {
	// Format is "text" or "json". Defaults to text.
	Format Format
	// FailOnWarnings makes warning-severity violations count towards a
	// non-zero exit code. Defaults to false.
	FailOnWarnings bool
}

// Status describes the outcome for one document.
type Status string

const (
	StatusOK         Status = "ok"
	StatusViolations Status = "violations"
	StatusParseError Status = "parse_error"
	StatusIOError    Status = "io_error"
)

// DocumentReport is the per-document entry in a batch report.
type DocumentReport struct {
	Path       string            `json:"path"`
	Status     Status            `json:"status"`
	Violations []types.Violation `json:"violations,omitempty"`
	// Error holds the parse or I/O failure message when Status is
	// parse_error or io_error.
	Error string `json:"error,omitempty"`
}

// Summary aggregates a batch run.
type Summary struct {
	Documents   int `json:"documents"`
	Passed      int `json:"passed"`
	Violations  int `json:"violations"`
	ParseErrors int `json:"parse_errors"`
	IOErrors    int `json:"io_errors"`
}

// Report is the full batch result.
type Report struct {
	RunID     string           `json:"run_id,omitempty"`
	Documents []DocumentReport `json:"documents"`
	Summary   Summary          `json:"summary"`
}

// FromResult builds a per-document report entry from a validation result.
func FromResult(path string, result types.ValidationResult) DocumentReport {
	status := StatusOK
	if !result.Valid() {
		status = StatusViolations
	}

	return DocumentReport{
		Path:       path,
		Status:     status,
		Violations: result.Violations,
	}
}

// New assembles a batch report from per-document entries.
func New(runID string, docs []DocumentReport) Report {
	summary := Summary{Documents: len(docs)}

	for _, d := range docs {
		summary.Violations += len(d.Violations)

		switch d.Status {
		case StatusOK:
			summary.Passed++
		case StatusParseError:
			summary.ParseErrors++
		case StatusIOError:
			summary.IOErrors++
		case StatusViolations:
		}
	}

	return Report{
		RunID:     runID,
		Documents: docs,
		Summary:   summary,
	}
}

// Render formats the report according to the options.
func Render(rep Report, opts Options) (string, error) {
	switch opts.Format {
	case FormatJSON:
		data, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshaling report: %w", err)
		}

		return string(data) + "\n", nil
	case FormatText, "":
		return renderText(rep), nil
	default:
		return "", fmt.Errorf("unknown report format %q", opts.Format)
	}
}

// renderText produces the human-readable report: one summary line per
// document, violation details indented beneath, and a final aggregate.
func renderText(rep Report) string {
	var b strings.Builder

	for _, d := range rep.Documents {
		switch d.Status {
		case StatusOK:
			fmt.Fprintf(&b, "%s: OK\n", d.Path)
		case StatusViolations:
			fmt.Fprintf(&b, "%s: %d violations\n", d.Path, len(d.Violations))

			for _, v := range d.Violations {
				fmt.Fprintf(&b, "  - [%s] %s: %s%s\n", v.Severity, v.Kind, v.Message, location(v))
			}
		case StatusParseError:
			fmt.Fprintf(&b, "%s: parse error: %s\n", d.Path, d.Error)
		case StatusIOError:
			fmt.Fprintf(&b, "%s: io error: %s\n", d.Path, d.Error)
		}
	}

	fmt.Fprintf(&b, "\n%d documents: %d passed, %d violations, %d parse errors, %d io errors\n",
		rep.Summary.Documents, rep.Summary.Passed, rep.Summary.Violations,
		rep.Summary.ParseErrors, rep.Summary.IOErrors)

	return b.String()
}

func location(v types.Violation) string {
	switch {
	case v.SubStepIndex != "":
		return fmt.Sprintf(" (step %d, sub-step %s)", v.StepIndex, v.SubStepIndex)
	case v.StepIndex > 0:
		return fmt.Sprintf(" (step %d)", v.StepIndex)
	default:
		return ""
	}
}

// ExitCode computes the process exit code for a batch report: 0 when
// every document parsed and no violation crosses the severity
// threshold, 1 otherwise. Parse and I/O failures always fail the run.
func ExitCode(rep Report, opts Options) int {
	if rep.Summary.ParseErrors > 0 || rep.Summary.IOErrors > 0 {
		return 1
	}

	for _, d := range rep.Documents {
		for _, v := range d.Violations {
			if v.Severity == types.SeverityError || opts.FailOnWarnings {
				return 1
			}
		}
	}

	return 0
}
