// Package parser converts raw runbook Markdown text into a structured
// Document tree. Parsing is a pure function of the input text: no I/O,
// no shared state, and the same input always yields a structurally
// equal Document.
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ethpandaops/runbook-lint/pkg/types"
)

// ParseError describes why raw text does not contain a recognizable
// runbook skeleton. It is returned as a value, never panicked.
type ParseError struct {
	// Section names the expected section that was missing or malformed
	// (e.g. "title", "substep").
	Section string `json:"section"`
	// Line is the 1-based line number the error refers to, or 0 when the
	// error concerns the document as a whole.
	Line int `json:"line,omitempty"`
	// Reason is a human-readable explanation.
	Reason string `json:"reason"`
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s (line %d): %s", e.Section, e.Line, e.Reason)
	}

	return fmt.Sprintf("%s: %s", e.Section, e.Reason)
}

// section tracks which part of the document the scanner is currently in.
type section int

const (
	sectionNone section = iota
	sectionSummary
	sectionStep
	sectionSubStep
	sectionPlan
)

var (
	headingPattern = regexp.MustCompile(`^(#{1,6})\s+(.+?)\s*$`)
	stepPattern    = regexp.MustCompile(`(?i)^step\s+(\d+)\s*:\s*(.*)$`)
	subStepPattern = regexp.MustCompile(`^(\d+\.\d+)\s*:\s*(.*)$`)
	bulletPattern  = regexp.MustCompile(`^\s*(?:[-*]|\d+[.)])\s+(.+)$`)
)

// Parse converts raw Markdown-like text into a Document. A missing
// title anywhere in the input is a *ParseError; a missing "Manual
// testing plan" section is not (the validator checks for it). Step and
// sub-step indices are captured verbatim, even when non-sequential.
func Parse(text string) (*types.Document, error) {
	doc := &types.Document{
		Summary:           []string{},
		Steps:             []types.Step{},
		ManualTestingPlan: []string{},
	}

	current := sectionNone

	var descLines []string

	flushDescription := func() {
		if len(doc.Steps) == 0 || len(descLines) == 0 {
			descLines = nil

			return
		}

		step := &doc.Steps[len(doc.Steps)-1]
		step.Description = strings.TrimSpace(strings.Join(descLines, "\n"))
		descLines = nil
	}

	for i, line := range strings.Split(text, "\n") {
		lineNo := i + 1

		m := headingPattern.FindStringSubmatch(line)
		if m == nil {
			collectBody(doc, current, line, &descLines)

			continue
		}

		level := len(m[1])
		heading := m[2]

		// First level-1 heading is the document title.
		if level == 1 && doc.Title == "" {
			doc.Title = heading
			current = sectionNone

			continue
		}

		if sm := stepPattern.FindStringSubmatch(heading); sm != nil {
			flushDescription()

			index, _ := strconv.Atoi(sm[1])
			doc.Steps = append(doc.Steps, types.Step{
				Index:    index,
				Name:     strings.TrimSpace(sm[2]),
				SubSteps: []types.SubStep{},
				Line:     lineNo,
			})
			current = sectionStep

			continue
		}

		if sm := subStepPattern.FindStringSubmatch(heading); sm != nil {
			if len(doc.Steps) == 0 {
				return nil, &ParseError{
					Section: "substep",
					Line:    lineNo,
					Reason:  fmt.Sprintf("sub-step %q appears before any step heading", sm[1]),
				}
			}

			flushDescription()

			step := &doc.Steps[len(doc.Steps)-1]
			step.SubSteps = append(step.SubSteps, types.SubStep{
				Index:   sm[1],
				Name:    strings.TrimSpace(sm[2]),
				Bullets: []string{},
				Line:    lineNo,
			})
			current = sectionSubStep

			continue
		}

		switch {
		case strings.EqualFold(heading, "summary of changes"):
			flushDescription()

			current = sectionSummary
		case strings.EqualFold(heading, "manual testing plan"):
			flushDescription()

			current = sectionPlan
		default:
			// Unrecognized heading: treated as opaque, resets context so
			// following bullets are not misattributed.
			flushDescription()

			current = sectionNone
		}
	}

	flushDescription()

	if doc.Title == "" {
		return nil, &ParseError{
			Section: "title",
			Line:    1,
			Reason:  "no title heading found",
		}
	}

	return doc, nil
}

// collectBody attaches a non-heading line to the current section
// context: bullets go to summary, plan, or the current sub-step;
// narrative text under a step becomes its description.
func collectBody(doc *types.Document, current section, line string, descLines *[]string) {
	bm := bulletPattern.FindStringSubmatch(line)

	switch current {
	case sectionSummary:
		if bm != nil {
			doc.Summary = append(doc.Summary, strings.TrimSpace(bm[1]))
		}
	case sectionPlan:
		if bm != nil {
			doc.ManualTestingPlan = append(doc.ManualTestingPlan, strings.TrimSpace(bm[1]))
		}
	case sectionSubStep:
		if bm != nil && len(doc.Steps) > 0 {
			step := &doc.Steps[len(doc.Steps)-1]
			if len(step.SubSteps) > 0 {
				ss := &step.SubSteps[len(step.SubSteps)-1]
				ss.Bullets = append(ss.Bullets, strings.TrimSpace(bm[1]))
			}
		}
	case sectionStep:
		if strings.TrimSpace(line) != "" {
			*descLines = append(*descLines, strings.TrimSpace(line))
		}
	case sectionNone:
		// Text outside any recognized section is ignored.
	}
}
