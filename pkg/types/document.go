// Package types defines the runbook document model shared across the
// parser, validator, and report packages.
package types

// Document represents one parsed runbook: a stepwise engineering plan
// with a title, an optional summary, numbered steps, and a manual
// testing plan. Documents are built once at parse time and never
// mutated afterwards.
type Document struct {
	// Title is the first-level heading of the runbook.
	Title string `yaml:"title" json:"title"`
	// Summary holds the bullets of the "Summary of changes" section.
	Summary []string `yaml:"summary,omitempty" json:"summary,omitempty"`
	// Steps are the numbered top-level steps, in authoring order.
	Steps []Step `yaml:"steps" json:"steps"`
	// ManualTestingPlan holds the bullets of the "Manual testing plan" section.
	ManualTestingPlan []string `yaml:"manual_testing_plan" json:"manual_testing_plan"`
	// FilePath is the source file for debugging. Empty when parsed from memory.
	FilePath string `yaml:"-" json:"file_path,omitempty"`
}

// Step represents one numbered top-level step ("Step N: ...").
type Step struct {
	// Index is the number captured verbatim from the heading. The parser
	// does not enforce sequencing; the validator does.
	Index int `yaml:"index" json:"index"`
	// Name is the text after "Step N:".
	Name string `yaml:"name" json:"name"`
	// Description is the narrative text under the step heading, before
	// any sub-step. May be empty.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	// SubSteps are the numbered sub-steps, in authoring order.
	SubSteps []SubStep `yaml:"substeps,omitempty" json:"substeps,omitempty"`
	// Line is the 1-based source line of the step heading.
	Line int `yaml:"-" json:"line,omitempty"`
}

// SubStep represents one numbered sub-step ("N.M: ...").
type SubStep struct {
	// Index is the dotted numeral captured verbatim (e.g. "1.1").
	Index string `yaml:"index" json:"index"`
	// Name is the text after "N.M:".
	Name string `yaml:"name" json:"name"`
	// Bullets are free-text action items. Order is significant and
	// duplicates are allowed.
	Bullets []string `yaml:"bullets,omitempty" json:"bullets,omitempty"`
	// Line is the 1-based source line of the sub-step heading.
	Line int `yaml:"-" json:"line,omitempty"`
}
