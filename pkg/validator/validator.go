// Package validator checks a parsed Document against the structural
// invariants of the runbook schema. Validation never fails and never
// aborts early: every violation is found and reported in one pass.
package validator

import (
	"fmt"
	"strings"

	"github.com/ethpandaops/runbook-lint/pkg/types"
)

// RuleSet controls which rules run and with what severity. The corpus
// convention is an authoring policy rather than a guaranteed contract,
// so callers can disable rules or downgrade/upgrade severities.
type RuleSet struct {
	disabled   map[types.ViolationKind]bool
	severities map[types.ViolationKind]types.Severity
}

// DefaultRuleSet returns the rule set with every rule enabled.
// Structural absences (missing title, no steps, empty testing plan) are
// errors; index irregularities and empty step names are warnings.
func DefaultRuleSet() RuleSet {
	return RuleSet{
		disabled: map[types.ViolationKind]bool{},
		severities: map[types.ViolationKind]types.Severity{
			types.MissingTitle:           types.SeverityError,
			types.NoSteps:                types.SeverityError,
			types.EmptyManualTestingPlan: types.SeverityError,
			types.StepIndexGap:           types.SeverityWarning,
			types.SubStepIndexMismatch:   types.SeverityWarning,
			types.EmptyStepName:          types.SeverityWarning,
		},
	}
}

// Disable turns off a rule. Disabled rules record no violations.
func (rs *RuleSet) Disable(kind types.ViolationKind) {
	rs.disabled[kind] = true
}

// SetSeverity overrides the severity of a rule.
func (rs *RuleSet) SetSeverity(kind types.ViolationKind, sev types.Severity) {
	rs.severities[kind] = sev
}

// Severity returns the effective severity for a rule.
func (rs RuleSet) Severity(kind types.ViolationKind) types.Severity {
	if sev, ok := rs.severities[kind]; ok {
		return sev
	}

	return types.SeverityError
}

// Validator validates documents against a rule set.
type Validator struct {
	rules RuleSet
}

// New creates a validator with the given rule set.
func New(rules RuleSet) *Validator {
	return &Validator{rules: rules}
}

// NewDefault creates a validator with the default rule set.
func NewDefault() *Validator {
	return New(DefaultRuleSet())
}

// Validate scans the document and returns every violation found. It
// never returns an error, even for a degenerate empty document.
func (v *Validator) Validate(doc *types.Document) types.ValidationResult {
	result := types.ValidationResult{Violations: []types.Violation{}}

	if doc == nil {
		doc = &types.Document{}
	}

	if doc.Title == "" {
		v.record(&result, types.Violation{
			Kind:    types.MissingTitle,
			Message: "document has no title",
		})
	}

	if len(doc.Steps) == 0 {
		v.record(&result, types.Violation{
			Kind:    types.NoSteps,
			Message: "document has no steps",
		})
	}

	v.checkSteps(&result, doc.Steps)

	if len(doc.ManualTestingPlan) == 0 {
		v.record(&result, types.Violation{
			Kind:    types.EmptyManualTestingPlan,
			Message: "manual testing plan is missing or empty",
		})
	}

	return result
}

// checkSteps verifies step sequencing, step names, and sub-step index
// parentage. On a sequencing mismatch the expected index resets to the
// observed index + 1 so later in-order steps do not cascade into false
// positives.
func (v *Validator) checkSteps(result *types.ValidationResult, steps []types.Step) {
	expected := 1

	for _, step := range steps {
		if step.Index != expected {
			v.record(result, types.Violation{
				Kind:      types.StepIndexGap,
				Message:   fmt.Sprintf("step %d found where step %d was expected", step.Index, expected),
				StepIndex: step.Index,
			})
		}

		expected = step.Index + 1

		if step.Name == "" {
			v.record(result, types.Violation{
				Kind:      types.EmptyStepName,
				Message:   fmt.Sprintf("step %d has no name", step.Index),
				StepIndex: step.Index,
			})
		}

		prefix := fmt.Sprintf("%d.", step.Index)

		for _, ss := range step.SubSteps {
			if !strings.HasPrefix(ss.Index, prefix) {
				v.record(result, types.Violation{
					Kind:         types.SubStepIndexMismatch,
					Message:      fmt.Sprintf("sub-step %s does not belong to step %d", ss.Index, step.Index),
					StepIndex:    step.Index,
					SubStepIndex: ss.Index,
				})
			}
		}
	}
}

// record appends a violation unless its rule is disabled, filling in
// the configured severity.
func (v *Validator) record(result *types.ValidationResult, violation types.Violation) {
	if v.rules.disabled[violation.Kind] {
		return
	}

	violation.Severity = v.rules.Severity(violation.Kind)
	result.Violations = append(result.Violations, violation)
}
