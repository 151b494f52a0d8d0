package types

// ViolationKind identifies a structural rule that a document can break.
type ViolationKind string

const (
	// MissingTitle means the document has no title heading.
	MissingTitle ViolationKind = "missing_title"
	// NoSteps means the document contains no "Step N:" sections.
	NoSteps ViolationKind = "no_steps"
	// StepIndexGap means a step index does not follow its predecessor by 1.
	StepIndexGap ViolationKind = "step_index_gap"
	// SubStepIndexMismatch means a sub-step index does not begin with its
	// parent step index.
	SubStepIndexMismatch ViolationKind = "substep_index_mismatch"
	// EmptyManualTestingPlan means the "Manual testing plan" section is
	// missing or has no bullets.
	EmptyManualTestingPlan ViolationKind = "empty_manual_testing_plan"
	// EmptyStepName means a step heading has no text after "Step N:".
	EmptyStepName ViolationKind = "empty_step_name"
)

// Kinds lists all violation kinds. Used by config validation.
func Kinds() []ViolationKind {
	return []ViolationKind{
		MissingTitle,
		NoSteps,
		StepIndexGap,
		SubStepIndexMismatch,
		EmptyManualTestingPlan,
		EmptyStepName,
	}
}

// Severity classifies how serious a violation is for exit-code purposes.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// IsValidSeverity checks if a severity string is recognized.
func IsValidSeverity(s string) bool {
	switch Severity(s) {
	case SeverityError, SeverityWarning:
		return true
	default:
		return false
	}
}

// Violation records one structural nonconformance found by the validator.
type Violation struct {
	Kind     ViolationKind `json:"kind"`
	Severity Severity      `json:"severity"`
	// Message is a human-readable description of the violation.
	Message string `json:"message"`
	// StepIndex locates the violation when it concerns a specific step.
	StepIndex int `json:"step_index,omitempty"`
	// SubStepIndex locates the violation when it concerns a sub-step.
	SubStepIndex string `json:"substep_index,omitempty"`
}

// ValidationResult aggregates every violation found in one document.
// Validation never fails: a result is always produced, even for a
// degenerate empty document.
type ValidationResult struct {
	Violations []Violation `json:"violations"`
}

// Valid reports whether no violations were found.
func (r ValidationResult) Valid() bool {
	return len(r.Violations) == 0
}

// CountBySeverity returns the number of violations with the given severity.
func (r ValidationResult) CountBySeverity(sev Severity) int {
	count := 0

	for _, v := range r.Violations {
		if v.Severity == sev {
			count++
		}
	}

	return count
}
