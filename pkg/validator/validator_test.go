package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethpandaops/runbook-lint/pkg/parser"
	"github.com/ethpandaops/runbook-lint/pkg/types"
)

func validDocument() *types.Document {
	return &types.Document{
		Title: "Add X",
		Steps: []types.Step{
			{
				Index: 1,
				Name:  "Y",
				SubSteps: []types.SubStep{
					{Index: "1.1", Name: "Z", Bullets: []string{"do it"}},
				},
			},
		},
		ManualTestingPlan: []string{"check it"},
	}
}

func TestValidateValidDocument(t *testing.T) {
	result := NewDefault().Validate(validDocument())
	assert.True(t, result.Valid())
	assert.Empty(t, result.Violations)
}

func TestValidateDegenerateDocument(t *testing.T) {
	// Validation must always produce a complete result, never panic.
	result := NewDefault().Validate(nil)
	assert.False(t, result.Valid())

	kinds := violationKinds(result)
	assert.Contains(t, kinds, types.MissingTitle)
	assert.Contains(t, kinds, types.NoSteps)
	assert.Contains(t, kinds, types.EmptyManualTestingPlan)
}

func TestValidateStepIndexGap(t *testing.T) {
	doc := validDocument()
	doc.Steps = []types.Step{
		{Index: 1, Name: "a"},
		{Index: 2, Name: "b"},
		{Index: 4, Name: "c"},
	}

	result := NewDefault().Validate(doc)

	gaps := byKind(result, types.StepIndexGap)
	require.Len(t, gaps, 1, "expected exactly one gap violation, no cascade")
	assert.Equal(t, 4, gaps[0].StepIndex)
}

func TestValidateStepIndexGapNoCascade(t *testing.T) {
	// After a gap, the expected index resets so in-order successors of
	// the observed index are clean.
	doc := validDocument()
	doc.Steps = []types.Step{
		{Index: 1, Name: "a"},
		{Index: 3, Name: "b"},
		{Index: 4, Name: "c"},
		{Index: 5, Name: "d"},
	}

	result := NewDefault().Validate(doc)

	gaps := byKind(result, types.StepIndexGap)
	require.Len(t, gaps, 1)
	assert.Equal(t, 3, gaps[0].StepIndex)
}

func TestValidateStepsNotStartingAtOne(t *testing.T) {
	doc := validDocument()
	doc.Steps = []types.Step{
		{Index: 2, Name: "a"},
		{Index: 3, Name: "b"},
	}

	result := NewDefault().Validate(doc)

	gaps := byKind(result, types.StepIndexGap)
	require.Len(t, gaps, 1)
	assert.Equal(t, 2, gaps[0].StepIndex)
}

func TestValidateSubStepIndexMismatch(t *testing.T) {
	doc := validDocument()
	doc.Steps[0].SubSteps = []types.SubStep{
		{Index: "2.1", Name: "Z"},
	}

	result := NewDefault().Validate(doc)

	mismatches := byKind(result, types.SubStepIndexMismatch)
	require.Len(t, mismatches, 1)
	assert.Equal(t, 1, mismatches[0].StepIndex)
	assert.Equal(t, "2.1", mismatches[0].SubStepIndex)
}

func TestValidateSubStepPrefixIsExact(t *testing.T) {
	// "11.1" must not pass as a child of step 1.
	doc := validDocument()
	doc.Steps[0].SubSteps = []types.SubStep{
		{Index: "11.1", Name: "Z"},
	}

	result := NewDefault().Validate(doc)
	assert.Len(t, byKind(result, types.SubStepIndexMismatch), 1)
}

func TestValidateEmptyStepName(t *testing.T) {
	doc := validDocument()
	doc.Steps[0].Name = ""

	result := NewDefault().Validate(doc)

	empty := byKind(result, types.EmptyStepName)
	require.Len(t, empty, 1)
	assert.Equal(t, 1, empty[0].StepIndex)
}

func TestValidateSeverities(t *testing.T) {
	doc := &types.Document{}

	result := NewDefault().Validate(doc)

	for _, v := range result.Violations {
		assert.Equal(t, types.SeverityError, v.Severity, "structural absences default to error severity")
	}

	assert.Equal(t, len(result.Violations), result.CountBySeverity(types.SeverityError))
	assert.Zero(t, result.CountBySeverity(types.SeverityWarning))
}

func TestRuleSetDisable(t *testing.T) {
	rules := DefaultRuleSet()
	rules.Disable(types.StepIndexGap)

	doc := validDocument()
	doc.Steps = []types.Step{
		{Index: 1, Name: "a"},
		{Index: 4, Name: "b"},
	}

	result := New(rules).Validate(doc)
	assert.Empty(t, byKind(result, types.StepIndexGap))
}

func TestRuleSetSeverityOverride(t *testing.T) {
	rules := DefaultRuleSet()
	rules.SetSeverity(types.EmptyManualTestingPlan, types.SeverityWarning)

	doc := validDocument()
	doc.ManualTestingPlan = nil

	result := New(rules).Validate(doc)

	plans := byKind(result, types.EmptyManualTestingPlan)
	require.Len(t, plans, 1)
	assert.Equal(t, types.SeverityWarning, plans[0].Severity)
}

func TestEndToEndScenarios(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantKinds []types.ViolationKind
	}{
		{
			name: "minimal valid runbook",
			input: "# Add X\n\n### Step 1: Y\n\n#### 1.1: Z\n\n- one bullet\n\n" +
				"## Manual testing plan\n\n- one check\n",
			wantKinds: []types.ViolationKind{},
		},
		{
			name: "mismatched substep parent",
			input: "# Add X\n\n### Step 1: Y\n\n#### 2.1: Z\n\n- one bullet\n\n" +
				"## Manual testing plan\n\n- one check\n",
			wantKinds: []types.ViolationKind{types.SubStepIndexMismatch},
		},
		{
			name:      "no manual testing plan section",
			input:     "# Add X\n\n### Step 1: Y\n\n#### 1.1: Z\n\n- one bullet\n",
			wantKinds: []types.ViolationKind{types.EmptyManualTestingPlan},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := parser.Parse(tt.input)
			require.NoError(t, err)

			result := NewDefault().Validate(doc)

			kinds := violationKinds(result)
			assert.ElementsMatch(t, tt.wantKinds, kinds)
		})
	}
}

func TestEndToEndMismatchLocation(t *testing.T) {
	input := "# Add X\n\n### Step 1: Y\n\n#### 2.1: Z\n\n- one bullet\n\n" +
		"## Manual testing plan\n\n- one check\n"

	doc, err := parser.Parse(input)
	require.NoError(t, err)

	result := NewDefault().Validate(doc)
	require.Len(t, result.Violations, 1)
	assert.Equal(t, 1, result.Violations[0].StepIndex)
	assert.Equal(t, "2.1", result.Violations[0].SubStepIndex)
}

func violationKinds(result types.ValidationResult) []types.ViolationKind {
	kinds := make([]types.ViolationKind, 0, len(result.Violations))
	for _, v := range result.Violations {
		kinds = append(kinds, v.Kind)
	}

	return kinds
}

func byKind(result types.ValidationResult, kind types.ViolationKind) []types.Violation {
	matched := make([]types.Violation, 0, len(result.Violations))

	for _, v := range result.Violations {
		if v.Kind == kind {
			matched = append(matched, v)
		}
	}

	return matched
}
