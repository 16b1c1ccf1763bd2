package validator

import (
	"testing"

	"github.com/aretw0/tracetm/internal/testutils"
	"github.com/aretw0/tracetm/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Run("Fixtures are valid", func(t *testing.T) {
		for _, def := range []domain.Definition{
			testutils.UnaryScan(),
			testutils.ContainsOneOne(),
			testutils.WriteBack(),
			testutils.DeadEnd(),
		} {
			assert.NoError(t, Validate(def), def.Name)
		}
	})

	t.Run("Terminal states", func(t *testing.T) {
		def := testutils.UnaryScan()
		def.Start = "ghost"
		def.Reject = def.Accept

		err := Validate(def)
		require.ErrorIs(t, err, domain.ErrInvalidMachine)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Issues, `start state "ghost" is not a declared state`)
		assert.Contains(t, verr.Issues, `accept and reject state must differ (both "qA")`)
	})

	t.Run("Alphabets", func(t *testing.T) {
		def := testutils.UnaryScan()
		def.InputAlphabet = []domain.Symbol{"1", "2", domain.Blank}
		def.TapeAlphabet = []domain.Symbol{"1"}

		report := Inspect(def)
		assert.Contains(t, report.Errors, `tape alphabet must contain the blank symbol "_"`)
		assert.Contains(t, report.Errors, `input symbol "2" is missing from the tape alphabet`)
		assert.Contains(t, report.Errors, `input alphabet must not contain the blank symbol "_"`)
	})

	t.Run("Transitions", func(t *testing.T) {
		def := testutils.UnaryScan()
		def.Transitions = append(def.Transitions, domain.Transition{
			From: "q0", Read: "x", Next: "q9", Write: "1", Move: "S",
		})

		report := Inspect(def)
		assert.Len(t, report.Errors, 3)
		assert.Contains(t, report.Errors, `transition 3 (q0,x): unknown target state "q9"`)
		assert.Contains(t, report.Errors, `transition 3 (q0,x): read symbol "x" is not in the tape alphabet`)
		assert.Contains(t, report.Errors, `transition 3 (q0,x): move must be L or R, got "S"`)
	})
}

func TestInspect_Warnings(t *testing.T) {
	def := testutils.UnaryScan()
	def.Transitions = append(def.Transitions, domain.Transition{
		From: "qA", Read: "1", Next: "q1", Write: "1", Move: domain.Left,
	})

	report := Inspect(def)

	require.NoError(t, report.Err())
	assert.Contains(t, report.Warnings, "transition 3 (qA,1): leaves a halting state and is never used")
	assert.Contains(t, report.Warnings, `state "q2" is unreachable from "q0"`)
	assert.Contains(t, report.Warnings, `state "qR" is unreachable from "q0"`)
	assert.NotContains(t, report.Warnings, `state "qA" is unreachable from "q0"`)
}

func TestValidationError_Message(t *testing.T) {
	single := &ValidationError{Issues: []string{"one"}}
	assert.Equal(t, "one", single.Error())

	multi := &ValidationError{Issues: []string{"one", "two"}}
	assert.Equal(t, "2 problems:\n  - one\n  - two", multi.Error())
}
