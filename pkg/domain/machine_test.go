package domain_test

import (
	"testing"

	"github.com/aretw0/tracetm/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func binaryDefinition() domain.Definition {
	return domain.Definition{
		Name:          "flip",
		States:        []string{"q0", "qA", "qR"},
		InputAlphabet: []domain.Symbol{"0", "1"},
		TapeAlphabet:  []domain.Symbol{"0", "1", domain.Blank},
		Start:         "q0",
		Accept:        "qA",
		Reject:        "qR",
		Transitions: []domain.Transition{
			{From: "q0", Read: "0", Next: "q0", Write: "1", Move: domain.Right},
			{From: "q0", Read: "0", Next: "qA", Write: "0", Move: domain.Right},
			{From: "q0", Read: "1", Next: "qR", Write: "1", Move: domain.Right},
		},
	}
}

func TestMachine_Outcomes(t *testing.T) {
	m := domain.NewMachine(binaryDefinition())

	t.Run("Keeps declaration order", func(t *testing.T) {
		outcomes := m.Outcomes("q0", "0")
		require.Len(t, outcomes, 2)
		assert.Equal(t, "q0", outcomes[0].Next)
		assert.Equal(t, "qA", outcomes[1].Next)
	})

	t.Run("Missing key is empty, not an error", func(t *testing.T) {
		assert.Empty(t, m.Outcomes("q0", domain.Blank))
		assert.Empty(t, m.Outcomes("nope", "0"))
	})

	t.Run("Returned slices are copies", func(t *testing.T) {
		outcomes := m.Outcomes("q0", "0")
		outcomes[0].Next = "mutated"
		assert.Equal(t, "q0", m.Outcomes("q0", "0")[0].Next)
	})
}

func TestMachine_Membership(t *testing.T) {
	m := domain.NewMachine(binaryDefinition())

	assert.True(t, m.IsStart("q0"))
	assert.True(t, m.IsAccept("qA"))
	assert.True(t, m.IsReject("qR"))
	assert.False(t, m.IsAccept("qR"))
	assert.True(t, m.HasState("qA"))
	assert.False(t, m.HasState("q9"))

	assert.True(t, m.AcceptsInput("1"))
	assert.True(t, m.AcceptsInput(domain.Blank))
	assert.False(t, m.AcceptsInput("2"))
}

func TestMachine_IsImmutable(t *testing.T) {
	def := binaryDefinition()
	m := domain.NewMachine(def)

	def.Transitions[0].Next = "changed"
	def.States[0] = "changed"

	assert.Equal(t, "q0", m.Outcomes("q0", "0")[0].Next)
	assert.Equal(t, "q0", m.Definition().States[0])
}

func TestParseDirection(t *testing.T) {
	d, err := domain.ParseDirection(" r ")
	require.NoError(t, err)
	assert.Equal(t, domain.Right, d)

	d, err = domain.ParseDirection("L")
	require.NoError(t, err)
	assert.Equal(t, domain.Left, d)

	_, err = domain.ParseDirection("S")
	assert.ErrorIs(t, err, domain.ErrInvalidMachine)
}

func TestInvalidSymbolError(t *testing.T) {
	err := error(&domain.InvalidSymbolError{Symbol: "2", Alphabet: []domain.Symbol{"0", "1"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInputSymbol)
	assert.Equal(t, "2 not found in alphabet: ['0', '1']", err.Error())
}
