package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/tracetm/pkg/domain"
	"github.com/stretchr/testify/require"
)

// WriteFile creates name inside a fresh temp dir and returns its absolute path.
// It fails the test immediately on error.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()

	dir := t.TempDir()
	absDir, err := filepath.Abs(dir)
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	path := filepath.Join(absDir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "Failed to write fixture")
	return path
}

func base(name string, input ...domain.Symbol) domain.Definition {
	return domain.Definition{
		Name:          name,
		States:        []string{"q0", "q1", "q2", "qA", "qR"},
		InputAlphabet: input,
		TapeAlphabet:  append(append([]domain.Symbol{}, input...), domain.Blank),
		Start:         "q0",
		Accept:        "qA",
		Reject:        "qR",
	}
}

func row(from string, read domain.Symbol, next string, write domain.Symbol, move domain.Direction) domain.Transition {
	return domain.Transition{From: from, Read: read, Next: next, Write: write, Move: move}
}

// UnaryScan scans right over 1s and accepts on the first blank.
// On "111" it accepts after 4 steps without branching.
func UnaryScan() domain.Definition {
	def := base("unary_scan", "1")
	def.Transitions = []domain.Transition{
		row("q0", "1", "q0", "1", domain.Right),
		row("q0", domain.Blank, "qA", domain.Blank, domain.Right),
	}
	return def
}

// DeadEnd has no transitions at all.
func DeadEnd() domain.Definition {
	return base("dead_end", "0", "1")
}

// ContainsOneOne guesses where a "11" substring starts.
// It accepts "0110" in 3 steps and rejects "0100" in 5.
func ContainsOneOne() domain.Definition {
	def := base("contains_11", "0", "1")
	def.Transitions = []domain.Transition{
		row("q0", "0", "q0", "0", domain.Right),
		row("q0", "1", "q0", "1", domain.Right),
		row("q0", "1", "q1", "1", domain.Right),
		row("q1", "1", "qA", "1", domain.Right),
		row("q0", domain.Blank, "qR", domain.Blank, domain.Right),
	}
	return def
}

// PingPong steps right, back left, then right into a configuration it already visited.
func PingPong() domain.Definition {
	def := base("ping_pong", "a")
	def.Transitions = []domain.Transition{
		row("q0", "a", "q1", "a", domain.Right),
		row("q1", domain.Blank, "q0", domain.Blank, domain.Left),
	}
	return def
}

// WriteBack overwrites a 0 with a 1, steps away and comes back to read it.
// It accepts "0" only if writes are applied before moving.
func WriteBack() domain.Definition {
	def := base("write_back", "0", "1")
	def.Transitions = []domain.Transition{
		row("q0", "0", "q1", "1", domain.Right),
		row("q1", domain.Blank, "q2", domain.Blank, domain.Left),
		row("q2", "1", "qA", "1", domain.Right),
	}
	return def
}

// Doubler writes an unbounded blank/1 string; each level doubles.
func Doubler() domain.Definition {
	def := base("doubler", "1")
	def.Transitions = []domain.Transition{
		row("q0", domain.Blank, "q0", domain.Blank, domain.Right),
		row("q0", domain.Blank, "q0", "1", domain.Right),
	}
	return def
}

// Eraser blanks its input and keeps walking right forever.
// Every step leaves one more blank behind, so no configuration repeats.
func Eraser() domain.Definition {
	def := base("eraser", "1")
	def.Transitions = []domain.Transition{
		row("q0", "1", "q0", domain.Blank, domain.Right),
		row("q0", domain.Blank, "q0", domain.Blank, domain.Right),
	}
	return def
}

// UnaryScanCSV is UnaryScan in the CSV machine format.
const UnaryScanCSV = `unary_scan
q0,q1,q2,qA,qR
1
1,_
q0
qA
qR
q0,1,q0,1,R
q0,_,qA,_,R
`
