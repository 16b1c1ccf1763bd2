// Package trace writes the plain-text run report: a header describing the invocation
// followed by one block per input string.
package trace

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aretw0/tracetm/pkg/domain"
)

// Header describes one invocation of the tracer.
type Header struct {
	Program     string
	MachineFile string
	Inputs      []string
	MaxSteps    int
}

// FileName returns the report name for a machine file: trace_<stem>.txt.
func FileName(machinePath string) string {
	base := filepath.Base(machinePath)
	if i := strings.IndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	return "trace_" + base + ".txt"
}

// WriteHeader prints the invocation header.
func WriteHeader(w io.Writer, h Header) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "program: %s\n", h.Program)
	fmt.Fprintf(&sb, "ntm file: %s\n", h.MachineFile)
	for i, in := range h.Inputs {
		fmt.Fprintf(&sb, "input string %d: %s\n", i+1, in)
	}
	fmt.Fprintf(&sb, "max depth: %d\n", h.MaxSteps)
	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteResult prints the block for one input. Exactly one of v and runErr is expected
// to be non-nil.
func WriteResult(w io.Writer, input string, v *domain.Verdict, runErr error) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\nprocessing input string: '%s'\n", input)
	sb.WriteString(Summary(v, runErr))
	sb.WriteString("\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteMachineNotFound prints the report line used when the machine file is missing.
func WriteMachineNotFound(w io.Writer) error {
	_, err := io.WriteString(w, "error: machine file not found. please check the file path.\n")
	return err
}

// Summary renders the outcome lines of a run without the leading input line.
func Summary(v *domain.Verdict, runErr error) string {
	if runErr != nil {
		var symErr *domain.InvalidSymbolError
		if errors.As(runErr, &symErr) {
			return "error: " + symErr.Error()
		}
		return "error: " + runErr.Error()
	}

	var sb strings.Builder
	switch v.Kind {
	case domain.VerdictAccepted:
		fmt.Fprintf(&sb, "string accepted in %d steps.\n", v.Steps)
		fmt.Fprintf(&sb, "tree: %s\n", v.Tree)
	case domain.VerdictRejected:
		fmt.Fprintf(&sb, "string rejected in %d steps.\n", v.Steps)
		fmt.Fprintf(&sb, "tree: %s\n", v.Tree)
	default:
		fmt.Fprintf(&sb, "execution stopped after %d steps.\n", v.MaxSteps)
	}
	fmt.Fprintf(&sb, "degree of nondeterminism: %.2f", v.Nondeterminism)
	return sb.String()
}
