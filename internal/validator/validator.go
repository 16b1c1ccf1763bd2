package validator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/tracetm/pkg/domain"
)

// ValidationError aggregates every problem found in a definition.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 1 {
		return e.Issues[0]
	}
	return fmt.Sprintf("%d problems:\n  - %s", len(e.Issues), strings.Join(e.Issues, "\n  - "))
}

// Unwrap allows errors.Is(err, domain.ErrInvalidMachine).
func (e *ValidationError) Unwrap() error {
	return domain.ErrInvalidMachine
}

// Report is the outcome of Inspect. Warnings never make a machine unusable.
type Report struct {
	Errors   []string
	Warnings []string
}

// Err returns a *ValidationError when the report has errors.
func (r Report) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return &ValidationError{Issues: r.Errors}
}

// Validate checks that def is well formed.
func Validate(def domain.Definition) error {
	return Inspect(def).Err()
}

// Inspect checks def and also crawls the transition graph from the start state,
// reporting states that can never be entered.
func Inspect(def domain.Definition) Report {
	var r Report
	errorf := func(format string, args ...any) { r.Errors = append(r.Errors, fmt.Sprintf(format, args...)) }

	states := make(map[string]bool, len(def.States))
	for _, s := range def.States {
		if states[s] {
			errorf("state %q declared twice", s)
		}
		states[s] = true
	}
	if len(def.States) == 0 {
		errorf("no states declared")
	}

	for _, special := range []struct{ role, name string }{
		{"start", def.Start},
		{"accept", def.Accept},
		{"reject", def.Reject},
	} {
		switch {
		case special.name == "":
			errorf("%s state is missing", special.role)
		case !states[special.name]:
			errorf("%s state %q is not a declared state", special.role, special.name)
		}
	}
	if def.Accept != "" && def.Accept == def.Reject {
		errorf("accept and reject state must differ (both %q)", def.Accept)
	}

	tape := make(map[domain.Symbol]bool, len(def.TapeAlphabet))
	for _, s := range def.TapeAlphabet {
		tape[s] = true
	}
	if !tape[domain.Blank] {
		errorf("tape alphabet must contain the blank symbol %q", domain.Blank)
	}
	for _, s := range def.InputAlphabet {
		if s == domain.Blank {
			errorf("input alphabet must not contain the blank symbol %q", domain.Blank)
			continue
		}
		if !tape[s] {
			errorf("input symbol %q is missing from the tape alphabet", s)
		}
	}

	for i, t := range def.Transitions {
		where := fmt.Sprintf("transition %d (%s,%s)", i+1, t.From, t.Read)
		if !states[t.From] {
			errorf("%s: unknown source state %q", where, t.From)
		}
		if !states[t.Next] {
			errorf("%s: unknown target state %q", where, t.Next)
		}
		if !tape[t.Read] {
			errorf("%s: read symbol %q is not in the tape alphabet", where, t.Read)
		}
		if !tape[t.Write] {
			errorf("%s: write symbol %q is not in the tape alphabet", where, t.Write)
		}
		if t.Move != domain.Left && t.Move != domain.Right {
			errorf("%s: move must be L or R, got %q", where, t.Move)
		}
		if t.From == def.Accept || t.From == def.Reject {
			r.Warnings = append(r.Warnings, fmt.Sprintf("%s: leaves a halting state and is never used", where))
		}
	}

	for _, s := range unreachable(def) {
		r.Warnings = append(r.Warnings, fmt.Sprintf("state %q is unreachable from %q", s, def.Start))
	}
	return r
}

// unreachable crawls the state graph breadth-first from the start state.
func unreachable(def domain.Definition) []string {
	edges := make(map[string][]string)
	for _, t := range def.Transitions {
		edges[t.From] = append(edges[t.From], t.Next)
	}

	visited := map[string]bool{def.Start: true}
	queue := []string{def.Start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range edges[current] {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}

	var out []string
	for _, s := range def.States {
		if !visited[s] {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
