package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/tracetm/pkg/domain"
	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// FormatResult renders one run as markdown: a heading with the verdict, a summary list
// and the configuration tree as a table of levels.
func FormatResult(input string, v *domain.Verdict, runErr error) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## Input `%s`\n\n", displayInput(input))

	if runErr != nil {
		fmt.Fprintf(&sb, "**error**: %s\n", runErr)
		return sb.String()
	}

	fmt.Fprintf(&sb, "- **verdict**: %s\n", v.Kind)
	if v.Halted() {
		fmt.Fprintf(&sb, "- **steps**: %d\n", v.Steps)
	} else {
		fmt.Fprintf(&sb, "- **stopped after**: %d steps\n", v.MaxSteps)
	}
	fmt.Fprintf(&sb, "- **configurations**: %d\n", v.Tree.Size())
	fmt.Fprintf(&sb, "- **degree of nondeterminism**: %.2f\n\n", v.Nondeterminism)

	sb.WriteString("| depth | configurations |\n|---|---|\n")
	for depth, level := range v.Tree {
		cells := make([]string, len(level))
		for i, c := range level {
			cells[i] = "`" + c.String() + "`"
		}
		if len(cells) == 0 {
			cells = []string{"(none)"}
		}
		fmt.Fprintf(&sb, "| %d | %s |\n", depth, strings.Join(cells, " "))
	}
	return sb.String()
}

func displayInput(input string) string {
	if input == "" {
		return string(domain.Blank)
	}
	return input
}
