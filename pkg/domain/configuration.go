package domain

import "strings"

// Configuration is a snapshot of the machine mid-computation.
//
// Left holds the cells strictly left of the head, Right the head cell and everything
// to its right. Neither segment is ever empty: an exhausted side is a single Blank.
type Configuration struct {
	Left  []Symbol `json:"left"`
	State string   `json:"state"`
	Right []Symbol `json:"right"`
}

// NewInitialConfiguration places the head on the first input symbol in the start state.
// Blanks in the input are ordinary cells and are kept.
func NewInitialConfiguration(start string, input []Symbol) Configuration {
	right := make([]Symbol, 0, len(input)+1)
	right = append(right, input...)
	if len(right) == 0 {
		right = append(right, Blank)
	}
	return Configuration{
		Left:  []Symbol{Blank},
		State: start,
		Right: right,
	}
}

// Head returns the symbol under the head.
func (c Configuration) Head() Symbol {
	if len(c.Right) == 0 {
		return Blank
	}
	return c.Right[0]
}

const (
	keySep    = "\x1f"
	symbolSep = "\x1e"
)

// Key identifies the configuration across a run. Two configurations with equal keys
// have identical tape segments and state.
func (c Configuration) Key() string {
	var sb strings.Builder
	writeSymbols(&sb, c.Left, symbolSep)
	sb.WriteString(keySep)
	sb.WriteString(c.State)
	sb.WriteString(keySep)
	writeSymbols(&sb, c.Right, symbolSep)
	return sb.String()
}

// String renders the configuration as [left, state, right].
func (c Configuration) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	writeSymbols(&sb, c.Left, "")
	sb.WriteString(", ")
	sb.WriteString(c.State)
	sb.WriteString(", ")
	writeSymbols(&sb, c.Right, "")
	sb.WriteString("]")
	return sb.String()
}

func writeSymbols(sb *strings.Builder, symbols []Symbol, sep string) {
	for i, s := range symbols {
		if i > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(string(s))
	}
}

// SplitInput turns an input string into symbols, one per rune.
// The lone blank marker ("_") and the empty string both denote the empty input.
func SplitInput(s string) []Symbol {
	if s == "" || Symbol(s) == Blank {
		return nil
	}
	symbols := make([]Symbol, 0, len(s))
	for _, r := range s {
		symbols = append(symbols, Symbol(string(r)))
	}
	return symbols
}
