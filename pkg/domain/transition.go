package domain

import (
	"fmt"
	"strings"
)

// Symbol is a single tape cell value. Symbols are strings so that machine
// descriptions may use multi-character names, but input strings are split per rune.
type Symbol string

// Direction is the head move applied after writing.
type Direction string

const (
	Left  Direction = "L"
	Right Direction = "R"
)

// ParseDirection accepts "L"/"R" (case-insensitive, surrounding spaces ignored).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "L":
		return Left, nil
	case "R":
		return Right, nil
	}
	return "", fmt.Errorf("%w: unknown direction %q", ErrInvalidMachine, s)
}

// TransitionKey indexes the transition relation.
type TransitionKey struct {
	State string `json:"state" yaml:"state"`
	Read  Symbol `json:"read" yaml:"read"`
}

// Outcome is one nondeterministic choice for a TransitionKey.
type Outcome struct {
	Next  string    `json:"next" yaml:"next"`
	Write Symbol    `json:"write" yaml:"write"`
	Move  Direction `json:"move" yaml:"move"`
}

// Transition is the flat row form used by machine files:
// (state, read) -> (next, write, move).
type Transition struct {
	From  string    `json:"from" yaml:"from" mapstructure:"from"`
	Read  Symbol    `json:"read" yaml:"read" mapstructure:"read"`
	Next  string    `json:"next" yaml:"next" mapstructure:"next"`
	Write Symbol    `json:"write" yaml:"write" mapstructure:"write"`
	Move  Direction `json:"move" yaml:"move" mapstructure:"move"`
}

// Key returns the relation key of the row.
func (t Transition) Key() TransitionKey {
	return TransitionKey{State: t.From, Read: t.Read}
}

// Outcome returns the right-hand side of the row.
func (t Transition) Outcome() Outcome {
	return Outcome{Next: t.Next, Write: t.Write, Move: t.Move}
}
