package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInputSymbol is returned when an input string contains a symbol outside
// the input alphabet (blank excepted). No exploration is performed.
var ErrInvalidInputSymbol = errors.New("invalid input symbol")

// ErrNegativeStepBound is returned when a simulation is requested with maxSteps < 0.
var ErrNegativeStepBound = errors.New("step bound must not be negative")

// ErrInvalidMachine is returned when a machine description is malformed.
var ErrInvalidMachine = errors.New("invalid machine definition")

// ErrMachineNotFound is returned when a loader cannot find the requested machine.
var ErrMachineNotFound = errors.New("machine not found")

// ErrRunNotFound is returned when a run ID cannot be found in the store.
var ErrRunNotFound = errors.New("run not found")

// InvalidSymbolError reports the first offending symbol of an input string.
type InvalidSymbolError struct {
	Symbol   Symbol
	Alphabet []Symbol
}

func (e *InvalidSymbolError) Error() string {
	return fmt.Sprintf("%s not found in alphabet: %s", e.Symbol, formatSymbols(e.Alphabet))
}

// Unwrap allows errors.Is(err, ErrInvalidInputSymbol).
func (e *InvalidSymbolError) Unwrap() error {
	return ErrInvalidInputSymbol
}

func formatSymbols(symbols []Symbol) string {
	parts := make([]string, len(symbols))
	for i, s := range symbols {
		parts[i] = "'" + string(s) + "'"
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
