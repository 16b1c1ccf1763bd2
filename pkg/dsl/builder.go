package dsl

import (
	"fmt"
	"slices"

	"github.com/aretw0/tracetm/internal/validator"
	"github.com/aretw0/tracetm/pkg/adapters/memory"
	"github.com/aretw0/tracetm/pkg/domain"
)

// Builder manages the machine construction.
type Builder struct {
	def  domain.Definition
	errs []error
}

// New creates a new machine builder.
func New(name string) *Builder {
	return &Builder{
		def: domain.Definition{
			Name:         name,
			TapeAlphabet: []domain.Symbol{domain.Blank},
		},
	}
}

// States declares states in order. Mentioning a state anywhere else declares it too.
func (b *Builder) States(states ...string) *Builder {
	for _, s := range states {
		b.declare(s)
	}
	return b
}

// Input adds input symbols; they are added to the tape alphabet as well.
func (b *Builder) Input(symbols ...domain.Symbol) *Builder {
	for _, s := range symbols {
		if !slices.Contains(b.def.InputAlphabet, s) {
			b.def.InputAlphabet = append(b.def.InputAlphabet, s)
		}
	}
	return b.Tape(symbols...)
}

// Tape adds work symbols that may be written but never appear in the input.
func (b *Builder) Tape(symbols ...domain.Symbol) *Builder {
	for _, s := range symbols {
		if !slices.Contains(b.def.TapeAlphabet, s) {
			b.def.TapeAlphabet = append(b.def.TapeAlphabet, s)
		}
	}
	return b
}

// Start sets the start state.
func (b *Builder) Start(state string) *Builder {
	b.def.Start = b.declare(state)
	return b
}

// Accept sets the accept state.
func (b *Builder) Accept(state string) *Builder {
	b.def.Accept = b.declare(state)
	return b
}

// Reject sets the reject state.
func (b *Builder) Reject(state string) *Builder {
	b.def.Reject = b.declare(state)
	return b
}

// From starts a group of transitions leaving state.
func (b *Builder) From(state string) *StateBuilder {
	return &StateBuilder{builder: b, state: b.declare(state)}
}

// Build validates and returns the definition. The builder may keep being used.
func (b *Builder) Build() (domain.Definition, error) {
	if len(b.errs) > 0 {
		return domain.Definition{}, fmt.Errorf("%w: %v", domain.ErrInvalidMachine, b.errs[0])
	}
	def := b.def
	def.States = slices.Clone(def.States)
	def.InputAlphabet = slices.Clone(def.InputAlphabet)
	def.TapeAlphabet = slices.Clone(def.TapeAlphabet)
	def.Transitions = slices.Clone(def.Transitions)

	if err := validator.Validate(def); err != nil {
		return domain.Definition{}, fmt.Errorf("machine %s: %w", def.Name, err)
	}
	return def, nil
}

// Loader builds the definition and wraps it in a memory loader.
func (b *Builder) Loader() (*memory.Loader, error) {
	def, err := b.Build()
	if err != nil {
		return nil, err
	}
	return memory.NewFromDefinitions(def)
}

func (b *Builder) declare(state string) string {
	if !slices.Contains(b.def.States, state) {
		b.def.States = append(b.def.States, state)
	}
	return state
}
