package dsl

import (
	"fmt"

	"github.com/aretw0/tracetm/pkg/domain"
)

// StateBuilder adds transitions leaving one state.
type StateBuilder struct {
	builder *Builder
	state   string
}

// On starts a transition taken when the head reads symbol.
// The symbol is written back unchanged unless Write is called.
func (s *StateBuilder) On(read domain.Symbol) *RuleBuilder {
	return &RuleBuilder{
		from:  s,
		read:  read,
		write: read,
	}
}

// RuleBuilder configures a single transition.
type RuleBuilder struct {
	from  *StateBuilder
	read  domain.Symbol
	write domain.Symbol
	move  domain.Direction
}

// Write sets the symbol written to the head cell.
func (r *RuleBuilder) Write(symbol domain.Symbol) *RuleBuilder {
	r.write = symbol
	return r
}

// Left moves the head left after writing.
func (r *RuleBuilder) Left() *RuleBuilder {
	r.move = domain.Left
	return r
}

// Right moves the head right after writing.
func (r *RuleBuilder) Right() *RuleBuilder {
	r.move = domain.Right
	return r
}

// Go completes the transition into next and returns to the state builder,
// so further alternatives can be chained.
func (r *RuleBuilder) Go(next string) *StateBuilder {
	b := r.from.builder
	if r.move == "" {
		b.errs = append(b.errs, fmt.Errorf("transition %s/%s -> %s has no move", r.from.state, r.read, next))
	}
	b.def.Transitions = append(b.def.Transitions, domain.Transition{
		From:  r.from.state,
		Read:  r.read,
		Next:  b.declare(next),
		Write: r.write,
		Move:  r.move,
	})
	return r.from
}
