package domain

import "slices"

// Definition is the plain, serializable description of a machine.
// Loaders produce it; NewMachine freezes it into a Machine.
type Definition struct {
	Name          string       `json:"name" yaml:"name" mapstructure:"name"`
	States        []string     `json:"states" yaml:"states" mapstructure:"states"`
	InputAlphabet []Symbol     `json:"input_alphabet" yaml:"input_alphabet" mapstructure:"input_alphabet"`
	TapeAlphabet  []Symbol     `json:"tape_alphabet" yaml:"tape_alphabet" mapstructure:"tape_alphabet"`
	Start         string       `json:"start" yaml:"start" mapstructure:"start"`
	Accept        string       `json:"accept" yaml:"accept" mapstructure:"accept"`
	Reject        string       `json:"reject" yaml:"reject" mapstructure:"reject"`
	Transitions   []Transition `json:"transitions" yaml:"transitions" mapstructure:"transitions"`
}

// Machine is an immutable nondeterministic Turing machine.
// It is safe for concurrent use by any number of simulations.
type Machine struct {
	def         Definition
	inputSet    map[Symbol]struct{}
	stateSet    map[string]struct{}
	transitions map[TransitionKey][]Outcome
}

// NewMachine freezes a definition. It does not validate it; see internal/validator.
// Rows sharing a (state, read) key keep their declaration order.
func NewMachine(def Definition) *Machine {
	m := &Machine{
		def:         cloneDefinition(def),
		inputSet:    make(map[Symbol]struct{}, len(def.InputAlphabet)),
		stateSet:    make(map[string]struct{}, len(def.States)),
		transitions: make(map[TransitionKey][]Outcome),
	}
	for _, s := range def.InputAlphabet {
		m.inputSet[s] = struct{}{}
	}
	for _, s := range def.States {
		m.stateSet[s] = struct{}{}
	}
	for _, t := range def.Transitions {
		m.transitions[t.Key()] = append(m.transitions[t.Key()], t.Outcome())
	}
	return m
}

// Name returns the machine label (first line of a CSV description).
func (m *Machine) Name() string { return m.def.Name }

// Start returns the start state.
func (m *Machine) Start() string { return m.def.Start }

// Accept returns the accept state.
func (m *Machine) Accept() string { return m.def.Accept }

// Reject returns the reject state.
func (m *Machine) Reject() string { return m.def.Reject }

// IsStart reports whether state is the start state.
func (m *Machine) IsStart(state string) bool { return state == m.def.Start }

// IsAccept reports whether state is the accept state.
func (m *Machine) IsAccept(state string) bool { return state == m.def.Accept }

// IsReject reports whether state is the reject state.
func (m *Machine) IsReject(state string) bool { return state == m.def.Reject }

// HasState reports whether state was declared.
func (m *Machine) HasState(state string) bool {
	_, ok := m.stateSet[state]
	return ok
}

// AcceptsInput reports whether s may appear in an input string.
func (m *Machine) AcceptsInput(s Symbol) bool {
	if s == Blank {
		return true
	}
	_, ok := m.inputSet[s]
	return ok
}

// InputAlphabet returns a copy of the declared input alphabet.
func (m *Machine) InputAlphabet() []Symbol { return slices.Clone(m.def.InputAlphabet) }

// Outcomes returns the choices for (state, read) in declaration order.
// A missing entry yields an empty slice, which callers treat as a dead end.
func (m *Machine) Outcomes(state string, read Symbol) []Outcome {
	return slices.Clone(m.transitions[TransitionKey{State: state, Read: read}])
}

// Definition returns a copy of the definition the machine was built from.
func (m *Machine) Definition() Definition {
	return cloneDefinition(m.def)
}

func cloneDefinition(def Definition) Definition {
	def.States = slices.Clone(def.States)
	def.InputAlphabet = slices.Clone(def.InputAlphabet)
	def.TapeAlphabet = slices.Clone(def.TapeAlphabet)
	def.Transitions = slices.Clone(def.Transitions)
	return def
}
