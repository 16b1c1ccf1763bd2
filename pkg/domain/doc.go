/*
Package domain contains the core domain models of the tracetm simulator.

It defines the immutable description of a nondeterministic Turing machine and the
values produced while exploring it. This package is kept pure and free of external
dependencies like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Machine: the definition (states, alphabets, start/accept/reject, transition relation).
  - Configuration: a snapshot of tape contents, head position and current state.
  - Tree: the levels of configurations reached by breadth-first exploration.
  - Verdict: the outcome of one simulation (accepted, rejected or step limit exceeded).
  - RunRecord: a persisted verdict together with the arguments that produced it.
*/
package domain
