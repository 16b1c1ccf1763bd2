/*
Package tracetm simulates nondeterministic Turing machines and traces every branch of
their computation.

Given a machine definition, an input string and a step bound, the engine explores the
tree of machine configurations breadth-first. Each level holds the configurations first
reached after the same number of steps; configurations already seen in the run are never
expanded again. The run ends with one of three verdicts:

  - accepted: some configuration reached the accept state.
  - rejected: every branch died out (reject state or no applicable transition).
  - step_limit_exceeded: the bound ran out first.

Each verdict carries the configuration tree and its degree of nondeterminism, the average
number of configurations per level.

# Usage

	eng, err := tracetm.New("machines/contains_11.csv")
	if err != nil {
		log.Fatal(err)
	}

	verdict, err := eng.Simulate(context.Background(), "0110", 50)
	if err != nil {
		// *domain.InvalidSymbolError when the input uses symbols outside the alphabet
		log.Fatal(err)
	}
	fmt.Println(verdict.Kind, verdict.Steps, verdict.Nondeterminism)

Machine files may be CSV (the classic line-oriented format), YAML or JSON; see
package pkg/adapters/file. Use WithLoader or WithDefinition to supply machines from
elsewhere.
*/
package tracetm
