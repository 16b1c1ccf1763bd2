/*
Package dsl provides a fluent Go builder for machine definitions.

It is an alternative to CSV/YAML/JSON machine files when a machine is generated
programmatically or declared inline in tests. States are declared implicitly the first
time they are mentioned; the tape alphabet always contains the input alphabet and the
blank symbol.

Example usage:

	b := dsl.New("contains_11").
		Input("0", "1").
		Start("q0").Accept("qA").Reject("qR")

	b.From("q0").
		On("0").Right().Go("q0").
		On("1").Right().Go("q0").
		On("1").Right().Go("q1").
		On("_").Right().Go("qR")

	b.From("q1").
		On("1").Right().Go("qA")

	def, err := b.Build() // validated domain.Definition
	eng, err := tracetm.New("", tracetm.WithDefinition(def))
*/
package dsl
