/*
Package runner drives a Simulator over a batch of input strings.

Inputs are simulated concurrently (bounded by WithParallelism), optionally persisted as
domain.RunRecord values in a ports.RunStore, and then handed to a Handler in input order,
so the output of a batch does not depend on scheduling.

Per-input problems (an input symbol outside the alphabet, an oversized input) are
reported on the Result and do not stop the batch. Context cancellation and store
failures abort it.

# Usage

	r := runner.NewRunner(engine,
		runner.WithStore(store),
		runner.WithHandler(runner.NewTextHandler(os.Stdout)),
	)

	results, err := r.Run(ctx, []string{"0110", "_"}, 50)
*/
package runner
