package runner_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/tracetm"
	"github.com/aretw0/tracetm/internal/testutils"
	"github.com/aretw0/tracetm/pkg/adapters/memory"
	"github.com/aretw0/tracetm/pkg/domain"
	"github.com/aretw0/tracetm/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T, def domain.Definition) *tracetm.Engine {
	t.Helper()
	eng, err := tracetm.New("", tracetm.WithDefinition(def))
	require.NoError(t, err)
	return eng
}

func TestRunner_ResultsInInputOrder(t *testing.T) {
	eng := newEngine(t, testutils.ContainsOneOne())
	inputs := []string{"0110", "0101", "_", "11", "012"}

	results, err := runner.NewRunner(eng, runner.WithParallelism(3)).Run(context.Background(), inputs, 20)
	require.NoError(t, err)
	require.Len(t, results, len(inputs))

	for i, res := range results {
		assert.Equal(t, i, res.Index)
		assert.Equal(t, inputs[i], res.Input)
	}
	assert.Equal(t, domain.VerdictAccepted, results[0].Verdict.Kind)
	assert.Equal(t, domain.VerdictRejected, results[1].Verdict.Kind)
	assert.Equal(t, domain.VerdictRejected, results[2].Verdict.Kind)
	assert.Equal(t, domain.VerdictAccepted, results[3].Verdict.Kind)

	assert.Nil(t, results[4].Verdict)
	assert.ErrorIs(t, results[4].Err, domain.ErrInvalidInputSymbol)
	assert.Equal(t, "2 not found in alphabet: ['0', '1']", results[4].Error)
}

func TestRunner_ForeignCharactersAreInvalidSymbols(t *testing.T) {
	eng := newEngine(t, testutils.ContainsOneOne())
	inputs := []string{"1\t1", " 11", "11\n", "1\x001"}
	offending := []domain.Symbol{"\t", " ", "\n", "\x00"}

	results, err := runner.NewRunner(eng).Run(context.Background(), inputs, 20)
	require.NoError(t, err)
	require.Len(t, results, len(inputs))

	for i, res := range results {
		assert.Nil(t, res.Verdict, "%q", inputs[i])
		assert.Equal(t, inputs[i], res.Input)

		var symErr *domain.InvalidSymbolError
		require.ErrorAs(t, res.Err, &symErr, "%q", inputs[i])
		assert.Equal(t, offending[i], symErr.Symbol)
	}
}

func TestRunner_ParallelMatchesSerial(t *testing.T) {
	eng := newEngine(t, testutils.ContainsOneOne())
	inputs := make([]string, 32)
	for i := range inputs {
		inputs[i] = strconv.FormatInt(int64(i), 2) + strings.Repeat("0", i%3)
	}

	serial, err := runner.NewRunner(eng, runner.WithParallelism(1)).Run(context.Background(), inputs, 12)
	require.NoError(t, err)
	parallel, err := runner.NewRunner(eng, runner.WithParallelism(8)).Run(context.Background(), inputs, 12)
	require.NoError(t, err)

	assert.Equal(t, serial, parallel)
}

func TestRunner_PersistsRecords(t *testing.T) {
	store := memory.NewStore()
	eng := newEngine(t, testutils.UnaryScan())

	var n atomic.Int32
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	r := runner.NewRunner(eng,
		runner.WithStore(store),
		runner.WithIDGenerator(func() string { return fmt.Sprintf("run-%d", n.Add(1)) }),
		runner.WithClock(func() time.Time { return fixed }),
	)

	results, err := r.Run(context.Background(), []string{"11", "1x"}, 10)
	require.NoError(t, err)

	ids, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, ids, 2)

	for _, res := range results {
		require.NotEmpty(t, res.RunID)
		rec, err := store.Load(context.Background(), res.RunID)
		require.NoError(t, err)
		assert.Equal(t, "unary_scan", rec.Machine)
		assert.Equal(t, res.Input, rec.Input)
		assert.Equal(t, 10, rec.MaxSteps)
		assert.True(t, fixed.Equal(rec.CreatedAt))
		assert.Equal(t, res.Error, rec.Error)
		if res.Verdict != nil {
			assert.Equal(t, res.Verdict.Kind, rec.Verdict.Kind)
		} else {
			assert.Nil(t, rec.Verdict)
		}
	}
}

type failingStore struct{ memory.Store }

func (f *failingStore) Save(ctx context.Context, r *domain.RunRecord) error {
	return errors.New("disk full")
}

func TestRunner_StoreFailureAborts(t *testing.T) {
	eng := newEngine(t, testutils.UnaryScan())
	_, err := runner.NewRunner(eng, runner.WithStore(&failingStore{})).Run(context.Background(), []string{"1"}, 5)
	assert.ErrorContains(t, err, "disk full")
}

func TestRunner_NegativeBoundAborts(t *testing.T) {
	eng := newEngine(t, testutils.UnaryScan())
	_, err := runner.NewRunner(eng).Run(context.Background(), []string{"1"}, -1)
	assert.ErrorIs(t, err, domain.ErrNegativeStepBound)
}

func TestRunner_Cancelled(t *testing.T) {
	eng := newEngine(t, testutils.PingPong())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.NewRunner(eng).Run(ctx, []string{"a"}, 100)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunner_Handlers(t *testing.T) {
	eng := newEngine(t, testutils.UnaryScan())

	var text, lines bytes.Buffer
	h := runner.MultiHandler(runner.NewTextHandler(&text), runner.NewJSONHandler(&lines))

	_, err := runner.NewRunner(eng, runner.WithHandler(h)).Run(context.Background(), []string{"1", "2"}, 10)
	require.NoError(t, err)

	assert.Equal(t,
		"\nprocessing input string: '1'\n"+
			"string accepted in 2 steps.\n"+
			"tree: [[[_, q0, 1]], [[_1, q0, _]], [[_1_, qA, _]]]\n"+
			"degree of nondeterminism: 1.00\n"+
			"\nprocessing input string: '2'\n"+
			"error: 2 not found in alphabet: ['1']\n",
		text.String())

	dec := json.NewDecoder(&lines)
	var first, second map[string]any
	require.NoError(t, dec.Decode(&first))
	require.NoError(t, dec.Decode(&second))
	assert.Equal(t, "1", first["input"])
	assert.Equal(t, "accepted", first["verdict"].(map[string]any)["kind"])
	assert.Equal(t, "2 not found in alphabet: ['1']", second["error"])
	assert.NotContains(t, second, "verdict")
}
