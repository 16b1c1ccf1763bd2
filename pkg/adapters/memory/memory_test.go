package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/tracetm/internal/testutils"
	"github.com/aretw0/tracetm/pkg/adapters/memory"
	"github.com/aretw0/tracetm/pkg/domain"
	"github.com/aretw0/tracetm/pkg/ports"
	"github.com/aretw0/tracetm/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunRunStoreContract(t, memory.NewStore())
}

func TestMemoryStore_Isolation(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	record := &domain.RunRecord{
		ID:      "run-1",
		Verdict: &domain.Verdict{Kind: domain.VerdictRejected, Tree: domain.Tree{{{State: "q0"}}}},
	}
	require.NoError(t, store.Save(ctx, record))

	record.Verdict.Tree[0][0].State = "mutated"

	loaded, err := store.Load(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "q0", loaded.Verdict.Tree[0][0].State)
}

func TestMemoryLoader_Contract(t *testing.T) {
	scan := testutils.UnaryScan()
	guess := testutils.ContainsOneOne()

	loader, err := memory.NewFromDefinitions(scan, guess)
	require.NoError(t, err)

	tests.MachineLoaderContractTest(t, loader, map[string]domain.Definition{
		scan.Name:  scan,
		guess.Name: guess,
	})
}

func TestMemoryLoader_RawDocuments(t *testing.T) {
	loader := memory.NewLoader(map[string]string{
		"tiny": `{"states":["a","y","n"],"start":"a","accept":"y","reject":"n",
			"transitions":[{"from":"a","read":"_","next":"y","write":"_","move":"R"}]}`,
		"broken": `{`,
	})
	ctx := context.Background()

	def, err := loader.Load(ctx, "tiny")
	require.NoError(t, err)
	assert.Equal(t, "tiny", def.Name, "name defaults to the key")
	assert.Equal(t, domain.Right, def.Transitions[0].Move)

	_, err = loader.Load(ctx, "broken")
	assert.Error(t, err)

	_, err = loader.Load(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrMachineNotFound)

	names, err := loader.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"broken", "tiny"}, names)
}

func TestMemoryLoader_RejectsNameless(t *testing.T) {
	_, err := memory.NewFromDefinitions(domain.Definition{})
	assert.Error(t, err)
}
