package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/tracetm/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunRunStoreContract runs a suite of tests to verify that a RunStore implementation
// adheres to the defined interface contract.
func RunRunStoreContract(t *testing.T, store RunStore) {
	ctx := context.Background()
	prefix := "contract-run-" + time.Now().Format("20060102150405")

	newRecord := func(id string) *domain.RunRecord {
		return &domain.RunRecord{
			ID:       id,
			Machine:  "unary_scan",
			Input:    "111",
			MaxSteps: 10,
			Verdict: &domain.Verdict{
				Kind:     domain.VerdictAccepted,
				Steps:    1,
				MaxSteps: 10,
				Tree: domain.Tree{
					{{Left: []domain.Symbol{domain.Blank}, State: "q0", Right: []domain.Symbol{"1"}}},
					{{Left: []domain.Symbol{"1"}, State: "qA", Right: []domain.Symbol{domain.Blank}}},
				},
				Nondeterminism: 1,
			},
			CreatedAt: time.Now().UTC().Truncate(time.Second),
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		id := prefix + "-save"
		record := newRecord(id)

		err := store.Save(ctx, record)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, record.Machine, loaded.Machine)
		assert.Equal(t, record.Input, loaded.Input)
		assert.Equal(t, record.MaxSteps, loaded.MaxSteps)
		assert.True(t, record.CreatedAt.Equal(loaded.CreatedAt))
		require.NotNil(t, loaded.Verdict)
		assert.Equal(t, record.Verdict.Kind, loaded.Verdict.Kind)
		assert.Equal(t, record.Verdict.Tree, loaded.Verdict.Tree)
	})

	t.Run("Save error record", func(t *testing.T) {
		id := prefix + "-error"
		record := newRecord(id)
		record.Verdict = nil
		record.Error = "2 not found in alphabet: ['1']"

		require.NoError(t, store.Save(ctx, record))
		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, loaded.Verdict)
		assert.Equal(t, record.Error, loaded.Error)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+prefix)
		assert.ErrorIs(t, err, domain.ErrRunNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		id := prefix + "-delete"
		require.NoError(t, store.Save(ctx, newRecord(id)))

		err := store.Delete(ctx, id)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, id)
		assert.ErrorIs(t, err, domain.ErrRunNotFound, "Load after Delete should return ErrRunNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := prefix + "-1"
		id2 := prefix + "-2"
		_ = store.Save(ctx, newRecord(id1))
		_ = store.Save(ctx, newRecord(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
