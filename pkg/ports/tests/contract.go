package tests

import (
	"context"
	"testing"

	"github.com/aretw0/tracetm/pkg/domain"
	"github.com/aretw0/tracetm/pkg/ports"
)

// MachineLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.MachineLoader.
// expected maps each machine name the loader must serve to its definition.
func MachineLoaderContractTest(t *testing.T, loader ports.MachineLoader, expected map[string]domain.Definition) {
	t.Helper()
	ctx := context.Background()

	t.Run("Load_Success", func(t *testing.T) {
		for name, want := range expected {
			got, err := loader.Load(ctx, name)
			if err != nil {
				t.Fatalf("unexpected error loading machine %s: %v", name, err)
			}
			if got.Start != want.Start || got.Accept != want.Accept || got.Reject != want.Reject {
				t.Errorf("terminal states mismatch for %s. got %s/%s/%s, want %s/%s/%s",
					name, got.Start, got.Accept, got.Reject, want.Start, want.Accept, want.Reject)
			}
			if len(got.Transitions) != len(want.Transitions) {
				t.Errorf("transition count mismatch for %s. got %d, want %d", name, len(got.Transitions), len(want.Transitions))
			}
		}
	})

	t.Run("Load_NotFound", func(t *testing.T) {
		_, err := loader.Load(ctx, "non-existent-machine")
		if err == nil {
			t.Error("expected error for non-existent machine, got nil")
		}
	})

	t.Run("List", func(t *testing.T) {
		names, err := loader.List(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing machines: %v", err)
		}
		found := make(map[string]bool, len(names))
		for _, n := range names {
			found[n] = true
		}
		for name := range expected {
			if !found[name] {
				t.Errorf("List() missing machine %s", name)
			}
		}
	})
}
