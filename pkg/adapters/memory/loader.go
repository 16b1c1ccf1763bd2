package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/aretw0/tracetm/pkg/domain"
)

// Loader implements ports.MachineLoader using an in-memory map.
type Loader struct {
	machines map[string][]byte
}

// NewLoader creates a new Loader with the provided raw data (JSON documents).
func NewLoader(data map[string]string) *Loader {
	machines := make(map[string][]byte)
	for k, v := range data {
		machines[k] = []byte(v)
	}
	return &Loader{
		machines: machines,
	}
}

// NewFromDefinitions creates a new Loader from domain objects, keyed by Definition.Name.
func NewFromDefinitions(defs ...domain.Definition) (*Loader, error) {
	data := make(map[string][]byte)
	for _, d := range defs {
		if d.Name == "" {
			return nil, fmt.Errorf("machine missing name")
		}
		bytes, err := json.Marshal(d)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal machine %s: %w", d.Name, err)
		}
		data[d.Name] = bytes
	}
	return &Loader{machines: data}, nil
}

// Load decodes the stored document for name.
func (l *Loader) Load(ctx context.Context, name string) (*domain.Definition, error) {
	content, ok := l.machines[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrMachineNotFound, name)
	}
	var def domain.Definition
	if err := json.Unmarshal(content, &def); err != nil {
		return nil, fmt.Errorf("failed to decode machine %s: %w", name, err)
	}
	if def.Name == "" {
		def.Name = name
	}
	return &def, nil
}

// List returns all available machine names.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	keys := make([]string, 0, len(l.machines))
	for k := range l.machines {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}
