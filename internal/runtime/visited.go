package runtime

import "github.com/aretw0/tracetm/pkg/domain"

// visitedSet records every configuration key seen during one simulation.
// It is owned by a single Simulate call and never shared.
type visitedSet struct {
	keys map[string]struct{}
}

func newVisitedSet() *visitedSet {
	return &visitedSet{keys: make(map[string]struct{})}
}

// add reports whether c was new.
func (v *visitedSet) add(c domain.Configuration) bool {
	k := c.Key()
	if _, ok := v.keys[k]; ok {
		return false
	}
	v.keys[k] = struct{}{}
	return true
}

func (v *visitedSet) len() int {
	return len(v.keys)
}
