package domain

import "strings"

// Level holds every live configuration first reached after the same number of steps.
type Level []Configuration

// Tree is the ordered sequence of levels produced by breadth-first exploration.
// Level 0 is the initial configuration.
type Tree []Level

// Depth returns the index of the last level, or -1 for an empty tree.
func (t Tree) Depth() int {
	return len(t) - 1
}

// Size returns the number of configurations across all levels.
func (t Tree) Size() int {
	n := 0
	for _, level := range t {
		n += len(level)
	}
	return n
}

// Nondeterminism is the average number of configurations per level.
// Levels that died out count as zero.
func (t Tree) Nondeterminism() float64 {
	if len(t) == 0 {
		return 0
	}
	return float64(t.Size()) / float64(len(t))
}

// String renders the tree as nested lists of configurations.
func (t Tree) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, level := range t {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("[")
		for j, c := range level {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(c.String())
		}
		sb.WriteString("]")
	}
	sb.WriteString("]")
	return sb.String()
}
