package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/tracetm/pkg/domain"
)

// GraphOverlay contains run data to visualize on the graph.
type GraphOverlay struct {
	VisitedStates []string
	CurrentStates []string
}

// OverlayFromVerdict marks every state present in the tree as visited and the states
// of the deciding (last) level as current.
func OverlayFromVerdict(v *domain.Verdict) *GraphOverlay {
	overlay := &GraphOverlay{}
	if v == nil {
		return overlay
	}
	for _, level := range v.Tree {
		for _, c := range level {
			overlay.VisitedStates = append(overlay.VisitedStates, c.State)
		}
	}
	if n := len(v.Tree); n > 0 {
		for _, c := range v.Tree[n-1] {
			overlay.CurrentStates = append(overlay.CurrentStates, c.State)
		}
	}
	return overlay
}

// GenerateMermaid produces a Mermaid flowchart of the transition relation.
// It applies semantic styling:
// - Start: ((Circle))
// - Accept: (((Double circle)))
// - Reject: {{Hexagon}}
// - Default: [Rectangle]
// Parallel transitions between the same pair of states share one edge whose label lists
// every read/write,move triple in declaration order.
func GenerateMermaid(def domain.Definition, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, state := range def.States {
		safeID := sanitizeMermaidID(state)

		opener, closer := "[", "]"
		switch state {
		case def.Accept:
			opener, closer = "(((", ")))"
		case def.Reject:
			opener, closer = "{{", "}}"
		case def.Start:
			opener, closer = "((", "))"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, state, closer))
	}

	type edge struct{ from, to string }
	var order []edge
	labels := make(map[edge][]string)
	for _, t := range def.Transitions {
		e := edge{t.From, t.Next}
		if _, seen := labels[e]; !seen {
			order = append(order, e)
		}
		labels[e] = append(labels[e], fmt.Sprintf("%s/%s,%s", t.Read, t.Write, t.Move))
	}
	for _, e := range order {
		label := strings.ReplaceAll(strings.Join(labels[e], "<br/>"), "\"", "'")
		sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", sanitizeMermaidID(e.from), label, sanitizeMermaidID(e.to)))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		writeClass(&sb, overlay.VisitedStates, "visited")
		writeClass(&sb, overlay.CurrentStates, "current")
	}

	return sb.String()
}

func writeClass(sb *strings.Builder, states []string, class string) {
	seen := make(map[string]bool)
	for _, state := range states {
		safeID := sanitizeMermaidID(state)
		if safeID == "" || seen[safeID] {
			continue
		}
		seen[safeID] = true
		sb.WriteString(fmt.Sprintf("    class %s %s;\n", safeID, class))
	}
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
