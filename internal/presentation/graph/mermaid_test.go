package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/tracetm/internal/presentation/graph"
	"github.com/aretw0/tracetm/internal/testutils"
	"github.com/aretw0/tracetm/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		def      domain.Definition
		contains []string
	}{
		{
			name: "State Shapes",
			def:  testutils.UnaryScan(),
			contains: []string{
				"graph LR\n",
				`q0(("q0"))`,
				`qA((("qA")))`,
				`qR{{"qR"}}`,
				`q1["q1"]`,
			},
		},
		{
			name: "Edge Labels",
			def:  testutils.UnaryScan(),
			contains: []string{
				`q0 -- "1/1,R" --> q0`,
				`q0 -- "_/_,R" --> qA`,
			},
		},
		{
			name: "Parallel Transitions Share An Edge",
			def:  testutils.Doubler(),
			contains: []string{
				`q0 -- "_/_,R<br/>_/1,R" --> q0`,
			},
		},
		{
			name: "ID Sanitization",
			def: domain.Definition{
				States: []string{"scan-left", "q.done"},
				Start:  "scan-left",
			},
			contains: []string{
				`scan_left(("scan-left"))`,
				`q_done["q.done"]`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.def, nil)
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
		})
	}
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	v := &domain.Verdict{
		Kind: domain.VerdictAccepted,
		Tree: domain.Tree{
			{{State: "q0"}},
			{{State: "q0"}, {State: "q1"}},
			{{State: "qA"}},
		},
	}

	got := graph.GenerateMermaid(testutils.ContainsOneOne(), graph.OverlayFromVerdict(v))

	assert.Contains(t, got, "classDef visited")
	assert.Equal(t, 1, strings.Count(got, "class q0 visited;"))
	assert.Contains(t, got, "class q1 visited;")
	assert.Contains(t, got, "class qA current;")
	assert.NotContains(t, got, "class q2")
}

func TestOverlayFromVerdict_Nil(t *testing.T) {
	overlay := graph.OverlayFromVerdict(nil)
	assert.Empty(t, overlay.VisitedStates)
	assert.Empty(t, overlay.CurrentStates)
}
