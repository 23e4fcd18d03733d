package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/ludus/internal/presentation/graph"
	"github.com/aretw0/ludus/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func enter(r *graph.Recorder, state, from string) {
	r.Hooks().OnStateEnter(&domain.StateEvent{
		EventBase: domain.EventBase{Type: domain.EventStateEnter},
		State:     state,
		Peer:      from,
	})
}

func TestRecorder_Snapshot(t *testing.T) {
	r := graph.NewRecorder()
	enter(r, "MenuState", "")
	enter(r, "GameplayState", "MenuState")
	enter(r, "MenuState", "GameplayState")
	enter(r, "GameplayState", "MenuState")

	s := r.Snapshot()
	assert.Equal(t, []string{"MenuState", "GameplayState"}, s.States)
	assert.Equal(t, "MenuState", s.Initial)
	assert.Equal(t, "GameplayState", s.Current)
	assert.Equal(t, []graph.Edge{
		{From: "MenuState", To: "GameplayState", Count: 2},
		{From: "GameplayState", To: "MenuState", Count: 1},
	}, s.Edges)
}

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		record   func(r *graph.Recorder)
		overlay  bool
		contains []string
		excludes []string
	}{
		{
			name:     "Empty",
			record:   func(*graph.Recorder) {},
			contains: []string{"stateDiagram-v2\n"},
			excludes: []string{"[*]"},
		},
		{
			name: "Initial State",
			record: func(r *graph.Recorder) {
				enter(r, "Menu", "")
			},
			contains: []string{"Menu: Menu", "[*] --> Menu"},
		},
		{
			name: "Edge Counts",
			record: func(r *graph.Recorder) {
				enter(r, "A", "")
				enter(r, "B", "A")
				enter(r, "A", "B")
				enter(r, "B", "A")
			},
			contains: []string{"A --> B: x2", "B --> A\n"},
		},
		{
			name: "ID Sanitization",
			record: func(r *graph.Recorder) {
				enter(r, "pkg.State-One", "")
			},
			contains: []string{"pkg_State_One: pkg.State-One"},
		},
		{
			name: "Overlay",
			record: func(r *graph.Recorder) {
				enter(r, "A", "")
				enter(r, "B", "A")
			},
			overlay:  true,
			contains: []string{"class A visited", "class B current"},
			excludes: []string{"class B visited"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := graph.NewRecorder()
			tt.record(r)

			var out string
			if tt.overlay {
				out = graph.Diagram(r.Snapshot())
			} else {
				out = graph.GenerateMermaid(r.Snapshot(), nil)
			}
			for _, want := range tt.contains {
				assert.True(t, strings.Contains(out, want), "expected %q in:\n%s", want, out)
			}
			for _, unwanted := range tt.excludes {
				assert.False(t, strings.Contains(out, unwanted), "unexpected %q in:\n%s", unwanted, out)
			}
		})
	}
}
