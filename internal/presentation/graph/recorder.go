package graph

import (
	"slices"
	"sync"

	"github.com/aretw0/ludus/pkg/domain"
)

// Edge is an observed transition between two states.
type Edge struct {
	From  string
	To    string
	Count int
}

// Snapshot is a copy of what a Recorder observed.
type Snapshot struct {
	States  []string
	Edges   []Edge
	Initial string
	Current string
	Visited []string
}

// Recorder builds a transition graph from state machine hooks.
// It is safe to read from other goroutines while the machine runs.
type Recorder struct {
	mu      sync.RWMutex
	states  []string
	known   map[string]bool
	edges   map[[2]string]int
	order   [][2]string
	initial string
	current string
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		known: make(map[string]bool),
		edges: make(map[[2]string]int),
	}
}

// Hooks returns the hooks that feed r.
func (r *Recorder) Hooks() domain.Hooks {
	return domain.Hooks{OnStateEnter: r.record}
}

func (r *Recorder) record(e *domain.StateEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.visit(e.State)
	r.current = e.State
	if e.Peer == "" {
		if r.initial == "" {
			r.initial = e.State
		}
		return
	}
	r.visit(e.Peer)
	key := [2]string{e.Peer, e.State}
	if _, ok := r.edges[key]; !ok {
		r.order = append(r.order, key)
	}
	r.edges[key]++
}

func (r *Recorder) visit(state string) {
	if !r.known[state] {
		r.known[state] = true
		r.states = append(r.states, state)
	}
}

// Snapshot copies the observed graph. States and edges keep their
// discovery order.
func (r *Recorder) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := Snapshot{
		States:  slices.Clone(r.states),
		Initial: r.initial,
		Current: r.current,
		Visited: slices.Clone(r.states),
	}
	for _, key := range r.order {
		s.Edges = append(s.Edges, Edge{From: key[0], To: key[1], Count: r.edges[key]})
	}
	return s
}
