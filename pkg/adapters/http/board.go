package http

import (
	"sync"
	"time"

	"github.com/aretw0/ludus"
)

// Status is the JSON body of GET /state.
type Status struct {
	State    string `json:"state"`
	Pending  int    `json:"pending"`
	Draining bool   `json:"draining"`
	Frames   uint64 `json:"frames"`
	Routines int    `json:"routines"`
}

// Board copies the host status on every tick so HTTP handlers can read it
// without touching the loop. Attach it to the host after the state machine.
type Board struct {
	host    *ludus.Host
	state   func() string
	diagram func() string

	mu     sync.RWMutex
	status Status
}

// NewBoard reads the active state name with state and the transition diagram
// with diagram. Either may be nil. diagram is called from HTTP goroutines.
func NewBoard(host *ludus.Host, state, diagram func() string) *Board {
	return &Board{host: host, state: state, diagram: diagram}
}

func (b *Board) Tick(time.Duration) {
	s := Status{
		Pending:  b.host.Queue().Len(),
		Draining: b.host.Queue().Draining(),
		Frames:   b.host.Driver().Frames(),
		Routines: b.host.Routines().Len(),
	}
	if b.state != nil {
		s.State = b.state()
	}

	b.mu.Lock()
	b.status = s
	b.mu.Unlock()
}

// Status returns the status copied on the last tick.
func (b *Board) Status() Status {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.status
}

// Diagram returns the mermaid diagram of observed transitions.
func (b *Board) Diagram() string {
	if b.diagram == nil {
		return ""
	}
	return b.diagram()
}
