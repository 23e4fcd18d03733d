package fsm

import (
	"testing"
	"time"

	"github.com/aretw0/ludus/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	log []string
}

type recState struct {
	BaseState[*recorder]
	name  string
	ticks int
}

func (s *recState) Name() string { return s.name }

func (s *recState) Enter(ctx *recorder) {
	s.BaseState.Enter(ctx)
	ctx.log = append(ctx.log, s.name+".enter")
}

func (s *recState) Tick(time.Duration) {
	s.ticks++
	s.Manager.log = append(s.Manager.log, s.name+".tick")
}

func (s *recState) Exit() {
	s.Manager.log = append(s.Manager.log, s.name+".exit")
}

// idleState only relies on BaseState.
type idleState struct {
	BaseState[*recorder]
	seed int
}

func TestMachine_TickWithoutStateIsNoop(t *testing.T) {
	m, err := NewMachine(&recorder{})
	require.NoError(t, err)

	assert.NotPanics(t, func() { m.Tick(time.Millisecond) })
	assert.Nil(t, m.Current())
	assert.Equal(t, "", m.CurrentName())
}

func TestMachine_ExitBeforeEnter(t *testing.T) {
	rec := &recorder{}
	m, err := NewMachine(rec)
	require.NoError(t, err)

	a := &recState{name: "A"}
	b := &recState{name: "B"}

	require.NoError(t, m.Transition(a))
	require.NoError(t, m.Transition(b))
	require.NoError(t, m.Transition(a))

	assert.Equal(t, []string{"A.enter", "A.exit", "B.enter", "B.exit", "A.enter"}, rec.log)
	assert.Same(t, a, m.Current())
	assert.Same(t, b, m.Previous())
}

func TestMachine_TickForwardsToCurrent(t *testing.T) {
	rec := &recorder{}
	m, err := NewMachine(rec)
	require.NoError(t, err)

	a := &recState{name: "A"}
	require.NoError(t, m.Transition(a))
	m.Tick(time.Millisecond)
	m.Tick(time.Millisecond)

	assert.Equal(t, 2, a.ticks)
}

func TestMachine_ResumeKeepsStateData(t *testing.T) {
	rec := &recorder{}
	m, err := NewMachine(rec)
	require.NoError(t, err)

	a := &recState{name: "A"}
	require.NoError(t, m.Transition(a))
	m.Tick(time.Millisecond)

	require.NoError(t, m.Transition(&recState{name: "B"}))
	require.NoError(t, m.Transition(a))
	m.Tick(time.Millisecond)

	assert.Equal(t, 2, a.ticks)
}

func TestTransitionTo_BuildsFreshState(t *testing.T) {
	rec := &recorder{}
	m, err := NewMachine(rec)
	require.NoError(t, err)

	first, err := TransitionTo[idleState](m)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Same(t, rec, first.Manager, "Enter stores the context")

	first.seed = 42

	second, err := TransitionTo[idleState](m)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, 0, second.seed)
	assert.Same(t, first, m.Previous())
}

func TestMachine_NilStateRejected(t *testing.T) {
	rec := &recorder{}
	m, err := NewMachine(rec)
	require.NoError(t, err)

	a := &recState{name: "A"}
	require.NoError(t, m.Transition(a))

	err = m.Transition(nil)
	assert.ErrorIs(t, err, domain.ErrNilState)

	var typedNil *recState
	err = m.Transition(typedNil)
	assert.ErrorIs(t, err, domain.ErrNilState)

	assert.Same(t, a, m.Current(), "machine unchanged after a rejected transition")
	assert.Equal(t, []string{"A.enter"}, rec.log)
}

func TestNewMachine_NilContext(t *testing.T) {
	_, err := NewMachine[*recorder](nil)
	assert.ErrorIs(t, err, domain.ErrNilContext)
}

func TestMachine_Hooks(t *testing.T) {
	var events []string
	hooks := domain.Hooks{
		OnStateEnter: func(e *domain.StateEvent) { events = append(events, "enter:"+e.State+"<-"+e.Peer) },
		OnStateExit:  func(e *domain.StateEvent) { events = append(events, "exit:"+e.State+"->"+e.Peer) },
	}
	m, err := NewMachine(&recorder{}, WithHooks(hooks))
	require.NoError(t, err)

	require.NoError(t, m.Transition(&recState{name: "A"}))
	require.NoError(t, m.Transition(&recState{name: "B"}))

	assert.Equal(t, []string{"enter:A<-", "exit:A->B", "enter:B<-A"}, events)
}

// A state that transitions from its own Tick: the old state is exited and
// the new one entered before Tick returns.
type hopState struct {
	BaseState[*recorder]
	machine *Machine[*recorder]
}

func (h *hopState) Tick(time.Duration) {
	_, _ = TransitionTo[idleState](h.machine)
}

func (h *hopState) Exit() {
	h.Manager.log = append(h.Manager.log, "hop.exit")
}

func TestMachine_TransitionFromTick(t *testing.T) {
	rec := &recorder{}
	m, err := NewMachine(rec)
	require.NoError(t, err)

	require.NoError(t, m.Transition(&hopState{machine: m}))
	m.Tick(time.Millisecond)

	assert.Equal(t, []string{"hop.exit"}, rec.log)
	assert.Equal(t, "idleState", m.CurrentName())
}

func TestStateName(t *testing.T) {
	assert.Equal(t, "A", StateName(&recState{name: "A"}))
	assert.Equal(t, "idleState", StateName(&idleState{}))
	assert.Equal(t, "", StateName(nil))
}

// exitHop tries to leave for another state from its own Exit.
type exitHop struct {
	BaseState[*recorder]
	machine *Machine[*recorder]
	err     error
}

func (h *exitHop) Exit() {
	h.err = h.machine.Transition(&recState{name: "C"})
}

func TestMachine_TransitionFromExitRejected(t *testing.T) {
	rec := &recorder{}
	m, err := NewMachine(rec)
	require.NoError(t, err)

	hop := &exitHop{machine: m}
	require.NoError(t, m.Transition(hop))
	require.NoError(t, m.Transition(&recState{name: "B"}))

	assert.ErrorIs(t, hop.err, domain.ErrTransitionInProgress)
	assert.Equal(t, "B", m.CurrentName())
	assert.Equal(t, []string{"B.enter"}, rec.log)
}

// enterHop tries to leave for another state from its own Enter.
type enterHop struct {
	BaseState[*recorder]
	machine *Machine[*recorder]
	err     error
}

func (h *enterHop) Enter(ctx *recorder) {
	h.BaseState.Enter(ctx)
	h.err = h.machine.Transition(&recState{name: "Y"})
}

func TestMachine_TransitionFromEnterRejected(t *testing.T) {
	var events []string
	hooks := domain.Hooks{
		OnStateEnter: func(e *domain.StateEvent) { events = append(events, "enter:"+e.State) },
		OnStateExit:  func(e *domain.StateEvent) { events = append(events, "exit:"+e.State) },
	}
	m, err := NewMachine(&recorder{}, WithHooks(hooks))
	require.NoError(t, err)

	hop := &enterHop{machine: m}
	require.NoError(t, m.Transition(hop))

	assert.ErrorIs(t, hop.err, domain.ErrTransitionInProgress)
	assert.Same(t, hop, m.Current())
	assert.Equal(t, []string{"enter:enterHop"}, events)

	// The guard is released once the transition returns.
	require.NoError(t, m.Transition(&recState{name: "Y"}))
	assert.Equal(t, []string{"enter:enterHop", "exit:enterHop", "enter:Y"}, events)
}

func TestMachine_TransitionFromHookRejected(t *testing.T) {
	var m *Machine[*recorder]
	var hookErr error
	hooks := domain.Hooks{
		OnStateEnter: func(e *domain.StateEvent) {
			if e.State == "A" {
				hookErr = m.Transition(&recState{name: "B"})
			}
		},
	}
	m, err := NewMachine(&recorder{}, WithHooks(hooks))
	require.NoError(t, err)

	require.NoError(t, m.Transition(&recState{name: "A"}))
	assert.ErrorIs(t, hookErr, domain.ErrTransitionInProgress)
	assert.Equal(t, "A", m.CurrentName())
}
