/*
Package fsm implements a generic state machine bound to an owning context.

A Machine[T] holds at most one active State[T]. Transitions are immediate and
unconditional: the outgoing state is fully exited before the incoming state is
entered, and the current-state slot is reassigned in between, so a tick never
observes two active states.

States are usually built fresh for each transition:

	menu, err := fsm.TransitionTo[MenuState](machine)

or a previously suspended instance is reused to resume with its data intact:

	err := machine.Transition(paused)

Embed BaseState[T] to get no-op hooks and the Manager back-reference.
*/
package fsm
