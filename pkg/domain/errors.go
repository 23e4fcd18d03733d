package domain

import "errors"

// ErrNilContext is returned when a state machine is created without an owning context.
var ErrNilContext = errors.New("nil context")

// ErrNilState is returned when a transition targets a nil state.
var ErrNilState = errors.New("nil state")

// ErrNilCommand is returned when a nil command is enqueued.
var ErrNilCommand = errors.New("nil command")

// ErrQueueBusy is returned when Run is called while a drain is already in progress.
var ErrQueueBusy = errors.New("command queue is already draining")

// ErrQueueFull is returned when a bounded queue has reached its capacity.
var ErrQueueFull = errors.New("command queue is full")

// ErrUnknownCommand is returned when a command name is not registered.
var ErrUnknownCommand = errors.New("unknown command")

// ErrPoolMissing is returned when no pool was registered for a type.
var ErrPoolMissing = errors.New("pool not created for type")

// ErrAlreadyClaimed is returned when a singleton slot already holds an instance.
var ErrAlreadyClaimed = errors.New("singleton already claimed")

// ErrDriverRunning is returned when Run is called on a driver that is already running.
var ErrDriverRunning = errors.New("driver already running")

// ErrTransitionInProgress is returned when a state machine is asked to
// transition from inside an Enter, Exit or transition hook.
var ErrTransitionInProgress = errors.New("transition already in progress")
