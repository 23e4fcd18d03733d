/*
Package command implements the command queue pattern on top of cooperative routines.

A Command produces a routine.Routine when executed. The Queue holds pending
commands in FIFO order and, once Run is called, drains them one at a time as
the host calls Tick. A command leaves the pending list the moment it begins;
the queue suspends for one tick between commands. When the list is empty
(including commands enqueued mid-drain) and the optional completion delay has
elapsed, persistent observers are notified first, then the one-shot callback
passed to Run.

# Usage

	q := command.NewQueue(command.WithLogger(logger))
	_ = q.Enqueue(command.Func("greet", func() routine.Routine {
		return routine.Do(func() { fmt.Println("hello") })
	}))
	_ = q.Run(func(res command.Result) { fmt.Println("done", res.Executed) })

	for q.Draining() {
		q.Tick(16 * time.Millisecond)
	}

Overlapping drains are rejected with domain.ErrQueueBusy.
*/
package command
