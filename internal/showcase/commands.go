package showcase

import (
	"log/slog"
	"time"

	"github.com/aretw0/ludus/pkg/bus"
	"github.com/aretw0/ludus/pkg/command"
	"github.com/aretw0/ludus/pkg/pool"
	"github.com/aretw0/ludus/pkg/registry"
	"github.com/aretw0/ludus/pkg/routine"
)

// CountChanged is published every time a CountCommand increments.
type CountChanged struct {
	Value int
}

// CountCommand waits Interval, increments Value and logs it, Steps times.
type CountCommand struct {
	Value    int
	Steps    int
	Interval time.Duration

	logger  *slog.Logger
	topic   *bus.Topic[CountChanged]
	release func()
}

// CountArgs are the configuration arguments of the count command.
type CountArgs struct {
	Value    int           `mapstructure:"value"`
	Steps    int           `mapstructure:"steps"`
	Interval time.Duration `mapstructure:"interval"`
}

// Defaults sets three one-second steps.
func (a *CountArgs) Defaults() {
	a.Steps = 3
	a.Interval = time.Second
}

func (c *CountCommand) Name() string { return "count" }

func (c *CountCommand) Execute() routine.Routine {
	steps := make([]routine.Routine, 0, 2*c.Steps)
	for range c.Steps {
		steps = append(steps, routine.Wait(c.Interval), routine.Do(c.increment))
	}
	return routine.Sequence(steps...)
}

// Finish returns a pooled command to its pool, whether it completed or failed.
// A command still pending when an aborted drain ends stays queued and is
// released once a later drain runs it.
func (c *CountCommand) Finish(error) {
	if c.release != nil {
		release := c.release
		c.release = nil
		release()
	}
}

func (c *CountCommand) increment() {
	c.Value++
	if c.logger != nil {
		c.logger.Info("count", "value", c.Value)
	}
	if c.topic != nil {
		c.topic.Publish(CountChanged{Value: c.Value})
	}
}

// OnAcquire implements pool.Poolable.
func (c *CountCommand) OnAcquire() {}

// OnRelease implements pool.Poolable.
func (c *CountCommand) OnRelease() {
	c.Value, c.Steps, c.Interval = 0, 0, 0
	c.release = nil
}

// Commands builds the demo commands. Count commands are recycled through a pool.
type Commands struct {
	logger *slog.Logger
	topic  *bus.Topic[CountChanged]
	counts *pool.Pool[*CountCommand]
}

// NewCommands registers the CountCommand pool in pools and the CountChanged
// topic in events.
func NewCommands(logger *slog.Logger, events *bus.Registry, pools *pool.Registry) *Commands {
	return &Commands{
		logger: logger,
		topic:  bus.For[CountChanged](events),
		counts: pool.Register(pools, func() *CountCommand { return &CountCommand{} }, 4,
			pool.WithLogger(logger)),
	}
}

// Count returns a pooled count command, released back to the pool when it finishes.
func (c *Commands) Count(args CountArgs) *CountCommand {
	cmd := c.counts.Get()
	cmd.Value, cmd.Steps, cmd.Interval = args.Value, args.Steps, args.Interval
	cmd.logger, cmd.topic = c.logger, c.topic
	cmd.release = func() { c.counts.Put(cmd) }
	return cmd
}

// WaitArgs are the arguments of the wait command.
type WaitArgs struct {
	Duration time.Duration `mapstructure:"duration"`
}

// LogArgs are the arguments of the log command.
type LogArgs struct {
	Message string `mapstructure:"message"`
}

// Register adds the count, wait and log factories to reg.
func (c *Commands) Register(reg *registry.Registry) {
	reg.Register("count", registry.Typed(func(a CountArgs) (command.Command, error) {
		return c.Count(a), nil
	}))
	reg.Register("wait", registry.Typed(func(a WaitArgs) (command.Command, error) {
		return command.Func("wait", func() routine.Routine {
			return routine.Wait(a.Duration)
		}), nil
	}))
	reg.Register("log", registry.Typed(func(a LogArgs) (command.Command, error) {
		return command.Func("log", func() routine.Routine {
			return routine.Do(func() { c.logger.Info(a.Message) })
		}), nil
	}))
}

// Pool returns the pool of count commands.
func (c *Commands) Pool() *pool.Pool[*CountCommand] {
	return c.counts
}
