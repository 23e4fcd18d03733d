/*
Package ludus is a toolkit of gameplay-architecture patterns for tick-driven hosts.

It bundles a command queue that runs cooperative commands one at a time, a
generic state machine with enter/tick/exit lifecycle, and the peripheral
services most games end up writing: a typed event bus, object pools,
singleton holders, a two-output audio mixer and fading UI panels.

# Concept

Everything advances by ticks. A Host owns a fixed-rate loop (pkg/loop) and,
on every tick, advances the command queue, the background routines and every
attached state machine. Nothing blocks: suspension is expressed with
routines (pkg/routine), values whose Step reports Running until they are
done. External goroutines hand work to the loop with Post.

# Usage

	package main

	import (
		"context"
		"time"

		"github.com/aretw0/ludus"
		"github.com/aretw0/ludus/pkg/command"
		"github.com/aretw0/ludus/pkg/routine"
	)

	func main() {
		host := ludus.New()

		greet := command.Func("greet", func() routine.Routine {
			return routine.Sequence(
				routine.Wait(time.Second),
				routine.Do(func() { println("hello") }),
			)
		})

		host.Post(func() {
			_ = host.Queue().Submit(greet, func(command.Result) { host.Stop() })
		})
		_ = host.Run(context.Background())
	}

# Packages

  - pkg/routine: steps, combinators and a scheduler for background routines.
  - pkg/command: the command queue, drain results and failure policies.
  - pkg/fsm: the generic state machine.
  - pkg/loop: the fixed-rate driver.
  - pkg/bus, pkg/pool, pkg/singleton: host-owned registries.
  - pkg/audio: master mixer on gopxl/beep.
  - pkg/ui: fading panels and a tcell renderer.
  - pkg/observability: Prometheus metrics and log hooks.
  - pkg/registry: named command factories for configuration-driven scripts.
*/
package ludus
