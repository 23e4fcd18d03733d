package ludus_test

import (
	"fmt"
	"time"

	"github.com/aretw0/ludus"
	"github.com/aretw0/ludus/pkg/command"
	"github.com/aretw0/ludus/pkg/fsm"
	"github.com/aretw0/ludus/pkg/routine"
)

// ExampleHost drives a queue by hand with Step instead of the real-time loop.
func ExampleHost() {
	host := ludus.New()

	count := 0
	counter := command.Func("count", func() routine.Routine {
		return routine.Sequence(
			routine.Wait(2*time.Second),
			routine.Do(func() { count++; fmt.Println("count:", count) }),
		)
	})

	_ = host.Queue().Enqueue(counter)
	_ = host.Queue().Enqueue(counter)
	_ = host.Queue().Run(func(r command.Result) {
		fmt.Println("executed:", r.Executed)
	})

	for range 10 {
		host.Step(time.Second)
	}
	// Output:
	// count: 1
	// count: 2
	// executed: 2
}

type light struct {
	fsm.BaseState[*traffic]
	color string
}

func (l *light) Name() string { return l.color }

func (l *light) Enter(t *traffic) {
	l.BaseState.Enter(t)
	fmt.Println("enter", l.color)
}

func (l *light) Exit() {
	fmt.Println("exit", l.color)
}

type traffic struct{}

// ExampleNewMachine shows the exit-before-enter order of a transition.
func ExampleNewMachine() {
	host := ludus.New()
	m, err := ludus.NewMachine(host, &traffic{})
	if err != nil {
		panic(err)
	}

	_ = m.Transition(&light{color: "red"})
	_ = m.Transition(&light{color: "green"})
	fmt.Println("current:", m.CurrentName())
	// Output:
	// enter red
	// exit red
	// enter green
	// current: green
}
