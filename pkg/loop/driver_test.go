package loop

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/ludus/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriver_StepOrder(t *testing.T) {
	d := NewDriver()

	var trace []string
	d.Add(TickerFunc(func(time.Duration) { trace = append(trace, "a") }))
	remove := d.Add(TickerFunc(func(time.Duration) { trace = append(trace, "b") }))
	d.Post(func() { trace = append(trace, "posted") })

	d.Step(time.Millisecond)
	assert.Equal(t, []string{"posted", "a", "b"}, trace)

	remove()
	trace = nil
	d.Step(time.Millisecond)
	assert.Equal(t, []string{"a"}, trace)
	assert.Equal(t, uint64(2), d.Frames())
}

func TestDriver_PostDuringStepRunsNextStep(t *testing.T) {
	d := NewDriver()

	ran := false
	d.Add(TickerFunc(func(time.Duration) {
		d.Post(func() { ran = true })
	}))

	d.Step(time.Millisecond)
	assert.False(t, ran)
	d.Step(time.Millisecond)
	assert.True(t, ran)
}

func TestDriver_RunUntilCancelled(t *testing.T) {
	d := NewDriver(WithRate(1000))

	var ticks atomic.Int64
	var sawPositive atomic.Bool
	d.Add(TickerFunc(func(dt time.Duration) {
		ticks.Add(1)
		if dt > 0 {
			sawPositive.Store(true)
		}
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	require.NoError(t, d.Run(ctx))
	assert.Greater(t, ticks.Load(), int64(0))
	assert.True(t, sawPositive.Load())
	assert.False(t, d.Running())
}

func TestDriver_StopEndsRun(t *testing.T) {
	d := NewDriver(WithRate(1000))

	done := make(chan error, 1)
	go func() { done <- d.Run(context.Background()) }()

	require.Eventually(t, func() bool { return d.Frames() > 0 }, time.Second, time.Millisecond)
	d.Stop()
	d.Stop()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Stop")
	}
}

func TestDriver_RejectsConcurrentRun(t *testing.T) {
	d := NewDriver(WithRate(1000))
	defer d.Stop()

	go func() { _ = d.Run(context.Background()) }()
	require.Eventually(t, d.Running, time.Second, time.Millisecond)

	err := d.Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrDriverRunning)
}

func TestWithRate(t *testing.T) {
	assert.Equal(t, DefaultRate, NewDriver().Rate())
	assert.Equal(t, 30, NewDriver(WithRate(30)).Rate())
	assert.Equal(t, DefaultRate, NewDriver(WithRate(0)).Rate())
}

func TestSignalManager_Lifecycle(t *testing.T) {
	sm := NewSignalManager(context.Background())

	ctx := sm.Context()
	require.NotNil(t, ctx)
	assert.NoError(t, ctx.Err())

	sm.Stop()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}
