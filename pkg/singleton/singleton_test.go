package singleton

import (
	"sync"
	"testing"

	"github.com/aretw0/ludus/pkg/domain"
	"github.com/stretchr/testify/assert"
)

type audioManager struct{ name string }

func TestInstance_FirstSetWins(t *testing.T) {
	var slot Instance[*audioManager]

	first := &audioManager{name: "first"}
	assert.True(t, slot.Set(first))
	assert.False(t, slot.Set(&audioManager{name: "second"}))

	got, ok := slot.Get()
	assert.True(t, ok)
	assert.Same(t, first, got)
}

func TestInstance_ClaimRejectsDuplicate(t *testing.T) {
	var slot Instance[*audioManager]

	assert.NoError(t, slot.Claim(&audioManager{}))
	err := slot.Claim(&audioManager{})
	assert.ErrorIs(t, err, domain.ErrAlreadyClaimed)
}

func TestInstance_Clear(t *testing.T) {
	var slot Instance[int]
	slot.Set(3)
	slot.Clear()

	_, ok := slot.Get()
	assert.False(t, ok)
	assert.Panics(t, func() { slot.MustGet() })

	assert.True(t, slot.Set(4))
	assert.Equal(t, 4, slot.MustGet())
}

func TestLazy_BuildsOnce(t *testing.T) {
	calls := 0
	l := NewLazy(func() *audioManager {
		calls++
		return &audioManager{name: "auto"}
	})
	assert.False(t, l.Built())

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Get()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, calls)
	assert.Equal(t, "auto", l.Get().name)

	l.Reset()
	l.Get()
	assert.Equal(t, 2, calls)
}
