package pool

import (
	"testing"

	"github.com/aretw0/ludus/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bullet struct {
	id       int
	active   bool
	acquired int
	released int
}

func (b *bullet) OnAcquire() {
	b.active = true
	b.acquired++
}

func (b *bullet) OnRelease() {
	b.active = false
	b.released++
}

func bulletFactory() func() *bullet {
	next := 0
	return func() *bullet {
		next++
		return &bullet{id: next}
	}
}

func TestNew_Prewarms(t *testing.T) {
	p := New(bulletFactory(), 3)

	assert.Equal(t, 3, p.Available())
	assert.Equal(t, 3, p.Created())
}

func TestPool_GetIsFIFOAndCallsHooks(t *testing.T) {
	p := New(bulletFactory(), 2)

	a := p.Get()
	b := p.Get()
	assert.Equal(t, 1, a.id)
	assert.Equal(t, 2, b.id)
	assert.True(t, a.active)
	assert.Equal(t, 1, a.acquired)

	p.Put(a)
	assert.False(t, a.active)
	assert.Equal(t, 1, a.released)
	assert.Equal(t, 1, p.Available())

	again := p.Get()
	assert.Same(t, a, again)
	assert.Equal(t, 2, again.acquired)
}

func TestPool_GrowsWhenEmpty(t *testing.T) {
	p := New(bulletFactory(), 1)

	p.Get()
	grown := p.Get()

	assert.Equal(t, 2, grown.id)
	assert.True(t, grown.active)
	assert.Equal(t, 2, p.Created())
	assert.Equal(t, 0, p.Available())
}

func TestPool_NonPoolableValues(t *testing.T) {
	p := New[int](nil, 2)

	assert.Equal(t, 0, p.Get())
	p.Put(7)
	assert.Equal(t, 0, p.Get())
	assert.Equal(t, 7, p.Get())
}

func TestRegistry_PerTypePools(t *testing.T) {
	r := NewRegistry()

	first := Register(r, bulletFactory(), 2)
	second := Register(r, bulletFactory(), 10)
	assert.Same(t, first, second)
	assert.Equal(t, 2, second.Available(), "re-registering does not prewarm again")

	b, err := Get[*bullet](r)
	require.NoError(t, err)
	assert.True(t, b.active)

	require.NoError(t, Put(r, b))
	assert.Equal(t, 2, first.Available())
}

func TestRegistry_MissingPool(t *testing.T) {
	r := NewRegistry()

	_, err := Of[*bullet](r)
	assert.ErrorIs(t, err, domain.ErrPoolMissing)

	_, err = Get[*bullet](r)
	assert.ErrorIs(t, err, domain.ErrPoolMissing)

	err = Put(r, &bullet{})
	assert.ErrorIs(t, err, domain.ErrPoolMissing)
}
