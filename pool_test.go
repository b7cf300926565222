package voronoi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolInsertGet(t *testing.T) {
	p := NewPool[string]()
	k := p.Insert("hello")

	v, ok := p.Get(k)
	require.True(t, ok)
	assert.Equal(t, "hello", v)
	assert.Equal(t, 1, p.Len())
}

func TestPoolRemoveInvalidatesKey(t *testing.T) {
	p := NewPool[int]()
	k := p.Insert(42)

	p.Remove(k)

	_, ok := p.Get(k)
	assert.False(t, ok)
	assert.Equal(t, 0, p.Len())
}

func TestPoolReusesFreedSlotWithNewGeneration(t *testing.T) {
	p := NewPool[int]()
	k1 := p.Insert(1)
	p.Remove(k1)
	k2 := p.Insert(2)

	assert.NotEqual(t, k1, k2, "a reused slot must get a fresh generation")

	_, ok := p.Get(k1)
	assert.False(t, ok, "the old key must stay stale even though its slot was reused")

	v, ok := p.Get(k2)
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestZeroKeyIsNeverValid(t *testing.T) {
	var k Key[int]
	assert.False(t, k.Valid())
}

func TestPoolSet(t *testing.T) {
	p := NewPool[int]()
	k := p.Insert(1)
	assert.True(t, p.Set(k, 2))

	v, _ := p.Get(k)
	assert.Equal(t, 2, v)

	p.Remove(k)
	assert.False(t, p.Set(k, 3), "setting through a stale key must fail")
}

func TestPoolKeysOrder(t *testing.T) {
	p := NewPool[int]()
	k1 := p.Insert(1)
	k2 := p.Insert(2)
	k3 := p.Insert(3)
	p.Remove(k2)

	keys := p.Keys()
	assert.ElementsMatch(t, []Key[int]{k1, k3}, keys)
}
