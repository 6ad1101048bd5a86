package deque

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func items(d Deque) []time.Duration {
	var got []time.Duration
	d.Traverse(func(_ int, v time.Duration) {
		got = append(got, v)
	})
	return got
}

func TestArrDeque_AddLastEvictsHead(t *testing.T) {
	d := NewArrDeque(3)
	for i := 1; i <= 5; i++ {
		d.AddLast(time.Duration(i))
	}
	require.True(t, d.IsFull())
	assert.Equal(t, 3, d.Size())
	assert.Equal(t, []time.Duration{3, 4, 5}, items(d))
}

func TestArrDeque_Fill(t *testing.T) {
	d := NewArrDeque(3)
	assert.Empty(t, items(d))

	d.AddLast(1)
	d.AddLast(2)
	assert.False(t, d.IsFull())
	assert.Equal(t, []time.Duration{1, 2}, items(d))

	d.AddLast(3)
	assert.True(t, d.IsFull())
	assert.Equal(t, []time.Duration{1, 2, 3}, items(d))
}

func TestArrDeque_WrapsManyTimes(t *testing.T) {
	d := NewArrDeque(4)
	for i := 1; i <= 103; i++ {
		d.AddLast(time.Duration(i))
	}
	assert.Equal(t, []time.Duration{100, 101, 102, 103}, items(d))

	var idx []int
	d.Traverse(func(i int, _ time.Duration) {
		idx = append(idx, i)
	})
	assert.Equal(t, []int{0, 1, 2, 3}, idx)
}

func TestNewArrDeque_MinCapacity(t *testing.T) {
	d := NewArrDeque(0)
	d.AddLast(1)
	d.AddLast(2)
	assert.Equal(t, []time.Duration{2}, items(d))
}

func BenchmarkArrDeque_AddLast(b *testing.B) {
	d := NewArrDeque(50)
	for i := 0; i < b.N; i++ {
		d.AddLast(time.Millisecond)
	}
}
