package id

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequential(t *testing.T) {
	gen := Sequential("t")
	assert.Equal(t, "t-1", gen())
	assert.Equal(t, "t-2", gen())
	assert.Equal(t, "t-3", gen())
}

func TestSequential_IndependentCounters(t *testing.T) {
	a := Sequential("a")
	b := Sequential("b")
	a()
	assert.Equal(t, "b-1", b())
}

func TestSequential_ConcurrentCallersGetDistinctIDs(t *testing.T) {
	gen := Sequential("t")

	const n = 64
	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- gen()
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		assert.False(t, seen[id], id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

func TestRandom_Unique(t *testing.T) {
	gen := Random()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := gen()
		assert.NotEmpty(t, id)
		assert.False(t, seen[id])
		seen[id] = true
	}
}
