package icesock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortAllocatorDefaults(t *testing.T) {
	allocator := newPortAllocator()

	for i := 0; i < 100; i++ {
		port := allocator.nextPort(0, 0)
		assert.GreaterOrEqual(t, port, uint16(1024))
	}
}

func TestPortAllocatorSinglePortRange(t *testing.T) {
	allocator := newPortAllocator()

	for i := 0; i < 10; i++ {
		assert.Equal(t, uint16(5000), allocator.nextPort(5000, 5000))
	}
}

func TestPortAllocatorCoversRangeExactlyOnce(t *testing.T) {
	allocator := newPortAllocator()

	const begin, end = 40000, 40009
	seen := make(map[uint16]int)
	for i := 0; i < end-begin+1; i++ {
		seen[allocator.nextPort(begin, end)]++
	}

	require.Len(t, seen, end-begin+1)
	for port, count := range seen {
		assert.GreaterOrEqual(t, port, uint16(begin))
		assert.LessOrEqual(t, port, uint16(end))
		assert.Equal(t, 1, count, "port %d returned more than once in one pass", port)
	}
}

func TestPortAllocatorInvertedRange(t *testing.T) {
	allocator := newPortAllocator()

	// An inverted range has zero width, so the begin port is always returned.
	for i := 0; i < 5; i++ {
		assert.Equal(t, uint16(6000), allocator.nextPort(6000, 5000))
	}
}

func TestPortAllocatorConcurrent(t *testing.T) {
	allocator := newPortAllocator()

	const begin, end = 50000, 50099
	const goroutines = 32
	const callsPerGoroutine = 50

	var wg sync.WaitGroup
	results := make(chan uint16, goroutines*callsPerGoroutine)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < callsPerGoroutine; j++ {
				results <- allocator.nextPort(begin, end)
			}
		}()
	}
	wg.Wait()
	close(results)

	for port := range results {
		assert.GreaterOrEqual(t, port, uint16(begin))
		assert.LessOrEqual(t, port, uint16(end))
	}
}

func TestPortAllocatorSeedsDiffer(t *testing.T) {
	// Random seeding makes it overwhelmingly unlikely that many fresh
	// allocators all start at the same offset of a wide range.
	first := newPortAllocator().nextPort(1024, 65535)
	same := 0
	for i := 0; i < 16; i++ {
		if newPortAllocator().nextPort(1024, 65535) == first {
			same++
		}
	}
	assert.Less(t, same, 16, "all allocators produced the same first port")
}
