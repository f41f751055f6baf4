package icesock

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
)

// portAllocator hands out successive candidate ports inside a configured
// range. The counter is seeded from a secure random value at
// construction so processes started together probe different offsets and
// the probing order is not predictable across restarts.
type portAllocator struct {
	mu      sync.Mutex
	counter uint32
}

// newPortAllocator creates an allocator with a randomly seeded counter.
func newPortAllocator() *portAllocator {
	var seed [4]byte
	// rand.Read only fails when the OS entropy source is broken; a zero
	// seed still yields a valid (if predictable) probing sequence.
	_, _ = rand.Read(seed[:])
	return &portAllocator{
		counter: binary.BigEndian.Uint32(seed[:]),
	}
}

// nextPort returns the next candidate port in [begin, end]. A zero begin
// means 1024 and a zero end means 65535. Safe for concurrent use: each
// caller observes a distinct counter value.
func (p *portAllocator) nextPort(begin, end uint16) uint16 {
	if begin == 0 {
		begin = 1024
	}
	if end == 0 {
		end = 0xFFFF
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	var width uint32
	if end > begin {
		width = uint32(end - begin)
	}
	next := uint16(uint32(begin) + p.counter%(width+1))
	p.counter++
	return next
}
