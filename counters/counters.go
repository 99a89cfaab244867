// Package counters holds the cascading decimal counters advanced by the
// periodic timer and read by the display scan.
//
// A Bank has exactly one writer, the timer handler calling Tick, and any
// number of readers. Every counter is a fixed-width cell accessed
// atomically, so a reader never sees a torn value. A reader can see a carry
// half applied across two counters (counter 0 already back at 0, counter 1
// not yet bumped); that clears up on the next read.
package counters

import "sync/atomic"

const (
	// Max is the largest value a counter holds before it carries
	Max = 9999
	// DefaultSize is the number of counters in the reference design
	DefaultSize = 4
)

// Bank is an ordered set of decimal counters, counter i carries into i+1
type Bank struct {
	cells []uint32
}

// NewBank makes a zeroed bank of n counters
func NewBank(n int) *Bank {
	if n < 1 {
		n = 1
	}
	return &Bank{cells: make([]uint32, n)}
}

// Len is the number of counters
func (b *Bank) Len() int {
	return len(b.cells)
}

// Reset zeroes every counter. Only call this before the timer is armed.
func (b *Bank) Reset() {
	for i := range b.cells {
		atomic.StoreUint32(&b.cells[i], 0)
	}
}

// Tick adds one to counter 0 and carries upward. The top counter wraps to 0
// and its carry is dropped. Safe for interrupt context: no allocation, no
// locks, no logging.
func (b *Bank) Tick() {
	for i := range b.cells {
		v := atomic.LoadUint32(&b.cells[i]) + 1
		if v <= Max {
			atomic.StoreUint32(&b.cells[i], v)
			return
		}
		atomic.StoreUint32(&b.cells[i], 0)
	}
}

// Value reads counter i, 0 for an index outside the bank
func (b *Bank) Value(i int) int {
	if i < 0 || i >= len(b.cells) {
		return 0
	}
	return int(atomic.LoadUint32(&b.cells[i]))
}

// Snapshot copies every counter, lowest first. The copy is not taken
// atomically across counters.
func (b *Bank) Snapshot() []int {
	ret := make([]int, len(b.cells))
	for i := range b.cells {
		ret[i] = int(atomic.LoadUint32(&b.cells[i]))
	}
	return ret
}
