package counters

import (
	"sync"
	"testing"

	"gotest.tools/assert"
)

// set a bank directly, only tests get to do this
func preset(b *Bank, values ...uint32) {
	copy(b.cells, values)
}

func ticks(b *Bank, k int) {
	for i := 0; i < k; i++ {
		b.Tick()
	}
}

func TestNewBankIsZero(t *testing.T) {
	b := NewBank(DefaultSize)
	assert.Equal(t, b.Len(), 4)
	assert.DeepEqual(t, b.Snapshot(), []int{0, 0, 0, 0})
	assert.Equal(t, NewBank(0).Len(), 1)
}

func TestTickCascade(t *testing.T) {
	for _, k := range []int{1, 9, 9999, 10000, 10001, 19999, 20000, 123457} {
		b := NewBank(DefaultSize)
		ticks(b, k)
		assert.Equal(t, b.Value(0), k%10000, "k=%d", k)
		assert.Equal(t, b.Value(1), (k/10000)%10000, "k=%d", k)
		assert.Equal(t, b.Value(2), (k/100000000)%10000, "k=%d", k)
	}
}

func TestTenThousandTicks(t *testing.T) {
	b := NewBank(DefaultSize)
	ticks(b, 10000)
	assert.DeepEqual(t, b.Snapshot(), []int{0, 1, 0, 0})

	b.Tick()
	assert.DeepEqual(t, b.Snapshot(), []int{1, 1, 0, 0})
}

func TestCarryThroughEveryCounter(t *testing.T) {
	b := NewBank(DefaultSize)
	preset(b, Max, Max, Max, 0)
	b.Tick()
	assert.DeepEqual(t, b.Snapshot(), []int{0, 0, 0, 1})
}

func TestTopCounterWraps(t *testing.T) {
	b := NewBank(DefaultSize)
	preset(b, Max, Max, Max, Max)
	b.Tick()
	assert.DeepEqual(t, b.Snapshot(), []int{0, 0, 0, 0})
}

func TestWiderBank(t *testing.T) {
	b := NewBank(6)
	preset(b, Max, Max, Max, Max, Max, 7)
	b.Tick()
	assert.DeepEqual(t, b.Snapshot(), []int{0, 0, 0, 0, 0, 8})
}

func TestReset(t *testing.T) {
	b := NewBank(DefaultSize)
	preset(b, 1, 2, 3, 4)
	b.Reset()
	assert.DeepEqual(t, b.Snapshot(), []int{0, 0, 0, 0})
}

func TestValueOutOfRange(t *testing.T) {
	b := NewBank(2)
	preset(b, 5, 6)
	assert.Equal(t, b.Value(-1), 0)
	assert.Equal(t, b.Value(2), 0)
}

// one writer, several readers: every value read stays in range
func TestConcurrentReaders(t *testing.T) {
	b := NewBank(DefaultSize)
	done := make(chan struct{})
	var wg sync.WaitGroup

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				for i := 0; i < b.Len(); i++ {
					v := b.Value(i)
					if v < 0 || v > Max {
						t.Errorf("counter %d out of range: %d", i, v)
						return
					}
				}
			}
		}()
	}

	ticks(b, 25000)
	close(done)
	wg.Wait()

	assert.DeepEqual(t, b.Snapshot(), []int{5000, 2, 0, 0})
}
