package gpio

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"gotest.tools/assert"
)

func TestLogPlatformAudit(t *testing.T) {
	lp := NewLogPlatform(clockwork.NewFakeClock())
	defer lp.Close()

	assert.NilError(t, lp.ConfigureOutput(4))
	assert.Assert(t, lp.Configured(4))
	assert.Assert(t, !lp.Configured(5))

	lp.SetOutput(4, High)
	lp.BusyWait(time.Millisecond)
	lp.SetOutput(4, Low)

	events := lp.Events()
	assert.Equal(t, len(events), 3)
	assert.Equal(t, events[0], Event{Pin: 4, Level: High})
	assert.Assert(t, events[1].IsWait())
	assert.Equal(t, events[1].Wait, time.Millisecond)
	assert.Equal(t, events[2], Event{Pin: 4, Level: Low})

	level, ok := lp.Level(4)
	assert.Assert(t, ok)
	assert.Equal(t, level, Low)
	assert.Equal(t, lp.Waits(), 1)
	assert.Equal(t, lp.StrayWrites(), 0)

	lp.ClearEvents()
	assert.Equal(t, len(lp.Events()), 0)
	level, _ = lp.Level(4)
	assert.Equal(t, level, Low)
}

func TestLogPlatformStrayWrite(t *testing.T) {
	lp := NewLogPlatform(clockwork.NewFakeClock())
	defer lp.Close()

	lp.SetOutput(9, High)
	assert.Equal(t, lp.StrayWrites(), 1)
}

func TestLogPlatformNoRecording(t *testing.T) {
	lp := NewLogPlatform(clockwork.NewFakeClock())
	defer lp.Close()
	lp.SetRecording(false)

	assert.NilError(t, lp.ConfigureOutput(1))
	lp.SetOutput(1, High)
	lp.BusyWait(time.Millisecond)

	assert.Equal(t, len(lp.Events()), 0)
	assert.Equal(t, lp.Waits(), 1)
	level, _ := lp.Level(1)
	assert.Equal(t, level, High)
}

func TestLogPlatformRealWaits(t *testing.T) {
	clock := clockwork.NewFakeClock()
	lp := NewLogPlatform(clock)
	defer lp.Close()
	lp.SetWaits(true)

	done := make(chan struct{})
	go func() {
		lp.BusyWait(5 * time.Millisecond)
		close(done)
	}()

	clock.BlockUntil(1)
	clock.Advance(5 * time.Millisecond)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("BusyWait didn't return")
	}
}

func TestOpen(t *testing.T) {
	p, err := Open(DriverSim, clockwork.NewFakeClock())
	assert.NilError(t, err)
	lp, ok := p.(*LogPlatform)
	assert.Assert(t, ok)
	assert.Assert(t, !lp.record)
	assert.Assert(t, lp.realWaits)
	assert.NilError(t, p.Close())

	_, err = Open("bogus", clockwork.NewFakeClock())
	assert.Error(t, err, `unknown gpio driver "bogus"`)
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, High.String(), "HIGH")
	assert.Equal(t, Low.String(), "LOW")
}
