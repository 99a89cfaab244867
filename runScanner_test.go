package main

import (
	"testing"

	"dscheirer.com/segcounter/gpio"
	"dscheirer.com/segcounter/multiplex"
	"dscheirer.com/segcounter/sevenseg"
	"gotest.tools/assert"
)

const positions = multiplex.DisplayedBlocks * multiplex.DigitsPerBlock

func TestScannerShowsCounters(t *testing.T) {
	rt, clock, lp := testRuntime(t)

	scanner, err := setupDisplay(rt)
	assert.NilError(t, err)
	startScanner(rt, scanner)

	testTicks(t, rt, clock, 3)

	// two whole passes after the last tick
	start := lp.Waits()
	waitFor(t, "two scan passes", func() bool {
		return lp.Waits() >= start+2*positions
	})
	testQuit(rt)

	latch := replay(rt, lp.Events())
	assert.Equal(t, latch.frame[0], sevenseg.Digit(3))
	for pos := 1; pos < positions; pos++ {
		assert.Equal(t, latch.frame[pos], sevenseg.Digit(0), "position %d", pos)
	}
}

func TestScannerBlanksOnQuit(t *testing.T) {
	rt, _, lp := testRuntime(t)

	scanner, err := setupDisplay(rt)
	assert.NilError(t, err)
	startScanner(rt, scanner)

	waitFor(t, "a scan pass", func() bool {
		return lp.Waits() >= positions
	})
	testQuit(rt)

	layout := rt.settings.layout()
	for _, pin := range layout.Selects {
		level, _ := lp.Level(pin)
		assert.Equal(t, level, gpio.High, "select %d left on", pin)
	}
	for _, pin := range layout.Segments {
		level, _ := lp.Level(pin)
		assert.Equal(t, level, gpio.High, "segment %d left on", pin)
	}
}

func TestStopTwice(t *testing.T) {
	comms := initCommChannels()
	comms.stop()
	comms.stop()

	select {
	case <-comms.quit:
	default:
		t.Fatal("quit not closed")
	}
}
