package main

import (
	"log"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"dscheirer.com/segcounter/gpio"
	"github.com/jonboulle/clockwork"
	"gotest.tools/assert"
)

var cfgFile = "./test/config.conf"

func logCaller(pc uintptr, file string, line int, ok bool) {
	if !ok {
		file = "?"
		line = 0
	}

	fn := runtime.FuncForPC(pc)
	var fnName string
	if fn == nil {
		fnName = "?()"
	} else {
		dotName := filepath.Ext(fn.Name())
		fnName = strings.TrimLeft(dotName, ".") + "()"
	}

	log.Printf("Starting %s (%s:%d)", fnName, filepath.Base(file), line)
}

func testRuntime(t *testing.T) (runtimeConfig, clockwork.FakeClock, *gpio.LogPlatform) {
	// make rt for test, log the start of the test
	logCaller(runtime.Caller(1))

	settings, err := initSettings([]string{"-config", cfgFile})
	assert.NilError(t, err)

	clock := clockwork.NewFakeClock()
	lp := gpio.NewLogPlatform(clock)
	return initRuntime(settings, clock, lp), clock, lp
}

func testQuit(rt runtimeConfig) {
	rt.comms.stop()
	wg.Wait()
	rt.platform.Close()
}

// waitFor polls cond, the timer and scanner run on their own goroutines
func waitFor(t *testing.T, what string, cond func() bool) {
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(100 * time.Microsecond)
	}
}

// testTicks advances the fake clock one tick period at a time and waits for
// the handler to count each one
func testTicks(t *testing.T, rt runtimeConfig, clock clockwork.FakeClock, n int) {
	period := rt.settings.GetDuration(sTickPeriod)
	for i := 0; i < n; i++ {
		before := rt.bank.Snapshot()
		clock.BlockUntil(1)
		clock.Advance(period)
		waitFor(t, "a tick", func() bool {
			return !equalInts(before, rt.bank.Snapshot())
		})
	}
}

func equalInts(a []int, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// replay feeds an audit trail into a latch to see what was on the display
func replay(rt runtimeConfig, events []gpio.Event) *frameLatch {
	latch := newFrameLatch(rt.settings.layout(), rt.settings.polarity())
	for _, e := range events {
		if e.IsWait() {
			latch.hold()
		} else {
			latch.SetOutput(e.Pin, e.Level)
		}
	}
	return latch
}
