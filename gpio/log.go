package gpio

import (
	"log"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// WaitPin marks a BusyWait in the audit trail
const WaitPin = -1

// Event is one entry in a LogPlatform audit trail
type Event struct {
	Pin   int
	Level Level
	Wait  time.Duration
}

// IsWait is true for a BusyWait entry
func (e Event) IsWait() bool {
	return e.Pin == WaitPin
}

// LogPlatform keeps output levels in memory instead of driving hardware.
// It backs the simulator and is the recording fake for tests.
type LogPlatform struct {
	*timers
	mu         sync.Mutex
	configured map[int]bool
	levels     map[int]Level
	audit      []Event
	strays     int
	waits      int
	record     bool
	realWaits  bool
	verbose    bool
}

// NewLogPlatform records every change and doesn't actually sleep in BusyWait
func NewLogPlatform(clock clockwork.Clock) *LogPlatform {
	return &LogPlatform{
		timers:     newTimers(clock),
		configured: make(map[int]bool),
		levels:     make(map[int]Level),
		audit:      make([]Event, 0),
		record:     true,
	}
}

// SetRecording turns the audit trail on or off
func (lp *LogPlatform) SetRecording(on bool) {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	lp.record = on
}

// SetWaits makes BusyWait sleep on the clock as well as record
func (lp *LogPlatform) SetWaits(on bool) {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	lp.realWaits = on
}

// SetVerbose logs every output change
func (lp *LogPlatform) SetVerbose(on bool) {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	lp.verbose = on
}

func (lp *LogPlatform) ConfigureOutput(pin int) error {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	lp.configured[pin] = true
	if lp.verbose {
		log.Printf("Configure pin %d as output", pin)
	}
	return nil
}

func (lp *LogPlatform) SetOutput(pin int, level Level) {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	if !lp.configured[pin] {
		lp.strays++
		log.Printf("Write to unconfigured pin %d", pin)
	}
	lp.levels[pin] = level
	if lp.record {
		lp.audit = append(lp.audit, Event{Pin: pin, Level: level})
	}
	if lp.verbose {
		log.Printf("Set pin %d to %v", pin, level)
	}
}

func (lp *LogPlatform) BusyWait(d time.Duration) {
	lp.mu.Lock()
	lp.waits++
	if lp.record {
		lp.audit = append(lp.audit, Event{Pin: WaitPin, Wait: d})
	}
	sleep := lp.realWaits
	lp.mu.Unlock()

	if sleep {
		lp.timers.BusyWait(d)
	}
}

func (lp *LogPlatform) Close() error {
	lp.stopTimers()
	return nil
}

// Level is the last level written to pin, false if it was never written
func (lp *LogPlatform) Level(pin int) (Level, bool) {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	l, ok := lp.levels[pin]
	return l, ok
}

// Configured reports whether pin was declared as an output
func (lp *LogPlatform) Configured(pin int) bool {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	return lp.configured[pin]
}

// Events copies the audit trail
func (lp *LogPlatform) Events() []Event {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	ret := make([]Event, len(lp.audit))
	copy(ret, lp.audit)
	return ret
}

// ClearEvents empties the audit trail, levels are kept
func (lp *LogPlatform) ClearEvents() {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	lp.audit = lp.audit[:0]
}

// Waits counts BusyWait calls, recorded or not
func (lp *LogPlatform) Waits() int {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	return lp.waits
}

// StrayWrites counts writes to pins that were never configured
func (lp *LogPlatform) StrayWrites() int {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	return lp.strays
}
