package gpio

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
)

// global interrupt mask, starts masked
type interruptGate struct {
	enabled int32
}

func (g *interruptGate) enable() {
	atomic.StoreInt32(&g.enabled, 1)
}

func (g *interruptGate) on() bool {
	return atomic.LoadInt32(&g.enabled) == 1
}

type periodicTimer struct {
	clock   clockwork.Clock
	period  time.Duration
	handler TickHandler
	irq     *interruptGate
	armed   int32
	quit    chan struct{}
	done    chan struct{}
}

func (t *periodicTimer) Rearm() {
	atomic.StoreInt32(&t.armed, 1)
}

// one goroutine per timer, so a handler never overlaps itself
func (t *periodicTimer) run() {
	defer close(t.done)
	for {
		select {
		case <-t.quit:
			return
		case <-t.clock.After(t.period):
		}

		// every expiry uses up the arm
		atomic.StoreInt32(&t.armed, 0)
		if t.irq.on() {
			t.handler(t)
		} else {
			// masked: the expiry is lost but the counter keeps running
			t.Rearm()
		}
		if atomic.LoadInt32(&t.armed) == 0 {
			return
		}
	}
}

// timers is the timer/interrupt/wait half of a Platform, every backend
// embeds one
type timers struct {
	clock   clockwork.Clock
	irq     interruptGate
	mu      sync.Mutex
	running []*periodicTimer
}

func newTimers(clock clockwork.Clock) *timers {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &timers{clock: clock}
}

func (ts *timers) ConfigurePeriodicTimer(period time.Duration, handler TickHandler) error {
	if period <= 0 {
		return errors.Errorf("bad timer period %v", period)
	}
	if handler == nil {
		return errors.New("timer needs a handler")
	}

	t := &periodicTimer{
		clock:   ts.clock,
		period:  period,
		handler: handler,
		irq:     &ts.irq,
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	t.Rearm()

	ts.mu.Lock()
	ts.running = append(ts.running, t)
	ts.mu.Unlock()

	go t.run()
	return nil
}

func (ts *timers) EnableInterrupts() {
	ts.irq.enable()
}

func (ts *timers) BusyWait(d time.Duration) {
	if d <= 0 {
		return
	}
	ts.clock.Sleep(d)
}

// stop every timer and wait for the goroutines to exit
func (ts *timers) stopTimers() {
	ts.mu.Lock()
	running := ts.running
	ts.running = nil
	ts.mu.Unlock()

	for _, t := range running {
		close(t.quit)
	}
	for _, t := range running {
		<-t.done
	}
}
