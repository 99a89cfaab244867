// Package gpio is the hardware surface the display core runs on: digital
// outputs, a periodic timer with an interrupt gate, and a settle delay.
package gpio

import (
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
)

// Level is the electrical level of an output
type Level bool

const (
	Low  Level = false
	High Level = true
)

func (l Level) String() string {
	if l {
		return "HIGH"
	}
	return "LOW"
}

// Timer is handed to a TickHandler so it can re-arm the timer that fired
type Timer interface {
	Rearm()
}

// TickHandler runs on every timer expiry. It has to be short and must not
// block; a handler that doesn't call Rearm stops its timer.
type TickHandler func(t Timer)

// Platform is what the display needs from the board
type Platform interface {
	// ConfigureOutput declares pin as a digital output, before first use
	ConfigureOutput(pin int) error
	// SetOutput drives a configured output
	SetOutput(pin int, level Level)
	// ConfigurePeriodicTimer arms a timer calling handler every period
	ConfigurePeriodicTimer(period time.Duration, handler TickHandler) error
	// EnableInterrupts lets timer expiries reach their handlers
	EnableInterrupts()
	// BusyWait holds the caller for d
	BusyWait(d time.Duration)
	// Close stops every timer and releases the hardware
	Close() error
}

// names accepted by Open
const (
	DriverRPIO   = "rpio"
	DriverPeriph = "periph"
	DriverSim    = "sim"
)

// Open returns the platform for driver. Timers and waits run off clock.
func Open(driver string, clock clockwork.Clock) (Platform, error) {
	switch driver {
	case DriverRPIO:
		p, err := openRPIO(clock)
		if err != nil {
			return nil, err
		}
		return p, nil
	case DriverPeriph:
		p, err := openPeriph(clock)
		if err != nil {
			return nil, err
		}
		return p, nil
	case DriverSim:
		// the simulator runs for hours, don't keep an audit trail
		p := NewLogPlatform(clock)
		p.SetRecording(false)
		p.SetWaits(true)
		return p, nil
	}
	return nil, errors.Errorf("unknown gpio driver %q", driver)
}
