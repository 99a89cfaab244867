package gpio

import (
	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	"github.com/stianeikeland/go-rpio"
)

// highest BCM pin on the 40 pin header
const maxRPIOPin = 27

type rpioPlatform struct {
	*timers
	pins map[int]rpio.Pin
}

func openRPIO(clock clockwork.Clock) (*rpioPlatform, error) {
	if err := rpio.Open(); err != nil {
		return nil, errors.Wrap(err, "opening rpio")
	}
	return &rpioPlatform{
		timers: newTimers(clock),
		pins:   make(map[int]rpio.Pin),
	}, nil
}

func (rp *rpioPlatform) ConfigureOutput(pin int) error {
	if pin < 0 || pin > maxRPIOPin {
		return errors.Errorf("rpio: no GPIO %d", pin)
	}
	p := rpio.Pin(pin)
	p.Output()
	rp.pins[pin] = p
	return nil
}

func (rp *rpioPlatform) SetOutput(pin int, level Level) {
	p, ok := rp.pins[pin]
	if !ok {
		return
	}
	if level == High {
		p.High()
	} else {
		p.Low()
	}
}

func (rp *rpioPlatform) Close() error {
	rp.stopTimers()
	return rpio.Close()
}
